package api

import (
	"net/http"

	"route-view-service/internal/api/handlers"
	"route-view-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.RoutePathProvider) http.Handler {
	mux := http.NewServeMux()

	renderHandler := &handlers.RenderHandler{Provider: provider}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/render", renderHandler.Render)

	return loggingMiddleware(mux)
}
