package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"route-view-service/internal/adapters/canvas"
	"route-view-service/internal/api/dto"
	"route-view-service/internal/domain"
	"route-view-service/internal/engine"
	"route-view-service/internal/ports"
)

// RenderHandler owns one MapSession per session id. POST applies a
// snapshot and returns the resulting view state; DELETE tears the
// session down.
type RenderHandler struct {
	Provider ports.RoutePathProvider

	mu       sync.Mutex
	sessions map[string]*renderSession
}

type renderSession struct {
	session *engine.MapSession
	canvas  *canvas.RecordingCanvas
	fitSent bool
}

func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.render(w, r)
	case http.MethodDelete:
		h.teardown(w, r)
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RenderHandler) render(w http.ResponseWriter, r *http.Request) {
	var req dto.RenderRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	snap, msg := snapshotFromRequest(req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	rs := h.getOrCreate(sessionID)

	rs.session.Redraw(r.Context(), snap)
	// The demo server answers with the complete view, so wait for the
	// async path fetches to settle before serializing.
	rs.session.Wait()

	writeJSON(w, r, http.StatusOK, h.viewResponse(sessionID, rs))
}

func (h *RenderHandler) teardown(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	h.mu.Lock()
	rs, ok := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return
	}

	rs.session.Close()
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "closed"})
}

func (h *RenderHandler) getOrCreate(sessionID string) *renderSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions == nil {
		h.sessions = make(map[string]*renderSession)
	}
	if rs, ok := h.sessions[sessionID]; ok {
		return rs
	}

	c := canvas.NewRecordingCanvas()
	rs := &renderSession{
		session: engine.NewMapSession(c, h.Provider),
		canvas:  c,
	}
	h.sessions[sessionID] = rs
	return rs
}

func snapshotFromRequest(req dto.RenderRequest) (domain.RouteSnapshot, string) {
	snap := domain.RouteSnapshot{Stops: make([]domain.Stop, 0, len(req.Stops))}

	if req.Start != nil {
		snap.Start = &domain.StartLocation{
			Coord: domain.Coordinates{Lat: req.Start.Lat, Lng: req.Start.Lng},
			Name:  req.Start.Name,
		}
	}

	for _, s := range req.Stops {
		if strings.TrimSpace(s.ID) == "" {
			return domain.RouteSnapshot{}, "every stop needs an id"
		}

		status, ok := stopStatus(s.Status)
		if !ok {
			return domain.RouteSnapshot{}, "invalid stop status " + s.Status
		}

		if (s.Lat == nil) != (s.Lng == nil) {
			return domain.RouteSnapshot{}, "stop " + s.ID + " must carry both lat and lng or neither"
		}

		st := domain.Stop{
			ID:        s.ID,
			StoreID:   s.StoreID,
			Name:      s.Name,
			Address:   s.Address,
			Sequence:  s.Sequence,
			Status:    status,
			ItemCount: s.ItemCount,
		}
		if s.Lat != nil {
			st.Coord = &domain.Coordinates{Lat: *s.Lat, Lng: *s.Lng}
		}

		snap.Stops = append(snap.Stops, st)
	}

	return snap, ""
}

func stopStatus(s string) (domain.StopStatus, bool) {
	switch domain.StopStatus(s) {
	case domain.StatusPending, domain.StatusCurrent, domain.StatusCompleted, domain.StatusSkipped:
		return domain.StopStatus(s), true
	case "":
		return domain.StatusPending, true
	}
	return "", false
}

func (h *RenderHandler) viewResponse(sessionID string, rs *renderSession) dto.ViewResponse {
	res := dto.ViewResponse{SessionID: sessionID}

	layers := rs.canvas.Layers()
	if len(layers) >= 2 {
		for _, m := range layers[0].Markers() {
			res.Markers = append(res.Markers, dto.MarkerResponse{
				At:     dto.PointResponse{Lat: m.At.Lat, Lng: m.At.Lng},
				Kind:   string(m.Icon.Kind),
				Label:  m.Icon.Label,
				Status: string(m.Icon.Status),
				Popup:  m.Popup,
			})
		}
		for _, p := range layers[1].Polylines() {
			path := make([]dto.PointResponse, 0, len(p.Path))
			for _, c := range p.Path {
				path = append(path, dto.PointResponse{Lat: c.Lat, Lng: c.Lng})
			}
			res.Paths = append(res.Paths, dto.PolylineResponse{
				Path:      path,
				Color:     p.Style.Color,
				Weight:    p.Style.Weight,
				Opacity:   p.Style.Opacity,
				DashArray: p.Style.DashArray,
			})
		}
	}

	h.mu.Lock()
	fitSent := rs.fitSent
	rs.fitSent = true
	h.mu.Unlock()

	if !fitSent {
		if fits := rs.canvas.FitCalls(); len(fits) > 0 {
			last := fits[len(fits)-1]
			for _, c := range last {
				res.FitBounds = append(res.FitBounds, dto.PointResponse{Lat: c.Lat, Lng: c.Lng})
			}
		}
	}

	return res
}
