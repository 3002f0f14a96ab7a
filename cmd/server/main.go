package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-view-service/internal/adapters/cache"
	"route-view-service/internal/adapters/routing"
	"route-view-service/internal/api"
	"route-view-service/internal/config"
	"route-view-service/internal/platform/db"
	"route-view-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, sqlite/postgres/redis caches) behind
// ports and starts the demo render server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatal(err)
	}

	// Env overrides for the knobs that differ per deployment.
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid PORT %q", v)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("OSRM_BASE_URL"); v != "" {
		cfg.Routing.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}

	geoCache, closeDB, err := buildCache(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if closeDB != nil {
		defer closeDB()
	}

	provider, err := routing.NewOSRMRouteProvider(cfg.Routing.BaseURL, cfg.Routing.Profile, geoCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider)

	// Write timeout leaves room for cold-cache renders with several
	// external routing calls in flight.
	addr := ":" + strconv.Itoa(cfg.Server.Port)
	log.Printf("Server listening addr=%s osrm=%s", addr, cfg.Routing.BaseURL)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCache picks the geometry cache backend: redis when configured,
// otherwise postgres when DATABASE_URL is set, otherwise local sqlite.
func buildCache(cfg config.AppConfig) (ports.RouteGeometryCache, func() error, error) {
	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		return cache.NewRedisRouteCache(client, ttl), client.Close, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		sqlDB, err = db.Open(dbURL)
	} else {
		sqlDB, err = db.OpenSQLite(getEnv("DB_PATH", "data/routecache.db"))
	}
	if err != nil {
		return nil, nil, err
	}

	if err := cache.InitSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return cache.NewSQLRouteCache(sqlDB), sqlDB.Close, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
