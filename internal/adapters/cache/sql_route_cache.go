package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-view-service/internal/domain"
	"route-view-service/internal/platform/obs"
)

// SQLRouteCache is a SQL-backed cache for resolved road geometry, keyed
// by the encoded waypoint list. Works against postgres (pgx) and sqlite.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch a cached geometry. A missing row is (nil, false, nil).
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ []domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT geometry
	FROM route_cache
	WHERE waypoints = $1;
	`

	var raw []byte
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	path, err := decodeGeometry(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	return path, true, nil
}

// Store one resolved geometry, replacing any previous entry for the key.
func (s *SQLRouteCache) Put(ctx context.Context, key string, path []domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if len(path) == 0 {
		return nil
	}

	raw, err := encodeGeometry(path)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	q := `
	INSERT INTO route_cache (waypoints, geometry)
	VALUES ($1, $2)
	ON CONFLICT (waypoints) DO UPDATE
	SET geometry = EXCLUDED.geometry;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, raw); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

// Geometry is stored as a JSON array of [lat, lng] pairs.
func encodeGeometry(path []domain.Coordinates) ([]byte, error) {
	pairs := make([][2]float64, 0, len(path))
	for _, c := range path {
		pairs = append(pairs, [2]float64{c.Lat, c.Lng})
	}

	raw, err := json.Marshal(pairs)
	if err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}
	return raw, nil
}

func decodeGeometry(raw []byte) ([]domain.Coordinates, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		path = append(path, domain.Coordinates{Lat: p[0], Lng: p[1]})
	}
	return path, nil
}
