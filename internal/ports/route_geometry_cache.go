package ports

import (
	"context"

	"route-view-service/internal/domain"
)

// Optional cache for resolved road geometry, keyed by the waypoint list.
// A miss is (nil, false, nil); errors are reserved for backend failures.
type RouteGeometryCache interface {
	Get(ctx context.Context, key string) ([]domain.Coordinates, bool, error)
	Put(ctx context.Context, key string, path []domain.Coordinates) error
}
