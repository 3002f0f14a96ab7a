package ports

import (
	"context"

	"route-view-service/internal/domain"
)

// Contract for resolving an ordered waypoint list into a drivable road
// path. Implementations issue one external call per invocation and must
// honor context cancellation; the engine cancels superseded fetches.
type RoutePathProvider interface {
	// Return the full road geometry through the waypoints, in (lat, lng)
	// order. The waypoint list has at least two entries.
	FetchRoutePath(ctx context.Context, waypoints []domain.Coordinates) ([]domain.Coordinates, error)
}
