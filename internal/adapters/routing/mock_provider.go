package routing

import (
	"context"
	"sync"

	"route-view-service/internal/domain"
)

// MockRouteProvider is an in-memory RoutePathProvider for tests. It
// echoes the waypoints back as the "road" path unless Err is set, and
// can be gated on Release to exercise cancellation.
type MockRouteProvider struct {
	Err     error
	Release chan struct{}

	mu    sync.Mutex
	calls int
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MockRouteProvider) FetchRoutePath(ctx context.Context, waypoints []domain.Coordinates) ([]domain.Coordinates, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Release != nil {
		select {
		case <-p.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]domain.Coordinates, len(waypoints))
	copy(out, waypoints)
	return out, nil
}
