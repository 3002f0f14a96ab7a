package engine

import (
	"context"
	"log"
	"sync"

	"route-view-service/internal/domain"
	"route-view-service/internal/ports"
)

// MapSession owns everything the engine keeps alive between redraws:
// the canvas handle, the two layers it exclusively mutates, the
// fingerprint of the last applied snapshot and the generation counter
// that invalidates stale path fetches. Create one per visualization
// lifetime and release it with Close.
//
// All layer mutations happen under the session mutex, and every async
// path result re-checks the generation under that mutex before touching
// a layer. A superseded fetch therefore can never corrupt a newer view.
type MapSession struct {
	mu       sync.Mutex
	canvas   ports.MapCanvas
	markers  ports.Layer
	paths    ports.Layer
	provider ports.RoutePathProvider

	lastFingerprint string
	generation      uint64
	cancel          context.CancelFunc
	drawn           bool
	closed          bool

	inflight sync.WaitGroup
}

func NewMapSession(canvas ports.MapCanvas, provider ports.RoutePathProvider) *MapSession {
	return &MapSession{
		canvas:   canvas,
		markers:  canvas.NewLayer(),
		paths:    canvas.NewLayer(),
		provider: provider,
	}
}

// Redraw applies a snapshot to the map. The first call always draws and
// fits the viewport to everything placed; later calls redraw only when
// the snapshot fingerprint changed, and never refit, so the user's pan
// and zoom survive data refreshes. Markers are drawn synchronously;
// road paths resolve asynchronously and attach when their fetch lands,
// unless a newer redraw has superseded them by then.
func (s *MapSession) Redraw(ctx context.Context, snap domain.RouteSnapshot) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	fp := Fingerprint(snap)
	if s.drawn && fp == s.lastFingerprint {
		s.mu.Unlock()
		return
	}

	// Admit the redraw: bump the generation and cancel whatever the
	// previous one still has in flight.
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	genCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.markers.Clear()
	s.paths.Clear()

	var bounds []domain.Coordinates

	if snap.Start != nil {
		s.markers.AddMarker(snap.Start.Coord, StartIcon(snap.Start.Name), snap.Start.Name)
		bounds = append(bounds, snap.Start.Coord)
	}

	for _, pm := range PlaceMarkers(snap.StopsInSequence()) {
		s.markers.AddMarker(pm.RenderAt, NumberedIcon(pm.Stop), stopPopup(pm.Stop))
		bounds = append(bounds, pm.RenderAt)
	}

	if !s.drawn && len(bounds) > 0 {
		s.canvas.FitBounds(bounds)
	}

	s.drawn = true
	s.lastFingerprint = fp

	segs := BuildSegments(snap)
	s.inflight.Add(len(segs))
	s.mu.Unlock()

	for _, seg := range segs {
		go s.fetchAndDraw(genCtx, gen, seg)
	}
}

// fetchAndDraw resolves one segment and attaches the result, falling
// back to a straight line through the waypoints when the provider
// fails. Results from a superseded generation are dropped without
// touching the layers.
func (s *MapSession) fetchAndDraw(ctx context.Context, gen uint64, seg Segment) {
	defer s.inflight.Done()

	path, err := s.provider.FetchRoutePath(ctx, seg.Waypoints)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return
	}

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// Routing flakiness must never block the display: draw the leg
		// as a straight line at one step lower weight, no user-facing
		// error.
		log.Printf("op=route.fetch segment=%s err=%v fallback=straight-line", seg.Kind, err)
		style := seg.Style
		style.Weight--
		s.paths.AddPolyline(seg.Waypoints, style)
		return
	}

	s.paths.AddPolyline(path, seg.Style)
}

// Wait blocks until every issued path fetch has settled. Superseded
// fetches settle by being discarded. Intended for tests and for servers
// that want a complete view before answering.
func (s *MapSession) Wait() {
	s.inflight.Wait()
}

// Close tears the session down: cancels in-flight fetches, clears both
// layers and releases the canvas. The session is unusable afterwards.
func (s *MapSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.markers.Clear()
	s.paths.Clear()
	canvas := s.canvas
	s.mu.Unlock()

	s.inflight.Wait()
	canvas.Remove()
}
