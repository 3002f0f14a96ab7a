package canvas

import (
	"sync"

	"route-view-service/internal/domain"
	"route-view-service/internal/ports"
)

// RecordingCanvas is a headless MapCanvas: instead of rendering tiles
// it accumulates every drawn object, so servers can serialize the view
// state for a browser-side renderer and tests can assert on exactly
// what the engine drew.
type RecordingCanvas struct {
	mu      sync.Mutex
	layers  []*RecordingLayer
	fitted  [][]domain.Coordinates
	removed bool
}

type Marker struct {
	At    domain.Coordinates
	Icon  ports.MarkerIcon
	Popup string
}

type Polyline struct {
	Path  []domain.Coordinates
	Style ports.PathStyle
}

type RecordingLayer struct {
	mu        sync.Mutex
	markers   []Marker
	polylines []Polyline
	clears    int
}

func NewRecordingCanvas() *RecordingCanvas {
	return &RecordingCanvas{}
}

func (c *RecordingCanvas) NewLayer() ports.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := &RecordingLayer{}
	c.layers = append(c.layers, l)
	return l
}

func (c *RecordingCanvas) FitBounds(coords []domain.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bounds := make([]domain.Coordinates, len(coords))
	copy(bounds, coords)
	c.fitted = append(c.fitted, bounds)
}

func (c *RecordingCanvas) Remove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = true
}

// FitCalls returns every FitBounds invocation so far.
func (c *RecordingCanvas) FitCalls() [][]domain.Coordinates {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]domain.Coordinates, len(c.fitted))
	copy(out, c.fitted)
	return out
}

// Layers returns the created layers in creation order. The engine
// creates its marker layer first and its path layer second.
func (c *RecordingCanvas) Layers() []*RecordingLayer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*RecordingLayer, len(c.layers))
	copy(out, c.layers)
	return out
}

func (c *RecordingCanvas) Removed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

func (l *RecordingLayer) AddMarker(at domain.Coordinates, icon ports.MarkerIcon, popup string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = append(l.markers, Marker{At: at, Icon: icon, Popup: popup})
}

func (l *RecordingLayer) AddPolyline(path []domain.Coordinates, style ports.PathStyle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := make([]domain.Coordinates, len(path))
	copy(p, path)
	l.polylines = append(l.polylines, Polyline{Path: p, Style: style})
}

func (l *RecordingLayer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = nil
	l.polylines = nil
	l.clears++
}

func (l *RecordingLayer) Markers() []Marker {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

func (l *RecordingLayer) Polylines() []Polyline {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Polyline, len(l.polylines))
	copy(out, l.polylines)
	return out
}

func (l *RecordingLayer) Clears() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clears
}
