package ports

import "route-view-service/internal/domain"

// MarkerKind is a closed set of marker icon variants. Resolution to a
// renderer-specific icon happens at the canvas boundary; engine logic
// never deals in markup.
type MarkerKind string

const (
	MarkerStart    MarkerKind = "start"
	MarkerNumbered MarkerKind = "numbered"
)

// Renderer-neutral icon descriptor.
type MarkerIcon struct {
	Kind   MarkerKind
	Label  string
	Status domain.StopStatus
}

// Visual style of a drawn path.
type PathStyle struct {
	Color     string
	Weight    int
	Opacity   float64
	DashArray string
}

// Layer is a mutable group of drawn objects that can be wiped as a unit.
type Layer interface {
	AddMarker(at domain.Coordinates, icon MarkerIcon, popup string)
	AddPolyline(path []domain.Coordinates, style PathStyle)
	Clear()
}

// MapCanvas is the boundary to the map-rendering collaborator. Tile
// loading, projection and input handling live behind it; the engine only
// creates layers, fits the viewport and releases the map.
type MapCanvas interface {
	NewLayer() Layer
	FitBounds(coords []domain.Coordinates)
	Remove()
}
