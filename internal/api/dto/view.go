package dto

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MarkerResponse struct {
	At     PointResponse `json:"at"`
	Kind   string        `json:"kind"`
	Label  string        `json:"label"`
	Status string        `json:"status,omitempty"`
	Popup  string        `json:"popup,omitempty"`
}

type PolylineResponse struct {
	Path      []PointResponse `json:"path"`
	Color     string          `json:"color"`
	Weight    int             `json:"weight"`
	Opacity   float64         `json:"opacity"`
	DashArray string          `json:"dash_array,omitempty"`
}

type ViewResponse struct {
	SessionID string             `json:"session_id"`
	Markers   []MarkerResponse   `json:"markers"`
	Paths     []PolylineResponse `json:"paths"`
	// FitBounds is only set on the first draw of a session; later
	// redraws preserve the client's viewport.
	FitBounds []PointResponse `json:"fit_bounds,omitempty"`
}
