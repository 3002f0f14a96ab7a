package domain

// Completion status of a single planned visit.
type StopStatus string

const (
	StatusPending   StopStatus = "pending"
	StatusCurrent   StopStatus = "current"
	StatusCompleted StopStatus = "completed"
	StatusSkipped   StopStatus = "skipped"
)

// Represents a single planned visit in a field route.
// Sequence is the authoritative ordering; slice position never is.
// Coord is nil when the store has no known location, which excludes the
// stop from path requests and marker placement but not from list views.
type Stop struct {
	ID        string
	StoreID   string
	Name      string
	Address   string
	Sequence  int
	Status    StopStatus
	Coord     *Coordinates
	ItemCount int
}

// HasCoord reports whether the stop can participate in routing and
// marker placement.
func (s Stop) HasCoord() bool { return s.Coord != nil }
