package engine

import (
	"fmt"
	"strings"

	"route-view-service/internal/domain"
)

// Sentinel used when a snapshot carries no start location, so that
// "no start" and "start at (0,0)" fingerprint differently.
const noStartSentinel = "none"

// Fingerprint summarizes the redraw-relevant fields of a snapshot: the
// start coordinates and, per stop in sequence order, its identity,
// status and sequence number. Two snapshots redraw identically iff
// their fingerprints are equal, so an unchanged fingerprint lets the
// coordinator skip the redraw outright.
func Fingerprint(snap domain.RouteSnapshot) string {
	var b strings.Builder

	if snap.Start != nil {
		fmt.Fprintf(&b, "%.6f,%.6f", snap.Start.Coord.Lat, snap.Start.Coord.Lng)
	} else {
		b.WriteString(noStartSentinel)
	}

	for _, st := range snap.StopsInSequence() {
		fmt.Fprintf(&b, "|%s:%s:%d", st.ID, st.Status, st.Sequence)
	}

	return b.String()
}
