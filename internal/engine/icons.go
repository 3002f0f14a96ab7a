package engine

import (
	"fmt"
	"strconv"

	"route-view-service/internal/domain"
	"route-view-service/internal/ports"
)

// StartIcon describes the depot/office marker.
func StartIcon(name string) ports.MarkerIcon {
	return ports.MarkerIcon{Kind: ports.MarkerStart, Label: name}
}

// NumberedIcon describes a stop marker carrying its sequence number and
// completion status; the canvas maps status to a concrete visual.
func NumberedIcon(st domain.Stop) ports.MarkerIcon {
	return ports.MarkerIcon{
		Kind:   ports.MarkerNumbered,
		Label:  strconv.Itoa(st.Sequence),
		Status: st.Status,
	}
}

func stopPopup(st domain.Stop) string {
	text := st.Name
	if st.Address != "" {
		text += "\n" + st.Address
	}
	if st.ItemCount > 0 {
		text += fmt.Sprintf("\nitems: %d", st.ItemCount)
	}
	return text
}
