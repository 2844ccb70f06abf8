package availability

import "moffatbay/internal/domain"

type SearchResponse struct {
	RoomTypes               []Option             `json:"room_types"`
	NoResults               bool                 `json:"no_results"`
	OverlapWarning          bool                 `json:"overlap_warning,omitempty"`
	OverlappingReservations []domain.Reservation `json:"overlapping_reservations,omitempty"`
}
