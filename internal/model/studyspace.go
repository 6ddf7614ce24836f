package model

// StudySpace is a bookable study area inside a library building.  Each
// space owns a set of seats identified by their resource IDs in the
// external reservation system.
//
// Fields:
//  ID           – primary key identifier.
//  BuildingName – name of the library building (e.g. "Agora").
//  SpaceName    – name of the space within the building.
//  LocationID   – location identifier used by the reservation system.
//  PID          – page identifier for the legacy per-library search link.
//  Seats        – seats of the space in catalog order; catalog order is
//                 the default seat order of the availability grid.
type StudySpace struct {
    ID           uint64 `json:"id"`            // study_spaces.id
    BuildingName string `json:"building_name"` // study_spaces.building_name
    SpaceName    string `json:"space_name"`    // study_spaces.space_name
    LocationID   string `json:"location_id"`   // study_spaces.location_id
    PID          uint64 `json:"pid"`           // study_spaces.pid
    Seats        []Seat `json:"seats,omitempty"`
}

// Seat maps one reservation-system resource to its display name.
type Seat struct {
    ResourceID string `json:"resource_id"` // seats.resource_id
    Name       string `json:"name"`        // seats.name
}

// ResourceIDs returns the resource keys of the space's seats in catalog
// order.
func (s *StudySpace) ResourceIDs() []string {
    ids := make([]string, 0, len(s.Seats))
    for _, seat := range s.Seats {
        ids = append(ids, seat.ResourceID)
    }
    return ids
}

// SeatNames returns a resourceID → name lookup for resolving slot display
// names.
func (s *StudySpace) SeatNames() map[string]string {
    names := make(map[string]string, len(s.Seats))
    for _, seat := range s.Seats {
        names[seat.ResourceID] = seat.Name
    }
    return names
}
