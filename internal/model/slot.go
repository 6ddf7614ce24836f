package model

// SlotStatus is the availability state of a single seat/hour cell.  It is a
// closed enumeration: the parser only ever emits one of the three values
// below, and display code mapping switches exhaustively so an unhandled
// status cannot silently fall through to a default character.
type SlotStatus int

const (
    // StatusAvailable means the seat can be booked for this hour.
    StatusAvailable SlotStatus = iota
    // StatusBusy means the seat is reserved by someone for this hour.
    StatusBusy
    // StatusUnavailable means the hour cannot be booked at all (already in
    // the past on the queried day, or closed).
    StatusUnavailable
)

// String returns the lowercase name used in JSON responses.
func (s SlotStatus) String() string {
    switch s {
    case StatusAvailable:
        return "available"
    case StatusBusy:
        return "busy"
    case StatusUnavailable:
        return "unavailable"
    }
    return "unknown"
}

// DisplayCode returns the single-letter grid code used by text renderings
// of the seat table: A (available), B (busy), U (unavailable).
func (s SlotStatus) DisplayCode() string {
    switch s {
    case StatusAvailable:
        return "A"
    case StatusBusy:
        return "B"
    case StatusUnavailable:
        return "U"
    }
    return "?"
}

// MarshalText makes SlotStatus serialize as its lowercase name.
func (s SlotStatus) MarshalText() ([]byte, error) {
    return []byte(s.String()), nil
}

// Slot describes the availability of one seat for one hour of the queried
// day.  A query result contains at most one Slot per (ResourceID, Hour).
//
// Fields:
//  ResourceID – resource key of the seat in the reservation system.
//  Hour       – hour of day; the engine materializes hours 8 through 23.
//  Status     – availability state for this hour.
//  SeatName   – display name resolved from the seat catalog; empty until
//               resolved.
//  SortOrder  – zero-based seat-group rank stamped by the sort engine so a
//               flattened slot sequence can be regrouped without re-sorting.
//               Not part of the slot's identity.
type Slot struct {
    ResourceID string     `json:"resource_id"`
    Hour       int        `json:"hour"`
    Status     SlotStatus `json:"status"`
    SeatName   string     `json:"seat_name,omitempty"`
    SortOrder  int        `json:"sort_order"`
}

// IsAvailable reports whether the slot can be booked.
func (s Slot) IsAvailable() bool { return s.Status == StatusAvailable }

// TimeRange is a contiguous run of selected hours for one seat.  End is
// exclusive, so hours 9,10,11 become {Start: 9, End: 12}.  Ranges are
// recomputed from the current selection on every read and never stored.
type TimeRange struct {
    ResourceID string `json:"resource_id"` // seat the range belongs to
    SeatName   string `json:"seat_name"`   // resolved display name
    Start      int    `json:"start"`       // first selected hour
    End        int    `json:"end"`         // exclusive end hour
}
