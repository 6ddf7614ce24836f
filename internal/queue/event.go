// Package queue defines message payloads exchanged over the message broker.
package queue

// AvailabilityQueriedEvent is published after every successful availability
// query.  It carries aggregate grid statistics only, no user identity,
// so downstream consumers can observe demand per space and day without
// touching the primary database or the upstream feed.
type AvailabilityQueriedEvent struct {
    SpaceID        uint64 `json:"space_id"`
    BuildingName   string `json:"building_name"`
    SpaceName      string `json:"space_name"`
    Date           string `json:"date"`            // queried day, YYYY-MM-DD
    SeatCount      int    `json:"seat_count"`      // seats in the grid
    AvailableSeats int    `json:"available_seats"` // seats with at least one free hour
    AvailableSlots int    `json:"available_slots"` // free seat-hours in total
    QueriedAt      string `json:"queried_at"`      // RFC 3339 instant of the query
}
