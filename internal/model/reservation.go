package model

import "time"

// StatusCodeAvailable is the only feed status code that marks a record as
// free.  Every other code (reserved, unavailable, closed, or anything
// unrecognized) is treated conservatively as occupied.
const StatusCodeAvailable = "Available"

// RawReservation is one per-resource event record returned by the external
// reservation feed for the queried day window.  Records are untrusted
// input: a record with a zero Start or an unknown resource is skipped by
// the parser rather than failing the whole query.
//
// Fields:
//  ResourceID – resource key the event refers to.
//  Start      – start of the hour the event covers; zero when the feed
//               supplied a missing or malformed timestamp.
//  Status     – raw status code from the feed (e.g. "Available", "B", "U").
type RawReservation struct {
    ResourceID string
    Start      time.Time
    Status     string
}

// Occupied reports whether the record marks its hour as taken.  Only the
// explicit available code is ever treated as free.
func (r RawReservation) Occupied() bool {
    return r.Status != StatusCodeAvailable
}
