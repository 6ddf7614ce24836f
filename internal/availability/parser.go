// Package availability turns raw reservation-feed records into a complete
// seat×hour grid and orders the grid by a selected strategy.  All functions
// are pure: the current instant is always injected so that repeated reads
// within one render cycle are deterministic and the package is testable
// without a clock.
package availability

import (
    "time"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// HourWindow is the inclusive range of hours materialized in the grid.
type HourWindow struct {
    First int // first hour emitted per seat
    Last  int // last hour emitted per seat
}

// DefaultWindow covers the hours the reservation system accepts bookings
// for, 08:00 through 23:00.
var DefaultWindow = HourWindow{First: 8, Last: 23}

// Hours returns the number of hours the window spans.
func (w HourWindow) Hours() int { return w.Last - w.First + 1 }

type cellKey struct {
    resourceID string
    hour       int
}

// Parse converts raw feed records for the half-open day window
// [date 00:00, date+1 00:00) into a gap-filled grid of slots using the
// default hour window.  resourceIDs is the seat catalog being queried and
// defines the emitted seat order; records referencing resources outside the
// catalog are ignored, so the grid size is bounded by the catalog and not
// by the feed.
func Parse(events []model.RawReservation, resourceIDs []string, date, now time.Time) []model.Slot {
    return ParseWindow(events, resourceIDs, date, now, DefaultWindow)
}

// ParseWindow is Parse with an explicit hour window.  For every catalog
// resource and every hour in the window exactly one slot is emitted, in
// resource-then-hour order:
//
//   - hours already in the past on today's date are Unavailable,
//   - hours occupied per the feed are Busy,
//   - everything else is Available.
//
// A record with a missing or malformed timestamp is skipped, never fatal,
// and an explicit "available" feed code is never inserted into the busy
// set.  An empty catalog yields an empty (non-nil) result.
func ParseWindow(events []model.RawReservation, resourceIDs []string, date, now time.Time, w HourWindow) []model.Slot {
    inCatalog := make(map[string]struct{}, len(resourceIDs))
    for _, id := range resourceIDs {
        inCatalog[id] = struct{}{}
    }

    busy := make(map[cellKey]struct{}, len(events))
    for _, ev := range events {
        if ev.ResourceID == "" || ev.Start.IsZero() || !ev.Occupied() {
            continue
        }
        if _, ok := inCatalog[ev.ResourceID]; !ok {
            continue
        }
        busy[cellKey{resourceID: ev.ResourceID, hour: ev.Start.Hour()}] = struct{}{}
    }

    isToday := sameDay(date, now)
    currentHour := now.Hour()

    slots := make([]model.Slot, 0, len(resourceIDs)*w.Hours())
    for _, id := range resourceIDs {
        for hour := w.First; hour <= w.Last; hour++ {
            status := model.StatusAvailable
            switch {
            case isToday && hour < currentHour:
                status = model.StatusUnavailable
            default:
                if _, taken := busy[cellKey{resourceID: id, hour: hour}]; taken {
                    status = model.StatusBusy
                }
            }
            slots = append(slots, model.Slot{ResourceID: id, Hour: hour, Status: status})
        }
    }
    return slots
}

// ResolveSeatNames fills each slot's SeatName from the catalog mapping.
// Slots whose resource has no catalog entry keep the resource ID as a
// display fallback.
func ResolveSeatNames(slots []model.Slot, names map[string]string) {
    for i := range slots {
        if name, ok := names[slots[i].ResourceID]; ok && name != "" {
            slots[i].SeatName = name
        } else {
            slots[i].SeatName = slots[i].ResourceID
        }
    }
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
    return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
