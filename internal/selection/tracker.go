// Package selection tracks which seat/hour cells a user has picked out of
// one loaded availability grid.  The tracker is an explicit state object
// mutated only by direct user interaction; it stores back-references to
// slots, never slot state, so the grid stays the single source of truth
// for status.
package selection

import (
    "sort"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// Key identifies one selected cell.  Membership of a Key in the tracker
// is a back-reference used to look up the slot at read time.
type Key struct {
    ResourceID string `json:"resource_id"`
    Hour       int    `json:"hour"`
}

// Summary is the derived read of a selection: the coalesced per-seat time
// ranges plus caller-facing totals.  It is recomputed on every read from
// the current selection and the supplied slot collection, so it cannot go
// stale.
type Summary struct {
    Ranges     []model.TimeRange `json:"ranges"`
    TotalHours int               `json:"total_hours"`
    // HasLongSession flags any single range spanning more than six hours.
    // It is a hint for the caller, not an enforced limit.
    HasLongSession bool `json:"has_long_session"`
}

// longSessionHours is the advisory threshold above which a single range is
// flagged as a long session.
const longSessionHours = 6

// Tracker is the mutable set of selected keys for one query result.  It is
// not safe for concurrent use; the Store serializes access per session.
type Tracker struct {
    keys map[Key]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
    return &Tracker{keys: make(map[Key]struct{})}
}

// Select toggles membership of the slot's key.  Non-available slots are
// ignored silently.
func (t *Tracker) Select(s model.Slot) {
    if !s.IsAvailable() {
        return
    }
    k := Key{ResourceID: s.ResourceID, Hour: s.Hour}
    if _, ok := t.keys[k]; ok {
        delete(t.keys, k)
        return
    }
    t.keys[k] = struct{}{}
}

// IsSelected reports whether the slot's key is currently selected.
func (t *Tracker) IsSelected(s model.Slot) bool {
    _, ok := t.keys[Key{ResourceID: s.ResourceID, Hour: s.Hour}]
    return ok
}

// IsHourBlocked reports whether any seat has a selection for the hour.  A
// user cannot sit in two places at once, so a blocked hour discourages
// picking the same hour on another seat.
func (t *Tracker) IsHourBlocked(hour int) bool {
    for k := range t.keys {
        if k.Hour == hour {
            return true
        }
    }
    return false
}

// DeselectHour removes every selected key with the given hour, across all
// seats.
func (t *Tracker) DeselectHour(hour int) {
    for k := range t.keys {
        if k.Hour == hour {
            delete(t.keys, k)
        }
    }
}

// Clear empties the selection.  Invoked whenever a new query replaces the
// slot collection.
func (t *Tracker) Clear() {
    t.keys = make(map[Key]struct{})
}

// Len returns the number of selected cells.
func (t *Tracker) Len() int { return len(t.keys) }

// Click is the UI-facing compound operation.  Clicks on non-available
// slots are ignored.  A click on an hour already selected for a different
// seat is ignored too, unless this very slot is the selected one, which
// keeps overlapping-hour selections from forming while still letting the
// user deselect.  Everything else toggles.
func (t *Tracker) Click(s model.Slot) {
    if !s.IsAvailable() {
        return
    }
    if t.IsHourBlocked(s.Hour) && !t.IsSelected(s) {
        return
    }
    t.Select(s)
}

// Ranges groups the selected keys by seat, merges each seat's hours into
// contiguous half-open ranges and returns them flattened across seats,
// ordered by start hour.  Keys whose slot no longer exists in the supplied
// collection are dropped: the slot collection, not the selection, owns
// slot state.
func (t *Tracker) Ranges(slots []model.Slot) Summary {
    byKey := make(map[Key]model.Slot, len(slots))
    resourceOrder := make([]string, 0)
    seenResource := make(map[string]bool)
    for _, s := range slots {
        byKey[Key{ResourceID: s.ResourceID, Hour: s.Hour}] = s
        if !seenResource[s.ResourceID] {
            seenResource[s.ResourceID] = true
            resourceOrder = append(resourceOrder, s.ResourceID)
        }
    }

    hoursByResource := make(map[string][]int)
    nameByResource := make(map[string]string)
    total := 0
    for k := range t.keys {
        s, ok := byKey[k]
        if !ok {
            continue
        }
        hoursByResource[k.ResourceID] = append(hoursByResource[k.ResourceID], k.Hour)
        name := s.SeatName
        if name == "" {
            name = s.ResourceID
        }
        nameByResource[k.ResourceID] = name
        total++
    }

    summary := Summary{Ranges: make([]model.TimeRange, 0, total), TotalHours: total}
    for _, id := range resourceOrder {
        hours := hoursByResource[id]
        if len(hours) == 0 {
            continue
        }
        sort.Ints(hours)

        start, end := hours[0], hours[0]
        for _, h := range hours[1:] {
            if h == end+1 {
                end = h
                continue
            }
            summary.Ranges = append(summary.Ranges, model.TimeRange{
                ResourceID: id, SeatName: nameByResource[id], Start: start, End: end + 1,
            })
            start, end = h, h
        }
        summary.Ranges = append(summary.Ranges, model.TimeRange{
            ResourceID: id, SeatName: nameByResource[id], Start: start, End: end + 1,
        })
    }

    sort.SliceStable(summary.Ranges, func(a, b int) bool {
        return summary.Ranges[a].Start < summary.Ranges[b].Start
    })
    for _, r := range summary.Ranges {
        if r.End-r.Start > longSessionHours {
            summary.HasLongSession = true
            break
        }
    }
    return summary
}
