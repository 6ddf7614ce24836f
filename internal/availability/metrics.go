package availability

import (
    "sort"
    "time"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// SeatGroup aggregates all slots of one seat across the queried hour
// window together with the metrics the sort strategies order by.  Groups
// are derived per read and never persisted.
//
// Fields:
//  ResourceID     – seat the group belongs to.
//  SeatName       – resolved display name (falls back to the resource ID).
//  Slots          – the seat's slots, hours ascending.
//  AvailableCount – number of hours with status Available.
//  MaxConsecutive – longest gap-free run of Available hours.
//  AvailableNow   – whether a slot exists for the current hour and is
//                   Available.
type SeatGroup struct {
    ResourceID     string       `json:"resource_id"`
    SeatName       string       `json:"seat_name"`
    Slots          []model.Slot `json:"-"`
    AvailableCount int          `json:"available_count"`
    MaxConsecutive int          `json:"max_consecutive"`
    AvailableNow   bool         `json:"available_now"`
}

// Group partitions slots by resource, preserving first-seen (catalog)
// order across groups and ascending hour order inside each group, and
// computes the per-seat metrics against the injected current instant.
func Group(slots []model.Slot, now time.Time) []SeatGroup {
    byResource := make(map[string]int)
    groups := make([]SeatGroup, 0)
    for _, s := range slots {
        idx, ok := byResource[s.ResourceID]
        if !ok {
            idx = len(groups)
            byResource[s.ResourceID] = idx
            name := s.SeatName
            if name == "" {
                name = s.ResourceID
            }
            groups = append(groups, SeatGroup{ResourceID: s.ResourceID, SeatName: name})
        }
        groups[idx].Slots = append(groups[idx].Slots, s)
    }

    currentHour := now.Hour()
    for i := range groups {
        g := &groups[i]
        sort.SliceStable(g.Slots, func(a, b int) bool { return g.Slots[a].Hour < g.Slots[b].Hour })

        run := 0
        prevHour := 0
        for _, s := range g.Slots {
            if s.IsAvailable() {
                g.AvailableCount++
                // a run only continues across directly adjacent hours
                if run > 0 && s.Hour != prevHour+1 {
                    run = 0
                }
                run++
                if run > g.MaxConsecutive {
                    g.MaxConsecutive = run
                }
                prevHour = s.Hour
            } else {
                run = 0
            }
            if s.Hour == currentHour && s.IsAvailable() {
                g.AvailableNow = true
            }
        }
    }
    return groups
}
