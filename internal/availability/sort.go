package availability

import (
    "errors"
    "regexp"
    "sort"
    "strconv"
    "time"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// Strategy selects how seat groups are ordered in the grid.  The values
// double as the wire keys accepted by the availability endpoint.
type Strategy string

const (
    // StrategySeatNumber orders seats ascending by the first integer found
    // in the seat name (sequential catalog order for seats without one).
    StrategySeatNumber Strategy = "seatNumber"
    // StrategyTotalAvailable orders seats by most available hours first.
    StrategyTotalAvailable Strategy = "totalAvailable"
    // StrategyMaxConsecutive orders seats by their longest run of
    // consecutive available hours, descending.
    StrategyMaxConsecutive Strategy = "maxConsecutive"
    // StrategyAvailableNow puts seats that are free during the current
    // hour first; ties fall back to most available hours.  Only offered
    // when the queried date is today and something is free right now.
    StrategyAvailableNow Strategy = "availableNow"
)

// ErrUnknownStrategy is returned by ParseStrategy for a key that does not
// name a sort strategy.
var ErrUnknownStrategy = errors.New("unknown sort strategy")

// ParseStrategy maps a wire key to a Strategy.  An empty key selects the
// sequential seat-number default.
func ParseStrategy(key string) (Strategy, error) {
    switch Strategy(key) {
    case StrategySeatNumber, StrategyTotalAvailable, StrategyMaxConsecutive, StrategyAvailableNow:
        return Strategy(key), nil
    case "":
        return StrategySeatNumber, nil
    }
    return "", ErrUnknownStrategy
}

var firstNumber = regexp.MustCompile(`\d+`)

// seatNumber extracts the first integer substring of a seat name, or 0
// when the name carries none.
func seatNumber(name string) int {
    m := firstNumber.FindString(name)
    if m == "" {
        return 0
    }
    n, err := strconv.Atoi(m)
    if err != nil {
        return 0
    }
    return n
}

// SortGroups orders seat groups in place according to the strategy.  The
// sort is stable, so ties keep the catalog order the groups arrived in.
func SortGroups(groups []SeatGroup, strategy Strategy) {
    switch strategy {
    case StrategyTotalAvailable:
        sort.SliceStable(groups, func(a, b int) bool {
            return groups[a].AvailableCount > groups[b].AvailableCount
        })
    case StrategyMaxConsecutive:
        sort.SliceStable(groups, func(a, b int) bool {
            return groups[a].MaxConsecutive > groups[b].MaxConsecutive
        })
    case StrategyAvailableNow:
        sort.SliceStable(groups, func(a, b int) bool {
            if groups[a].AvailableNow != groups[b].AvailableNow {
                return groups[a].AvailableNow
            }
            return groups[a].AvailableCount > groups[b].AvailableCount
        })
    default: // StrategySeatNumber
        sort.SliceStable(groups, func(a, b int) bool {
            return seatNumber(groups[a].SeatName) < seatNumber(groups[b].SeatName)
        })
    }
}

// Sort groups the slots by seat, orders the groups per the strategy and
// re-emits the slots flattened in group order.  Every emitted slot is
// stamped with its zero-based group rank in SortOrder so a renderer can
// regroup without re-sorting.  Per-slot status and seat membership are
// never mutated.
func Sort(slots []model.Slot, strategy Strategy, now time.Time) []model.Slot {
    groups := Group(slots, now)
    SortGroups(groups, strategy)

    out := make([]model.Slot, 0, len(slots))
    for rank, g := range groups {
        for _, s := range g.Slots {
            s.SortOrder = rank
            out = append(out, s)
        }
    }
    return out
}

// SortOptions returns the strategies a caller may offer for the queried
// date.  StrategyAvailableNow is excluded unless the date is today and at
// least one current-hour slot is available; the other three are always
// offered.
func SortOptions(date, now time.Time, slots []model.Slot) []Strategy {
    options := []Strategy{StrategySeatNumber, StrategyTotalAvailable, StrategyMaxConsecutive}
    if !sameDay(date, now) {
        return options
    }
    currentHour := now.Hour()
    for _, s := range slots {
        if s.Hour == currentHour && s.IsAvailable() {
            return append(options, StrategyAvailableNow)
        }
    }
    return options
}
