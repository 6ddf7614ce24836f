package availability

import (
	"testing"
	"time"

	"github.com/iliyamo/library-seat-availability/internal/model"
)

// seatSlots builds one seat's slots from a display-code pattern starting at
// hour 8, "A" meaning available and anything else busy.
func seatSlots(resourceID, seatName, pattern string) []model.Slot {
	slots := make([]model.Slot, 0, len(pattern))
	for i, ch := range pattern {
		status := model.StatusBusy
		if ch == 'A' {
			status = model.StatusAvailable
		}
		slots = append(slots, model.Slot{ResourceID: resourceID, SeatName: seatName, Hour: 8 + i, Status: status})
	}
	return slots
}

func TestGroupMetrics(t *testing.T) {
	// A,A,U,A,A,A starting at hour 8
	slots := seatSlots("1", "Seat 1", "AAUAAA")
	groups := Group(slots, at(2025, time.June, 7, 3))

	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	g := groups[0]
	if g.AvailableCount != 5 {
		t.Fatalf("availableCount = %d, expected 5", g.AvailableCount)
	}
	if g.MaxConsecutive != 3 {
		t.Fatalf("maxConsecutive = %d, expected 3", g.MaxConsecutive)
	}
}

func TestGroupAvailableNow(t *testing.T) {
	slots := seatSlots("1", "Seat 1", "AABA")
	now := at(2025, time.June, 7, 9) // hour 9 is the second slot, available
	if g := Group(slots, now)[0]; !g.AvailableNow {
		t.Fatal("expected availableNow for an available current-hour slot")
	}
	now = at(2025, time.June, 7, 10) // hour 10 is busy
	if g := Group(slots, now)[0]; g.AvailableNow {
		t.Fatal("expected availableNow=false for a busy current-hour slot")
	}
	now = at(2025, time.June, 7, 23) // no slot for hour 23
	if g := Group(slots, now)[0]; g.AvailableNow {
		t.Fatal("expected availableNow=false when no current-hour slot exists")
	}
}

func TestSortBySeatNumber(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("a", "Seat 12", "AA")...)
	slots = append(slots, seatSlots("b", "Seat 3", "AA")...)
	slots = append(slots, seatSlots("c", "Corner desk", "AA")...) // no number, sorts as 0

	sorted := Sort(slots, StrategySeatNumber, at(2025, time.June, 7, 3))

	if sorted[0].SeatName != "Corner desk" {
		t.Fatalf("expected numberless seat first, got %q", sorted[0].SeatName)
	}
	if sorted[2].SeatName != "Seat 3" || sorted[4].SeatName != "Seat 12" {
		t.Fatalf("unexpected seat order: %q then %q", sorted[2].SeatName, sorted[4].SeatName)
	}
}

func TestSortByTotalAvailable(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("1", "Seat 1", "ABBB")...)
	slots = append(slots, seatSlots("2", "Seat 2", "AAAB")...)

	sorted := Sort(slots, StrategyTotalAvailable, at(2025, time.June, 7, 3))

	if sorted[0].ResourceID != "2" {
		t.Fatalf("seat with most available hours should come first, got %s", sorted[0].ResourceID)
	}
	if sorted[0].SortOrder != 0 || sorted[len(sorted)-1].SortOrder != 1 {
		t.Fatalf("group ranks not stamped: first=%d last=%d", sorted[0].SortOrder, sorted[len(sorted)-1].SortOrder)
	}
}

func TestSortByMaxConsecutive(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("1", "Seat 1", "ABABAB")...) // 3 available, runs of 1
	slots = append(slots, seatSlots("2", "Seat 2", "AABBBB")...) // 2 available, run of 2

	sorted := Sort(slots, StrategyMaxConsecutive, at(2025, time.June, 7, 3))

	if sorted[0].ResourceID != "2" {
		t.Fatalf("seat with longest run should come first, got %s", sorted[0].ResourceID)
	}
}

func TestSortByAvailableNow(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("1", "Seat 1", "BAAA")...) // busy at 8
	slots = append(slots, seatSlots("2", "Seat 2", "ABBB")...) // free at 8
	now := at(2025, time.June, 7, 8)

	sorted := Sort(slots, StrategyAvailableNow, now)

	if sorted[0].ResourceID != "2" {
		t.Fatalf("seat free right now should come first, got %s", sorted[0].ResourceID)
	}
}

func TestSortTiesKeepCatalogOrder(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("x", "Seat 5", "AA")...)
	slots = append(slots, seatSlots("y", "Seat 6", "AA")...)

	sorted := Sort(slots, StrategyTotalAvailable, at(2025, time.June, 7, 3))

	if sorted[0].ResourceID != "x" {
		t.Fatalf("stable sort should keep catalog order on ties, got %s first", sorted[0].ResourceID)
	}
}

func TestSortDoesNotMutateGroups(t *testing.T) {
	var slots []model.Slot
	slots = append(slots, seatSlots("1", "Seat 1", "AAUAAA")...)
	slots = append(slots, seatSlots("2", "Seat 2", "UUAAAA")...)
	now := at(2025, time.June, 7, 3)

	before := Group(slots, now)
	sorted := Sort(slots, StrategyTotalAvailable, now)
	after := Group(sorted, now)

	if len(before) != len(after) {
		t.Fatalf("group count changed: %d -> %d", len(before), len(after))
	}
	byResource := make(map[string]SeatGroup, len(after))
	for _, g := range after {
		byResource[g.ResourceID] = g
	}
	for _, g := range before {
		got, ok := byResource[g.ResourceID]
		if !ok {
			t.Fatalf("group %s lost by sorting", g.ResourceID)
		}
		if got.AvailableCount != g.AvailableCount || got.MaxConsecutive != g.MaxConsecutive || got.AvailableNow != g.AvailableNow {
			t.Fatalf("metrics changed for %s: %+v -> %+v", g.ResourceID, g, got)
		}
		if len(got.Slots) != len(g.Slots) {
			t.Fatalf("slot count changed for %s", g.ResourceID)
		}
		for i := range g.Slots {
			if got.Slots[i].Hour != g.Slots[i].Hour || got.Slots[i].Status != g.Slots[i].Status {
				t.Fatalf("slot %d of %s changed", i, g.ResourceID)
			}
		}
	}
}

func TestSortOptionsGating(t *testing.T) {
	day := date(2025, time.June, 7)
	slots := seatSlots("1", "Seat 1", "AAAA")

	// not today: availableNow must not be offered even though slots are free
	options := SortOptions(day, at(2025, time.June, 8, 9), slots)
	for _, o := range options {
		if o == StrategyAvailableNow {
			t.Fatal("availableNow offered for a non-today date")
		}
	}
	if len(options) != 3 {
		t.Fatalf("expected 3 base options, got %d", len(options))
	}

	// today with a free current-hour slot: offered
	options = SortOptions(day, at(2025, time.June, 7, 9), slots)
	found := false
	for _, o := range options {
		if o == StrategyAvailableNow {
			found = true
		}
	}
	if !found {
		t.Fatal("availableNow missing for today with current-hour availability")
	}

	// today but nothing free right now: not offered
	busy := seatSlots("1", "Seat 1", "BBBB")
	options = SortOptions(day, at(2025, time.June, 7, 9), busy)
	for _, o := range options {
		if o == StrategyAvailableNow {
			t.Fatal("availableNow offered with no current-hour availability")
		}
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategySeatNumber {
		t.Fatalf("empty key should default to seatNumber, got %q err=%v", s, err)
	}
	if _, err := ParseStrategy("bogus"); err != ErrUnknownStrategy {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	if s, err := ParseStrategy("maxConsecutive"); err != nil || s != StrategyMaxConsecutive {
		t.Fatalf("unexpected parse result: %q err=%v", s, err)
	}
}
