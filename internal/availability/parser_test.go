package availability

import (
	"testing"
	"time"

	"github.com/iliyamo/library-seat-availability/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
}

func TestParseProducesCompleteGrid(t *testing.T) {
	ids := []string{"300855", "300856", "300857"}
	day := date(2025, time.June, 7)
	now := at(2025, time.June, 1, 12) // not the queried day

	slots := Parse(nil, ids, day, now)

	if len(slots) != len(ids)*DefaultWindow.Hours() {
		t.Fatalf("expected %d slots, got %d", len(ids)*DefaultWindow.Hours(), len(slots))
	}
	seen := make(map[string]map[int]bool)
	for _, s := range slots {
		if s.Hour < 8 || s.Hour > 23 {
			t.Fatalf("hour %d outside window", s.Hour)
		}
		if seen[s.ResourceID] == nil {
			seen[s.ResourceID] = make(map[int]bool)
		}
		if seen[s.ResourceID][s.Hour] {
			t.Fatalf("duplicate slot for %s hour %d", s.ResourceID, s.Hour)
		}
		seen[s.ResourceID][s.Hour] = true
	}
	for _, id := range ids {
		if len(seen[id]) != DefaultWindow.Hours() {
			t.Fatalf("resource %s has %d hours, expected %d", id, len(seen[id]), DefaultWindow.Hours())
		}
	}
}

func TestParseMarksReservedHoursBusy(t *testing.T) {
	day := date(2025, time.June, 7)
	events := []model.RawReservation{
		{ResourceID: "300855", Start: time.Date(2025, time.June, 7, 10, 0, 0, 0, time.UTC), Status: "B"},
		{ResourceID: "300855", Start: time.Date(2025, time.June, 7, 11, 0, 0, 0, time.UTC), Status: "Available"},
	}
	slots := Parse(events, []string{"300855"}, day, at(2025, time.June, 1, 12))

	for _, s := range slots {
		switch s.Hour {
		case 10:
			if s.Status != model.StatusBusy {
				t.Fatalf("hour 10 should be busy, got %v", s.Status)
			}
		case 11:
			// explicit available code must never enter the busy set
			if s.Status != model.StatusAvailable {
				t.Fatalf("hour 11 should stay available, got %v", s.Status)
			}
		default:
			if s.Status != model.StatusAvailable {
				t.Fatalf("hour %d should be available, got %v", s.Hour, s.Status)
			}
		}
	}
}

func TestParsePastHoursUnavailableToday(t *testing.T) {
	day := date(2025, time.June, 7)
	now := at(2025, time.June, 7, 14)
	// even an explicit reservation on a past hour stays unavailable
	events := []model.RawReservation{
		{ResourceID: "1", Start: time.Date(2025, time.June, 7, 9, 0, 0, 0, time.UTC), Status: "B"},
	}
	slots := Parse(events, []string{"1"}, day, now)

	for _, s := range slots {
		if s.Hour < 14 && s.Status != model.StatusUnavailable {
			t.Fatalf("past hour %d should be unavailable, got %v", s.Hour, s.Status)
		}
		if s.Hour >= 14 && s.Status == model.StatusUnavailable {
			t.Fatalf("hour %d should not be unavailable", s.Hour)
		}
	}
}

func TestParseSkipsMalformedAndForeignRecords(t *testing.T) {
	day := date(2025, time.June, 7)
	events := []model.RawReservation{
		{ResourceID: "1", Status: "B"}, // zero timestamp, skipped
		{ResourceID: "999", Start: time.Date(2025, time.June, 7, 10, 0, 0, 0, time.UTC), Status: "B"}, // outside catalog
	}
	slots := Parse(events, []string{"1"}, day, at(2025, time.June, 1, 12))

	for _, s := range slots {
		if s.Status != model.StatusAvailable {
			t.Fatalf("hour %d of resource %s should be available, got %v", s.Hour, s.ResourceID, s.Status)
		}
	}
}

func TestParseEmptyCatalog(t *testing.T) {
	slots := Parse(nil, nil, date(2025, time.June, 7), at(2025, time.June, 1, 12))
	if slots == nil {
		t.Fatal("expected non-nil result")
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty result, got %d slots", len(slots))
	}
}

func TestParseEmitsResourceThenHourOrder(t *testing.T) {
	ids := []string{"b", "a"}
	slots := Parse(nil, ids, date(2025, time.June, 7), at(2025, time.June, 1, 12))

	if slots[0].ResourceID != "b" || slots[0].Hour != 8 {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	last := slots[len(slots)-1]
	if last.ResourceID != "a" || last.Hour != 23 {
		t.Fatalf("unexpected last slot: %+v", last)
	}
}

func TestResolveSeatNames(t *testing.T) {
	slots := []model.Slot{{ResourceID: "1", Hour: 8}, {ResourceID: "2", Hour: 8}}
	ResolveSeatNames(slots, map[string]string{"1": "Seat 1"})
	if slots[0].SeatName != "Seat 1" {
		t.Fatalf("expected resolved name, got %q", slots[0].SeatName)
	}
	if slots[1].SeatName != "2" {
		t.Fatalf("expected resource id fallback, got %q", slots[1].SeatName)
	}
}
