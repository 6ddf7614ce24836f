package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationsBuildsDayWindowQuery(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"uid":            r.URL.Query().Get("uid"),
			"ResourceIDList": r.URL.Query().Get("ResourceIDList"),
			"startdtstring":  r.URL.Query().Get("startdtstring"),
			"enddtstring":    r.URL.Query().Get("enddtstring"),
		}
		w.Write([]byte(`[{"ResourceID":300855,"Startdatetime":"2025-06-07T10:00:00","Status":"B"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	records, err := c.Reservations(context.Background(), []string{"300855", "300856"}, day(2025, time.June, 7), "r0123456")
	if err != nil {
		t.Fatalf("Reservations failed: %v", err)
	}

	if gotQuery["uid"] != "r0123456" {
		t.Fatalf("uid = %q", gotQuery["uid"])
	}
	if gotQuery["ResourceIDList"] != "300855,300856" {
		t.Fatalf("ResourceIDList = %q", gotQuery["ResourceIDList"])
	}
	if gotQuery["startdtstring"] != "2025-06-07T00:00:00" || gotQuery["enddtstring"] != "2025-06-08T00:00:00" {
		t.Fatalf("day window = %q .. %q", gotQuery["startdtstring"], gotQuery["enddtstring"])
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ResourceID != "300855" || rec.Status != "B" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Start.Hour() != 10 {
		t.Fatalf("start hour = %d, expected 10", rec.Start.Hour())
	}
}

func TestReservationsKeepsMalformedTimestampAsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"ResourceID":1,"Startdatetime":"not-a-date","Status":"B"},
			{"ResourceID":2,"Startdatetime":"2025-06-07T09:00:00","Status":"Available"}
		]`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).Reservations(context.Background(), []string{"1", "2"}, day(2025, time.June, 7), "r0123456")
	if err != nil {
		t.Fatalf("Reservations failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("one bad record must not discard the result, got %d records", len(records))
	}
	if !records[0].Start.IsZero() {
		t.Fatal("malformed timestamp should decode to a zero Start")
	}
	if records[1].Occupied() {
		t.Fatal("explicit Available status must not count as occupied")
	}
}

func TestReservationsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Reservations(context.Background(), []string{"1"}, day(2025, time.June, 7), "r0123456")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, expected 502", fe.Status)
	}
}

func TestReservationsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(srv.URL).Reservations(context.Background(), []string{"1"}, day(2025, time.June, 7), "r0123456")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != 0 {
		t.Fatalf("transport failure should carry status 0, got %d", fe.Status)
	}
	if fe.Unwrap() == nil {
		t.Fatal("cause must be preserved")
	}
}

func TestReservationsEmptyResponseMeansRejectedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Reservations(context.Background(), []string{"1"}, day(2025, time.June, 7), "r0123456")
	if !errors.Is(err, ErrUserRejected) {
		t.Fatalf("expected ErrUserRejected, got %v", err)
	}
}

func TestReservationsUndecodablePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	// garbage payload yields zero usable events, which for a non-empty
	// catalog is indistinguishable from a rejected user
	_, err := NewClient(srv.URL).Reservations(context.Background(), []string{"1"}, day(2025, time.June, 7), "r0123456")
	if !errors.Is(err, ErrUserRejected) {
		t.Fatalf("expected ErrUserRejected, got %v", err)
	}
}
