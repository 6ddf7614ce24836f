package handler

import (
    "testing"
    "time"
)

func TestDateOptionsCoversEightDays(t *testing.T) {
    now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

    options := DateOptions(now)
    if len(options) != 8 {
        t.Fatalf("expected 8 date options, got %d", len(options))
    }
    if options[0].Value != "2025-03-14" || options[0].Label != "Today" {
        t.Fatalf("unexpected first option: %+v", options[0])
    }
    if options[1].Value != "2025-03-15" || options[1].Label != "Tomorrow" {
        t.Fatalf("unexpected second option: %+v", options[1])
    }
    if options[7].Value != "2025-03-21" {
        t.Fatalf("unexpected last option: %+v", options[7])
    }
    if options[2].Label != "Sunday, Mar 16" {
        t.Fatalf("unexpected weekday label: %q", options[2].Label)
    }
}

func TestDateOptionsCrossesMonthBoundary(t *testing.T) {
    now := time.Date(2025, time.January, 30, 23, 0, 0, 0, time.UTC)

    options := DateOptions(now)
    if options[2].Value != "2025-02-01" {
        t.Fatalf("expected rollover into February, got %q", options[2].Value)
    }
}

func TestParseDate(t *testing.T) {
    d, err := parseDate("2025-03-14")
    if err != nil {
        t.Fatalf("parseDate returned error: %v", err)
    }
    if d.Year() != 2025 || d.Month() != time.March || d.Day() != 14 {
        t.Fatalf("unexpected date: %v", d)
    }

    if _, err := parseDate("14-03-2025"); err == nil {
        t.Fatalf("expected error for wrong layout")
    }
    if _, err := parseDate(""); err == nil {
        t.Fatalf("expected error for empty date")
    }
}
