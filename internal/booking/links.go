// Package booking builds the outbound deep links into the KURT reservation
// system.  The query parameter names, timestamp shapes and hosts are a
// fixed contract with that system and must not be reformatted.  No network
// call is ever made here; the engine only computes display state and links,
// the user performs the actual booking in KURT.
package booking

import (
    "fmt"
    "net/url"
    "time"
)

const (
    reservationBaseURL = "https://www-sso.groupware.kuleuven.be/sites/KURT/Pages/NEW-Reservation.aspx"
    searchBaseURL      = "https://www-sso.groupware.kuleuven.be/sites/KURT/Pages/default.aspx"
    checkInBaseURL     = "https://kuleuven.be/kurtqr"
)

// stampLayout is the timestamp shape KURT expects; minutes and seconds are
// always zero.
const stampLayout = "2006-01-02T15:04:05"

// BookingLink returns the reservation page URL for booking one seat over
// the half-open hour range [startHour, endHour) on the given date.  An
// endHour of 0 means the range runs until midnight, so the end timestamp
// rolls to 00:00 of the next calendar day.
func BookingLink(resourceID string, date time.Time, startHour, endHour int) string {
    start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, date.Location())
    endDay := date
    if endHour == 0 {
        endDay = date.AddDate(0, 0, 1)
    }
    end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), endHour, 0, 0, 0, date.Location())

    return fmt.Sprintf("%s?StartDateTime=%s&EndDateTime=%s&ID=%s&type=b",
        reservationBaseURL, start.Format(stampLayout), end.Format(stampLayout), resourceID)
}

// CheckInLink returns the QR check-in URL for a seat.  Check-in is not
// bound to a time range, only to the resource.
func CheckInLink(resourceID string) string {
    return fmt.Sprintf("%s?id=%s", checkInBaseURL, resourceID)
}

// SearchLink returns the legacy per-library KURT search page pre-filtered
// to one seat and day.  The startDate value carries its colons
// percent-encoded, exactly as the reservation system expects.
func SearchLink(pid uint64, resourceID string, date time.Time) string {
    startDate := url.QueryEscape(date.Format("2006-01-02") + "T00:00:00")
    return fmt.Sprintf("%s?pid=%d&showresults=done&resourceid=%s&startDate=%s",
        searchBaseURL, pid, resourceID, startDate)
}

// ReservationOpen reports whether KURT already accepts bookings for the
// target date.  Reservations open rolling: a date becomes bookable once
// its 18:00 opening moment lies within eight days of now.
func ReservationOpen(date, now time.Time) bool {
    opening := time.Date(date.Year(), date.Month(), date.Day(), 18, 0, 0, 0, now.Location())
    return opening.Sub(now) <= 8*24*time.Hour
}
