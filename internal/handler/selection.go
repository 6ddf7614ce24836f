package handler

import (
    "errors"
    "net/http"
    "sort"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/library-seat-availability/internal/booking"
    "github.com/iliyamo/library-seat-availability/internal/middleware"
    "github.com/iliyamo/library-seat-availability/internal/selection"
)

// SelectionHandler exposes the slot-selection operations.  All routes are
// scoped by session (X-Session-ID header) and by the query token of the
// availability snapshot the selection belongs to; an operation carrying
// the token of a replaced query is rejected so the UI notices it is
// working on stale data.
type SelectionHandler struct {
    Store *selection.Store
    Now   func() time.Time
}

// NewSelectionHandler constructs a SelectionHandler.
func NewSelectionHandler(store *selection.Store) *SelectionHandler {
    if store == nil {
        panic("nil store passed to NewSelectionHandler")
    }
    return &SelectionHandler{Store: store, Now: time.Now}
}

// selectionError maps store sentinels to HTTP responses.
func selectionError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, selection.ErrStaleQuery):
        return c.JSON(http.StatusConflict, echo.Map{"error": "availability changed, reload the grid"})
    case errors.Is(err, selection.ErrNoQuery):
        return c.JSON(http.StatusConflict, echo.Map{"error": "no availability loaded for this session"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "selection update failed"})
    }
}

// queryToken reads the snapshot token from the query string or, for
// requests with a body, from the bound payload value.
func queryToken(c echo.Context, bodyToken string) string {
    if bodyToken != "" {
        return bodyToken
    }
    return c.QueryParam("query_token")
}

// Click handles POST /v1/selection/click.  It applies the compound click
// rule of the tracker: non-available slots and hours held by another seat
// are ignored, everything else toggles.  The response reports the
// resulting state for the clicked cell plus the hours now blocked.
func (h *SelectionHandler) Click(c echo.Context) error {
    var body struct {
        QueryToken string `json:"query_token"`
        ResourceID string `json:"resource_id"`
        Hour       int    `json:"hour"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.ResourceID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "resource_id is required"})
    }

    var selected bool
    var blocked []int
    var total int
    err := h.Store.Do(middleware.SessionID(c), queryToken(c, body.QueryToken), func(tr *selection.Tracker, snap *selection.Snapshot) error {
        slot, ok := snap.Slot(selection.Key{ResourceID: body.ResourceID, Hour: body.Hour})
        if !ok {
            return echo.NewHTTPError(http.StatusNotFound, "unknown slot")
        }
        tr.Click(slot)
        selected = tr.IsSelected(slot)
        blocked = blockedHours(tr, snap)
        total = tr.Len()
        return nil
    })
    if err != nil {
        var he *echo.HTTPError
        if errors.As(err, &he) {
            return c.JSON(he.Code, echo.Map{"error": he.Message})
        }
        return selectionError(c, err)
    }

    return c.JSON(http.StatusOK, echo.Map{
        "selected":      selected,
        "blocked_hours": blocked,
        "total_hours":   total,
    })
}

// ClearHour handles POST /v1/selection/hour/:hour/clear.  It deselects
// the hour across every seat, mirroring a click on the grid's hour
// header.
func (h *SelectionHandler) ClearHour(c echo.Context) error {
    hour, err := strconv.Atoi(c.Param("hour"))
    if err != nil || hour < 0 || hour > 23 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hour"})
    }

    var blocked []int
    var total int
    doErr := h.Store.Do(middleware.SessionID(c), queryToken(c, ""), func(tr *selection.Tracker, snap *selection.Snapshot) error {
        tr.DeselectHour(hour)
        blocked = blockedHours(tr, snap)
        total = tr.Len()
        return nil
    })
    if doErr != nil {
        return selectionError(c, doErr)
    }
    return c.JSON(http.StatusOK, echo.Map{"blocked_hours": blocked, "total_hours": total})
}

// Clear handles DELETE /v1/selection.  It drops the session's snapshot
// and selection entirely, so no token is required: clearing can never act
// on the wrong data.
func (h *SelectionHandler) Clear(c echo.Context) error {
    h.Store.Drop(middleware.SessionID(c))
    return c.NoContent(http.StatusNoContent)
}

// rangeLinks is one coalesced time range together with its outbound deep
// links into the reservation system.
type rangeLinks struct {
    ResourceID  string `json:"resource_id"`
    SeatName    string `json:"seat_name"`
    Start       int    `json:"start"`
    End         int    `json:"end"`
    BookingLink string `json:"booking_link"`
    CheckInLink string `json:"check_in_link"`
    SearchLink  string `json:"search_link,omitempty"`
}

// Get handles GET /v1/selection?query_token=...  It derives the coalesced
// time ranges from the current selection and attaches the booking,
// check-in and legacy search links for each range.  Ranges are recomputed
// from the snapshot on every call, so they can never go stale relative to
// the selection.
func (h *SelectionHandler) Get(c echo.Context) error {
    var summary selection.Summary
    var ranges []rangeLinks
    var reservationOpen bool
    err := h.Store.Do(middleware.SessionID(c), queryToken(c, ""), func(tr *selection.Tracker, snap *selection.Snapshot) error {
        summary = tr.Ranges(snap.Slots)
        ranges = make([]rangeLinks, 0, len(summary.Ranges))
        for _, r := range summary.Ranges {
            endHour := r.End
            if endHour >= 24 {
                // a range ending at midnight is addressed as hour 0 of the next day
                endHour = 0
            }
            rl := rangeLinks{
                ResourceID:  r.ResourceID,
                SeatName:    r.SeatName,
                Start:       r.Start,
                End:         r.End,
                BookingLink: booking.BookingLink(r.ResourceID, snap.Date, r.Start, endHour),
                CheckInLink: booking.CheckInLink(r.ResourceID),
            }
            if snap.SpacePID != 0 {
                rl.SearchLink = booking.SearchLink(snap.SpacePID, r.ResourceID, snap.Date)
            }
            ranges = append(ranges, rl)
        }
        reservationOpen = booking.ReservationOpen(snap.Date, h.Now())
        return nil
    })
    if err != nil {
        return selectionError(c, err)
    }

    return c.JSON(http.StatusOK, echo.Map{
        "ranges":           ranges,
        "total_hours":      summary.TotalHours,
        "has_long_session": summary.HasLongSession,
        "reservation_open": reservationOpen,
    })
}

// blockedHours lists the hours of the snapshot window that currently hold
// a selection, ascending.
func blockedHours(tr *selection.Tracker, snap *selection.Snapshot) []int {
    seen := make(map[int]bool)
    hours := make([]int, 0)
    for _, s := range snap.Slots {
        if !seen[s.Hour] && tr.IsHourBlocked(s.Hour) {
            seen[s.Hour] = true
            hours = append(hours, s.Hour)
        }
    }
    sort.Ints(hours)
    return hours
}
