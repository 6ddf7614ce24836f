package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/library-seat-availability/internal/availability"
    "github.com/iliyamo/library-seat-availability/internal/feed"
    "github.com/iliyamo/library-seat-availability/internal/middleware"
    "github.com/iliyamo/library-seat-availability/internal/model"
    "github.com/iliyamo/library-seat-availability/internal/queue"
    "github.com/iliyamo/library-seat-availability/internal/repository"
    "github.com/iliyamo/library-seat-availability/internal/selection"
    queue_publisher "github.com/iliyamo/library-seat-availability/internal/service"
    "github.com/iliyamo/library-seat-availability/internal/utils"
)

// SpaceCatalog is the catalog lookup the availability handler depends on.
// *repository.SpaceRepo satisfies it.
type SpaceCatalog interface {
    GetByID(ctx context.Context, id uint64) (*model.StudySpace, error)
}

// AvailabilityHandler serves the seat×hour availability grid.  It fetches
// the raw reservation records from the feed, runs them through the
// availability engine and binds the result to the caller's session so
// subsequent selection operations are scoped to exactly this query.
//
// "now" is captured once per request and passed through the whole
// pipeline, so every derived value (past hours, availableNow, sort
// options) agrees on the current instant.
type AvailabilityHandler struct {
    Spaces     SpaceCatalog     // study-space catalog
    Feed       *feed.Client     // upstream reservation feed
    Selections *selection.Store // per-session selection state
    Window     availability.HourWindow
    Now        func() time.Time
    // Publish sends the analytics event after a successful query; nil
    // disables publishing.  Decoupled as a field so tests run without a
    // broker.
    Publish func(context.Context, queue.AvailabilityQueriedEvent) error
}

// NewAvailabilityHandler constructs an AvailabilityHandler wired to the
// production publisher.  All dependencies must be non-nil.
func NewAvailabilityHandler(spaces SpaceCatalog, feedClient *feed.Client, selections *selection.Store, window availability.HourWindow) *AvailabilityHandler {
    if spaces == nil || feedClient == nil || selections == nil {
        panic("nil dependency passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{
        Spaces:     spaces,
        Feed:       feedClient,
        Selections: selections,
        Window:     window,
        Now:        time.Now,
        Publish:    queue_publisher.PublishAvailabilityQueried,
    }
}

// GetAvailability handles GET /v1/spaces/:id/availability?date=YYYY-MM-DD&sort=<strategy>.
// The caller's user number comes from the X-User-Number header (or the
// uid query parameter) and must be well-formed before anything is sent
// upstream.  On success the response carries the sorted slot grid, the
// per-seat metrics, the sort options that may be offered for this date,
// and a query token scoping the session's selection to this result.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
    }

    rawUID := c.Request().Header.Get(middleware.HeaderUserNumber)
    if rawUID == "" {
        rawUID = c.QueryParam("uid")
    }
    uid, err := utils.NormalizeUserNumber(rawUID)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user number: expected one letter followed by seven digits"})
    }

    date, err := parseDate(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }

    strategy, err := availability.ParseStrategy(c.QueryParam("sort"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sort strategy"})
    }

    ctx := c.Request().Context()
    space, err := h.Spaces.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrSpaceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "study space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(space.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "study space has no seats"})
    }

    now := h.Now()
    resourceIDs := space.ResourceIDs()

    // the token is reserved before the feed round-trip so that when two
    // queries for one session are in flight, only the later-initiated one
    // may install its result, whatever order the responses arrive in
    sessionID := middleware.SessionID(c)
    token := h.Selections.Reserve(sessionID)

    records, err := h.Feed.Reservations(ctx, resourceIDs, date, uid)
    if err != nil {
        if errors.Is(err, feed.ErrUserRejected) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        var fe *feed.FetchError
        if errors.As(err, &fe) {
            // surfaced verbatim for display and manual retry; never retried here
            return c.JSON(http.StatusBadGateway, echo.Map{"error": fe.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
    }

    slots := availability.ParseWindow(records, resourceIDs, date, now, h.Window)
    availability.ResolveSeatNames(slots, space.SeatNames())

    sorted := availability.Sort(slots, strategy, now)
    seats := availability.Group(sorted, now)
    options := availability.SortOptions(date, now, slots)

    installErr := h.Selections.Install(sessionID, token, selection.Snapshot{
        SpaceID:  space.ID,
        SpacePID: space.PID,
        Date:     date,
        Slots:    sorted,
    })
    if installErr != nil {
        // a newer query for this session was started while this one was
        // waiting on the feed; its result is discarded, never installed
        return c.JSON(http.StatusConflict, echo.Map{"error": "superseded by a newer availability query"})
    }

    if h.Publish != nil {
        ev := queue.AvailabilityQueriedEvent{
            SpaceID:      space.ID,
            BuildingName: space.BuildingName,
            SpaceName:    space.SpaceName,
            Date:         date.Format(dateLayout),
            SeatCount:    len(seats),
            QueriedAt:    now.UTC().Format(time.RFC3339),
        }
        for _, g := range seats {
            if g.AvailableCount > 0 {
                ev.AvailableSeats++
                ev.AvailableSlots += g.AvailableCount
            }
        }
        go func() { _ = h.Publish(context.Background(), ev) }()
    }

    return c.JSON(http.StatusOK, echo.Map{
        "space": echo.Map{
            "id":            space.ID,
            "building_name": space.BuildingName,
            "space_name":    space.SpaceName,
        },
        "date":         date.Format(dateLayout),
        "sort":         strategy,
        "sort_options": options,
        "query_token":  token,
        "seats":        seats,
        "slots":        sorted,
    })
}
