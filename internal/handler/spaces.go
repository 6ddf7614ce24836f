// Package handler exposes the HTTP handlers of the availability API.
// This file serves the study-space catalog and the selectable query
// dates.  Catalog routes carry no user identity: the catalog is the same
// for everyone and safe to cache aggressively.
package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/library-seat-availability/internal/repository"
)

// SpaceHandler serves the study-space catalog.  Now is injected so date
// generation is deterministic in tests; NewSpaceHandler defaults it to
// time.Now.
type SpaceHandler struct {
    Repo *repository.SpaceRepo // access to study spaces and seats
    Now  func() time.Time
}

// NewSpaceHandler constructs a SpaceHandler with the provided repository.
func NewSpaceHandler(repo *repository.SpaceRepo) *SpaceHandler {
    if repo == nil {
        panic("nil repository passed to NewSpaceHandler")
    }
    return &SpaceHandler{Repo: repo, Now: time.Now}
}

// spaceListItem is one space in the grouped catalog response.
type spaceListItem struct {
    ID         uint64 `json:"id"`
    SpaceName  string `json:"space_name"`
    LocationID string `json:"location_id"`
}

// buildingGroup groups a building's spaces for the catalog dropdown.
type buildingGroup struct {
    BuildingName string          `json:"building_name"`
    Spaces       []spaceListItem `json:"spaces"`
}

// GetSpaces handles GET /v1/spaces.  It returns the full catalog grouped
// by building, in building-then-space order.
func (h *SpaceHandler) GetSpaces(c echo.Context) error {
    spaces, err := h.Repo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    groups := make([]buildingGroup, 0)
    for _, s := range spaces {
        item := spaceListItem{ID: s.ID, SpaceName: s.SpaceName, LocationID: s.LocationID}
        if n := len(groups); n > 0 && groups[n-1].BuildingName == s.BuildingName {
            groups[n-1].Spaces = append(groups[n-1].Spaces, item)
            continue
        }
        groups = append(groups, buildingGroup{BuildingName: s.BuildingName, Spaces: []spaceListItem{item}})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": groups})
}

// GetSpace handles GET /v1/spaces/:id.  It returns one study space
// including its seats in catalog order.
func (h *SpaceHandler) GetSpace(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid space id"})
    }
    space, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrSpaceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "study space not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, space)
}

// dateOption is one selectable query date.
type dateOption struct {
    Value string `json:"value"` // YYYY-MM-DD
    Label string `json:"label"` // Today, Tomorrow, or weekday + date
}

// DateOptions returns today plus the next seven days, labelled the way the
// grid presents them.  The reservation system does not accept queries
// further out, so the API does not offer them.
func DateOptions(now time.Time) []dateOption {
    options := make([]dateOption, 0, 8)
    for i := 0; i < 8; i++ {
        day := now.AddDate(0, 0, i)
        var label string
        switch i {
        case 0:
            label = "Today"
        case 1:
            label = "Tomorrow"
        default:
            label = day.Format("Monday, Jan 2")
        }
        options = append(options, dateOption{Value: day.Format(dateLayout), Label: label})
    }
    return options
}

// GetDates handles GET /v1/dates.
func (h *SpaceHandler) GetDates(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"items": DateOptions(h.Now())})
}

// dateLayout is the wire shape of all query dates.
const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD query date in the server's location.
func parseDate(value string) (time.Time, error) {
    return time.ParseInLocation(dateLayout, value, time.Local)
}
