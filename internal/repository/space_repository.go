// This file defines repository methods for the study-space catalog.  The
// catalog is read-only at runtime: spaces and their seats are loaded from
// the database and handed to the availability engine as arguments, the
// engine itself never fetches anything.
package repository

import (
    "context"      // context allows passing deadlines and cancellation signals to DB operations
    "database/sql" // sql provides generic database operations and drivers
    "errors"       // errors is used for sentinel comparisons
    "strings"

    "github.com/iliyamo/library-seat-availability/internal/model"
)

// SpaceRepo encapsulates all database queries related to study spaces and
// their seats.  It depends on a sql.DB connection configured elsewhere so
// the database can be injected in tests and at startup.
type SpaceRepo struct {
    db *sql.DB // db is the underlying database connection pool
}

// NewSpaceRepo constructs a SpaceRepo with the provided DB handle.
func NewSpaceRepo(db *sql.DB) *SpaceRepo {
    return &SpaceRepo{db: db}
}

// ListAll returns every study space in the catalog without its seats,
// ordered by building then space name so handlers can group by building
// without re-sorting.
func (r *SpaceRepo) ListAll(ctx context.Context) ([]model.StudySpace, error) {
    const q = `SELECT id, building_name, space_name, location_id, pid
               FROM study_spaces
               ORDER BY building_name, space_name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    spaces := make([]model.StudySpace, 0)
    for rows.Next() {
        var s model.StudySpace
        if err := rows.Scan(&s.ID, &s.BuildingName, &s.SpaceName, &s.LocationID, &s.PID); err != nil {
            return nil, err
        }
        spaces = append(spaces, s)
    }
    return spaces, rows.Err()
}

// GetByID fetches one study space including its seats in catalog order.
// Catalog order (seats.id ascending) defines the default seat order of the
// availability grid.  ErrSpaceNotFound is returned when no row matches.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (*model.StudySpace, error) {
    const q = `SELECT id, building_name, space_name, location_id, pid
               FROM study_spaces WHERE id = ?`
    var s model.StudySpace
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.BuildingName, &s.SpaceName, &s.LocationID, &s.PID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrSpaceNotFound
        }
        return nil, err
    }

    seats, err := r.SeatsBySpace(ctx, id)
    if err != nil {
        return nil, err
    }
    s.Seats = seats
    return &s, nil
}

// SeatsBySpace returns the seats of a space in catalog order.
func (r *SpaceRepo) SeatsBySpace(ctx context.Context, spaceID uint64) ([]model.Seat, error) {
    const q = `SELECT resource_id, name FROM seats WHERE space_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, spaceID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    seats := make([]model.Seat, 0)
    for rows.Next() {
        var seat model.Seat
        if err := rows.Scan(&seat.ResourceID, &seat.Name); err != nil {
            return nil, err
        }
        seat.Name = strings.TrimSpace(seat.Name)
        seats = append(seats, seat)
    }
    return seats, rows.Err()
}
