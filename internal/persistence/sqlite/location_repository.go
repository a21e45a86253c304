package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// LocationRepository implements persistence.LocationRepository over SQLite.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a location repository bound to the given
// handle.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, name, address, latitude, longitude, description, created_by, created_at, updated_at`

// CreateLocation inserts a new location.
func (r *LocationRepository) CreateLocation(ctx context.Context, location persistence.Location) (persistence.Location, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (name, address, latitude, longitude, description, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		location.Name, location.Address, location.Latitude, location.Longitude,
		location.Description, location.CreatedBy, now, now,
	)
	if err != nil {
		return persistence.Location{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Location{}, mapError(err)
	}

	location.ID = id
	location.CreatedAt = now
	location.UpdatedAt = now
	return location, nil
}

// GetLocation retrieves a location by ID.
func (r *LocationRepository) GetLocation(ctx context.Context, id int64) (persistence.Location, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	return scanLocation(row)
}

// ListLocations returns every location ordered by name.
func (r *LocationRepository) ListLocations(ctx context.Context) ([]persistence.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var locations []persistence.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, mapError(rows.Err())
}

// DeleteLocation removes a location. Fails with a foreign key violation if
// assets still reference it.
func (r *LocationRepository) DeleteLocation(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanLocation(row rowScanner) (persistence.Location, error) {
	var location persistence.Location
	err := row.Scan(
		&location.ID, &location.Name, &location.Address,
		&location.Latitude, &location.Longitude, &location.Description,
		&location.CreatedBy, &location.CreatedAt, &location.UpdatedAt,
	)
	if err != nil {
		return persistence.Location{}, mapError(err)
	}
	return location, nil
}
