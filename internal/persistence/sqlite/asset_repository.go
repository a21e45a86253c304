package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// AssetRepository implements persistence.AssetRepository over SQLite.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates an asset repository bound to the given handle.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, asset_number, asset_name, asset_type, manufacturer, model, serial_number,
	capacity, capacity_unit, location_id, status, description, created_by, created_at, updated_at`

// CreateAsset inserts a new asset.
func (r *AssetRepository) CreateAsset(ctx context.Context, asset persistence.Asset) (persistence.Asset, error) {
	if asset.Status == "" {
		asset.Status = persistence.AssetStatusActive
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (asset_number, asset_name, asset_type, manufacturer, model, serial_number,
		                     capacity, capacity_unit, location_id, status, description, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.AssetNumber, asset.AssetName, asset.AssetType,
		asset.Manufacturer, asset.Model, asset.SerialNumber,
		asset.Capacity, asset.CapacityUnit, asset.LocationID,
		asset.Status, asset.Description, asset.CreatedBy, now, now,
	)
	if err != nil {
		return persistence.Asset{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Asset{}, mapError(err)
	}

	asset.ID = id
	asset.CreatedAt = now
	asset.UpdatedAt = now
	return asset, nil
}

// UpdateAsset updates an asset's mutable fields.
func (r *AssetRepository) UpdateAsset(ctx context.Context, asset persistence.Asset) (persistence.Asset, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE assets
		 SET asset_name = ?, asset_type = ?, manufacturer = ?, model = ?, serial_number = ?,
		     capacity = ?, capacity_unit = ?, location_id = ?, status = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		asset.AssetName, asset.AssetType, asset.Manufacturer, asset.Model,
		asset.SerialNumber, asset.Capacity, asset.CapacityUnit,
		asset.LocationID, asset.Status, asset.Description, now, asset.ID,
	)
	if err != nil {
		return persistence.Asset{}, mapError(err)
	}
	if err := requireRowAffected(result); err != nil {
		return persistence.Asset{}, err
	}

	asset.UpdatedAt = now
	return asset, nil
}

// GetAsset retrieves an asset by ID.
func (r *AssetRepository) GetAsset(ctx context.Context, id int64) (persistence.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	return scanAsset(row)
}

// GetAssetByNumber retrieves an asset by its unique asset number.
func (r *AssetRepository) GetAssetByNumber(ctx context.Context, assetNumber string) (persistence.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE asset_number = ?`, assetNumber)
	return scanAsset(row)
}

// ListAssets returns assets matching the filter, ordered by asset number.
func (r *AssetRepository) ListAssets(ctx context.Context, filter persistence.AssetFilter) ([]persistence.Asset, error) {
	var conditions []string
	var args []any

	if filter.LocationID != nil {
		conditions = append(conditions, "location_id = ?")
		args = append(args, *filter.LocationID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY asset_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var assets []persistence.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, mapError(rows.Err())
}

// DeleteAsset removes an asset. Fails with a foreign key violation if
// inspections or maintenance records still reference it.
func (r *AssetRepository) DeleteAsset(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanAsset(row rowScanner) (persistence.Asset, error) {
	var asset persistence.Asset
	err := row.Scan(
		&asset.ID, &asset.AssetNumber, &asset.AssetName, &asset.AssetType,
		&asset.Manufacturer, &asset.Model, &asset.SerialNumber,
		&asset.Capacity, &asset.CapacityUnit, &asset.LocationID,
		&asset.Status, &asset.Description, &asset.CreatedBy,
		&asset.CreatedAt, &asset.UpdatedAt,
	)
	if err != nil {
		return persistence.Asset{}, mapError(err)
	}
	return asset, nil
}
