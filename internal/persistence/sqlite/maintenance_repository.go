package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// MaintenanceRepository implements persistence.MaintenanceRepository over
// SQLite.
type MaintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository creates a maintenance repository bound to the
// given handle.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const maintenanceColumns = `id, asset_id, maintenance_type, scheduled_date, completed_date,
	performed_by, description, status, cost, created_at`

// CreateRecord inserts a new maintenance record.
func (r *MaintenanceRepository) CreateRecord(ctx context.Context, record persistence.MaintenanceRecord) (persistence.MaintenanceRecord, error) {
	if record.Status == "" {
		record.Status = persistence.MaintenanceStatusScheduled
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance_records (asset_id, maintenance_type, scheduled_date, completed_date,
		                                  performed_by, description, status, cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.AssetID, record.MaintenanceType, record.ScheduledDate,
		record.CompletedDate, record.PerformedBy, record.Description,
		record.Status, record.Cost, now,
	)
	if err != nil {
		return persistence.MaintenanceRecord{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.MaintenanceRecord{}, mapError(err)
	}

	record.ID = id
	record.CreatedAt = now
	return record, nil
}

// UpdateRecord updates a maintenance record's mutable fields.
func (r *MaintenanceRepository) UpdateRecord(ctx context.Context, record persistence.MaintenanceRecord) (persistence.MaintenanceRecord, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE maintenance_records
		 SET maintenance_type = ?, scheduled_date = ?, completed_date = ?,
		     performed_by = ?, description = ?, status = ?, cost = ?
		 WHERE id = ?`,
		record.MaintenanceType, record.ScheduledDate, record.CompletedDate,
		record.PerformedBy, record.Description, record.Status, record.Cost,
		record.ID,
	)
	if err != nil {
		return persistence.MaintenanceRecord{}, mapError(err)
	}
	if err := requireRowAffected(result); err != nil {
		return persistence.MaintenanceRecord{}, err
	}
	return record, nil
}

// GetRecord retrieves a maintenance record by ID.
func (r *MaintenanceRepository) GetRecord(ctx context.Context, id int64) (persistence.MaintenanceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = ?`, id)
	return scanMaintenanceRecord(row)
}

// ListRecordsForAsset returns an asset's maintenance history, newest
// scheduled first.
func (r *MaintenanceRepository) ListRecordsForAsset(ctx context.Context, assetID int64) ([]persistence.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_records
		 WHERE asset_id = ? ORDER BY scheduled_date DESC, id DESC`, assetID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []persistence.MaintenanceRecord
	for rows.Next() {
		record, err := scanMaintenanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, mapError(rows.Err())
}

func scanMaintenanceRecord(row rowScanner) (persistence.MaintenanceRecord, error) {
	var record persistence.MaintenanceRecord
	err := row.Scan(
		&record.ID, &record.AssetID, &record.MaintenanceType,
		&record.ScheduledDate, &record.CompletedDate, &record.PerformedBy,
		&record.Description, &record.Status, &record.Cost, &record.CreatedAt,
	)
	if err != nil {
		return persistence.MaintenanceRecord{}, mapError(err)
	}
	return record, nil
}
