package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// InspectionRepository implements persistence.InspectionRepository over
// SQLite.
type InspectionRepository struct {
	db *sql.DB
}

// NewInspectionRepository creates an inspection repository bound to the
// given handle.
func NewInspectionRepository(db *sql.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

const inspectionColumns = `id, asset_id, inspector_id, inspection_type, compliance_standard,
	scheduled_date, actual_date, status, overall_condition, notes, created_at, updated_at`

// CreateInspection inserts a new inspection.
func (r *InspectionRepository) CreateInspection(ctx context.Context, inspection persistence.Inspection) (persistence.Inspection, error) {
	if inspection.Status == "" {
		inspection.Status = persistence.InspectionStatusScheduled
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO inspections (asset_id, inspector_id, inspection_type, compliance_standard,
		                          scheduled_date, actual_date, status, overall_condition, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inspection.AssetID, inspection.InspectorID, inspection.InspectionType,
		inspection.ComplianceStandard, inspection.ScheduledDate, inspection.ActualDate,
		inspection.Status, inspection.OverallCondition, inspection.Notes, now, now,
	)
	if err != nil {
		return persistence.Inspection{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Inspection{}, mapError(err)
	}

	inspection.ID = id
	inspection.CreatedAt = now
	inspection.UpdatedAt = now
	return inspection, nil
}

// UpdateInspection updates an inspection's mutable fields.
func (r *InspectionRepository) UpdateInspection(ctx context.Context, inspection persistence.Inspection) (persistence.Inspection, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE inspections
		 SET inspector_id = ?, inspection_type = ?, compliance_standard = ?, scheduled_date = ?,
		     actual_date = ?, status = ?, overall_condition = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		inspection.InspectorID, inspection.InspectionType, inspection.ComplianceStandard,
		inspection.ScheduledDate, inspection.ActualDate, inspection.Status,
		inspection.OverallCondition, inspection.Notes, now, inspection.ID,
	)
	if err != nil {
		return persistence.Inspection{}, mapError(err)
	}
	if err := requireRowAffected(result); err != nil {
		return persistence.Inspection{}, err
	}

	inspection.UpdatedAt = now
	return inspection, nil
}

// GetInspection retrieves an inspection by ID.
func (r *InspectionRepository) GetInspection(ctx context.Context, id int64) (persistence.Inspection, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inspectionColumns+` FROM inspections WHERE id = ?`, id)
	return scanInspection(row)
}

// ListInspections returns inspections matching the filter, newest scheduled
// first.
func (r *InspectionRepository) ListInspections(ctx context.Context, filter persistence.InspectionFilter) ([]persistence.Inspection, error) {
	var conditions []string
	var args []any

	if filter.AssetID != nil {
		conditions = append(conditions, "asset_id = ?")
		args = append(args, *filter.AssetID)
	}
	if filter.InspectorID != nil {
		conditions = append(conditions, "inspector_id = ?")
		args = append(args, *filter.InspectorID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + inspectionColumns + ` FROM inspections`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY scheduled_date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var inspections []persistence.Inspection
	for rows.Next() {
		inspection, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		inspections = append(inspections, inspection)
	}
	return inspections, mapError(rows.Err())
}

// DeleteInspection removes an inspection.
func (r *InspectionRepository) DeleteInspection(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inspections WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanInspection(row rowScanner) (persistence.Inspection, error) {
	var inspection persistence.Inspection
	err := row.Scan(
		&inspection.ID, &inspection.AssetID, &inspection.InspectorID,
		&inspection.InspectionType, &inspection.ComplianceStandard,
		&inspection.ScheduledDate, &inspection.ActualDate, &inspection.Status,
		&inspection.OverallCondition, &inspection.Notes,
		&inspection.CreatedAt, &inspection.UpdatedAt,
	)
	if err != nil {
		return persistence.Inspection{}, mapError(err)
	}
	return inspection, nil
}
