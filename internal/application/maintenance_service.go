package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

var validMaintenanceTypes = map[string]bool{
	"Preventive": true,
	"Corrective": true,
	"Emergency":  true,
	"Overhaul":   true,
}

// MaintenanceService manages maintenance records for assets.
type MaintenanceService struct {
	records persistence.MaintenanceRepository
	assets  persistence.AssetRepository
}

// NewMaintenanceService creates a maintenance service.
func NewMaintenanceService(records persistence.MaintenanceRepository, assets persistence.AssetRepository) *MaintenanceService {
	return &MaintenanceService{records: records, assets: assets}
}

// ScheduleMaintenance validates and stores a new maintenance record.
func (s *MaintenanceService) ScheduleMaintenance(ctx context.Context, record persistence.MaintenanceRecord) (persistence.MaintenanceRecord, error) {
	if !validMaintenanceTypes[record.MaintenanceType] {
		return persistence.MaintenanceRecord{}, fmt.Errorf("%w: unknown maintenance type %q", ErrInvalidInput, record.MaintenanceType)
	}
	if record.PerformedBy == "" || record.Description == "" {
		return persistence.MaintenanceRecord{}, fmt.Errorf("%w: performed_by and description are required", ErrInvalidInput)
	}

	if _, err := s.assets.GetAsset(ctx, record.AssetID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.MaintenanceRecord{}, fmt.Errorf("%w: asset %d", ErrNotFound, record.AssetID)
		}
		return persistence.MaintenanceRecord{}, err
	}

	return s.records.CreateRecord(ctx, record)
}

// CompleteMaintenance marks a record completed with an optional cost.
func (s *MaintenanceService) CompleteMaintenance(ctx context.Context, id int64, cost *float64) (persistence.MaintenanceRecord, error) {
	record, err := s.records.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.MaintenanceRecord{}, fmt.Errorf("%w: maintenance record %d", ErrNotFound, id)
		}
		return persistence.MaintenanceRecord{}, err
	}

	if record.Status == persistence.MaintenanceStatusCompleted {
		return persistence.MaintenanceRecord{}, fmt.Errorf("%w: maintenance record %d is already completed", ErrConflict, id)
	}

	now := time.Now().UTC()
	record.Status = persistence.MaintenanceStatusCompleted
	record.CompletedDate = &now
	if cost != nil {
		record.Cost = cost
	}
	return s.records.UpdateRecord(ctx, record)
}

// GetRecord retrieves a maintenance record by ID.
func (s *MaintenanceService) GetRecord(ctx context.Context, id int64) (persistence.MaintenanceRecord, error) {
	record, err := s.records.GetRecord(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.MaintenanceRecord{}, fmt.Errorf("%w: maintenance record %d", ErrNotFound, id)
	}
	return record, err
}

// History returns an asset's maintenance records.
func (s *MaintenanceService) History(ctx context.Context, assetID int64) ([]persistence.MaintenanceRecord, error) {
	if _, err := s.assets.GetAsset(ctx, assetID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, fmt.Errorf("%w: asset %d", ErrNotFound, assetID)
		}
		return nil, err
	}
	return s.records.ListRecordsForAsset(ctx, assetID)
}
