package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// Recognised inspection types per OSHA 1910.179 and ASME B30.2.
var validInspectionTypes = map[string]bool{
	"Frequent": true,
	"Periodic": true,
	"Initial":  true,
	"Special":  true,
}

// InspectionService manages inspections and their attached media.
type InspectionService struct {
	inspections persistence.InspectionRepository
	assets      persistence.AssetRepository
	media       persistence.MediaRepository
}

// NewInspectionService creates an inspection service.
func NewInspectionService(inspections persistence.InspectionRepository, assets persistence.AssetRepository, media persistence.MediaRepository) *InspectionService {
	return &InspectionService{
		inspections: inspections,
		assets:      assets,
		media:       media,
	}
}

// ScheduleInspection validates and stores a new inspection.
func (s *InspectionService) ScheduleInspection(ctx context.Context, inspection persistence.Inspection) (persistence.Inspection, error) {
	if !validInspectionTypes[inspection.InspectionType] {
		return persistence.Inspection{}, fmt.Errorf("%w: unknown inspection type %q", ErrInvalidInput, inspection.InspectionType)
	}
	if inspection.ComplianceStandard == "" {
		return persistence.Inspection{}, fmt.Errorf("%w: compliance standard is required", ErrInvalidInput)
	}

	if _, err := s.assets.GetAsset(ctx, inspection.AssetID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Inspection{}, fmt.Errorf("%w: asset %d", ErrNotFound, inspection.AssetID)
		}
		return persistence.Inspection{}, err
	}

	return s.inspections.CreateInspection(ctx, inspection)
}

// CompleteInspection marks an inspection completed with its overall
// condition and notes.
func (s *InspectionService) CompleteInspection(ctx context.Context, id int64, condition string, notes *string) (persistence.Inspection, error) {
	inspection, err := s.inspections.GetInspection(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Inspection{}, fmt.Errorf("%w: inspection %d", ErrNotFound, id)
		}
		return persistence.Inspection{}, err
	}

	if inspection.Status == persistence.InspectionStatusCompleted {
		return persistence.Inspection{}, fmt.Errorf("%w: inspection %d is already completed", ErrConflict, id)
	}
	if inspection.Status == persistence.InspectionStatusCancelled {
		return persistence.Inspection{}, fmt.Errorf("%w: inspection %d was cancelled", ErrConflict, id)
	}

	now := time.Now().UTC()
	inspection.Status = persistence.InspectionStatusCompleted
	inspection.ActualDate = &now
	inspection.OverallCondition = &condition
	if notes != nil {
		inspection.Notes = notes
	}
	return s.inspections.UpdateInspection(ctx, inspection)
}

// GetInspection retrieves an inspection by ID.
func (s *InspectionService) GetInspection(ctx context.Context, id int64) (persistence.Inspection, error) {
	inspection, err := s.inspections.GetInspection(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.Inspection{}, fmt.Errorf("%w: inspection %d", ErrNotFound, id)
	}
	return inspection, err
}

// ListInspections returns inspections matching the filter.
func (s *InspectionService) ListInspections(ctx context.Context, filter persistence.InspectionFilter) ([]persistence.Inspection, error) {
	return s.inspections.ListInspections(ctx, filter)
}

// AttachMedia records metadata for a file attached to an inspection.
func (s *InspectionService) AttachMedia(ctx context.Context, file persistence.MediaFile) (persistence.MediaFile, error) {
	if file.FileName == "" || file.FilePath == "" {
		return persistence.MediaFile{}, fmt.Errorf("%w: file name and path are required", ErrInvalidInput)
	}
	if file.InspectionID != nil {
		if _, err := s.inspections.GetInspection(ctx, *file.InspectionID); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				return persistence.MediaFile{}, fmt.Errorf("%w: inspection %d", ErrNotFound, *file.InspectionID)
			}
			return persistence.MediaFile{}, err
		}
	}
	return s.media.CreateMediaFile(ctx, file)
}

// ListMedia returns media attached to an inspection.
func (s *InspectionService) ListMedia(ctx context.Context, inspectionID int64) ([]persistence.MediaFile, error) {
	return s.media.ListMediaForInspection(ctx, inspectionID)
}
