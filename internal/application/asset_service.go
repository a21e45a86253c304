package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// AssetService manages locations and the assets installed at them.
type AssetService struct {
	assets    persistence.AssetRepository
	locations persistence.LocationRepository
}

// NewAssetService creates an asset service.
func NewAssetService(assets persistence.AssetRepository, locations persistence.LocationRepository) *AssetService {
	return &AssetService{assets: assets, locations: locations}
}

// CreateLocation validates and stores a new site.
func (s *AssetService) CreateLocation(ctx context.Context, location persistence.Location) (persistence.Location, error) {
	if location.Name == "" {
		return persistence.Location{}, fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}
	return s.locations.CreateLocation(ctx, location)
}

// GetLocation retrieves a site by ID.
func (s *AssetService) GetLocation(ctx context.Context, id int64) (persistence.Location, error) {
	location, err := s.locations.GetLocation(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.Location{}, fmt.Errorf("%w: location %d", ErrNotFound, id)
	}
	return location, err
}

// ListLocations returns all sites.
func (s *AssetService) ListLocations(ctx context.Context) ([]persistence.Location, error) {
	return s.locations.ListLocations(ctx)
}

// DeleteLocation removes a site that has no assets.
func (s *AssetService) DeleteLocation(ctx context.Context, id int64) error {
	err := s.locations.DeleteLocation(ctx, id)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return fmt.Errorf("%w: location %d", ErrNotFound, id)
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return fmt.Errorf("%w: location %d still has assets", ErrConflict, id)
	}
	return err
}

// CreateAsset validates and stores a new asset.
func (s *AssetService) CreateAsset(ctx context.Context, asset persistence.Asset) (persistence.Asset, error) {
	if asset.AssetNumber == "" || asset.AssetName == "" || asset.AssetType == "" {
		return persistence.Asset{}, fmt.Errorf("%w: asset number, name, and type are required", ErrInvalidInput)
	}
	if asset.LocationID == 0 {
		return persistence.Asset{}, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if _, err := s.locations.GetLocation(ctx, asset.LocationID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Asset{}, fmt.Errorf("%w: location %d", ErrNotFound, asset.LocationID)
		}
		return persistence.Asset{}, err
	}

	created, err := s.assets.CreateAsset(ctx, asset)
	if errors.Is(err, persistence.ErrDuplicate) {
		return persistence.Asset{}, fmt.Errorf("%w: asset number %q already exists", ErrConflict, asset.AssetNumber)
	}
	return created, err
}

// UpdateAsset updates an existing asset.
func (s *AssetService) UpdateAsset(ctx context.Context, asset persistence.Asset) (persistence.Asset, error) {
	if asset.ID == 0 {
		return persistence.Asset{}, fmt.Errorf("%w: asset ID is required", ErrInvalidInput)
	}
	updated, err := s.assets.UpdateAsset(ctx, asset)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.Asset{}, fmt.Errorf("%w: asset %d", ErrNotFound, asset.ID)
	}
	return updated, err
}

// GetAsset retrieves an asset by ID.
func (s *AssetService) GetAsset(ctx context.Context, id int64) (persistence.Asset, error) {
	asset, err := s.assets.GetAsset(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.Asset{}, fmt.Errorf("%w: asset %d", ErrNotFound, id)
	}
	return asset, err
}

// GetAssetByNumber retrieves an asset by its unique number.
func (s *AssetService) GetAssetByNumber(ctx context.Context, assetNumber string) (persistence.Asset, error) {
	asset, err := s.assets.GetAssetByNumber(ctx, assetNumber)
	if errors.Is(err, persistence.ErrNotFound) {
		return persistence.Asset{}, fmt.Errorf("%w: asset %q", ErrNotFound, assetNumber)
	}
	return asset, err
}

// ListAssets returns assets matching the filter.
func (s *AssetService) ListAssets(ctx context.Context, filter persistence.AssetFilter) ([]persistence.Asset, error) {
	return s.assets.ListAssets(ctx, filter)
}

// DeleteAsset removes an asset that has no inspections or maintenance
// history.
func (s *AssetService) DeleteAsset(ctx context.Context, id int64) error {
	err := s.assets.DeleteAsset(ctx, id)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return fmt.Errorf("%w: asset %d", ErrNotFound, id)
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return fmt.Errorf("%w: asset %d still has inspection or maintenance history", ErrConflict, id)
	}
	return err
}
