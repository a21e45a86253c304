package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence"
	"github.com/example/crane-asset-manager/internal/testfixtures"
)

func newAssetFixture(t *testing.T) (*application.AssetService, int64) {
	t.Helper()
	store := testfixtures.NewStore(t)
	service := application.NewAssetService(store.Assets(), store.Locations())

	admin, err := store.Users().GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	return service, admin.ID
}

func TestCreateAssetValidatesInput(t *testing.T) {
	service, admin := newAssetFixture(t)
	ctx := context.Background()

	_, err := service.CreateAsset(ctx, persistence.Asset{CreatedBy: admin})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = service.CreateAsset(ctx, persistence.Asset{
		AssetNumber: "CR-001",
		AssetName:   "Crane",
		AssetType:   "Bridge Crane",
		CreatedBy:   admin,
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput, "location is required")
}

func TestCreateAssetRejectsUnknownLocation(t *testing.T) {
	service, admin := newAssetFixture(t)

	_, err := service.CreateAsset(context.Background(), persistence.Asset{
		AssetNumber: "CR-001",
		AssetName:   "Crane",
		AssetType:   "Bridge Crane",
		LocationID:  42,
		CreatedBy:   admin,
	})
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestCreateAssetRejectsDuplicateNumber(t *testing.T) {
	service, admin := newAssetFixture(t)
	ctx := context.Background()

	location, err := service.CreateLocation(ctx, persistence.Location{Name: "Plant A", CreatedBy: admin})
	require.NoError(t, err)

	asset := persistence.Asset{
		AssetNumber: "CR-001",
		AssetName:   "Crane",
		AssetType:   "Bridge Crane",
		LocationID:  location.ID,
		CreatedBy:   admin,
	}
	_, err = service.CreateAsset(ctx, asset)
	require.NoError(t, err)

	_, err = service.CreateAsset(ctx, asset)
	assert.ErrorIs(t, err, application.ErrConflict)
}

func TestDeleteLocationWithAssetsConflicts(t *testing.T) {
	service, admin := newAssetFixture(t)
	ctx := context.Background()

	location, err := service.CreateLocation(ctx, persistence.Location{Name: "Plant A", CreatedBy: admin})
	require.NoError(t, err)

	_, err = service.CreateAsset(ctx, persistence.Asset{
		AssetNumber: "CR-001",
		AssetName:   "Crane",
		AssetType:   "Bridge Crane",
		LocationID:  location.ID,
		CreatedBy:   admin,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteLocation(ctx, location.ID), application.ErrConflict)
}

func TestGetAssetNotFound(t *testing.T) {
	service, _ := newAssetFixture(t)

	_, err := service.GetAsset(context.Background(), 42)
	assert.ErrorIs(t, err, application.ErrNotFound)
}
