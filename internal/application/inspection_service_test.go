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

type inspectionFixture struct {
	inspections *application.InspectionService
	maintenance *application.MaintenanceService
	asset       persistence.Asset
	adminID     int64
}

func newInspectionFixture(t *testing.T) inspectionFixture {
	t.Helper()
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	admin, err := store.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)

	location, err := store.Locations().CreateLocation(ctx, persistence.Location{
		Name: "Plant A", CreatedBy: admin.ID,
	})
	require.NoError(t, err)

	asset, err := store.Assets().CreateAsset(ctx, persistence.Asset{
		AssetNumber: "CR-001",
		AssetName:   "Bay 1 Bridge Crane",
		AssetType:   "Bridge Crane",
		LocationID:  location.ID,
		CreatedBy:   admin.ID,
	})
	require.NoError(t, err)

	return inspectionFixture{
		inspections: application.NewInspectionService(store.Inspections(), store.Assets(), store.Media()),
		maintenance: application.NewMaintenanceService(store.Maintenance(), store.Assets()),
		asset:       asset,
		adminID:     admin.ID,
	}
}

func TestScheduleInspectionValidatesType(t *testing.T) {
	f := newInspectionFixture(t)

	_, err := f.inspections.ScheduleInspection(context.Background(), persistence.Inspection{
		AssetID:            f.asset.ID,
		InspectorID:        f.adminID,
		InspectionType:     "Casual",
		ComplianceStandard: "OSHA_1910_179",
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestScheduleInspectionRejectsUnknownAsset(t *testing.T) {
	f := newInspectionFixture(t)

	_, err := f.inspections.ScheduleInspection(context.Background(), persistence.Inspection{
		AssetID:            999,
		InspectorID:        f.adminID,
		InspectionType:     "Periodic",
		ComplianceStandard: "OSHA_1910_179",
	})
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestCompleteInspectionLifecycle(t *testing.T) {
	f := newInspectionFixture(t)
	ctx := context.Background()

	inspection, err := f.inspections.ScheduleInspection(ctx, persistence.Inspection{
		AssetID:            f.asset.ID,
		InspectorID:        f.adminID,
		InspectionType:     "Periodic",
		ComplianceStandard: "OSHA_1910_179",
	})
	require.NoError(t, err)
	assert.Equal(t, persistence.InspectionStatusScheduled, inspection.Status)

	notes := "Hoist brake within tolerance"
	completed, err := f.inspections.CompleteInspection(ctx, inspection.ID, "Good", &notes)
	require.NoError(t, err)
	assert.Equal(t, persistence.InspectionStatusCompleted, completed.Status)
	require.NotNil(t, completed.OverallCondition)
	assert.Equal(t, "Good", *completed.OverallCondition)
	assert.NotNil(t, completed.ActualDate)

	_, err = f.inspections.CompleteInspection(ctx, inspection.ID, "Good", nil)
	assert.ErrorIs(t, err, application.ErrConflict)
}

func TestAttachMediaToInspection(t *testing.T) {
	f := newInspectionFixture(t)
	ctx := context.Background()

	inspection, err := f.inspections.ScheduleInspection(ctx, persistence.Inspection{
		AssetID:            f.asset.ID,
		InspectorID:        f.adminID,
		InspectionType:     "Frequent",
		ComplianceStandard: "ASME_B30_2",
	})
	require.NoError(t, err)

	_, err = f.inspections.AttachMedia(ctx, persistence.MediaFile{
		InspectionID: &inspection.ID,
		FileName:     "hook.jpg",
		FilePath:     "/media/hook.jpg",
		FileType:     "image",
		MimeType:     "image/jpeg",
		FileSize:     1024,
	})
	require.NoError(t, err)

	files, err := f.inspections.ListMedia(ctx, inspection.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = f.inspections.AttachMedia(ctx, persistence.MediaFile{FileName: "x"})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestMaintenanceLifecycle(t *testing.T) {
	f := newInspectionFixture(t)
	ctx := context.Background()

	_, err := f.maintenance.ScheduleMaintenance(ctx, persistence.MaintenanceRecord{
		AssetID:         f.asset.ID,
		MaintenanceType: "Casual",
		PerformedBy:     "ACME",
		Description:     "n/a",
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	record, err := f.maintenance.ScheduleMaintenance(ctx, persistence.MaintenanceRecord{
		AssetID:         f.asset.ID,
		MaintenanceType: "Preventive",
		PerformedBy:     "ACME Crane Service",
		Description:     "Annual hoist lubrication",
	})
	require.NoError(t, err)

	cost := 450.0
	completed, err := f.maintenance.CompleteMaintenance(ctx, record.ID, &cost)
	require.NoError(t, err)
	assert.Equal(t, persistence.MaintenanceStatusCompleted, completed.Status)
	require.NotNil(t, completed.Cost)
	assert.Equal(t, 450.0, *completed.Cost)

	_, err = f.maintenance.CompleteMaintenance(ctx, record.ID, nil)
	assert.ErrorIs(t, err, application.ErrConflict)

	history, err := f.maintenance.History(ctx, f.asset.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
