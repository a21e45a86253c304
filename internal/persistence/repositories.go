package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeactivateUser(ctx context.Context, id int64) error
}

// LocationRepository exposes CRUD operations for sites.
type LocationRepository interface {
	CreateLocation(ctx context.Context, location Location) (Location, error)
	GetLocation(ctx context.Context, id int64) (Location, error)
	ListLocations(ctx context.Context) ([]Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}

// AssetFilter narrows asset queries.
type AssetFilter struct {
	LocationID *int64
	Status     *string
}

// AssetRepository exposes CRUD operations for tracked assets.
type AssetRepository interface {
	CreateAsset(ctx context.Context, asset Asset) (Asset, error)
	UpdateAsset(ctx context.Context, asset Asset) (Asset, error)
	GetAsset(ctx context.Context, id int64) (Asset, error)
	GetAssetByNumber(ctx context.Context, assetNumber string) (Asset, error)
	ListAssets(ctx context.Context, filter AssetFilter) ([]Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
}

// InspectionFilter narrows inspection queries.
type InspectionFilter struct {
	AssetID     *int64
	InspectorID *int64
	Status      *string
}

// InspectionRepository exposes CRUD operations for inspections.
type InspectionRepository interface {
	CreateInspection(ctx context.Context, inspection Inspection) (Inspection, error)
	UpdateInspection(ctx context.Context, inspection Inspection) (Inspection, error)
	GetInspection(ctx context.Context, id int64) (Inspection, error)
	ListInspections(ctx context.Context, filter InspectionFilter) ([]Inspection, error)
	DeleteInspection(ctx context.Context, id int64) error
}

// MaintenanceRepository exposes CRUD operations for maintenance records.
type MaintenanceRepository interface {
	CreateRecord(ctx context.Context, record MaintenanceRecord) (MaintenanceRecord, error)
	UpdateRecord(ctx context.Context, record MaintenanceRecord) (MaintenanceRecord, error)
	GetRecord(ctx context.Context, id int64) (MaintenanceRecord, error)
	ListRecordsForAsset(ctx context.Context, assetID int64) ([]MaintenanceRecord, error)
}

// MediaRepository stores metadata for uploaded files.
type MediaRepository interface {
	CreateMediaFile(ctx context.Context, file MediaFile) (MediaFile, error)
	GetMediaFile(ctx context.Context, id int64) (MediaFile, error)
	ListMediaForInspection(ctx context.Context, inspectionID int64) ([]MediaFile, error)
	DeleteMediaFile(ctx context.Context, id int64) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
