package persistence

import "time"

// User roles recognised by the application.
const (
	RoleInspector     = "Inspector"
	RoleSupervisor    = "Supervisor"
	RoleAdministrator = "Administrator"
	RoleSuperAdmin    = "SuperAdmin"
)

// Asset lifecycle statuses.
const (
	AssetStatusActive         = "Active"
	AssetStatusInactive       = "Inactive"
	AssetStatusMaintenance    = "Maintenance"
	AssetStatusDecommissioned = "Decommissioned"
)

// Inspection statuses.
const (
	InspectionStatusScheduled  = "Scheduled"
	InspectionStatusInProgress = "In Progress"
	InspectionStatusCompleted  = "Completed"
	InspectionStatusCancelled  = "Cancelled"
)

// Maintenance statuses.
const (
	MaintenanceStatusScheduled  = "Scheduled"
	MaintenanceStatusInProgress = "In Progress"
	MaintenanceStatusCompleted  = "Completed"
	MaintenanceStatusCancelled  = "Cancelled"
)

// User represents an account that can log in and perform inspections.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Location represents a physical site where assets are installed.
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     *string   `json:"address,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Asset represents one tracked bridge crane.
type Asset struct {
	ID           int64     `json:"id"`
	AssetNumber  string    `json:"asset_number"`
	AssetName    string    `json:"asset_name"`
	AssetType    string    `json:"asset_type"`
	Manufacturer *string   `json:"manufacturer,omitempty"`
	Model        *string   `json:"model,omitempty"`
	SerialNumber *string   `json:"serial_number,omitempty"`
	Capacity     *float64  `json:"capacity,omitempty"`
	CapacityUnit *string   `json:"capacity_unit,omitempty"`
	LocationID   int64     `json:"location_id"`
	Status       string    `json:"status"`
	Description  *string   `json:"description,omitempty"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Inspection represents one inspection of an asset against a compliance
// standard.
type Inspection struct {
	ID                 int64      `json:"id"`
	AssetID            int64      `json:"asset_id"`
	InspectorID        int64      `json:"inspector_id"`
	InspectionType     string     `json:"inspection_type"`
	ComplianceStandard string     `json:"compliance_standard"`
	ScheduledDate      *time.Time `json:"scheduled_date,omitempty"`
	ActualDate         *time.Time `json:"actual_date,omitempty"`
	Status             string     `json:"status"`
	OverallCondition   *string    `json:"overall_condition,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MaintenanceRecord represents scheduled or completed maintenance work on
// an asset.
type MaintenanceRecord struct {
	ID              int64      `json:"id"`
	AssetID         int64      `json:"asset_id"`
	MaintenanceType string     `json:"maintenance_type"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	PerformedBy     string     `json:"performed_by"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	Cost            *float64   `json:"cost,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// MediaFile represents an uploaded photo, video, or document attached to an
// inspection.
type MediaFile struct {
	ID           int64     `json:"id"`
	InspectionID *int64    `json:"inspection_id,omitempty"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Token     string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}
