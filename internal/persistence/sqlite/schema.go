package sqlite

import "github.com/example/crane-asset-manager/internal/persistence/sqlite/migration"

// schemaMigrations returns the full schema history of the application
// database, oldest first. Statement bodies must not contain semicolons
// outside of statement boundaries, so triggers and other compound SQL are
// out; repositories set updated_at explicitly instead.
func schemaMigrations() []migration.Migration {
	return []migration.Migration{
		migration.New(1, "core_identity",
			"Users and locations with the seeded administrator account",
			coreIdentityUp, "", nil),
		migration.New(2, "asset_registry",
			"Assets and their component hierarchy",
			assetRegistryUp, assetRegistryDown, []int{1}),
		migration.New(3, "compliance_catalog",
			"Compliance standards and checklist templates with seed standards",
			complianceCatalogUp, complianceCatalogDown, []int{1}),
		migration.New(4, "inspection_tracking",
			"Inspections and per-item findings",
			inspectionTrackingUp, inspectionTrackingDown, []int{2, 3}),
		migration.New(5, "media_library",
			"Media files and automated analysis results",
			mediaLibraryUp, mediaLibraryDown, []int{4}),
		migration.New(6, "maintenance_log",
			"Maintenance records for assets and components",
			maintenanceLogUp, maintenanceLogDown, []int{2}),
	}
}

const coreIdentityUp = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('Inspector', 'Supervisor', 'Administrator', 'SuperAdmin')),
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    address TEXT,
    latitude REAL,
    longitude REAL,
    description TEXT,
    created_by INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (created_by) REFERENCES users(id)
);

CREATE TABLE sessions (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    token TEXT NOT NULL UNIQUE,
    expires_at DATETIME NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    revoked_at DATETIME,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX idx_users_username ON users(username);
CREATE INDEX idx_users_email ON users(email);
CREATE INDEX idx_sessions_token ON sessions(token);
CREATE INDEX idx_sessions_user_id ON sessions(user_id);

-- Default administrator (password: admin123, change after first login)
INSERT INTO users (username, email, password_hash, role, first_name, last_name, is_active) VALUES
('admin', 'admin@cranepro.com', '$2b$12$LQv3c1yqBWVHxkd0LHAkCOYz6TtxMQJqhN8/lewf5FuiOJ/rZNpyC', 'SuperAdmin', 'System', 'Administrator', 1);
`

const assetRegistryUp = `
CREATE TABLE assets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_number TEXT NOT NULL UNIQUE,
    asset_name TEXT NOT NULL,
    asset_type TEXT NOT NULL,
    manufacturer TEXT,
    model TEXT,
    serial_number TEXT,
    manufacture_date DATE,
    installation_date DATE,
    capacity REAL,
    capacity_unit TEXT,
    location_id INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'Active' CHECK(status IN ('Active', 'Inactive', 'Maintenance', 'Decommissioned')),
    description TEXT,
    specifications JSON,
    created_by INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (location_id) REFERENCES locations(id),
    FOREIGN KEY (created_by) REFERENCES users(id)
);

CREATE TABLE components (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id INTEGER NOT NULL,
    component_name TEXT NOT NULL,
    component_type TEXT NOT NULL,
    manufacturer TEXT,
    model TEXT,
    serial_number TEXT,
    parent_component_id INTEGER,
    specifications JSON,
    status TEXT NOT NULL DEFAULT 'Active' CHECK(status IN ('Active', 'Inactive', 'Maintenance', 'Replaced')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (asset_id) REFERENCES assets(id),
    FOREIGN KEY (parent_component_id) REFERENCES components(id)
);

CREATE INDEX idx_assets_asset_number ON assets(asset_number);
CREATE INDEX idx_assets_location_id ON assets(location_id);
CREATE INDEX idx_assets_status ON assets(status);
CREATE INDEX idx_components_asset_id ON components(asset_id);
CREATE INDEX idx_components_parent_id ON components(parent_component_id);
`

const assetRegistryDown = `
DROP TABLE IF EXISTS components;
DROP TABLE IF EXISTS assets;
`

const complianceCatalogUp = `
CREATE TABLE compliance_standards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    standard_code TEXT NOT NULL UNIQUE,
    standard_name TEXT NOT NULL,
    version TEXT NOT NULL,
    requirements JSON,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE compliance_checklist_templates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    standard_id INTEGER NOT NULL,
    template_name TEXT NOT NULL,
    inspection_type TEXT NOT NULL,
    checklist_structure JSON NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (standard_id) REFERENCES compliance_standards(id)
);

INSERT INTO compliance_standards (standard_code, standard_name, version, requirements, is_active) VALUES
('OSHA_1910_179', 'Overhead and Gantry Cranes', '2023', '{}', 1),
('ASME_B30_2', 'Overhead and Gantry Cranes (Top Running Bridge)', '2023', '{}', 1),
('CMAA_75', 'Crane Manufacturers Association of America Specification No. 75', '2022', '{}', 1);
`

const complianceCatalogDown = `
DROP TABLE IF EXISTS compliance_checklist_templates;
DROP TABLE IF EXISTS compliance_standards;
`

const inspectionTrackingUp = `
CREATE TABLE inspections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id INTEGER NOT NULL,
    inspector_id INTEGER NOT NULL,
    inspection_type TEXT NOT NULL CHECK(inspection_type IN ('Frequent', 'Periodic', 'Initial', 'Special')),
    compliance_standard TEXT NOT NULL,
    scheduled_date DATETIME,
    actual_date DATETIME,
    status TEXT NOT NULL DEFAULT 'Scheduled' CHECK(status IN ('Scheduled', 'In Progress', 'Completed', 'Cancelled')),
    overall_condition TEXT CHECK(overall_condition IN ('Excellent', 'Good', 'Fair', 'Poor', 'Critical')),
    checklist_data JSON,
    notes TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (asset_id) REFERENCES assets(id),
    FOREIGN KEY (inspector_id) REFERENCES users(id)
);

CREATE TABLE inspection_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    inspection_id INTEGER NOT NULL,
    component_id INTEGER,
    item_name TEXT NOT NULL,
    item_category TEXT NOT NULL,
    condition TEXT CHECK(condition IN ('Excellent', 'Good', 'Fair', 'Poor', 'Critical')),
    finding TEXT,
    severity TEXT CHECK(severity IN ('Low', 'Medium', 'High', 'Critical')),
    is_compliant BOOLEAN,
    corrective_action TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (inspection_id) REFERENCES inspections(id),
    FOREIGN KEY (component_id) REFERENCES components(id)
);

CREATE INDEX idx_inspections_asset_id ON inspections(asset_id);
CREATE INDEX idx_inspections_inspector_id ON inspections(inspector_id);
CREATE INDEX idx_inspections_status ON inspections(status);
CREATE INDEX idx_inspections_scheduled_date ON inspections(scheduled_date);
CREATE INDEX idx_inspection_items_inspection_id ON inspection_items(inspection_id);
CREATE INDEX idx_inspection_items_component_id ON inspection_items(component_id);
`

const inspectionTrackingDown = `
DROP TABLE IF EXISTS inspection_items;
DROP TABLE IF EXISTS inspections;
`

const mediaLibraryUp = `
CREATE TABLE media_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    inspection_id INTEGER,
    component_id INTEGER,
    file_name TEXT NOT NULL,
    file_path TEXT NOT NULL,
    file_type TEXT NOT NULL CHECK(file_type IN ('image', 'video', 'document', 'audio')),
    mime_type TEXT NOT NULL,
    file_size INTEGER NOT NULL,
    description TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (inspection_id) REFERENCES inspections(id),
    FOREIGN KEY (component_id) REFERENCES components(id)
);

CREATE TABLE ai_model_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    inspection_id INTEGER,
    media_file_id INTEGER,
    model_name TEXT NOT NULL,
    model_version TEXT NOT NULL,
    predictions JSON NOT NULL,
    confidence_score REAL NOT NULL CHECK(confidence_score >= 0 AND confidence_score <= 1),
    status TEXT NOT NULL DEFAULT 'Pending' CHECK(status IN ('Pending', 'Processing', 'Completed', 'Failed')),
    processed_at DATETIME,
    FOREIGN KEY (inspection_id) REFERENCES inspections(id),
    FOREIGN KEY (media_file_id) REFERENCES media_files(id)
);

CREATE INDEX idx_media_files_inspection_id ON media_files(inspection_id);
CREATE INDEX idx_media_files_component_id ON media_files(component_id);
CREATE INDEX idx_ai_results_inspection_id ON ai_model_results(inspection_id);
CREATE INDEX idx_ai_results_media_file_id ON ai_model_results(media_file_id);
`

const mediaLibraryDown = `
DROP TABLE IF EXISTS ai_model_results;
DROP TABLE IF EXISTS media_files;
`

const maintenanceLogUp = `
CREATE TABLE maintenance_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id INTEGER NOT NULL,
    component_id INTEGER,
    maintenance_type TEXT NOT NULL CHECK(maintenance_type IN ('Preventive', 'Corrective', 'Emergency', 'Overhaul')),
    scheduled_date DATETIME,
    completed_date DATETIME,
    performed_by TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'Scheduled' CHECK(status IN ('Scheduled', 'In Progress', 'Completed', 'Cancelled')),
    parts_used JSON,
    cost REAL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (asset_id) REFERENCES assets(id),
    FOREIGN KEY (component_id) REFERENCES components(id)
);

CREATE INDEX idx_maintenance_asset_id ON maintenance_records(asset_id);
CREATE INDEX idx_maintenance_component_id ON maintenance_records(component_id);
CREATE INDEX idx_maintenance_status ON maintenance_records(status);
`

const maintenanceLogDown = `
DROP TABLE IF EXISTS maintenance_records;
`
