package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// MediaRepository implements persistence.MediaRepository over SQLite. Only
// metadata lives in the database; file contents stay on disk at FilePath.
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a media repository bound to the given handle.
func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `id, inspection_id, file_name, file_path, file_type, mime_type, file_size, description, created_at`

// CreateMediaFile inserts metadata for an uploaded file.
func (r *MediaRepository) CreateMediaFile(ctx context.Context, file persistence.MediaFile) (persistence.MediaFile, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO media_files (inspection_id, file_name, file_path, file_type, mime_type, file_size, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		file.InspectionID, file.FileName, file.FilePath, file.FileType,
		file.MimeType, file.FileSize, file.Description, now,
	)
	if err != nil {
		return persistence.MediaFile{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.MediaFile{}, mapError(err)
	}

	file.ID = id
	file.CreatedAt = now
	return file, nil
}

// GetMediaFile retrieves media metadata by ID.
func (r *MediaRepository) GetMediaFile(ctx context.Context, id int64) (persistence.MediaFile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media_files WHERE id = ?`, id)
	return scanMediaFile(row)
}

// ListMediaForInspection returns media attached to an inspection, oldest
// first.
func (r *MediaRepository) ListMediaForInspection(ctx context.Context, inspectionID int64) ([]persistence.MediaFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media_files
		 WHERE inspection_id = ? ORDER BY created_at, id`, inspectionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var files []persistence.MediaFile
	for rows.Next() {
		file, err := scanMediaFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, mapError(rows.Err())
}

// DeleteMediaFile removes media metadata. Deleting the on-disk file is the
// caller's responsibility.
func (r *MediaRepository) DeleteMediaFile(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media_files WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanMediaFile(row rowScanner) (persistence.MediaFile, error) {
	var file persistence.MediaFile
	err := row.Scan(
		&file.ID, &file.InspectionID, &file.FileName, &file.FilePath,
		&file.FileType, &file.MimeType, &file.FileSize, &file.Description,
		&file.CreatedAt,
	)
	if err != nil {
		return persistence.MediaFile{}, mapError(err)
	}
	return file, nil
}
