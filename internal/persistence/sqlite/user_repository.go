package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// UserRepository implements persistence.UserRepository over SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository bound to the given handle.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, first_name, last_name, phone, is_active, created_at, updated_at`

// CreateUser inserts a new user and returns it with its generated ID and
// timestamps.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, first_name, last_name, phone, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.Phone, user.IsActive, now, now,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.User{}, mapError(err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

// UpdateUser updates a user's mutable fields.
func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET email = ?, password_hash = ?, role = ?, first_name = ?, last_name = ?, phone = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		user.Email, user.PasswordHash, user.Role, user.FirstName,
		user.LastName, user.Phone, user.IsActive, now, user.ID,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	if err := requireRowAffected(result); err != nil {
		return persistence.User{}, err
	}

	user.UpdatedAt = now
	return user, nil
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// ListUsers returns every user ordered by username.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, mapError(rows.Err())
}

// DeactivateUser marks a user inactive without deleting the row, preserving
// the audit trail on records they created.
func (r *UserRepository) DeactivateUser(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanUser(row rowScanner) (persistence.User, error) {
	var user persistence.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.FirstName, &user.LastName, &user.Phone,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	return user, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// requireRowAffected turns a zero-row update or delete into ErrNotFound.
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
