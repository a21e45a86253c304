package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository over SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a session repository bound to the given
// handle.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, token, expires_at, created_at, revoked_at`

// CreateSession persists a new session.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.Token, session.ExpiresAt, now,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	session.CreatedAt = now
	return session, nil
}

// GetSession retrieves a session by its token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token = ?`, token)

	var session persistence.Session
	err := row.Scan(
		&session.ID, &session.UserID, &session.Token,
		&session.ExpiresAt, &session.CreatedAt, &session.RevokedAt,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// RevokeSession marks a session revoked at the given time and returns the
// updated row. The update and read happen in one transaction.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	var session persistence.Session
	err := withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`,
			revokedAt, token,
		)
		if err != nil {
			return mapError(err)
		}
		if err := requireRowAffected(result); err != nil {
			return err
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+sessionColumns+` FROM sessions WHERE token = ?`, token)
		if err := row.Scan(
			&session.ID, &session.UserID, &session.Token,
			&session.ExpiresAt, &session.CreatedAt, &session.RevokedAt,
		); err != nil {
			return mapError(err)
		}
		return nil
	})
	if err != nil {
		return persistence.Session{}, err
	}
	return session, nil
}

// DeleteExpiredSessions removes sessions whose expiry is before the
// reference time. Intended to run periodically.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, reference)
	return mapError(err)
}
