package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/crane-asset-manager/internal/persistence"
)

// AuthService handles login, logout, and session verification.
type AuthService struct {
	users      persistence.UserRepository
	sessions   persistence.SessionRepository
	sessionTTL time.Duration
}

// NewAuthService creates an auth service. sessionTTL bounds how long a
// login stays valid.
func NewAuthService(users persistence.UserRepository, sessions persistence.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Login verifies credentials and creates a session. The returned session
// token authenticates subsequent requests.
func (s *AuthService) Login(ctx context.Context, username, password string) (persistence.Session, persistence.User, error) {
	if username == "" || password == "" {
		return persistence.Session{}, persistence.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Session{}, persistence.User{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return persistence.Session{}, persistence.User{}, err
	}

	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return persistence.Session{}, persistence.User{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	session := persistence.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	session, err = s.sessions.CreateSession(ctx, session)
	if err != nil {
		return persistence.Session{}, persistence.User{}, err
	}

	logrus.WithFields(logrus.Fields{
		"user": user.Username,
		"role": user.Role,
	}).Info("User logged in")
	return session, user, nil
}

// Logout revokes the session for the given token. Revoking an unknown or
// already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, err := s.sessions.RevokeSession(ctx, token, time.Now().UTC())
	if errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	return err
}

// Authenticate resolves a session token to its user, rejecting expired and
// revoked sessions.
func (s *AuthService) Authenticate(ctx context.Context, token string) (persistence.User, error) {
	if token == "" {
		return persistence.User{}, fmt.Errorf("%w: missing session token", ErrUnauthorized)
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.User{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
		}
		return persistence.User{}, err
	}

	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return persistence.User{}, fmt.Errorf("%w: session revoked", ErrUnauthorized)
	}
	if now.After(session.ExpiresAt) {
		return persistence.User{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		return persistence.User{}, err
	}
	if !user.IsActive {
		return persistence.User{}, fmt.Errorf("%w: account deactivated", ErrUnauthorized)
	}
	return user, nil
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpiredSessions(ctx, time.Now().UTC())
}
