package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"SellerPulse/internal/serviceiface"
	"SellerPulse/internal/session"
)

// UserSession identifies one logged-in seller. UserID doubles as the tenant
// (owner) key every store query is partitioned by.
type UserSession = session.Session

// AuthService resolves user ids to tenant sessions for the upload and report
// handlers. Credential checking happens upstream; a seller row must exist
// before a session can be opened.
type AuthService struct {
	db       *sql.DB
	sessions *session.Manager
}

var globalAuthService *AuthService

func NewAuthService(db *sql.DB) serviceiface.Service {
	svc := &AuthService{
		db:       db,
		sessions: session.NewManager(12 * time.Hour),
	}
	globalAuthService = svc
	return svc
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error { return nil }

func (a *AuthService) Stop() error { return nil }

// OpenSession registers a session for a known seller. The seller must exist
// in the sellers table; the display name is taken from there.
func (a *AuthService) OpenSession(userID, clientIP string) (*UserSession, error) {
	var name string
	err := a.db.QueryRow(`SELECT seller_name FROM sellers WHERE user_id = $1`, userID).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, errors.New("unknown seller")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up seller: %w", err)
	}
	return a.sessions.Open(userID, name, clientIP), nil
}

// CloseSession drops the session for a user id.
func (a *AuthService) CloseSession(userID string) error {
	if !a.sessions.Close(userID) {
		return errors.New("no active session")
	}
	return nil
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	return a.sessions.Active()
}

// ResolveTenant finds the live session for a user id, or nil.
func ResolveTenant(userID string) *UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.sessions.Get(userID)
}
