// Package session tracks which profile is active for a request.
//
// With sessions enabled the active profile lives in an scs cookie session backed by SQLite and
// is set by logging in. Without sessions the profile id is taken from the X-User-ID header set
// by the authenticating proxy in front of the service. Handlers read the profile with GetUserID
// and look up that profile's own containers; nothing shared is rebound per request.
package session

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/libraryhub/internal/config"
)

// Session data keys
const (
	SessionKeyUserID  = "user_id"
	SessionKeyLoginAt = "login_at"
)

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager. Sessions are stored in sqlDB; a nil
// sqlDB keeps them in process memory.
func NewSessionManager(sqlDB *sql.DB, cfg config.Session) (*SessionManager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, err
		}
		sm.Store = sqlite3store.New(sqlDB)
	}

	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession makes userID the active profile of the request's session.
func (sm *SessionManager) CreateSession(r *http.Request, userID uint) error {
	// new token on login against session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyUserID, int(userID))
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())
	return nil
}

func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID returns the session's profile id, 0 when nobody is logged in.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

func (sm *SessionManager) GetLoginAt(r *http.Request) time.Time {
	t, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)
	return t
}
