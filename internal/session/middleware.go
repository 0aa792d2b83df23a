package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/notify"
)

// Context keys for request data
const (
	ContextKeyUserID = "session_user_id"
)

// UserIDHeader carries the authenticated profile id when sessions are disabled.
const UserIDHeader = "X-User-ID"

// AnonymousUserID is the visitor nobody has identified.
const AnonymousUserID = uint(0)

// ErrNoSessions is returned by Login and Logout when sessions are disabled.
var ErrNoSessions = errors.New("sessions are disabled")

// UserLookup resolves profiles.
type UserLookup interface {
	Get(ctx context.Context, id uint) (domain.User, error)
}

// Middleware resolves the active profile of each request.
type Middleware struct {
	sessions *SessionManager
	users    UserLookup
}

// NewMiddleware creates the middleware. A nil sessions manager means the profile id comes
// from UserIDHeader.
func NewMiddleware(sessions *SessionManager, users UserLookup) *Middleware {
	return &Middleware{sessions: sessions, users: users}
}

// SessionsEnabled reports whether profiles are tracked in cookie sessions.
func (m *Middleware) SessionsEnabled() bool {
	return m.sessions != nil
}

// Handler stores the active profile id in the gin context, and in the request context so
// notifications raised while serving the request reach that profile.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		setUser(c, m.requestUserID(c))
		c.Next()
	}
}

func setUser(c *gin.Context, userID uint) {
	c.Set(ContextKeyUserID, userID)
	c.Request = c.Request.WithContext(notify.WithUser(c.Request.Context(), userID))
}

func (m *Middleware) requestUserID(c *gin.Context) uint {
	if m.sessions != nil {
		return m.sessions.GetUserID(c.Request)
	}
	return cast.ToUint(c.GetHeader(UserIDHeader))
}

// Login makes userID the active profile of the session.
func (m *Middleware) Login(c *gin.Context, userID uint) (domain.User, error) {
	if m.sessions == nil {
		return domain.User{}, ErrNoSessions
	}

	user, err := m.users.Get(c.Request.Context(), userID)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.sessions.CreateSession(c.Request, user.ID); err != nil {
		return domain.User{}, err
	}

	setUser(c, user.ID)
	return user, nil
}

// Logout ends the session; the rest of the request is served to the anonymous visitor.
func (m *Middleware) Logout(c *gin.Context) error {
	if m.sessions == nil {
		return ErrNoSessions
	}
	if err := m.sessions.DestroySession(c.Request); err != nil {
		return err
	}
	setUser(c, AnonymousUserID)
	return nil
}

// RequireUser rejects anonymous requests.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == AnonymousUserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose profile has none of roles.
func (m *Middleware) RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == AnonymousUserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		user, err := m.users.Get(c.Request.Context(), userID)
		if err == nil {
			for _, r := range roles {
				if user.HasRole(r) {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient permissions",
		})
	}
}

// GetUserID returns the active profile id, AnonymousUserID when there is none.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return AnonymousUserID
}
