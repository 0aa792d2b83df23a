package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/session"
)

type SessionController struct {
	middleware *session.Middleware
}

func NewSessionController(middleware *session.Middleware) *SessionController {
	return &SessionController{middleware: middleware}
}

type loginRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Current handles GET /api/session
func (sc *SessionController) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id":          GetUserID(c),
		"sessions_enabled": sc.middleware.SessionsEnabled(),
		"csrf_token":       session.GetCSRFToken(c),
	})
}

// Login handles POST /api/session
func (sc *SessionController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "userId is required")
		return
	}

	user, err := sc.middleware.Login(c, req.UserID)
	if errors.Is(err, session.ErrNoSessions) {
		respondError(c, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		respondResourceError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles DELETE /api/session
func (sc *SessionController) Logout(c *gin.Context) {
	err := sc.middleware.Logout(c)
	if errors.Is(err, session.ErrNoSessions) {
		respondError(c, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	c.Status(http.StatusNoContent)
}
