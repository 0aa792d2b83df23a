package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
)

type ActivityController struct {
	log ActivityLog
}

func NewActivityController(log ActivityLog) *ActivityController {
	return &ActivityController{log: log}
}

// List handles GET /api/activity
// Newest first, the active profile's entries only. An anonymous visitor has none.
func (ac *ActivityController) List(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	entries := []domain.ActivityEntry{}
	if userID := GetUserID(c); userID != 0 {
		entries = ac.log.ForUser(userID)
	}
	total := len(entries)
	if limit > 0 && limit < total {
		entries = entries[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": entries,
		"count":      len(entries),
		"total":      total,
	})
}

// Clear handles DELETE /api/activity
// Removes the active profile's entries; other profiles keep theirs.
func (ac *ActivityController) Clear(c *gin.Context) {
	removed := ac.log.ClearUser(GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "activity cleared", "removed": removed})
}
