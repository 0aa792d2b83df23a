package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/notify"
)

type NotificationsController struct {
	feed NotificationFeed
}

func NewNotificationsController(feed NotificationFeed) *NotificationsController {
	return &NotificationsController{feed: feed}
}

// List handles GET /api/notifications
// Only the active profile's notifications are returned; an anonymous visitor has none.
func (nc *NotificationsController) List(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	items := []notify.Notification{}
	if userID := GetUserID(c); userID != 0 {
		items = nc.feed.RecentFor(userID, limit)
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "count": len(items)})
}

// Clear handles DELETE /api/notifications
func (nc *NotificationsController) Clear(c *gin.Context) {
	removed := nc.feed.ClearFor(GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "notifications cleared", "removed": removed})
}
