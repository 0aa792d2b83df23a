package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settings SettingsService
}

func NewSettingsController(settings SettingsService) *SettingsController {
	return &SettingsController{settings: settings}
}

// Get handles GET /api/settings
func (sc *SettingsController) Get(c *gin.Context) {
	settings, err := sc.settings.Get(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "get settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/settings/:key
// The body is merged into the current value of the section; omitted fields keep their value.
func (sc *SettingsController) Update(c *gin.Context) {
	var value map[string]any
	if err := c.ShouldBindJSON(&value); err != nil {
		respondBadRequest(c, "settings body must be a JSON object")
		return
	}
	settings, err := sc.settings.Update(c.Request.Context(), c.Param("key"), value)
	if err != nil {
		respondResourceError(c, err, "update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
