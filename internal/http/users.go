package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
)

type UsersController struct {
	users UserService
}

func NewUsersController(users UserService) *UsersController {
	return &UsersController{users: users}
}

type roleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}

// List handles GET /api/users
func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// Get handles GET /api/users/:id
func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Get(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Me handles GET /api/me
func (uc *UsersController) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := uc.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondResourceError(c, err, "get current user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create handles POST /api/users
func (uc *UsersController) Create(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		respondBadRequest(c, "invalid user")
		return
	}
	created, err := uc.users.Create(c.Request.Context(), user)
	if err != nil {
		respondResourceError(c, err, "create user")
		return
	}
	respondCreated(c, created)
}

// UpdateProfile handles PATCH /api/users/:id
func (uc *UsersController) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid profile patch")
		return
	}
	user, err := uc.users.UpdateProfile(c.Request.Context(), id, patch)
	if err != nil {
		respondResourceError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// AddRole handles POST /api/users/:id/roles
func (uc *UsersController) AddRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "role is required")
		return
	}
	if err := uc.users.AddRole(c.Request.Context(), id, req.Role); err != nil {
		respondResourceError(c, err, "add role")
		return
	}
	respondSuccess(c, "role added")
}

// RemoveRole handles DELETE /api/users/:id/roles/:role
func (uc *UsersController) RemoveRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := uc.users.RemoveRole(c.Request.Context(), id, domain.Role(c.Param("role"))); err != nil {
		respondResourceError(c, err, "remove role")
		return
	}
	respondSuccess(c, "role removed")
}
