package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/resources"
	"github.com/mrlokans/libraryhub/internal/session"
)

// GetUserID returns the active profile of the request, 0 for an anonymous visitor.
func GetUserID(c *gin.Context) uint {
	return session.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs err and sends a 500 without exposing it.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondResourceError maps resource errors to status codes. Business rule violations are
// conflicts and carry a machine-readable code.
func respondResourceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, resources.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, resources.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_input"})
	case errors.Is(err, resources.ErrBookUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "book_unavailable"})
	case errors.Is(err, resources.ErrLoanLimitReached):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "loan_limit_reached"})
	case errors.Is(err, resources.ErrRenewalLimitReached):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "renewal_limit_reached"})
	case errors.Is(err, resources.ErrLoanClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "loan_closed"})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseLimit reads the optional limit query parameter; 0 means no limit.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondBadRequest(c, "invalid limit")
		return 0, false
	}
	return limit, true
}
