package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/libraryhub/internal/resources"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "-1", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		id, ok := parseIDParam(c, "id")

		assert.False(t, ok)
		assert.Equal(t, uint(0), id)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid id")
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query string
		limit int
		ok    bool
	}{
		{"", 0, true},
		{"?limit=5", 5, true},
		{"?limit=-1", 0, false},
		{"?limit=x", 0, false},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

		limit, ok := parseLimit(c)
		assert.Equal(t, tt.ok, ok, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
	}
}

func TestRespondResourceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("book 1: %w", resources.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: title is required", resources.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{resources.ErrBookUnavailable, http.StatusConflict, "book_unavailable"},
		{resources.ErrLoanLimitReached, http.StatusConflict, "loan_limit_reached"},
		{resources.ErrRenewalLimitReached, http.StatusConflict, "renewal_limit_reached"},
		{resources.ErrLoanClosed, http.StatusConflict, "loan_closed"},
		{errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondResourceError(c, tt.err, "test")

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		if tt.code != "" {
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
		} else {
			assert.NotContains(t, w.Body.String(), "disk on fire")
		}
	}
}
