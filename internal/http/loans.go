package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LoansController struct {
	loans LoanService
}

func NewLoansController(loans LoanService) *LoansController {
	return &LoansController{loans: loans}
}

type createLoanRequest struct {
	BookID uint `json:"bookId" binding:"required"`
	UserID uint `json:"userId"`
}

// List handles GET /api/loans
func (lc *LoansController) List(c *gin.Context) {
	loans, err := lc.loans.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

// Mine handles GET /api/me/loans
func (lc *LoansController) Mine(c *gin.Context) {
	loans, err := lc.loans.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondResourceError(c, err, "list user loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

// DueSoon handles GET /api/loans/due-soon
func (lc *LoansController) DueSoon(c *gin.Context) {
	loans, err := lc.loans.DueSoon(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "list loans due soon")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

// Get handles GET /api/loans/:id
func (lc *LoansController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := lc.loans.Get(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, err, "get loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// Create handles POST /api/loans
// The loan is opened for the active profile unless the body names a user.
func (lc *LoansController) Create(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId is required")
		return
	}
	userID := req.UserID
	if userID == 0 {
		userID = GetUserID(c)
	}

	loan, err := lc.loans.Create(c.Request.Context(), userID, req.BookID)
	if err != nil {
		respondResourceError(c, err, "create loan")
		return
	}
	respondCreated(c, loan)
}

// Renew handles POST /api/loans/:id/renew
func (lc *LoansController) Renew(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := lc.loans.Renew(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, err, "renew loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// Return handles POST /api/loans/:id/return
func (lc *LoansController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := lc.loans.Return(c.Request.Context(), id)
	if err != nil {
		respondResourceError(c, err, "return loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}
