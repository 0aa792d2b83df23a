package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libraryhub/internal/domain"
)

type SalesController struct {
	sales SaleService
}

func NewSalesController(sales SaleService) *SalesController {
	return &SalesController{sales: sales}
}

type updateSaleStatusRequest struct {
	Status domain.SaleStatus `json:"status" binding:"required"`
}

// List handles GET /api/sales
func (sc *SalesController) List(c *gin.Context) {
	sales, err := sc.sales.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "list sales")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}

// Mine handles GET /api/me/sales
func (sc *SalesController) Mine(c *gin.Context) {
	sales, err := sc.sales.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondResourceError(c, err, "list user sales")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}

// Create handles POST /api/sales
// The purchase is recorded for the active profile unless the body names a user.
func (sc *SalesController) Create(c *gin.Context) {
	var in domain.NewSale
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid sale")
		return
	}
	if in.UserID == 0 {
		in.UserID = GetUserID(c)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	sale, err := sc.sales.Create(c.Request.Context(), in)
	if err != nil {
		respondResourceError(c, err, "create sale")
		return
	}
	respondCreated(c, sale)
}

// UpdateStatus handles PATCH /api/sales/:id/status
func (sc *SalesController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}
	sale, err := sc.sales.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondResourceError(c, err, "update sale status")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Delete handles DELETE /api/sales/:id
func (sc *SalesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := sc.sales.Delete(c.Request.Context(), id); err != nil {
		respondResourceError(c, err, "delete sale")
		return
	}
	c.Status(http.StatusNoContent)
}
