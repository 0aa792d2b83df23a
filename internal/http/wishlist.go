package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlists WishlistRegistry
}

func NewWishlistController(wishlists WishlistRegistry) *WishlistController {
	return &WishlistController{wishlists: wishlists}
}

type wishlistRequest struct {
	Label string `json:"label"`
}

// store returns the wishlist of the request's profile.
func (wc *WishlistController) store(c *gin.Context) WishlistStore {
	return wc.wishlists.For(GetUserID(c))
}

func respondWishlist(c *gin.Context, store WishlistStore) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": GetUserID(c),
		"items":   store.Items(),
		"count":   store.Count(),
	})
}

// List handles GET /api/wishlist
func (wc *WishlistController) List(c *gin.Context) {
	respondWishlist(c, wc.store(c))
}

// Contains handles GET /api/wishlist/:bookId
func (wc *WishlistController) Contains(c *gin.Context) {
	bookID := c.Param("bookId")
	c.JSON(http.StatusOK, gin.H{"book_id": bookID, "on_wishlist": wc.store(c).Contains(bookID)})
}

// Add handles POST /api/wishlist/:bookId
func (wc *WishlistController) Add(c *gin.Context) {
	var req wishlistRequest
	_ = c.ShouldBindJSON(&req)
	store := wc.store(c)
	store.Add(c.Param("bookId"), req.Label)
	respondWishlist(c, store)
}

// Remove handles DELETE /api/wishlist/:bookId
func (wc *WishlistController) Remove(c *gin.Context) {
	var req wishlistRequest
	_ = c.ShouldBindJSON(&req)
	store := wc.store(c)
	store.Remove(c.Param("bookId"), req.Label)
	respondWishlist(c, store)
}

// Toggle handles POST /api/wishlist/:bookId/toggle
func (wc *WishlistController) Toggle(c *gin.Context) {
	var req wishlistRequest
	_ = c.ShouldBindJSON(&req)
	store := wc.store(c)
	bookID := c.Param("bookId")
	on := store.Toggle(bookID, req.Label)
	c.JSON(http.StatusOK, gin.H{"book_id": bookID, "on_wishlist": on, "count": store.Count()})
}
