package handler

import (
	"net/http"

	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistHandler handles saved-listing requests
type WishlistHandler struct {
	wishlistService *service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// List handles GET /api/v1/users/:id/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	listings, err := h.wishlistService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  c.Param("id"),
		"listings": listings,
		"total":    len(listings),
	})
}

// Add handles POST /api/v1/users/:id/wishlist/:listingId
func (h *WishlistHandler) Add(c *gin.Context) {
	if err := h.wishlistService.Add(c.Request.Context(), c.Param("id"), c.Param("listingId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Saved to wishlist"})
}

// Remove handles DELETE /api/v1/users/:id/wishlist/:listingId
func (h *WishlistHandler) Remove(c *gin.Context) {
	if err := h.wishlistService.Remove(c.Request.Context(), c.Param("id"), c.Param("listingId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist"})
}
