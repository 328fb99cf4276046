package handler

import (
	"net/http"

	"hostelhub/internal/model"
	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles hostel review requests
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /api/v1/listings/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// Create handles POST /api/v1/listings/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ToggleHelpful handles POST /api/v1/reviews/:id/helpful
func (h *ReviewHandler) ToggleHelpful(c *gin.Context) {
	var req model.HelpfulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, marked, err := h.reviewService.ToggleHelpful(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if marked {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"helpful": marked,
		"review":  review,
	})
}
