package handler

import (
	"net/http"

	"hostelhub/internal/model"
	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ListingHandler handles listing search and management requests
type ListingHandler struct {
	listingService *service.ListingService
	defaultLimit   int
	maxLimit       int
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *service.ListingService, defaultLimit, maxLimit int) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		defaultLimit:   defaultLimit,
		maxLimit:       maxLimit,
	}
}

// List handles GET /api/v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.search(c, req)
}

// Search handles POST /api/v1/listings/search
func (h *ListingHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.search(c, req)
}

func (h *ListingHandler) search(c *gin.Context, req model.SearchRequest) {
	// Validate and cap limits
	if req.PageSize <= 0 {
		req.PageSize = h.defaultLimit
	}
	if req.PageSize > h.maxLimit {
		req.PageSize = h.maxLimit
	}
	if req.Page < 1 {
		req.Page = 1
	}

	response, err := h.listingService.Search(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Create handles POST /api/v1/listings
func (h *ListingHandler) Create(c *gin.Context) {
	var form model.ListingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// Update handles PUT /api/v1/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	var form model.ListingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// AssignAgent handles POST /api/v1/listings/:id/assign
func (h *ListingHandler) AssignAgent(c *gin.Context) {
	var req model.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.AssignAgent(c.Request.Context(), c.Param("id"), req.AgentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// SubmitVerification handles POST /api/v1/listings/:id/verification
func (h *ListingHandler) SubmitVerification(c *gin.Context) {
	var report model.VerificationReport
	if err := c.ShouldBindJSON(&report); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.SubmitVerification(c.Request.Context(), c.Param("id"), report)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}
