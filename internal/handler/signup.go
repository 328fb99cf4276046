package handler

import (
	"net/http"
	"strconv"

	"hostelhub/internal/model"
	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
)

// privilegedAccess is the ?access= value that unlocks agent and admin signup
const privilegedAccess = "privileged"

// SignupHandler handles account registration requests
type SignupHandler struct {
	signupService *service.SignupService
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(signupService *service.SignupService) *SignupHandler {
	return &SignupHandler{signupService: signupService}
}

func isPrivileged(c *gin.Context) bool {
	return c.Query("access") == privilegedAccess
}

// Roles handles GET /api/v1/signup/roles
func (h *SignupHandler) Roles(c *gin.Context) {
	roles := h.signupService.AllowedRoles(isPrivileged(c))

	fields := make(map[model.Role][]string, len(roles))
	for _, r := range roles {
		fields[r] = service.RequiredFields(r)
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles, "required_fields": fields})
}

// ValidateStep handles POST /api/v1/signup/validate?step=N
func (h *SignupHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.DefaultQuery("step", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step"})
		return
	}

	var rec model.SignupRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		badRequest(c, err)
		return
	}

	errs := h.signupService.ValidateStep(rec, step)
	c.JSON(http.StatusOK, gin.H{
		"step":   step,
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// Register handles POST /api/v1/signup
func (h *SignupHandler) Register(c *gin.Context) {
	var rec model.SignupRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.signupService.Register(c.Request.Context(), rec, isPrivileged(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/v1/login. It checks the credentials and returns
// the account; no session or token is issued.
func (h *SignupHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.signupService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
