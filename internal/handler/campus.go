package handler

import (
	"net/http"
	"strings"

	"hostelhub/internal/campus"

	"github.com/gin-gonic/gin"
)

// CampusHandler serves the university and town directory
type CampusHandler struct {
	dir *campus.Directory
}

// NewCampusHandler creates a new campus handler
func NewCampusHandler(dir *campus.Directory) *CampusHandler {
	return &CampusHandler{dir: dir}
}

// Towns handles GET /api/v1/campus/towns
func (h *CampusHandler) Towns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"towns":       h.dir.Towns(),
		"major_towns": h.dir.MajorTowns(),
	})
}

// Universities handles GET /api/v1/campus/universities?town=
func (h *CampusHandler) Universities(c *gin.Context) {
	town := strings.TrimSpace(c.Query("town"))
	if town == "" {
		c.JSON(http.StatusOK, gin.H{"universities": h.dir.Universities()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"town":         town,
		"universities": h.dir.UniversitiesIn(town),
	})
}
