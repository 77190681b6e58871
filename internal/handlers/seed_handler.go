package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
)

// SeedHandler resets the database to the demo fixture. Only registered outside
// production.
type SeedHandler struct {
	BaseHandler
	service services.SeedService
}

func NewSeedHandler(service services.SeedService, logger utils.Logger) *SeedHandler {
	return &SeedHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Seed wipes and reseeds the database
// @Summary Seed demo data
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	h.LogRequest(c, "Seeding database")

	if err := h.service.Reset(c.Request.Context()); err != nil {
		h.LogError(c, err, "Seed failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
}
