package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
)

type AchievementHandler struct {
	BaseHandler
	service services.AchievementService
}

func NewAchievementHandler(service services.AchievementService, logger utils.Logger) *AchievementHandler {
	return &AchievementHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListAchievements returns the authenticated user's badges, newest first
// @Summary List achievements
// @Tags achievements
// @Produce json
// @Success 200 {array} models.Achievement
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /achievements [get]
func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	h.LogRequest(c, "Listing achievements")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	achievements, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, achievements)
}
