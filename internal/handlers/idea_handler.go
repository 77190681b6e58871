package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

type IdeaHandler struct {
	BaseHandler
	service services.IdeaService
}

func NewIdeaHandler(service services.IdeaService, logger utils.Logger) *IdeaHandler {
	return &IdeaHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== IDEA ENDPOINTS =====

// ListIdeas returns the idea board
// @Summary List ideas
// @Tags ideas
// @Produce json
// @Param category query string false "Filter by category"
// @Param sort query string false "Sort order: trending (default) or latest"
// @Success 200 {array} services.IdeaResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	h.LogRequest(c, "Listing ideas")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var category *models.IdeaCategory
	if raw := c.Query("category"); raw != "" {
		cat, ok := parseIdeaCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid category parameter",
				Details: "Category must be 'Process Improvement', 'Technical Solution' or 'Team Culture'",
			})
			return
		}
		category = &cat
	}

	sortBy := c.DefaultQuery("sort", services.SortTrending)
	if sortBy != services.SortTrending && sortBy != services.SortLatest {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid sort parameter",
			Details: "Sort must be 'trending' or 'latest'",
		})
		return
	}

	ideas, err := h.service.List(c.Request.Context(), userID, category, sortBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ideas)
}

// CreateIdea submits a new idea
// @Summary Submit an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body validator.CreateIdeaRequest true "Idea payload"
// @Success 201 {object} services.IdeaResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	h.LogRequest(c, "Creating idea")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req validator.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	idea, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idea)
}

// ToggleVote flips the user's vote on an idea
// @Summary Toggle vote
// @Tags ideas
// @Produce json
// @Param id path int true "Idea ID"
// @Success 200 {object} services.VoteResponse
// @Failure 404 {object} ErrorResponse "Idea not found"
// @Router /ideas/{id}/vote [post]
func (h *IdeaHandler) ToggleVote(c *gin.Context) {
	h.LogRequest(c, "Toggling idea vote")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ideaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ToggleVote(c.Request.Context(), ideaID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddComment attaches a comment to an idea and returns the full thread
// @Summary Comment on an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param id path int true "Idea ID"
// @Param request body validator.AddCommentRequest true "Comment payload"
// @Success 200 {array} services.CommentResponse
// @Failure 404 {object} ErrorResponse "Idea not found"
// @Router /ideas/{id}/comments [post]
func (h *IdeaHandler) AddComment(c *gin.Context) {
	h.LogRequest(c, "Adding idea comment")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ideaID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	comments, err := h.service.AddComment(c.Request.Context(), ideaID, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// ExportIdeas downloads the idea board as a spreadsheet
// @Summary Export ideas as XLSX
// @Tags ideas
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /ideas/export [get]
func (h *IdeaHandler) ExportIdeas(c *gin.Context) {
	h.LogRequest(c, "Exporting ideas")

	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("ideas-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== HELPERS =====

func parseIdeaCategory(raw string) (models.IdeaCategory, bool) {
	for _, cat := range models.IdeaCategories {
		if raw == string(cat) {
			return cat, true
		}
	}
	return "", false
}

// ===== ERROR HANDLING =====

func (h *IdeaHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Idea not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
	}
}
