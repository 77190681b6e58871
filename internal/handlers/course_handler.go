package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/models"
	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// ListCourses returns the catalog annotated with the user's enrollment state
// @Summary List courses
// @Tags courses
// @Produce json
// @Param category query string false "Filter by category: Technical, Soft Skills or Leadership"
// @Success 200 {array} services.CourseResponse
// @Failure 400 {object} ErrorResponse "Invalid category"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var category *models.CourseCategory
	if raw := c.Query("category"); raw != "" {
		cat, ok := parseCourseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid category parameter",
				Details: "Category must be 'Technical', 'Soft Skills' or 'Leadership'",
			})
			return
		}
		category = &cat
	}

	courses, err := h.service.List(c.Request.Context(), userID, category)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCourse returns a single course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	h.LogRequest(c, "Getting course")

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.service.Get(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// Enroll enrolls the authenticated user in a course
// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "Course not found"
// @Failure 400 {object} ErrorResponse "Already enrolled"
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	h.LogRequest(c, "Enrolling in course")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.service.Enroll(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Enrolled successfully",
		"course":  course,
	})
}

// UpdateProgress stores the user's progress in an enrolled course
// @Summary Update course progress
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body validator.UpdateProgressRequest true "Progress percentage"
// @Success 200 {object} services.ProgressResponse
// @Failure 400 {object} ErrorResponse "Validation failed or not enrolled"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Router /courses/{id}/progress [put]
func (h *CourseHandler) UpdateProgress(c *gin.Context) {
	h.LogRequest(c, "Updating course progress")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.UpdateProgress(c.Request.Context(), courseID, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===== HELPERS =====

func parseCourseCategory(raw string) (models.CourseCategory, bool) {
	for _, cat := range models.CourseCategories {
		if raw == string(cat) {
			return cat, true
		}
	}
	return "", false
}

// parseIDParam parses a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid id parameter",
			Details: "Id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// ===== ERROR HANDLING =====

func (h *CourseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Course not found",
		})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Already enrolled in this course",
		})
	case errors.Is(err, services.ErrNotEnrolled):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Not enrolled in this course",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
	}
}
