package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/services"
	"github.com/nexus-hub/engagement-service/internal/utils"
	"github.com/nexus-hub/engagement-service/internal/validator"
)

type ChatHandler struct {
	BaseHandler
	service services.ChatService
}

func NewChatHandler(service services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SendMessage processes one assistant exchange
// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body validator.ChatRequest true "Message payload"
// @Success 200 {object} services.ChatResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /chat [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	h.LogRequest(c, "Processing chat message")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req validator.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHistory returns the user's recent exchanges, newest first
// @Summary Get chat history
// @Tags chat
// @Produce json
// @Success 200 {array} models.ChatMessage
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /chat/history [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	h.LogRequest(c, "Getting chat history")

	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	messages, err := h.service.GetHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// ===== ERROR HANDLING =====

func (h *ChatHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
		})
	}
}
