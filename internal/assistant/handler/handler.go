package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/service"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/transport"
	"github.com/code-YK/WoodWorks-Ai/platform/httpkit"
	"github.com/code-YK/WoodWorks-Ai/platform/validator"
)

// Handler handles HTTP requests for the assistant.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

// New creates a new assistant handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateSession starts a new conversation.
// POST /api/v1/assistant/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	result, err := h.svc.CreateSession(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SendMessage processes one user message.
// POST /api/v1/assistant/sessions/:id/messages
func (h *Handler) SendMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	var req transport.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, svcErr := h.svc.SendMessage(c.Request.Context(), id, req.Message)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// Confirm applies the typed confirmation action.
// POST /api/v1/assistant/sessions/:id/confirm
func (h *Handler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	result, svcErr := h.svc.Confirm(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// Cancel applies the typed cancellation action.
// POST /api/v1/assistant/sessions/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	result, svcErr := h.svc.Cancel(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// GetSession returns the conversation view.
// GET /api/v1/assistant/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	result, svcErr := h.svc.GetSession(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}

// GetReceiptURL returns a short-lived download link for the receipt PDF.
// GET /api/v1/assistant/sessions/:id/receipt
func (h *Handler) GetReceiptURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	result, svcErr := h.svc.ReceiptURL(c.Request.Context(), id)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, result)
}
