package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge/internal/service"
)

// AIHandler exposes the transformation chain directly over HTTP.
type AIHandler struct {
	service service.CVService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(svc service.CVService) *AIHandler {
	return &AIHandler{service: svc}
}

// Transform handles POST /api/v1/ai/transform: synchronous transformation of
// raw CV text, bypassing upload and storage.
func (h *AIHandler) Transform(c *gin.Context) {
	var req struct {
		Text        string         `json:"text" binding:"required"`
		Preferences map[string]any `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	result, err := h.service.TransformText(c.Request.Context(), req.Text, req.Preferences)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Status handles GET /api/v1/ai/status, reporting which providers in the
// fallback chain are configured.
func (h *AIHandler) Status(c *gin.Context) {
	RespondOK(c, gin.H{"providers": h.service.ProviderStatuses()})
}
