package api

import (
	"net/http"

	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AIHandler handles text generation endpoints
type AIHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(services *service.Services, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		services: services,
		log:      log.With().Str("handler", "ai").Logger(),
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type refineRequest struct {
	Content     string `json:"content"`
	Instruction string `json:"instruction"`
}

// Generate handles POST /api/ai/generate
func (h *AIHandler) Generate(c *gin.Context) {
	var req generateRequest
	if !bindJSON(c, &req) {
		return
	}
	text, err := h.services.AI.Generate(c.Request.Context(), mustIdentity(c), req.Prompt)
	if err != nil {
		h.log.Warn().Err(err).Msg("Generate failed")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": text})
}

// Refine handles POST /api/ai/refine
func (h *AIHandler) Refine(c *gin.Context) {
	var req refineRequest
	if !bindJSON(c, &req) {
		return
	}
	text, err := h.services.AI.Refine(c.Request.Context(), mustIdentity(c), req.Content, req.Instruction)
	if err != nil {
		h.log.Warn().Err(err).Msg("Refine failed")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": text})
}
