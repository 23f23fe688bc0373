package api

import (
	"net/http"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
)

// ContentHandler handles the writer-side content endpoints
type ContentHandler struct {
	services *service.Services
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services) *ContentHandler {
	return &ContentHandler{services: services}
}

// Create handles POST /api/content
func (h *ContentHandler) Create(c *gin.Context) {
	var in models.DraftInput
	if !bindJSON(c, &in) {
		return
	}
	content, err := h.services.Workflow.CreateDraft(c.Request.Context(), mustIdentity(c), in)
	respond(c, http.StatusCreated, content, err)
}

// ListByStatus handles GET /api/content/{drafts,submitted,rejected,approved}
func (h *ContentHandler) ListByStatus(status models.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.services.Workflow.ListOwn(c.Request.Context(), mustIdentity(c), status)
		respond(c, http.StatusOK, items, err)
	}
}

// Get handles GET /api/content/:contentId
func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.services.Workflow.GetOwnContent(c.Request.Context(), mustIdentity(c), c.Param("contentId"))
	respond(c, http.StatusOK, content, err)
}

// Update handles PUT /api/content/:contentId
func (h *ContentHandler) Update(c *gin.Context) {
	var in models.DraftInput
	if !bindJSON(c, &in) {
		return
	}
	content, err := h.services.Workflow.UpdateContent(c.Request.Context(), mustIdentity(c), c.Param("contentId"), in)
	respond(c, http.StatusOK, content, err)
}

// Submit handles POST /api/content/:contentId/submit
func (h *ContentHandler) Submit(c *gin.Context) {
	content, err := h.services.Workflow.SubmitDraft(c.Request.Context(), mustIdentity(c), c.Param("contentId"))
	respond(c, http.StatusOK, content, err)
}

// Revert handles PUT /api/content/:contentId/revert
func (h *ContentHandler) Revert(c *gin.Context) {
	content, err := h.services.Workflow.ReviseRejected(c.Request.Context(), mustIdentity(c), c.Param("contentId"))
	respond(c, http.StatusOK, content, err)
}

func respond(c *gin.Context, status int, body interface{}, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, body)
}
