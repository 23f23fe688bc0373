package api

import (
	"net/http"

	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles the reviewer-side endpoints
type ReviewHandler struct {
	services *service.Services
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(services *service.Services) *ReviewHandler {
	return &ReviewHandler{services: services}
}

// Pending handles GET /api/review/pending
func (h *ReviewHandler) Pending(c *gin.Context) {
	items, err := h.services.Workflow.ListPending(c.Request.Context(), mustIdentity(c))
	respond(c, http.StatusOK, items, err)
}

// Reviewed handles GET /api/review/reviewed
func (h *ReviewHandler) Reviewed(c *gin.Context) {
	items, err := h.services.Workflow.ListReviewed(c.Request.Context(), mustIdentity(c))
	respond(c, http.StatusOK, items, err)
}

// Assign handles POST /api/review/:contentId/assign
func (h *ReviewHandler) Assign(c *gin.Context) {
	content, err := h.services.Workflow.ClaimForReview(c.Request.Context(), mustIdentity(c), c.Param("contentId"))
	respond(c, http.StatusOK, content, err)
}

// Approve handles POST /api/review/:contentId/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	content, err := h.services.Workflow.Approve(c.Request.Context(), mustIdentity(c), c.Param("contentId"))
	respond(c, http.StatusOK, content, err)
}

// Reject handles POST /api/review/:contentId/reject. The body is optional.
func (h *ReviewHandler) Reject(c *gin.Context) {
	var in models.RejectInput
	if !bindOptionalJSON(c, &in) {
		return
	}
	content, err := h.services.Workflow.Reject(c.Request.Context(), mustIdentity(c), c.Param("contentId"), in.Comment)
	respond(c, http.StatusOK, content, err)
}
