package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
)

// ManuscriptHandler serves the read queries every portal shares.
type ManuscriptHandler struct {
	base
	manuscripts     services.ManuscriptService
	assignments     services.AssignmentService
	recommendations services.RecommendationService
}

func NewManuscriptHandler(resp *helper.HTTPHelper, manuscripts services.ManuscriptService, assignments services.AssignmentService, recommendations services.RecommendationService) *ManuscriptHandler {
	return &ManuscriptHandler{
		base:            base{resp: resp},
		manuscripts:     manuscripts,
		assignments:     assignments,
		recommendations: recommendations,
	}
}

func (h *ManuscriptHandler) GetManuscript(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	manuscript, err := h.manuscripts.Get(c.Request.Context(), id)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	// authors only see their own work
	if actor.Role == models.RoleAuthor && !authoredBy(manuscript, actor) {
		h.resp.SendServiceError(c, models.NewNotFoundError("manuscript", id))
		return
	}

	h.resp.SendSuccess(c, "", manuscript)
}

func authoredBy(m *models.Manuscript, actor models.Actor) bool {
	if m.CorrespondingAuthorID == actor.ID {
		return true
	}
	for _, id := range m.CoAuthorIDs {
		if id == actor.ID {
			return true
		}
	}
	return false
}

func (h *ManuscriptHandler) GetAssignments(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.assignments.ListForManuscript(c.Request.Context(), id)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", list)
}

func (h *ManuscriptHandler) GetRecommendations(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	recs, err := h.recommendations.ListForManuscript(c.Request.Context(), id)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", recs)
}

func (h *ManuscriptHandler) GetHistory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	records, err := h.manuscripts.ListHistory(c.Request.Context(), id)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", records)
}
