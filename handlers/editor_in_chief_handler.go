package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EditorInChiefHandler struct {
	base
	manuscripts     services.ManuscriptService
	assignments     services.AssignmentService
	recommendations services.RecommendationService
	engine          *services.WorkflowEngine
}

func NewEditorInChiefHandler(resp *helper.HTTPHelper, manuscripts services.ManuscriptService, assignments services.AssignmentService, recommendations services.RecommendationService, engine *services.WorkflowEngine) *EditorInChiefHandler {
	return &EditorInChiefHandler{
		base:            base{resp: resp},
		manuscripts:     manuscripts,
		assignments:     assignments,
		recommendations: recommendations,
		engine:          engine,
	}
}

func (h *EditorInChiefHandler) GetManuscripts(c *gin.Context) {
	var params models.ManuscriptListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.resp.SendBadRequest(c, err.Error(), h.resp.EmptyJsonMap())
		return
	}

	var statuses []models.ManuscriptStatus
	if params.Status != "" {
		statuses = append(statuses, models.ManuscriptStatus(params.Status))
	}

	manuscripts, err := h.manuscripts.ListByStatus(c.Request.Context(), statuses...)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", manuscripts)
}

func (h *EditorInChiefHandler) GetOpenManuscripts(c *gin.Context) {
	manuscripts, err := h.manuscripts.ListOpen(c.Request.Context())
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", manuscripts)
}

func (h *EditorInChiefHandler) Decide(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.DecisionRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	status, err := h.engine.TransitionManuscript(c.Request.Context(), models.TransitionRequest{
		EntityID:   id,
		Action:     models.Action(req.Action),
		ActingRole: actor.Role,
		ActorID:    actor.ID,
		Reason:     req.Reason,
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Decision recorded", gin.H{"id": id, "status": status})
}

func (h *EditorInChiefHandler) AssignAreaEditor(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	manuscriptID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.AssignRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	id, err := h.assignments.CreateEditorAssignment(c.Request.Context(), actor, manuscriptID, uuid.MustParse(req.AssigneeID), models.RoleAreaEditor)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendCreated(c, "Assignment created", gin.H{"id": id})
}

func (h *EditorInChiefHandler) FileRecommendation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	manuscriptID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.RecommendationRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	input := recommendationInput(req)
	input.ManuscriptID = manuscriptID
	input.RoleKind = actor.Role
	input.RoleHolderID = actor.ID

	rec, err := h.recommendations.File(c.Request.Context(), actor, *input)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendCreated(c, "Recommendation filed", rec)
}

func (h *EditorInChiefHandler) GetUpstreamStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	filed, err := h.engine.AllUpstreamRecommendationsFiled(c.Request.Context(), id)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", gin.H{
		"all_upstream_recommendations_filed": filed,
		"decision_requires_upstream":         h.engine.Policy().RequireUpstreamRecommendations,
	})
}
