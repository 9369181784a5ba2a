package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EditorHandler serves both the associate editor and the area editor portal. The role decides
// who the editor assigns downstream.
type EditorHandler struct {
	base
	role        models.UserRole
	assignments services.AssignmentService
	engine      *services.WorkflowEngine
}

func NewEditorHandler(resp *helper.HTTPHelper, role models.UserRole, assignments services.AssignmentService, engine *services.WorkflowEngine) *EditorHandler {
	return &EditorHandler{base: base{resp: resp}, role: role, assignments: assignments, engine: engine}
}

// AssignDownstream assigns a reviewer (associate editor) or an associate editor (area editor).
func (h *EditorHandler) AssignDownstream(c *gin.Context) {
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
	assigneeID := uuid.MustParse(req.AssigneeID)

	var (
		id  uuid.UUID
		err error
	)
	if h.role == models.RoleAssociateEditor {
		id, err = h.assignments.CreateReviewerAssignment(c.Request.Context(), actor, manuscriptID, assigneeID)
	} else {
		id, err = h.assignments.CreateEditorAssignment(c.Request.Context(), actor, manuscriptID, assigneeID, models.RoleAssociateEditor)
	}
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendCreated(c, "Assignment created", gin.H{"id": id})
}

func (h *EditorHandler) GetAssignments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var params models.AssignmentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.resp.SendBadRequest(c, err.Error(), h.resp.EmptyJsonMap())
		return
	}

	list, err := h.assignments.ListForAssignee(c.Request.Context(), actor.ID, h.role, params.Status)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", list.EditorAssignments)
}

// Transition applies begin_review_cycle or advance to the editor's assignment.
func (h *EditorHandler) Transition(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.EditorActionRequest
	if !h.bindJSON(c, &req, true) {
		return
	}
	reviewerIDs, err := parseUUIDs("reviewer_ids", req.ReviewerIDs)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	status, err := h.engine.TransitionEditorAssignment(c.Request.Context(), models.TransitionRequest{
		EntityID:    id,
		Action:      models.Action(c.Param("action")),
		ActingRole:  actor.Role,
		ActorID:     actor.ID,
		ReviewerIDs: reviewerIDs,
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Assignment updated", gin.H{"id": id, "status": status})
}

func (h *EditorHandler) FileRecommendation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.RecommendationRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	status, err := h.engine.TransitionEditorAssignment(c.Request.Context(), models.TransitionRequest{
		EntityID:   id,
		Action:     models.ActionFileRecommendation,
		ActingRole: actor.Role,
		ActorID:    actor.ID,
		Feedback:   recommendationInput(req),
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Recommendation filed", gin.H{"id": id, "status": status})
}
