package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewerHandler struct {
	base
	assignments services.AssignmentService
	engine      *services.WorkflowEngine
}

func NewReviewerHandler(resp *helper.HTTPHelper, assignments services.AssignmentService, engine *services.WorkflowEngine) *ReviewerHandler {
	return &ReviewerHandler{base: base{resp: resp}, assignments: assignments, engine: engine}
}

func (h *ReviewerHandler) GetAssignments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var params models.AssignmentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.resp.SendBadRequest(c, err.Error(), h.resp.EmptyJsonMap())
		return
	}

	list, err := h.assignments.ListForAssignee(c.Request.Context(), actor.ID, models.RoleReviewer, params.Status)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", list.ReviewerAssignments)
}

func (h *ReviewerHandler) SubmitFeedback(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.ReviewerFeedbackRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	status, err := h.engine.TransitionReviewerAssignment(c.Request.Context(), models.TransitionRequest{
		EntityID:             id,
		Action:               models.ActionSubmitFeedback,
		ActingRole:           actor.Role,
		ActorID:              actor.ID,
		Feedback:             recommendationInput(req.RecommendationRequest),
		ConfidentialComments: req.ConfidentialComments,
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Feedback submitted", gin.H{"id": id, "status": status})
}

func (h *ReviewerHandler) Decline(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.DeclineRequest
	if !h.bindJSON(c, &req, false) {
		return
	}

	var suggested *uuid.UUID
	if req.SuggestedSubjectAreaID != "" {
		parsed := uuid.MustParse(req.SuggestedSubjectAreaID)
		suggested = &parsed
	}

	status, err := h.engine.TransitionReviewerAssignment(c.Request.Context(), models.TransitionRequest{
		EntityID:               id,
		Action:                 models.ActionDecline,
		ActingRole:             actor.Role,
		ActorID:                actor.ID,
		Reason:                 req.RejectionReason,
		SuggestedSubjectAreaID: suggested,
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Assignment declined", gin.H{"id": id, "status": status})
}
