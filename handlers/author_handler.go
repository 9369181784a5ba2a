package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	base
	manuscripts services.ManuscriptService
	engine      *services.WorkflowEngine
}

func NewAuthorHandler(resp *helper.HTTPHelper, manuscripts services.ManuscriptService, engine *services.WorkflowEngine) *AuthorHandler {
	return &AuthorHandler{base: base{resp: resp}, manuscripts: manuscripts, engine: engine}
}

func (h *AuthorHandler) SubmitManuscript(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req models.ManuscriptInput
	if !h.bindJSON(c, &req, false) {
		return
	}

	manuscript, err := h.manuscripts.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendCreated(c, "Manuscript submitted", manuscript)
}

func (h *AuthorHandler) GetManuscripts(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	manuscripts, err := h.manuscripts.ListByAuthor(c.Request.Context(), actor.ID)
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", manuscripts)
}

func (h *AuthorHandler) Resubmit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.ResubmitRequest
	if !h.bindJSON(c, &req, true) {
		return
	}

	status, err := h.engine.TransitionManuscript(c.Request.Context(), models.TransitionRequest{
		EntityID:   id,
		Action:     models.ActionResubmit,
		ActingRole: actor.Role,
		ActorID:    actor.ID,
		Reason:     req.Note,
	})
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "Manuscript resubmitted", gin.H{"id": id, "status": status})
}
