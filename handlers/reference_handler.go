package handlers

import (
	"journal-workflow/helper"
	"journal-workflow/services"

	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	base
	references services.ReferenceService
}

func NewReferenceHandler(resp *helper.HTTPHelper, references services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{base: base{resp: resp}, references: references}
}

func (h *ReferenceHandler) GetSubjectAreas(c *gin.Context) {
	areas, err := h.references.ListSubjectAreas(c.Request.Context())
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", areas)
}

func (h *ReferenceHandler) GetJournalSections(c *gin.Context) {
	sections, err := h.references.ListJournalSections(c.Request.Context())
	if err != nil {
		h.resp.SendServiceError(c, err)
		return
	}

	h.resp.SendSuccess(c, "", sections)
}
