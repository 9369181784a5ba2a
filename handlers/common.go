package handlers

import (
	"errors"
	"io"

	"journal-workflow/helper"
	"journal-workflow/middleware"
	"journal-workflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type base struct {
	resp *helper.HTTPHelper
}

// actor reads the caller set by the auth middleware. Routes are always mounted behind it.
func (b base) actor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		b.resp.SendUnauthorizedError(c, "User not found in context", b.resp.EmptyJsonMap())
	}
	return actor, ok
}

func (b base) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		b.resp.SendValidationError(c, models.NewValidationError(name, "must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req. An empty body is allowed when optional is set.
func (b base) bindJSON(c *gin.Context, req interface{}, optional bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	b.resp.SendBadRequest(c, err.Error(), b.resp.EmptyJsonMap())
	return false
}

func parseUUIDs(field string, raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, models.NewValidationError(field, "must contain valid uuids")
		}
		out = append(out, id)
	}
	return out, nil
}

func recommendationInput(req models.RecommendationRequest) *models.RecommendationInput {
	return &models.RecommendationInput{
		Decision:       models.RecommendationDecision(req.Recommendation),
		Summary:        req.Summary,
		Justification:  req.Justification,
		Rating:         req.Rating,
		PublicComments: req.PublicComments,
	}
}
