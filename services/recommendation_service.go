package services

import (
	"context"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
)

// RecommendationService is the append-only recommendation log.
type RecommendationService interface {
	File(ctx context.Context, actor models.Actor, input models.RecommendationInput) (*models.Recommendation, error)
	ListForManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.Recommendation, error)
}

type recommendationService struct {
	store  repositories.Store
	engine *WorkflowEngine
}

func NewRecommendationService(store repositories.Store, engine *WorkflowEngine) RecommendationService {
	return &recommendationService{store: store, engine: engine}
}

func (s *recommendationService) File(ctx context.Context, actor models.Actor, input models.RecommendationInput) (*models.Recommendation, error) {
	return s.engine.FileRecommendation(ctx, actor, input)
}

func (s *recommendationService) ListForManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := s.store.ReadTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Manuscripts().GetByID(ctx, manuscriptID); err != nil {
			return err
		}
		var err error
		recs, err = tx.Recommendations().ListByManuscript(ctx, manuscriptID)
		return err
	})
	return recs, err
}
