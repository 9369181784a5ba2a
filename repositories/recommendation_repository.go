package repositories

import (
	"context"

	"journal-workflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recommendationRepository struct {
	db *gorm.DB
}

func (r *recommendationRepository) Create(ctx context.Context, recommendation *models.Recommendation) error {
	err := r.db.WithContext(ctx).Create(recommendation).Error
	if isDuplicateKey(err) {
		return &models.DuplicateRecommendationError{
			ManuscriptID: recommendation.ManuscriptID,
			RoleHolderID: recommendation.RoleHolderID,
			RoleKind:     recommendation.RoleKind,
		}
	}
	return err
}

func (r *recommendationRepository) Exists(ctx context.Context, manuscriptID, roleHolderID uuid.UUID, roleKind models.UserRole) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recommendation{}).
		Where("manuscript_id = ? AND role_holder_id = ? AND role_kind = ?", manuscriptID, roleHolderID, roleKind).
		Count(&count).Error
	return count > 0, err
}

func (r *recommendationRepository) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ?", manuscriptID).
		Order("submitted_at").
		Order("id").
		Find(&recommendations).Error
	return recommendations, err
}
