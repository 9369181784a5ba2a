package repositories

import (
	"context"
	"errors"

	"journal-workflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type manuscriptRepository struct {
	db *gorm.DB
}

func (r *manuscriptRepository) Create(ctx context.Context, manuscript *models.Manuscript) error {
	return r.db.WithContext(ctx).Create(manuscript).Error
}

func (r *manuscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Manuscript, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *manuscriptRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Manuscript, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *manuscriptRepository) get(db *gorm.DB, id uuid.UUID) (*models.Manuscript, error) {
	var manuscript models.Manuscript
	err := db.First(&manuscript, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("manuscript", id)
	}
	if err != nil {
		return nil, err
	}
	return &manuscript, nil
}

func (r *manuscriptRepository) Update(ctx context.Context, manuscript *models.Manuscript) error {
	return r.db.WithContext(ctx).Save(manuscript).Error
}

func (r *manuscriptRepository) ListByStatus(ctx context.Context, statuses ...models.ManuscriptStatus) ([]models.Manuscript, error) {
	var manuscripts []models.Manuscript
	query := r.db.WithContext(ctx).Model(&models.Manuscript{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("submitted_at desc").Order("id").Find(&manuscripts).Error
	return manuscripts, err
}

func (r *manuscriptRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Manuscript, error) {
	var manuscripts []models.Manuscript
	err := r.db.WithContext(ctx).
		Where("corresponding_author_id = ?", authorID).
		Order("submitted_at desc").
		Order("id").
		Find(&manuscripts).Error
	return manuscripts, err
}
