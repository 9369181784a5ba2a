package repositories

import (
	"context"

	"journal-workflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// Append relies on the caller holding the manuscript row lock, which keeps the
// max(sequence)+1 read and the insert from racing.
func (r *historyRepository) Append(ctx context.Context, record *models.TransitionRecord) error {
	var last int64
	err := r.db.WithContext(ctx).Model(&models.TransitionRecord{}).
		Where("manuscript_id = ?", record.ManuscriptID).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&last).Error
	if err != nil {
		return err
	}
	record.Sequence = last + 1
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *historyRepository) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.TransitionRecord, error) {
	var records []models.TransitionRecord
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ?", manuscriptID).
		Order("sequence").
		Find(&records).Error
	return records, err
}
