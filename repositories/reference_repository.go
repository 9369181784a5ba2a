package repositories

import (
	"context"

	"journal-workflow/models"

	"gorm.io/gorm"
)

type referenceRepository struct {
	db *gorm.DB
}

func (r *referenceRepository) CreateSubjectArea(ctx context.Context, area *models.SubjectArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *referenceRepository) CreateJournalSection(ctx context.Context, section *models.JournalSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *referenceRepository) ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error) {
	var areas []models.SubjectArea
	err := r.db.WithContext(ctx).Order("name").Find(&areas).Error
	return areas, err
}

func (r *referenceRepository) ListJournalSections(ctx context.Context) ([]models.JournalSection, error) {
	var sections []models.JournalSection
	err := r.db.WithContext(ctx).Order("name").Find(&sections).Error
	return sections, err
}
