package repositories

import (
	"context"
	"errors"

	"journal-workflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type assignmentRepository struct {
	db *gorm.DB
}

func (r *assignmentRepository) CreateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error {
	err := r.db.WithContext(ctx).Create(assignment).Error
	if isDuplicateKey(err) {
		return &models.DuplicateAssignmentError{
			ManuscriptID: assignment.ManuscriptID,
			AssigneeID:   assignment.ReviewerID,
			Role:         models.RoleReviewer,
		}
	}
	return err
}

func (r *assignmentRepository) CreateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error {
	err := r.db.WithContext(ctx).Create(assignment).Error
	if isDuplicateKey(err) {
		return &models.DuplicateAssignmentError{
			ManuscriptID: assignment.ManuscriptID,
			AssigneeID:   assignment.EditorID,
			Role:         assignment.Role,
		}
	}
	return err
}

func (r *assignmentRepository) GetReviewerAssignment(ctx context.Context, id uuid.UUID) (*models.ReviewerAssignment, error) {
	var assignment models.ReviewerAssignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("reviewer assignment", id)
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) GetEditorAssignment(ctx context.Context, id uuid.UUID) (*models.EditorAssignment, error) {
	var assignment models.EditorAssignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("editor assignment", id)
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) UpdateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) UpdateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) ActiveReviewerAssignment(ctx context.Context, manuscriptID, reviewerID uuid.UUID) (*models.ReviewerAssignment, error) {
	var assignments []models.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ? AND reviewer_id = ? AND status = ?", manuscriptID, reviewerID, models.ReviewerAssigned).
		Limit(1).
		Find(&assignments).Error
	if err != nil || len(assignments) == 0 {
		return nil, err
	}
	return &assignments[0], nil
}

func (r *assignmentRepository) ActiveEditorAssignment(ctx context.Context, manuscriptID uuid.UUID, role models.UserRole) (*models.EditorAssignment, error) {
	var assignments []models.EditorAssignment
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ? AND role = ? AND status <> ?", manuscriptID, role, models.EditorCompleted).
		Limit(1).
		Find(&assignments).Error
	if err != nil || len(assignments) == 0 {
		return nil, err
	}
	return &assignments[0], nil
}

func (r *assignmentRepository) ListReviewerAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.ReviewerAssignment, error) {
	var assignments []models.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ?", manuscriptID).
		Order("assigned_date").
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListEditorAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.EditorAssignment, error) {
	var assignments []models.EditorAssignment
	err := r.db.WithContext(ctx).
		Where("manuscript_id = ?", manuscriptID).
		Order("assigned_date").
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListReviewerAssignmentsByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]models.ReviewerAssignment, error) {
	var assignments []models.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		Order("assigned_date desc").
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListEditorAssignmentsByEditor(ctx context.Context, editorID uuid.UUID, role models.UserRole) ([]models.EditorAssignment, error) {
	var assignments []models.EditorAssignment
	err := r.db.WithContext(ctx).
		Where("editor_id = ? AND role = ?", editorID, role).
		Order("assigned_date desc").
		Order("id").
		Find(&assignments).Error
	return assignments, err
}
