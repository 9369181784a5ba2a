package repositories

import (
	"context"

	"journal-workflow/models"

	"github.com/google/uuid"
)

type ManuscriptRepository interface {
	Create(ctx context.Context, manuscript *models.Manuscript) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Manuscript, error)
	// GetForUpdate loads the manuscript and, inside a transaction, locks it until commit.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Manuscript, error)
	Update(ctx context.Context, manuscript *models.Manuscript) error
	// ListByStatus returns every manuscript when no status is given.
	ListByStatus(ctx context.Context, statuses ...models.ManuscriptStatus) ([]models.Manuscript, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Manuscript, error)
}

type AssignmentRepository interface {
	CreateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error
	CreateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error
	GetReviewerAssignment(ctx context.Context, id uuid.UUID) (*models.ReviewerAssignment, error)
	GetEditorAssignment(ctx context.Context, id uuid.UUID) (*models.EditorAssignment, error)
	UpdateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error
	UpdateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error
	// ActiveReviewerAssignment returns nil without error when the pair has no active assignment.
	ActiveReviewerAssignment(ctx context.Context, manuscriptID, reviewerID uuid.UUID) (*models.ReviewerAssignment, error)
	// ActiveEditorAssignment returns nil without error when the role slot is free.
	ActiveEditorAssignment(ctx context.Context, manuscriptID uuid.UUID, role models.UserRole) (*models.EditorAssignment, error)
	ListReviewerAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.ReviewerAssignment, error)
	ListEditorAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.EditorAssignment, error)
	ListReviewerAssignmentsByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]models.ReviewerAssignment, error)
	ListEditorAssignmentsByEditor(ctx context.Context, editorID uuid.UUID, role models.UserRole) ([]models.EditorAssignment, error)
}

type RecommendationRepository interface {
	Create(ctx context.Context, recommendation *models.Recommendation) error
	Exists(ctx context.Context, manuscriptID, roleHolderID uuid.UUID, roleKind models.UserRole) (bool, error)
	ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.Recommendation, error)
}

type HistoryRepository interface {
	// Append assigns the next per-manuscript sequence number before storing the record.
	Append(ctx context.Context, record *models.TransitionRecord) error
	ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.TransitionRecord, error)
}

type ReferenceRepository interface {
	CreateSubjectArea(ctx context.Context, area *models.SubjectArea) error
	CreateJournalSection(ctx context.Context, section *models.JournalSection) error
	ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error)
	ListJournalSections(ctx context.Context) ([]models.JournalSection, error)
}

// Store groups the four record tables plus reference data behind one transactional boundary.
type Store interface {
	Manuscripts() ManuscriptRepository
	Assignments() AssignmentRepository
	Recommendations() RecommendationRepository
	History() HistoryRepository
	References() ReferenceRepository

	// WithTx runs fn inside a read-write transaction. Any error returned by fn rolls back
	// every write made through the Store handed to fn.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	// ReadTx runs fn against one consistent snapshot without blocking writers.
	ReadTx(ctx context.Context, fn func(tx Store) error) error
}
