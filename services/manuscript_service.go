package services

import (
	"context"
	"fmt"
	"strings"

	"journal-workflow/helper"
	"journal-workflow/models"
	"journal-workflow/repositories"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
)

type ManuscriptService interface {
	Submit(ctx context.Context, actor models.Actor, input models.ManuscriptInput) (*models.Manuscript, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Manuscript, error)
	ListByStatus(ctx context.Context, statuses ...models.ManuscriptStatus) ([]models.Manuscript, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Manuscript, error)
	// ListOpen returns manuscripts still awaiting a final decision.
	ListOpen(ctx context.Context) ([]models.Manuscript, error)
	ListHistory(ctx context.Context, manuscriptID uuid.UUID) ([]models.TransitionRecord, error)
}

type manuscriptService struct {
	store      repositories.Store
	engine     *WorkflowEngine
	references ReferenceService
	documents  DocumentStore
	validate   *validator.Validate
	trans      ut.Translator
	log        *logrus.Entry
}

func NewManuscriptService(store repositories.Store, engine *WorkflowEngine, references ReferenceService, documents DocumentStore, log *logrus.Entry) ManuscriptService {
	validate, trans := helper.NewValidator()
	return &manuscriptService{
		store:      store,
		engine:     engine,
		references: references,
		documents:  documents,
		validate:   validate,
		trans:      trans,
		log:        log,
	}
}

func (s *manuscriptService) Submit(ctx context.Context, actor models.Actor, input models.ManuscriptInput) (*models.Manuscript, error) {
	if err := s.engine.authorize(ctx, actor, string(models.ActionSubmit), models.RoleAuthor); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Abstract = strings.TrimSpace(input.Abstract)
	keywords := make([]string, len(input.Keywords))
	for i, k := range input.Keywords {
		keywords[i] = strings.TrimSpace(k)
	}
	if input.Keywords != nil {
		input.Keywords = keywords
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, helper.ToValidationError(err, s.trans)
	}

	subjectAreaID := uuid.MustParse(input.SubjectAreaID)
	journalSectionID := uuid.MustParse(input.JournalSectionID)
	if _, err := s.references.SubjectArea(ctx, subjectAreaID); err != nil {
		return nil, err
	}
	if _, err := s.references.JournalSection(ctx, journalSectionID); err != nil {
		return nil, err
	}

	for _, ref := range append([]string{input.ManuscriptFile}, input.SupplementaryFiles...) {
		if _, err := s.documents.Resolve(ctx, ref); err != nil {
			return nil, err
		}
	}

	// co-authors form a set that never contains the corresponding author
	seen := map[uuid.UUID]bool{actor.ID: true}
	coAuthors := make([]uuid.UUID, 0, len(input.CoAuthorIDs))
	for _, raw := range input.CoAuthorIDs {
		id := uuid.MustParse(raw)
		if !seen[id] {
			seen[id] = true
			coAuthors = append(coAuthors, id)
		}
	}

	now := s.engine.now()
	m := &models.Manuscript{
		ID:                    uuid.New(),
		Title:                 input.Title,
		Abstract:              input.Abstract,
		Keywords:              input.Keywords,
		SubjectAreaID:         subjectAreaID,
		JournalSectionID:      journalSectionID,
		Language:              input.Language,
		CorrespondingAuthorID: actor.ID,
		CoAuthorIDs:           coAuthors,
		ManuscriptFile:        input.ManuscriptFile,
		SupplementaryFiles:    input.SupplementaryFiles,
		Status:                models.StatusSubmitted,
		SubmittedAt:           now,
		UpdatedAt:             now,
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Manuscripts().Create(ctx, m); err != nil {
			return fmt.Errorf("create manuscript: %w", err)
		}
		return s.engine.record(ctx, tx, m.ID, models.EntityManuscript, m.ID, "", string(m.Status), models.ActionSubmit, actor, "")
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"manuscript_id": m.ID, "actor_id": actor.ID}).Info("manuscript submitted")
	return m, nil
}

func (s *manuscriptService) Get(ctx context.Context, id uuid.UUID) (*models.Manuscript, error) {
	return s.store.Manuscripts().GetByID(ctx, id)
}

func (s *manuscriptService) ListByStatus(ctx context.Context, statuses ...models.ManuscriptStatus) ([]models.Manuscript, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, models.NewValidationError("status", fmt.Sprintf("%q is not a manuscript status", st))
		}
	}
	return s.store.Manuscripts().ListByStatus(ctx, statuses...)
}

func (s *manuscriptService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Manuscript, error) {
	return s.store.Manuscripts().ListByAuthor(ctx, authorID)
}

func (s *manuscriptService) ListOpen(ctx context.Context) ([]models.Manuscript, error) {
	return s.store.Manuscripts().ListByStatus(ctx, models.OpenStatuses...)
}

func (s *manuscriptService) ListHistory(ctx context.Context, manuscriptID uuid.UUID) ([]models.TransitionRecord, error) {
	var records []models.TransitionRecord
	err := s.store.ReadTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Manuscripts().GetByID(ctx, manuscriptID); err != nil {
			return err
		}
		var err error
		records, err = tx.History().ListByManuscript(ctx, manuscriptID)
		return err
	})
	return records, err
}
