package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"journal-workflow/config"
	"journal-workflow/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreSuite is the behaviour every Store implementation must share.
type StoreSuite struct {
	suite.Suite
	ctx      context.Context
	newStore func() Store
	store    Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func (s *StoreSuite) manuscript(author uuid.UUID, status models.ManuscriptStatus, submitted time.Time) *models.Manuscript {
	m := &models.Manuscript{
		ID:                    uuid.New(),
		Title:                 "On graph colourings",
		Abstract:              "We study colourings.",
		Keywords:              []string{"graphs", "colouring"},
		SubjectAreaID:         uuid.New(),
		JournalSectionID:      uuid.New(),
		CorrespondingAuthorID: author,
		ManuscriptFile:        "manuscripts/graph.pdf",
		Status:                status,
		SubmittedAt:           submitted,
		UpdatedAt:             submitted,
	}
	s.Require().NoError(s.store.Manuscripts().Create(s.ctx, m))
	return m
}

func (s *StoreSuite) reviewerAssignment(manuscriptID, reviewerID uuid.UUID, status models.ReviewerAssignmentStatus) (*models.ReviewerAssignment, error) {
	a := &models.ReviewerAssignment{
		ID:           uuid.New(),
		ManuscriptID: manuscriptID,
		ReviewerID:   reviewerID,
		AssignedByID: uuid.New(),
		AssignedDate: baseTime,
		Status:       status,
		UpdatedAt:    baseTime,
	}
	return a, s.store.Assignments().CreateReviewerAssignment(s.ctx, a)
}

func (s *StoreSuite) editorAssignment(manuscriptID, editorID uuid.UUID, role models.UserRole) (*models.EditorAssignment, error) {
	a := &models.EditorAssignment{
		ID:           uuid.New(),
		ManuscriptID: manuscriptID,
		EditorID:     editorID,
		Role:         role,
		AssignedByID: uuid.New(),
		AssignedDate: baseTime,
		Status:       models.EditorAssigned,
		UpdatedAt:    baseTime,
	}
	return a, s.store.Assignments().CreateEditorAssignment(s.ctx, a)
}

func (s *StoreSuite) TestManuscriptCreateGetUpdate() {
	author := uuid.New()
	m := s.manuscript(author, models.StatusSubmitted, baseTime)

	got, err := s.store.Manuscripts().GetByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(m.Title, got.Title)
	s.Equal([]string{"graphs", "colouring"}, []string(got.Keywords))
	s.Equal(models.StatusSubmitted, got.Status)

	got.Status = models.StatusUnderReview
	s.Require().NoError(s.store.Manuscripts().Update(s.ctx, got))

	again, err := s.store.Manuscripts().GetByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusUnderReview, again.Status)
}

func (s *StoreSuite) TestManuscriptNotFound() {
	_, err := s.store.Manuscripts().GetByID(s.ctx, uuid.New())

	var nf *models.NotFoundError
	s.True(errors.As(err, &nf))
	s.Equal("manuscript", nf.Entity)
}

func (s *StoreSuite) TestManuscriptListing() {
	author := uuid.New()
	older := s.manuscript(author, models.StatusSubmitted, baseTime)
	newer := s.manuscript(author, models.StatusAccepted, baseTime.Add(time.Hour))
	other := s.manuscript(uuid.New(), models.StatusUnderReview, baseTime.Add(2*time.Hour))

	mine, err := s.store.Manuscripts().ListByAuthor(s.ctx, author)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(newer.ID, mine[0].ID)
	s.Equal(older.ID, mine[1].ID)

	open, err := s.store.Manuscripts().ListByStatus(s.ctx, models.OpenStatuses...)
	s.Require().NoError(err)
	s.Require().Len(open, 2)
	s.Equal(other.ID, open[0].ID)
	s.Equal(older.ID, open[1].ID)

	all, err := s.store.Manuscripts().ListByStatus(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *StoreSuite) TestOneActiveReviewerAssignmentPerPair() {
	m := s.manuscript(uuid.New(), models.StatusUnderReview, baseTime)
	reviewer := uuid.New()

	first, err := s.reviewerAssignment(m.ID, reviewer, models.ReviewerAssigned)
	s.Require().NoError(err)

	_, err = s.reviewerAssignment(m.ID, reviewer, models.ReviewerAssigned)
	var dup *models.DuplicateAssignmentError
	s.Require().True(errors.As(err, &dup), "got %v", err)
	s.Equal(reviewer, dup.AssigneeID)

	// another reviewer on the same manuscript is fine
	_, err = s.reviewerAssignment(m.ID, uuid.New(), models.ReviewerAssigned)
	s.Require().NoError(err)

	active, err := s.store.Assignments().ActiveReviewerAssignment(s.ctx, m.ID, reviewer)
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(first.ID, active.ID)

	first.Status = models.ReviewerRejected
	s.Require().NoError(s.store.Assignments().UpdateReviewerAssignment(s.ctx, first))

	active, err = s.store.Assignments().ActiveReviewerAssignment(s.ctx, m.ID, reviewer)
	s.Require().NoError(err)
	s.Nil(active)

	_, err = s.reviewerAssignment(m.ID, reviewer, models.ReviewerAssigned)
	s.NoError(err)

	all, err := s.store.Assignments().ListReviewerAssignments(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Len(all, 3)

	mine, err := s.store.Assignments().ListReviewerAssignmentsByReviewer(s.ctx, reviewer)
	s.Require().NoError(err)
	s.Len(mine, 2)
}

func (s *StoreSuite) TestOneActiveEditorAssignmentPerRole() {
	m := s.manuscript(uuid.New(), models.StatusUnderReview, baseTime)
	area := uuid.New()

	first, err := s.editorAssignment(m.ID, area, models.RoleAreaEditor)
	s.Require().NoError(err)

	_, err = s.editorAssignment(m.ID, uuid.New(), models.RoleAreaEditor)
	var dup *models.DuplicateAssignmentError
	s.Require().True(errors.As(err, &dup), "got %v", err)
	s.Equal(models.RoleAreaEditor, dup.Role)

	_, err = s.editorAssignment(m.ID, uuid.New(), models.RoleAssociateEditor)
	s.Require().NoError(err)

	first.Status = models.EditorCompleted
	s.Require().NoError(s.store.Assignments().UpdateEditorAssignment(s.ctx, first))

	active, err := s.store.Assignments().ActiveEditorAssignment(s.ctx, m.ID, models.RoleAreaEditor)
	s.Require().NoError(err)
	s.Nil(active)

	_, err = s.editorAssignment(m.ID, uuid.New(), models.RoleAreaEditor)
	s.NoError(err)

	mine, err := s.store.Assignments().ListEditorAssignmentsByEditor(s.ctx, area, models.RoleAreaEditor)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(models.EditorCompleted, mine[0].Status)
}

func (s *StoreSuite) TestAssignmentNotFound() {
	_, err := s.store.Assignments().GetReviewerAssignment(s.ctx, uuid.New())
	var nf *models.NotFoundError
	s.True(errors.As(err, &nf))

	_, err = s.store.Assignments().GetEditorAssignment(s.ctx, uuid.New())
	s.True(errors.As(err, &nf))
}

func (s *StoreSuite) TestRecommendationUniqueness() {
	m := s.manuscript(uuid.New(), models.StatusUnderReview, baseTime)
	holder := uuid.New()
	rec := func(kind models.UserRole) *models.Recommendation {
		return &models.Recommendation{
			ID:           uuid.New(),
			ManuscriptID: m.ID,
			RoleHolderID: holder,
			RoleKind:     kind,
			Decision:     models.RecommendAccept,
			Summary:      "Solid work",
			Rating:       4,
			SubmittedAt:  baseTime,
		}
	}

	s.Require().NoError(s.store.Recommendations().Create(s.ctx, rec(models.RoleReviewer)))

	err := s.store.Recommendations().Create(s.ctx, rec(models.RoleReviewer))
	var dup *models.DuplicateRecommendationError
	s.Require().True(errors.As(err, &dup), "got %v", err)

	// the same person in another role files separately
	s.Require().NoError(s.store.Recommendations().Create(s.ctx, rec(models.RoleAssociateEditor)))

	exists, err := s.store.Recommendations().Exists(s.ctx, m.ID, holder, models.RoleReviewer)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.Recommendations().Exists(s.ctx, m.ID, holder, models.RoleAreaEditor)
	s.Require().NoError(err)
	s.False(exists)

	recs, err := s.store.Recommendations().ListByManuscript(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Len(recs, 2)
}

func (s *StoreSuite) TestHistorySequencePerManuscript() {
	first := s.manuscript(uuid.New(), models.StatusSubmitted, baseTime)
	second := s.manuscript(uuid.New(), models.StatusSubmitted, baseTime)

	appendRecord := func(manuscriptID uuid.UUID, to string) *models.TransitionRecord {
		rec := &models.TransitionRecord{
			ID:           uuid.New(),
			ManuscriptID: manuscriptID,
			Entity:       models.EntityManuscript,
			EntityID:     manuscriptID,
			ToState:      to,
			Action:       models.ActionAcceptForReview,
			ActorID:      uuid.New(),
			ActingRole:   models.RoleEditorInChief,
			CreatedAt:    baseTime,
		}
		s.Require().NoError(s.store.History().Append(s.ctx, rec))
		return rec
	}

	s.Equal(int64(1), appendRecord(first.ID, "submitted").Sequence)
	s.Equal(int64(2), appendRecord(first.ID, "under_review").Sequence)
	s.Equal(int64(1), appendRecord(second.ID, "submitted").Sequence)
	s.Equal(int64(3), appendRecord(first.ID, "accepted").Sequence)

	records, err := s.store.History().ListByManuscript(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal("submitted", records[0].ToState)
	s.Equal("accepted", records[2].ToState)
}

func (s *StoreSuite) TestWithTxRollsBack() {
	id := uuid.New()
	boom := errors.New("boom")

	err := s.store.WithTx(s.ctx, func(tx Store) error {
		m := &models.Manuscript{
			ID:                    id,
			Title:                 "Rolled back",
			Abstract:              "Never stored.",
			SubjectAreaID:         uuid.New(),
			JournalSectionID:      uuid.New(),
			CorrespondingAuthorID: uuid.New(),
			ManuscriptFile:        "manuscripts/none.pdf",
			Status:                models.StatusSubmitted,
			SubmittedAt:           baseTime,
		}
		if err := tx.Manuscripts().Create(s.ctx, m); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.store.Manuscripts().GetByID(s.ctx, id)
	var nf *models.NotFoundError
	s.True(errors.As(err, &nf))
}

func (s *StoreSuite) TestReadTxSeesOneSnapshot() {
	m := s.manuscript(uuid.New(), models.StatusUnderReview, baseTime)

	err := s.store.ReadTx(s.ctx, func(tx Store) error {
		before, err := tx.Manuscripts().GetByID(s.ctx, m.ID)
		s.Require().NoError(err)

		// a writer commits while the read transaction is open
		s.Require().NoError(s.store.WithTx(s.ctx, func(w Store) error {
			cur, err := w.Manuscripts().GetForUpdate(s.ctx, m.ID)
			if err != nil {
				return err
			}
			cur.Status = models.StatusAccepted
			return w.Manuscripts().Update(s.ctx, cur)
		}))

		after, err := tx.Manuscripts().GetByID(s.ctx, m.ID)
		s.Require().NoError(err)
		s.Equal(before.Status, after.Status)
		return nil
	})
	s.Require().NoError(err)

	now, err := s.store.Manuscripts().GetByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusAccepted, now.Status)
}

func (s *StoreSuite) TestReferencesSortedByName() {
	refs := s.store.References()
	s.Require().NoError(refs.CreateSubjectArea(s.ctx, &models.SubjectArea{ID: uuid.New(), Name: "Topology"}))
	s.Require().NoError(refs.CreateSubjectArea(s.ctx, &models.SubjectArea{ID: uuid.New(), Name: "Algebra"}))
	s.Require().NoError(refs.CreateJournalSection(s.ctx, &models.JournalSection{ID: uuid.New(), Name: "Letters"}))

	areas, err := refs.ListSubjectAreas(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(areas, 2)
	s.Equal("Algebra", areas[0].Name)

	sections, err := refs.ListJournalSections(s.ctx)
	s.Require().NoError(err)
	s.Len(sections, 1)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store { return NewMemoryStore() }})
}

func TestMemoryStoreReadTxRejectsWrites(t *testing.T) {
	store := NewMemoryStore()
	err := store.ReadTx(context.Background(), func(tx Store) error {
		return tx.References().CreateSubjectArea(context.Background(), &models.SubjectArea{ID: uuid.New(), Name: "Logic"})
	})
	if !errors.Is(err, errReadOnly) {
		t.Fatalf("expected read-only error, got %v", err)
	}
}

// TestGormStore runs the same suite against PostgreSQL when TEST_DB_DSN is set.
func TestGormStore(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal("Failed to connect to test database:", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatal("Failed to migrate test database:", err)
	}

	suite.Run(t, &StoreSuite{newStore: func() Store {
		db.Exec("TRUNCATE TABLE manuscript_status_history, recommendations, reviewer_assignments, editor_assignments, manuscripts, subject_areas, journal_sections")
		return NewGormStore(db)
	}})
}
