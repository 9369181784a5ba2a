package repositories

import (
	"context"
	"sort"
	"sync"

	"journal-workflow/models"

	"github.com/google/uuid"
)

// memoryData is one immutable snapshot once committed. Transactions work on a clone.
type memoryData struct {
	manuscripts         []models.Manuscript
	reviewerAssignments []models.ReviewerAssignment
	editorAssignments   []models.EditorAssignment
	recommendations     []models.Recommendation
	history             []models.TransitionRecord
	subjectAreas        []models.SubjectArea
	journalSections     []models.JournalSection
}

func (d *memoryData) clone() *memoryData {
	return &memoryData{
		manuscripts:         append([]models.Manuscript(nil), d.manuscripts...),
		reviewerAssignments: append([]models.ReviewerAssignment(nil), d.reviewerAssignments...),
		editorAssignments:   append([]models.EditorAssignment(nil), d.editorAssignments...),
		recommendations:     append([]models.Recommendation(nil), d.recommendations...),
		history:             append([]models.TransitionRecord(nil), d.history...),
		subjectAreas:        append([]models.SubjectArea(nil), d.subjectAreas...),
		journalSections:     append([]models.JournalSection(nil), d.journalSections...),
	}
}

// MemoryStore keeps every table in process. Writers are serialized and publish a new
// snapshot on commit; readers never wait for a writer.
type MemoryStore struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *memoryData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: &memoryData{}}
}

func (s *MemoryStore) snapshot() *memoryData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *MemoryStore) commit(data *memoryData) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.snapshot().clone()
	if err := fn(&memoryTx{root: s, data: work}); err != nil {
		return err
	}
	s.commit(work)
	return nil
}

func (s *MemoryStore) ReadTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&memoryTx{root: s, data: s.snapshot(), readOnly: true})
}

func (s *MemoryStore) Manuscripts() ManuscriptRepository {
	return &memoryManuscripts{access: s.access}
}

func (s *MemoryStore) Assignments() AssignmentRepository {
	return &memoryAssignments{access: s.access}
}

func (s *MemoryStore) Recommendations() RecommendationRepository {
	return &memoryRecommendations{access: s.access}
}

func (s *MemoryStore) History() HistoryRepository {
	return &memoryHistory{access: s.access}
}

func (s *MemoryStore) References() ReferenceRepository {
	return &memoryReferences{access: s.access}
}

// access runs reads against the latest snapshot and wraps writes in their own transaction.
func (s *MemoryStore) access(ctx context.Context, write bool, fn func(d *memoryData) error) error {
	if !write {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(s.snapshot())
	}
	return s.WithTx(ctx, func(tx Store) error {
		return fn(tx.(*memoryTx).data)
	})
}

type memoryTx struct {
	root     *MemoryStore
	data     *memoryData
	readOnly bool
}

func (t *memoryTx) access(ctx context.Context, write bool, fn func(d *memoryData) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if write && t.readOnly {
		return errReadOnly
	}
	return fn(t.data)
}

func (t *memoryTx) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if t.readOnly {
		return errReadOnly
	}
	return fn(t)
}

func (t *memoryTx) ReadTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func (t *memoryTx) Manuscripts() ManuscriptRepository {
	return &memoryManuscripts{access: t.access}
}

func (t *memoryTx) Assignments() AssignmentRepository {
	return &memoryAssignments{access: t.access}
}

func (t *memoryTx) Recommendations() RecommendationRepository {
	return &memoryRecommendations{access: t.access}
}

func (t *memoryTx) History() HistoryRepository {
	return &memoryHistory{access: t.access}
}

func (t *memoryTx) References() ReferenceRepository {
	return &memoryReferences{access: t.access}
}

type accessFunc func(ctx context.Context, write bool, fn func(d *memoryData) error) error

type memoryManuscripts struct {
	access accessFunc
}

func (r *memoryManuscripts) Create(ctx context.Context, manuscript *models.Manuscript) error {
	return r.access(ctx, true, func(d *memoryData) error {
		d.manuscripts = append(d.manuscripts, *manuscript)
		return nil
	})
}

func (r *memoryManuscripts) GetByID(ctx context.Context, id uuid.UUID) (*models.Manuscript, error) {
	var found *models.Manuscript
	err := r.access(ctx, false, func(d *memoryData) error {
		for i := range d.manuscripts {
			if d.manuscripts[i].ID == id {
				m := d.manuscripts[i]
				found = &m
				return nil
			}
		}
		return models.NewNotFoundError("manuscript", id)
	})
	return found, err
}

// GetForUpdate needs no row lock: transactions already hold the store's writer lock.
func (r *memoryManuscripts) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Manuscript, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryManuscripts) Update(ctx context.Context, manuscript *models.Manuscript) error {
	return r.access(ctx, true, func(d *memoryData) error {
		for i := range d.manuscripts {
			if d.manuscripts[i].ID == manuscript.ID {
				d.manuscripts[i] = *manuscript
				return nil
			}
		}
		return models.NewNotFoundError("manuscript", manuscript.ID)
	})
}

func (r *memoryManuscripts) ListByStatus(ctx context.Context, statuses ...models.ManuscriptStatus) ([]models.Manuscript, error) {
	return r.list(ctx, func(m models.Manuscript) bool {
		if len(statuses) == 0 {
			return true
		}
		for _, s := range statuses {
			if m.Status == s {
				return true
			}
		}
		return false
	})
}

func (r *memoryManuscripts) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Manuscript, error) {
	return r.list(ctx, func(m models.Manuscript) bool {
		return m.CorrespondingAuthorID == authorID
	})
}

func (r *memoryManuscripts) list(ctx context.Context, keep func(models.Manuscript) bool) ([]models.Manuscript, error) {
	var out []models.Manuscript
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, m := range d.manuscripts {
			if keep(m) {
				out = append(out, m)
			}
		}
		return nil
	})
	// newest first, insertion order breaks ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, err
}

type memoryAssignments struct {
	access accessFunc
}

func (r *memoryAssignments) CreateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error {
	return r.access(ctx, true, func(d *memoryData) error {
		if assignment.Active() {
			for _, a := range d.reviewerAssignments {
				if a.Active() && a.ManuscriptID == assignment.ManuscriptID && a.ReviewerID == assignment.ReviewerID {
					return &models.DuplicateAssignmentError{
						ManuscriptID: assignment.ManuscriptID,
						AssigneeID:   assignment.ReviewerID,
						Role:         models.RoleReviewer,
					}
				}
			}
		}
		d.reviewerAssignments = append(d.reviewerAssignments, *assignment)
		return nil
	})
}

func (r *memoryAssignments) CreateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error {
	return r.access(ctx, true, func(d *memoryData) error {
		if assignment.Active() {
			for _, a := range d.editorAssignments {
				if a.Active() && a.ManuscriptID == assignment.ManuscriptID && a.Role == assignment.Role {
					return &models.DuplicateAssignmentError{
						ManuscriptID: assignment.ManuscriptID,
						AssigneeID:   assignment.EditorID,
						Role:         assignment.Role,
					}
				}
			}
		}
		d.editorAssignments = append(d.editorAssignments, *assignment)
		return nil
	})
}

func (r *memoryAssignments) GetReviewerAssignment(ctx context.Context, id uuid.UUID) (*models.ReviewerAssignment, error) {
	var found *models.ReviewerAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for i := range d.reviewerAssignments {
			if d.reviewerAssignments[i].ID == id {
				a := d.reviewerAssignments[i]
				found = &a
				return nil
			}
		}
		return models.NewNotFoundError("reviewer assignment", id)
	})
	return found, err
}

func (r *memoryAssignments) GetEditorAssignment(ctx context.Context, id uuid.UUID) (*models.EditorAssignment, error) {
	var found *models.EditorAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for i := range d.editorAssignments {
			if d.editorAssignments[i].ID == id {
				a := d.editorAssignments[i]
				found = &a
				return nil
			}
		}
		return models.NewNotFoundError("editor assignment", id)
	})
	return found, err
}

func (r *memoryAssignments) UpdateReviewerAssignment(ctx context.Context, assignment *models.ReviewerAssignment) error {
	return r.access(ctx, true, func(d *memoryData) error {
		for i := range d.reviewerAssignments {
			if d.reviewerAssignments[i].ID == assignment.ID {
				d.reviewerAssignments[i] = *assignment
				return nil
			}
		}
		return models.NewNotFoundError("reviewer assignment", assignment.ID)
	})
}

func (r *memoryAssignments) UpdateEditorAssignment(ctx context.Context, assignment *models.EditorAssignment) error {
	return r.access(ctx, true, func(d *memoryData) error {
		for i := range d.editorAssignments {
			if d.editorAssignments[i].ID == assignment.ID {
				d.editorAssignments[i] = *assignment
				return nil
			}
		}
		return models.NewNotFoundError("editor assignment", assignment.ID)
	})
}

func (r *memoryAssignments) ActiveReviewerAssignment(ctx context.Context, manuscriptID, reviewerID uuid.UUID) (*models.ReviewerAssignment, error) {
	var found *models.ReviewerAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, a := range d.reviewerAssignments {
			if a.Active() && a.ManuscriptID == manuscriptID && a.ReviewerID == reviewerID {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *memoryAssignments) ActiveEditorAssignment(ctx context.Context, manuscriptID uuid.UUID, role models.UserRole) (*models.EditorAssignment, error) {
	var found *models.EditorAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, a := range d.editorAssignments {
			if a.Active() && a.ManuscriptID == manuscriptID && a.Role == role {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *memoryAssignments) ListReviewerAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.ReviewerAssignment, error) {
	return r.reviewers(ctx, false, func(a models.ReviewerAssignment) bool {
		return a.ManuscriptID == manuscriptID
	})
}

func (r *memoryAssignments) ListReviewerAssignmentsByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]models.ReviewerAssignment, error) {
	return r.reviewers(ctx, true, func(a models.ReviewerAssignment) bool {
		return a.ReviewerID == reviewerID
	})
}

func (r *memoryAssignments) reviewers(ctx context.Context, newestFirst bool, keep func(models.ReviewerAssignment) bool) ([]models.ReviewerAssignment, error) {
	var out []models.ReviewerAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, a := range d.reviewerAssignments {
			if keep(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AssignedDate.After(out[j].AssignedDate)
		})
	}
	return out, err
}

func (r *memoryAssignments) ListEditorAssignments(ctx context.Context, manuscriptID uuid.UUID) ([]models.EditorAssignment, error) {
	return r.editors(ctx, false, func(a models.EditorAssignment) bool {
		return a.ManuscriptID == manuscriptID
	})
}

func (r *memoryAssignments) ListEditorAssignmentsByEditor(ctx context.Context, editorID uuid.UUID, role models.UserRole) ([]models.EditorAssignment, error) {
	return r.editors(ctx, true, func(a models.EditorAssignment) bool {
		return a.EditorID == editorID && a.Role == role
	})
}

func (r *memoryAssignments) editors(ctx context.Context, newestFirst bool, keep func(models.EditorAssignment) bool) ([]models.EditorAssignment, error) {
	var out []models.EditorAssignment
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, a := range d.editorAssignments {
			if keep(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	if newestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AssignedDate.After(out[j].AssignedDate)
		})
	}
	return out, err
}

type memoryRecommendations struct {
	access accessFunc
}

func (r *memoryRecommendations) Create(ctx context.Context, recommendation *models.Recommendation) error {
	return r.access(ctx, true, func(d *memoryData) error {
		for _, rec := range d.recommendations {
			if rec.ManuscriptID == recommendation.ManuscriptID &&
				rec.RoleHolderID == recommendation.RoleHolderID &&
				rec.RoleKind == recommendation.RoleKind {
				return &models.DuplicateRecommendationError{
					ManuscriptID: recommendation.ManuscriptID,
					RoleHolderID: recommendation.RoleHolderID,
					RoleKind:     recommendation.RoleKind,
				}
			}
		}
		d.recommendations = append(d.recommendations, *recommendation)
		return nil
	})
}

func (r *memoryRecommendations) Exists(ctx context.Context, manuscriptID, roleHolderID uuid.UUID, roleKind models.UserRole) (bool, error) {
	exists := false
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, rec := range d.recommendations {
			if rec.ManuscriptID == manuscriptID && rec.RoleHolderID == roleHolderID && rec.RoleKind == roleKind {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r *memoryRecommendations) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.Recommendation, error) {
	var out []models.Recommendation
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, rec := range d.recommendations {
			if rec.ManuscriptID == manuscriptID {
				out = append(out, rec)
			}
		}
		return nil
	})
	return out, err
}

type memoryHistory struct {
	access accessFunc
}

func (r *memoryHistory) Append(ctx context.Context, record *models.TransitionRecord) error {
	return r.access(ctx, true, func(d *memoryData) error {
		var last int64
		for _, h := range d.history {
			if h.ManuscriptID == record.ManuscriptID && h.Sequence > last {
				last = h.Sequence
			}
		}
		record.Sequence = last + 1
		d.history = append(d.history, *record)
		return nil
	})
}

func (r *memoryHistory) ListByManuscript(ctx context.Context, manuscriptID uuid.UUID) ([]models.TransitionRecord, error) {
	var out []models.TransitionRecord
	err := r.access(ctx, false, func(d *memoryData) error {
		for _, h := range d.history {
			if h.ManuscriptID == manuscriptID {
				out = append(out, h)
			}
		}
		return nil
	})
	return out, err
}

type memoryReferences struct {
	access accessFunc
}

func (r *memoryReferences) CreateSubjectArea(ctx context.Context, area *models.SubjectArea) error {
	return r.access(ctx, true, func(d *memoryData) error {
		d.subjectAreas = append(d.subjectAreas, *area)
		return nil
	})
}

func (r *memoryReferences) CreateJournalSection(ctx context.Context, section *models.JournalSection) error {
	return r.access(ctx, true, func(d *memoryData) error {
		d.journalSections = append(d.journalSections, *section)
		return nil
	})
}

func (r *memoryReferences) ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error) {
	var out []models.SubjectArea
	err := r.access(ctx, false, func(d *memoryData) error {
		out = append(out, d.subjectAreas...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *memoryReferences) ListJournalSections(ctx context.Context) ([]models.JournalSection, error) {
	var out []models.JournalSection
	err := r.access(ctx, false, func(d *memoryData) error {
		out = append(out, d.journalSections...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
