package services

import (
	"context"
	"errors"
	"sync"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	mu    sync.Mutex
	users map[uuid.UUID]RoleInfo
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[uuid.UUID]RoleInfo)}
}

func (d *fakeDirectory) add(role models.UserRole, approved bool) uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := uuid.New()
	d.users[id] = RoleInfo{Role: role, Approved: approved, Active: true}
	return id
}

func (d *fakeDirectory) set(id uuid.UUID, info RoleInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[id] = info
}

func (d *fakeDirectory) ResolveRole(ctx context.Context, actorID uuid.UUID) (RoleInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.users[actorID]
	if !ok {
		return RoleInfo{}, models.NewNotFoundError("user", actorID)
	}
	return info, nil
}

type fakeDocuments struct {
	missing map[string]bool
}

func (f *fakeDocuments) Resolve(ctx context.Context, ref string) (string, error) {
	if f.missing[ref] {
		return "", &models.NotFoundError{Entity: "document", ID: ref}
	}
	return "https://documents.test/" + ref, nil
}

var errInjected = errors.New("injected storage fault")

// faultyStore fails selected writes inside transactions.
type faultyStore struct {
	repositories.Store
	failRecommendations bool
	failHistory         bool
}

func (s *faultyStore) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.WithTx(ctx, func(tx repositories.Store) error {
		return fn(&faultyStore{Store: tx, failRecommendations: s.failRecommendations, failHistory: s.failHistory})
	})
}

func (s *faultyStore) Recommendations() repositories.RecommendationRepository {
	return &faultyRecommendations{RecommendationRepository: s.Store.Recommendations(), fail: s.failRecommendations}
}

func (s *faultyStore) History() repositories.HistoryRepository {
	return &faultyHistory{HistoryRepository: s.Store.History(), fail: s.failHistory}
}

type faultyRecommendations struct {
	repositories.RecommendationRepository
	fail bool
}

func (r *faultyRecommendations) Create(ctx context.Context, rec *models.Recommendation) error {
	if r.fail {
		return errInjected
	}
	return r.RecommendationRepository.Create(ctx, rec)
}

type faultyHistory struct {
	repositories.HistoryRepository
	fail bool
}

func (r *faultyHistory) Append(ctx context.Context, rec *models.TransitionRecord) error {
	if r.fail {
		return errInjected
	}
	return r.HistoryRepository.Append(ctx, rec)
}

// countingReferences counts how often the reference tables are read.
type countingReferences struct {
	repositories.ReferenceRepository
	mu    sync.Mutex
	loads int
}

func (r *countingReferences) ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error) {
	r.mu.Lock()
	r.loads++
	r.mu.Unlock()
	return r.ReferenceRepository.ListSubjectAreas(ctx)
}

func (r *countingReferences) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}
