package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
)

const referenceTTL = 5 * time.Minute

type ReferenceService interface {
	ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error)
	ListJournalSections(ctx context.Context) ([]models.JournalSection, error)
	// SubjectArea and JournalSection refresh the cache once before reporting NotFoundError.
	SubjectArea(ctx context.Context, id uuid.UUID) (*models.SubjectArea, error)
	JournalSection(ctx context.Context, id uuid.UUID) (*models.JournalSection, error)
	Invalidate()
}

type referenceCacheEntry struct {
	subjectAreas    []models.SubjectArea
	journalSections []models.JournalSection
	areasByID       map[uuid.UUID]models.SubjectArea
	sectionsByID    map[uuid.UUID]models.JournalSection
	fetchedAt       time.Time
}

type referenceService struct {
	refs repositories.ReferenceRepository
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	cache *referenceCacheEntry
}

func NewReferenceService(refs repositories.ReferenceRepository) ReferenceService {
	return &referenceService{refs: refs, ttl: referenceTTL, now: time.Now}
}

func (s *referenceService) load(ctx context.Context, force bool) (*referenceCacheEntry, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()

	if cached != nil && !force && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil && !force && s.now().Sub(s.cache.fetchedAt) < s.ttl {
		return s.cache, nil
	}

	areas, err := s.refs.ListSubjectAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject areas: %w", err)
	}
	sections, err := s.refs.ListJournalSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal sections: %w", err)
	}

	entry := &referenceCacheEntry{
		subjectAreas:    areas,
		journalSections: sections,
		areasByID:       make(map[uuid.UUID]models.SubjectArea, len(areas)),
		sectionsByID:    make(map[uuid.UUID]models.JournalSection, len(sections)),
		fetchedAt:       s.now(),
	}
	for _, a := range areas {
		entry.areasByID[a.ID] = a
	}
	for _, js := range sections {
		entry.sectionsByID[js.ID] = js
	}
	s.cache = entry
	return entry, nil
}

// Invalidate drops the cache so the next read goes to the store.
func (s *referenceService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
}

func (s *referenceService) ListSubjectAreas(ctx context.Context) ([]models.SubjectArea, error) {
	entry, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return entry.subjectAreas, nil
}

func (s *referenceService) ListJournalSections(ctx context.Context) ([]models.JournalSection, error) {
	entry, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return entry.journalSections, nil
}

func (s *referenceService) SubjectArea(ctx context.Context, id uuid.UUID) (*models.SubjectArea, error) {
	for _, force := range []bool{false, true} {
		entry, err := s.load(ctx, force)
		if err != nil {
			return nil, err
		}
		if area, ok := entry.areasByID[id]; ok {
			return &area, nil
		}
	}
	return nil, models.NewNotFoundError("subject area", id)
}

func (s *referenceService) JournalSection(ctx context.Context, id uuid.UUID) (*models.JournalSection, error) {
	for _, force := range []bool{false, true} {
		entry, err := s.load(ctx, force)
		if err != nil {
			return nil, err
		}
		if section, ok := entry.sectionsByID[id]; ok {
			return &section, nil
		}
	}
	return nil, models.NewNotFoundError("journal section", id)
}
