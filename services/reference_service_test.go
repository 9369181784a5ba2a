package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingReferences(t *testing.T) (*countingReferences, uuid.UUID) {
	t.Helper()
	store := repositories.NewMemoryStore()
	id := uuid.New()
	require.NoError(t, store.References().CreateSubjectArea(context.Background(), &models.SubjectArea{ID: id, Name: "Topology"}))
	return &countingReferences{ReferenceRepository: store.References()}, id
}

func TestReferenceServiceCachesLookups(t *testing.T) {
	ctx := context.Background()
	refs, id := newCountingReferences(t)
	svc := NewReferenceService(refs).(*referenceService)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		area, err := svc.SubjectArea(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Topology", area.Name)
	}
	assert.Equal(t, 1, refs.count())

	now = now.Add(referenceTTL)
	_, err := svc.ListSubjectAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, refs.count(), "expired entry is reloaded")

	svc.Invalidate()
	_, err = svc.ListSubjectAreas(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, refs.count())
}

func TestReferenceServiceRefreshesOnMiss(t *testing.T) {
	ctx := context.Background()
	refs, _ := newCountingReferences(t)
	svc := NewReferenceService(refs)

	_, err := svc.ListSubjectAreas(ctx)
	require.NoError(t, err)

	added := uuid.New()
	require.NoError(t, refs.CreateSubjectArea(ctx, &models.SubjectArea{ID: added, Name: "Algebra"}))

	area, err := svc.SubjectArea(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", area.Name)
	assert.Equal(t, 2, refs.count())

	_, err = svc.SubjectArea(ctx, uuid.New())
	var nf *models.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "subject area", nf.Entity)

	_, err = svc.JournalSection(ctx, uuid.New())
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "journal section", nf.Entity)
}
