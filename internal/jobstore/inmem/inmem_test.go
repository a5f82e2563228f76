package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Create_GetByID_roundtrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	job, err := s.Create(ctx, jobstore.Job{Size: 3, ScanRange: 10, StepBudget: 100, Status: jobstore.StatusCompleted, Best: 4})
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)

	got, err := s.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func Test_GetByID_notFound(t *testing.T) {
	s := New()
	_, err := s.GetByID(context.Background(), [16]byte{})
	assert.ErrorIs(t, err, jobstore.ErrNotFound)
}

func Test_GetAll_sortedByCreated(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Create(ctx, jobstore.Job{Size: 1})
	require.NoError(t, err)
	second, err := s.Create(ctx, jobstore.Job{Size: 2})
	require.NoError(t, err)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []interface{}{all[0].ID, all[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func Test_Update_changesStoredJob(t *testing.T) {
	s := New()
	ctx := context.Background()

	job, err := s.Create(ctx, jobstore.Job{Size: 5, Status: jobstore.StatusPending})
	require.NoError(t, err)

	job.Status = jobstore.StatusCompleted
	job.Best = 9
	updated, err := s.Update(ctx, job.ID, job)
	require.NoError(t, err)
	assert.Equal(t, jobstore.StatusCompleted, updated.Status)

	got, err := s.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Best)
}

func Test_Update_notFound(t *testing.T) {
	s := New()
	_, err := s.Update(context.Background(), [16]byte{1}, jobstore.Job{})
	assert.ErrorIs(t, err, jobstore.ErrNotFound)
}
