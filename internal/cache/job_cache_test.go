package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/repository"
)

type stubJobRepo struct {
	jobs []*repository.Job
	err  error
}

func (s *stubJobRepo) GetAllActive(context.Context) ([]*repository.Job, error) {
	return s.jobs, s.err
}

func TestLoadInitialData(t *testing.T) {
	repo := &stubJobRepo{jobs: []*repository.Job{
		{ID: "job-1", Status: repository.JobStatusAvailable},
		{ID: "job-2", Status: repository.JobStatusAccepted},
	}}
	c := NewJobCache(repo, zap.NewNop())

	require.NoError(t, c.LoadInitialData(context.Background()))

	_, ok := c.Get("job-1")
	assert.True(t, ok)
	_, ok = c.Get("job-2")
	assert.True(t, ok)
}

func TestSetAndGetReturnCopies(t *testing.T) {
	c := NewJobCache(&stubJobRepo{}, zap.NewNop())

	job := &repository.Job{ID: "job-1", Status: repository.JobStatusAvailable}
	c.Set(job)

	got, ok := c.Get("job-1")
	require.True(t, ok)

	// Mutating the returned snapshot must not leak into the cache.
	got.Status = repository.JobStatusCancelled
	again, ok := c.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, repository.JobStatusAvailable, again.Status)

	// Nor must mutating the original after Set.
	job.Status = repository.JobStatusCancelled
	again, _ = c.Get("job-1")
	assert.Equal(t, repository.JobStatusAvailable, again.Status)
}

func TestSetEvictsTerminalJobs(t *testing.T) {
	c := NewJobCache(&stubJobRepo{}, zap.NewNop())

	c.Set(&repository.Job{ID: "job-1", Status: repository.JobStatusAccepted})
	_, ok := c.Get("job-1")
	require.True(t, ok)

	c.Set(&repository.Job{ID: "job-1", Status: repository.JobStatusCompleted})
	_, ok = c.Get("job-1")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := NewJobCache(&stubJobRepo{}, zap.NewNop())

	c.Set(&repository.Job{ID: "job-1", Status: repository.JobStatusAvailable})
	c.Delete("job-1")

	_, ok := c.Get("job-1")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	c.Delete("job-1")
}
