// Package cache keeps an in-memory read-through copy of non-terminal jobs.
// It only ever serves snapshots; callers get a copy, never the cached value.
package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/haulaway/haulaway/internal/metrics"
	"github.com/haulaway/haulaway/internal/repository"
)

type JobRepository interface {
	GetAllActive(ctx context.Context) ([]*repository.Job, error)
}

type JobCache struct {
	mu     sync.RWMutex
	cache  map[string]*repository.Job
	repo   JobRepository
	logger *zap.Logger
}

func NewJobCache(repo JobRepository, logger *zap.Logger) *JobCache {
	return &JobCache{
		cache:  make(map[string]*repository.Job),
		repo:   repo,
		logger: logger,
	}
}

// LoadInitialData warms the cache with every non-terminal job.
func (c *JobCache) LoadInitialData(ctx context.Context) error {
	jobs, err := c.repo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, job := range jobs {
		jobCopy := *job
		c.cache[job.ID] = &jobCopy
	}
	metrics.ActiveJobCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("job cache warmed", zap.Int("jobs", len(c.cache)))
	return nil
}

func (c *JobCache) Get(jobID string) (*repository.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	job, found := c.cache[jobID]
	if !found {
		return nil, false
	}
	jobCopy := *job
	return &jobCopy, true
}

// Set stores a snapshot of the job. Terminal jobs are evicted instead: once
// completed or cancelled a job is cold data.
func (c *JobCache) Set(job *repository.Job) {
	if job.Status.Terminal() {
		c.Delete(job.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	jobCopy := *job
	c.cache[job.ID] = &jobCopy
	metrics.ActiveJobCacheItems.Set(float64(len(c.cache)))
}

func (c *JobCache) Delete(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[jobID]; found {
		delete(c.cache, jobID)
		metrics.ActiveJobCacheItems.Set(float64(len(c.cache)))
	}
}
