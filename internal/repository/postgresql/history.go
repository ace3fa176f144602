package postgresql

import (
	"context"
	"time"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, entry *repository.JobHistoryEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO job_history (job_id, status, changed_at)
        VALUES ($1, $2, $3)
    `, entry.JobID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.JobHistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO job_history (job_id, status, changed_at)
        VALUES ($1, $2, $3)
    `, entry.JobID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByJobID(ctx context.Context, jobID string) ([]*repository.JobHistoryEntry, error) {
	var entries []*repository.JobHistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT id, job_id, status, changed_at
        FROM job_history
        WHERE job_id = $1
        ORDER BY changed_at ASC, id ASC
    `, jobID)
	return entries, err
}

// RecordTx appends a history row for a transition that just applied.
func (r *HistoryRepo) RecordTx(ctx context.Context, tx db.Tx, jobID string, status repository.JobStatus) error {
	return r.CreateTx(ctx, tx, &repository.JobHistoryEntry{
		JobID:     jobID,
		Status:    status,
		ChangedAt: time.Now().UTC(),
	})
}
