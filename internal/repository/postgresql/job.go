package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/repository"
)

type JobRepo struct {
	db db.DB
}

func NewJobRepo(db db.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Create(ctx context.Context, job *repository.Job) error {
	_, err := r.db.Exec(ctx, insertJobQuery, insertJobArgs(job)...)
	return err
}

func (r *JobRepo) CreateTx(ctx context.Context, tx db.Tx, job *repository.Job) error {
	_, err := tx.Exec(ctx, insertJobQuery, insertJobArgs(job)...)
	return err
}

const insertJobQuery = `
        INSERT INTO jobs (
            id, order_id, student_id, mover_id, job_type, status, volume, price,
            pickup_address, pickup_lat, pickup_lon,
            dropoff_address, dropoff_lat, dropoff_lon,
            scheduled_time, verification_requested_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    `

func insertJobArgs(job *repository.Job) []interface{} {
	return []interface{}{
		job.ID, job.OrderID, job.StudentID, job.MoverID, job.JobType, job.Status,
		job.Volume, job.Price,
		job.PickupAddress, job.PickupLat, job.PickupLon,
		job.DropoffAddress, job.DropoffLat, job.DropoffLon,
		job.ScheduledTime, job.VerificationRequestedAt, job.CreatedAt, job.UpdatedAt,
	}
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*repository.Job, error) {
	var job repository.Job
	err := r.db.Get(ctx, &job, "SELECT * FROM jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepo) GetByStatus(ctx context.Context, status repository.JobStatus) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := r.db.Select(ctx, &jobs,
		"SELECT * FROM jobs WHERE status = $1 ORDER BY scheduled_time ASC, id ASC", status)
	return jobs, err
}

func (r *JobRepo) GetByMoverID(ctx context.Context, moverID string) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := r.db.Select(ctx, &jobs,
		"SELECT * FROM jobs WHERE mover_id = $1 ORDER BY created_at DESC", moverID)
	return jobs, err
}

func (r *JobRepo) GetByStudentID(ctx context.Context, studentID string) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := r.db.Select(ctx, &jobs,
		"SELECT * FROM jobs WHERE student_id = $1 ORDER BY created_at DESC", studentID)
	return jobs, err
}

func (r *JobRepo) GetAll(ctx context.Context) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := r.db.Select(ctx, &jobs, "SELECT * FROM jobs ORDER BY created_at DESC")
	return jobs, err
}

// GetOpenByOrderTx locks and returns the order's non-terminal jobs.
func (r *JobRepo) GetOpenByOrderTx(ctx context.Context, tx db.Tx, orderID string) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := tx.Select(ctx, &jobs, `
        SELECT * FROM jobs
        WHERE order_id = $1 AND status NOT IN ($2, $3)
        ORDER BY created_at ASC
        FOR UPDATE
    `, orderID, repository.JobStatusCompleted, repository.JobStatusCancelled)
	return jobs, err
}

func (r *JobRepo) GetAllActive(ctx context.Context) ([]*repository.Job, error) {
	var jobs []*repository.Job
	err := r.db.Select(ctx, &jobs, `
        SELECT * FROM jobs
        WHERE status NOT IN ($1, $2)
        ORDER BY created_at ASC
    `, repository.JobStatusCompleted, repository.JobStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to get active jobs: %w", err)
	}
	return jobs, nil
}

// UpdateStatusIf applies "SET status = to WHERE id = id AND status = from" in
// a single round-trip. The returned bool reports whether a row matched; false
// means the precondition no longer held, not that the job is missing.
func (r *JobRepo) UpdateStatusIf(ctx context.Context, id string, from, to repository.JobStatus, set repository.StatusSet) (bool, error) {
	query, args := conditionalUpdate(id, from, to, set)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("conditional status update for job %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *JobRepo) UpdateStatusIfTx(ctx context.Context, tx db.Tx, id string, from, to repository.JobStatus, set repository.StatusSet) (bool, error) {
	query, args := conditionalUpdate(id, from, to, set)
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("conditional status update for job %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func conditionalUpdate(id string, from, to repository.JobStatus, set repository.StatusSet) (string, []interface{}) {
	query := "UPDATE jobs SET status = $3, updated_at = $4"
	args := []interface{}{id, from, to, time.Now().UTC()}

	if set.MoverID != nil {
		args = append(args, *set.MoverID)
		query += fmt.Sprintf(", mover_id = $%d", len(args))
	}
	if set.VerificationRequestedAt != nil {
		args = append(args, *set.VerificationRequestedAt)
		query += fmt.Sprintf(", verification_requested_at = $%d", len(args))
	} else if set.ClearVerification {
		query += ", verification_requested_at = NULL"
	}

	query += " WHERE id = $1 AND status = $2"
	return query, args
}
