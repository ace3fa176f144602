package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/haulaway/haulaway/internal/db"
	"github.com/haulaway/haulaway/internal/repository"
)

type MoverRepo struct {
	db db.DB
}

func NewMoverRepo(db db.DB) *MoverRepo {
	return &MoverRepo{db: db}
}

func (r *MoverRepo) GetByID(ctx context.Context, id string) (*repository.Mover, error) {
	var mover repository.Mover
	err := r.db.Get(ctx, &mover,
		"SELECT id, name, credits, availability, capacity FROM movers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &mover, nil
}

// AddCreditsTx increments the mover's credit balance atomically. It runs
// inside the transaction that completes the credited job so that crediting
// and completion commit or roll back together.
func (r *MoverRepo) AddCreditsTx(ctx context.Context, tx db.Tx, id string, amount float64) error {
	tag, err := tx.Exec(ctx,
		"UPDATE movers SET credits = credits + $2 WHERE id = $1", id, amount)
	if err != nil {
		return fmt.Errorf("add credits for mover %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// ResetCredits zeroes the balance and returns the amount that was cashed out.
func (r *MoverRepo) ResetCredits(ctx context.Context, id string) (float64, error) {
	var amount float64
	err := r.db.ExecQueryRow(ctx, `
        WITH balance AS (
            SELECT credits FROM movers WHERE id = $1 FOR UPDATE
        )
        UPDATE movers SET credits = 0 WHERE id = $1
        RETURNING (SELECT credits FROM balance)
    `, id).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrObjectNotFound
		}
		return 0, fmt.Errorf("reset credits for mover %s: %w", id, err)
	}
	return amount, nil
}

func (r *MoverRepo) UpdateAvailability(ctx context.Context, id string, schedule []byte) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE movers SET availability = $2 WHERE id = $1", id, schedule)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
