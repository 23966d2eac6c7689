package repository

import (
	"context"
	"errors"
	"time"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes one transaction and moves the wallet in the same database
// transaction. The unique (reference_id, type) index absorbs replays: the
// caller gets the current balance and ErrDuplicateTransaction instead of
// a second credit.
func (r *LedgerRepository) Append(ctx context.Context, t *domain.Transaction) (int64, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, reference_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (reference_id, type) DO NOTHING
		 RETURNING id`,
		t.UserID, t.Type, t.Amount, t.ReferenceID, t.CreatedAt,
	).Scan(&t.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		var balance int64
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(balance, 0) FROM wallets WHERE user_id = $1`, t.UserID,
		).Scan(&balance); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return balance, domain.ErrDuplicateTransaction
	}
	if err != nil {
		return 0, err
	}

	var balance int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO wallets (user_id, balance, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET balance = wallets.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
		 RETURNING balance`,
		t.UserID, t.Amount, t.CreatedAt,
	).Scan(&balance); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *LedgerRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx,
		`SELECT balance FROM wallets WHERE user_id = $1`, userID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return balance, err
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, reference_id, created_at
		 FROM transactions WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *LedgerRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, reference_id, created_at
		 FROM transactions
		 WHERE ($1 OR created_at >= $2) AND created_at < $3
		 ORDER BY id`,
		from.IsZero(), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// SumByUser recomputes the balance from the ledger itself, for the
// reconciliation job.
func (r *LedgerRepository) SumByUser(ctx context.Context, userID int64) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`, userID,
	).Scan(&sum)
	return sum, err
}

func (r *LedgerRepository) SetBalance(ctx context.Context, userID, balance int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wallets (user_id, balance, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET balance = EXCLUDED.balance, updated_at = now()`,
		userID, balance)
	return err
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
