package repository

import (
	"context"
	"errors"
	"time"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OutcomeRepository struct {
	db *pgxpool.Pool
}

func NewOutcomeRepository(db *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// Create records the scored outcome of a prediction. The unique index on
// prediction_id makes repeated scoring passes no-ops.
func (r *OutcomeRepository) Create(ctx context.Context, o *domain.Outcome) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO outcomes (prediction_id, user_id, question_id, points_awarded, correctness_ratio, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (prediction_id) DO NOTHING
		 RETURNING id`,
		o.PredictionID, o.UserID, o.QuestionID, o.PointsAwarded, o.CorrectnessRatio, o.ComputedAt,
	).Scan(&o.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDuplicateOutcome
	}
	return err
}

func (r *OutcomeRepository) GetByPredictionID(ctx context.Context, predictionID int64) (*domain.Outcome, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, prediction_id, user_id, question_id, points_awarded, correctness_ratio, computed_at
		 FROM outcomes WHERE prediction_id = $1`,
		predictionID)
	o, err := scanOutcome(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

// ListBetween returns outcomes computed in [from, to). A zero from means
// no lower bound.
func (r *OutcomeRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Outcome, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, prediction_id, user_id, question_id, points_awarded, correctness_ratio, computed_at
		 FROM outcomes
		 WHERE ($1 OR computed_at >= $2) AND computed_at < $3
		 ORDER BY id`,
		from.IsZero(), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOutcome(row pgx.Row) (*domain.Outcome, error) {
	var o domain.Outcome
	if err := row.Scan(&o.ID, &o.PredictionID, &o.UserID, &o.QuestionID, &o.PointsAwarded, &o.CorrectnessRatio, &o.ComputedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
