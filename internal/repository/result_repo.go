package repository

import (
	"context"
	"encoding/json"
	"errors"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResultRepository struct {
	db *pgxpool.Pool
}

func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create declares the outcome of a question. question_id is the primary
// key, so a second declaration loses the conflict and the first stays
// authoritative.
func (r *ResultRepository) Create(ctx context.Context, res *domain.Result) error {
	actual, err := json.Marshal(res.Actual)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`INSERT INTO results (question_id, actual, declared_at, declared_by)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (question_id) DO NOTHING`,
		res.QuestionID, actual, res.DeclaredAt, res.DeclaredBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateResult
	}
	return nil
}

func (r *ResultRepository) GetByQuestionID(ctx context.Context, questionID int64) (*domain.Result, error) {
	var (
		res    domain.Result
		actual []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT question_id, actual, declared_at, declared_by
		 FROM results WHERE question_id = $1`,
		questionID,
	).Scan(&res.QuestionID, &actual, &res.DeclaredAt, &res.DeclaredBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actual, &res.Actual); err != nil {
		return nil, err
	}
	return &res, nil
}
