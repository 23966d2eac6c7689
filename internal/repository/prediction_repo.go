package repository

import (
	"context"
	"encoding/json"
	"errors"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PredictionRepository struct {
	db *pgxpool.Pool
}

func NewPredictionRepository(db *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create inserts one prediction per (user, question). The unique index
// enforces the guard under concurrent submits.
func (r *PredictionRepository) Create(ctx context.Context, p *domain.Prediction) error {
	value, err := json.Marshal(p.Value)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx,
		`INSERT INTO predictions (user_id, question_id, session_id, value, submitted_at, locked)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, question_id) DO NOTHING
		 RETURNING id`,
		p.UserID, p.QuestionID, p.SessionID, value, p.SubmittedAt, p.Locked,
	).Scan(&p.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDuplicatePrediction
	}
	return err
}

func (r *PredictionRepository) ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Prediction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, question_id, session_id, value, submitted_at, locked
		 FROM predictions WHERE question_id = $1 ORDER BY id`,
		questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPredictions(rows)
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Prediction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, question_id, session_id, value, submitted_at, locked
		 FROM predictions WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPredictions(rows)
}

func (r *PredictionRepository) MarkLocked(ctx context.Context, questionID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE predictions SET locked = true WHERE question_id = $1 AND locked = false`,
		questionID)
	return err
}

func collectPredictions(rows pgx.Rows) ([]*domain.Prediction, error) {
	var out []*domain.Prediction
	for rows.Next() {
		var (
			p     domain.Prediction
			value []byte
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.QuestionID, &p.SessionID, &value, &p.SubmittedAt, &p.Locked); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(value, &p.Value); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
