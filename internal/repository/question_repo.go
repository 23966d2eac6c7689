package repository

import (
	"context"
	"encoding/json"
	"errors"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepository struct {
	db *pgxpool.Pool
}

func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, game_type, prediction_type, difficulty, event_id, event_start,
	 prompt, options, created_by, reusable, retired, created_at`

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// ListActive returns non-retired questions for a game type. With an event
// filter, event-tagged questions for that event plus evergreen questions
// qualify.
func (r *QuestionRepository) ListActive(ctx context.Context, gt domain.GameType, eventID *int64) ([]*domain.Question, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if eventID != nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+questionColumns+`
			 FROM questions
			 WHERE game_type = $1 AND retired = false
			   AND (event_id = $2 OR event_id IS NULL)
			 ORDER BY id`,
			gt, *eventID)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+questionColumns+`
			 FROM questions
			 WHERE game_type = $1 AND retired = false
			 ORDER BY id`,
			gt)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Retire soft-retires a question; the engine never mutates questions
// otherwise.
func (r *QuestionRepository) Retire(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE questions SET retired = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var (
		q       domain.Question
		options []byte
	)
	if err := row.Scan(
		&q.ID, &q.GameType, &q.PredictionType, &q.Difficulty, &q.EventID, &q.EventStart,
		&q.Prompt, &options, &q.CreatedBy, &q.Reusable, &q.Retired, &q.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(options) > 0 {
		_ = json.Unmarshal(options, &q.Options)
	}
	return &q, nil
}
