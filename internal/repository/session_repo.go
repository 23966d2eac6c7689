package repository

import (
	"context"
	"encoding/json"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ids, err := json.Marshal(s.QuestionIDs)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO sessions (user_id, game_type, event_id, question_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.UserID, s.GameType, s.EventID, ids, s.CreatedAt,
	).Scan(&s.ID)
}

// RecentQuestionIDs collects the question ids served in the user's last
// lastN sessions of a game type, for the selector's cooldown window.
func (r *SessionRepository) RecentQuestionIDs(ctx context.Context, userID int64, gt domain.GameType, lastN int) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT question_ids FROM sessions
		 WHERE user_id = $1 AND game_type = $2
		 ORDER BY id DESC
		 LIMIT $3`,
		userID, gt, lastN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[int64]bool)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var ids []int64
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id] = true
		}
	}
	return seen, rows.Err()
}
