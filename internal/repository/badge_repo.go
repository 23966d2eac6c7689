package repository

import (
	"context"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BadgeRepository struct {
	db *pgxpool.Pool
}

func NewBadgeRepository(db *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Grant awards a badge once per user. Returns false when the user already
// holds it.
func (r *BadgeRepository) Grant(ctx context.Context, b *domain.Badge) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO badges (user_id, badge_type, awarded_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, badge_type) DO NOTHING`,
		b.UserID, b.Type, b.AwardedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BadgeRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Badge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, badge_type, awarded_at
		 FROM badges WHERE user_id = $1 ORDER BY awarded_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Badge
	for rows.Next() {
		var b domain.Badge
		if err := rows.Scan(&b.UserID, &b.Type, &b.AwardedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// TypesByUser loads every user's badge types in one query, for the
// leaderboard projection.
func (r *BadgeRepository) TypesByUser(ctx context.Context) (map[int64][]domain.BadgeType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, badge_type FROM badges ORDER BY user_id, badge_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.BadgeType)
	for rows.Next() {
		var (
			userID int64
			bt     domain.BadgeType
		)
		if err := rows.Scan(&userID, &bt); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], bt)
	}
	return out, rows.Err()
}
