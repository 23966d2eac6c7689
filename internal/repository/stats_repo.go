package repository

import (
	"context"
	"errors"

	"fantasy_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Get(ctx context.Context, userID int64) (*domain.UserStats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, total_predictions, correct_predictions, correct_hard,
		        current_streak, best_streak, total_points, last_scored_at
		 FROM user_stats WHERE user_id = $1`,
		userID)
	s, err := scanStats(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.UserStats{UserID: userID}, nil
	}
	return s, err
}

// RecordOutcome folds one scored outcome into the user's running stats.
// A correct outcome advances the streak, anything else resets it. The
// whole update is a single upsert so two scoring workers cannot lose an
// increment.
func (r *StatsRepository) RecordOutcome(ctx context.Context, o *domain.Outcome, hard bool) (*domain.UserStats, error) {
	correct := o.Correct()
	correctInc, hardInc, streakInit := 0, 0, 0
	if correct {
		correctInc = 1
		streakInit = 1
		if hard {
			hardInc = 1
		}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO user_stats
		   (user_id, total_predictions, correct_predictions, correct_hard,
		    current_streak, best_streak, total_points, last_scored_at)
		 VALUES ($1, 1, $2, $3, $4, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   total_predictions   = user_stats.total_predictions + 1,
		   correct_predictions = user_stats.correct_predictions + $2,
		   correct_hard        = user_stats.correct_hard + $3,
		   current_streak      = CASE WHEN $7 THEN user_stats.current_streak + 1 ELSE 0 END,
		   best_streak         = GREATEST(user_stats.best_streak,
		                           CASE WHEN $7 THEN user_stats.current_streak + 1 ELSE 0 END),
		   total_points        = user_stats.total_points + $5,
		   last_scored_at      = $6
		 RETURNING user_id, total_predictions, correct_predictions, correct_hard,
		           current_streak, best_streak, total_points, last_scored_at`,
		o.UserID, correctInc, hardInc, streakInit, o.PointsAwarded, o.ComputedAt, correct)
	return scanStats(row)
}

func scanStats(row pgx.Row) (*domain.UserStats, error) {
	var s domain.UserStats
	if err := row.Scan(
		&s.UserID, &s.TotalPredictions, &s.CorrectPredictions, &s.CorrectHard,
		&s.CurrentStreak, &s.BestStreak, &s.TotalPoints, &s.LastScoredAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
