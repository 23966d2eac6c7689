package domain

import "time"

// BadgeType identifies an achievement badge.
type BadgeType string

const (
	BadgeFirstWin     BadgeType = "first_win"      // first fully correct prediction
	BadgeSharpshooter BadgeType = "sharpshooter"   // 25 correct predictions
	BadgeHardHitter   BadgeType = "hard_hitter"    // 10 correct HARD predictions
	BadgeOnFire       BadgeType = "on_fire"        // 7-long correct streak
	BadgeHighRoller   BadgeType = "high_roller"    // 10000 lifetime points
	BadgeWeeklyPodium BadgeType = "weekly_podium"  // top-3 in a weekly leaderboard
)

// Badge is a one-time grant. At most one exists per (user, type) and it is
// never revoked.
type Badge struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Type      BadgeType `db:"badge_type" json:"badge_type"`
	AwardedAt time.Time `db:"awarded_at" json:"awarded_at"`
}

// UserStats is the cumulative scoring history for one user, maintained as a
// projection of outcomes. Badge predicates are pure functions of this.
type UserStats struct {
	UserID            int64     `db:"user_id" json:"user_id"`
	TotalPredictions  int64     `db:"total_predictions" json:"total_predictions"`
	CorrectPredictions int64    `db:"correct_predictions" json:"correct_predictions"`
	CorrectHard       int64     `db:"correct_hard" json:"correct_hard"`
	CurrentStreak     int       `db:"current_streak" json:"current_streak"`
	BestStreak        int       `db:"best_streak" json:"best_streak"`
	TotalPoints       int64     `db:"total_points" json:"total_points"`
	LastScoredAt      time.Time `db:"last_scored_at" json:"last_scored_at"`
}
