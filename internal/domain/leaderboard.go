package domain

import "time"

// Period is the time window a leaderboard is computed over.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodOverall Period = "overall"
)

// ValidPeriod reports whether p is a known period.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodOverall:
		return true
	}
	return false
}

// Window returns the half-open interval [from, to) covered by the period
// relative to now. Daily is the trailing 24h bucket, weekly the current ISO
// week, overall is all-time.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodDaily:
		return now.Add(-24 * time.Hour), now
	case PeriodWeekly:
		day := now.UTC()
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(day.Year(), day.Month(), day.Day()-weekday+1, 0, 0, 0, 0, time.UTC)
		return start, now
	default:
		return time.Time{}, now
	}
}

// LeaderboardEntry is one ranked row. Entries are recomputed as a whole,
// never patched, so rank is always a strict total order within a period.
type LeaderboardEntry struct {
	UserID       int64       `json:"user_id"`
	Period       Period      `json:"period"`
	Rank         int         `json:"rank"`
	TotalPoints  int64       `json:"total_points"`
	GamesPlayed  int64       `json:"games_played"`
	WinRate      float64     `json:"win_rate"`
	CoinsEarned  int64       `json:"coins_earned"`
	Badges       []BadgeType `json:"badges,omitempty"`
	LastScoredAt time.Time   `json:"last_scored_at"`
}
