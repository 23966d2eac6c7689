package service

import (
	"context"
	"time"

	"fantasy_arena/internal/domain"
)

// badgePredicate is a pure threshold check over cumulative stats. Predicates
// have no side effects beyond the grant the evaluator performs.
type badgePredicate struct {
	Type domain.BadgeType
	Met  func(*domain.UserStats) bool
}

var statPredicates = []badgePredicate{
	{domain.BadgeFirstWin, func(st *domain.UserStats) bool { return st.CorrectPredictions >= 1 }},
	{domain.BadgeSharpshooter, func(st *domain.UserStats) bool { return st.CorrectPredictions >= 25 }},
	{domain.BadgeHardHitter, func(st *domain.UserStats) bool { return st.CorrectHard >= 10 }},
	{domain.BadgeOnFire, func(st *domain.UserStats) bool { return st.BestStreak >= 7 }},
	{domain.BadgeHighRoller, func(st *domain.UserStats) bool { return st.TotalPoints >= 10000 }},
}

// BadgeService grants badges when threshold predicates are met. Each badge
// is granted at most once per user; the repository existence check makes
// evaluation idempotent.
type BadgeService struct {
	badges BadgeRepository
	stats  StatsRepository
}

func NewBadgeService(badges BadgeRepository, stats StatsRepository) *BadgeService {
	return &BadgeService{badges: badges, stats: stats}
}

// EvaluateUser runs every stat predicate for the user and returns the badge
// types granted by this call.
func (s *BadgeService) EvaluateUser(ctx context.Context, userID int64) ([]domain.BadgeType, error) {
	st, err := s.stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var granted []domain.BadgeType
	for _, p := range statPredicates {
		if !p.Met(st) {
			continue
		}
		ok, err := s.badges.Grant(ctx, &domain.Badge{
			UserID:    userID,
			Type:      p.Type,
			AwardedAt: time.Now().UTC(),
		})
		if err != nil {
			return granted, err
		}
		if ok {
			granted = append(granted, p.Type)
		}
	}
	return granted, nil
}

// AwardPodium grants the weekly top-3 badge. Called by the leaderboard
// aggregator after a weekly recompute; rank is not derivable from stats
// alone, so this predicate lives with the ranking.
func (s *BadgeService) AwardPodium(ctx context.Context, userID int64) (bool, error) {
	return s.badges.Grant(ctx, &domain.Badge{
		UserID:    userID,
		Type:      domain.BadgeWeeklyPodium,
		AwardedAt: time.Now().UTC(),
	})
}

// ListByUser returns the user's badges.
func (s *BadgeService) ListByUser(ctx context.Context, userID int64) ([]*domain.Badge, error) {
	return s.badges.ListByUser(ctx, userID)
}
