package service

import (
	"context"
	"testing"
	"time"

	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/repository/memory"
)

func newBadgeFixture() (*memory.Store, *BadgeService) {
	store := memory.NewStore()
	return store, NewBadgeService(store.Badges(), store.Stats())
}

func recordCorrect(t *testing.T, store *memory.Store, userID int64, n int, hard bool, points int64) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.Stats().RecordOutcome(context.Background(), &domain.Outcome{
			PredictionID:     int64(1000*userID) + int64(i),
			UserID:           userID,
			PointsAwarded:    points,
			CorrectnessRatio: 1.0,
			ComputedAt:       time.Now().UTC(),
		}, hard)
		if err != nil {
			t.Fatalf("RecordOutcome: %v", err)
		}
	}
}

func hasBadge(types []domain.BadgeType, want domain.BadgeType) bool {
	for _, bt := range types {
		if bt == want {
			return true
		}
	}
	return false
}

func TestEvaluateUserFirstWin(t *testing.T) {
	store, svc := newBadgeFixture()
	recordCorrect(t, store, 1, 1, false, 100)

	granted, err := svc.EvaluateUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("EvaluateUser: %v", err)
	}
	if !hasBadge(granted, domain.BadgeFirstWin) {
		t.Fatalf("expected first_win, got %v", granted)
	}

	// Second evaluation must grant nothing new.
	granted, err = svc.EvaluateUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("EvaluateUser: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("badges must be granted once, got %v", granted)
	}
}

func TestEvaluateUserThresholds(t *testing.T) {
	store, svc := newBadgeFixture()
	// 25 correct hard answers at 400 points each crosses the sharpshooter,
	// hard hitter, on fire and high roller thresholds at once.
	recordCorrect(t, store, 1, 25, true, 400)

	granted, err := svc.EvaluateUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("EvaluateUser: %v", err)
	}
	for _, want := range []domain.BadgeType{
		domain.BadgeFirstWin,
		domain.BadgeSharpshooter,
		domain.BadgeHardHitter,
		domain.BadgeOnFire,
		domain.BadgeHighRoller,
	} {
		if !hasBadge(granted, want) {
			t.Fatalf("expected %s in %v", want, granted)
		}
	}
	if hasBadge(granted, domain.BadgeWeeklyPodium) {
		t.Fatal("weekly_podium is not a stats badge")
	}
}

func TestEvaluateUserNoStats(t *testing.T) {
	_, svc := newBadgeFixture()
	granted, err := svc.EvaluateUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("EvaluateUser: %v", err)
	}
	if len(granted) != 0 {
		t.Fatalf("fresh user earned %v", granted)
	}
}

func TestAwardPodiumOnce(t *testing.T) {
	_, svc := newBadgeFixture()

	granted, err := svc.AwardPodium(context.Background(), 1)
	if err != nil || !granted {
		t.Fatalf("AwardPodium = %v, %v; want true", granted, err)
	}
	granted, err = svc.AwardPodium(context.Background(), 1)
	if err != nil || granted {
		t.Fatalf("second AwardPodium = %v, %v; want false", granted, err)
	}

	badges, err := svc.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(badges) != 1 || badges[0].Type != domain.BadgeWeeklyPodium {
		t.Fatalf("unexpected badges: %+v", badges)
	}
}
