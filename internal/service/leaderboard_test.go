package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/repository/memory"
)

func newLeaderboardFixture(cache *redis.Client) (*memory.Store, *LeaderboardService) {
	store := memory.NewStore()
	badges := NewBadgeService(store.Badges(), store.Stats())
	svc := NewLeaderboardService(store.Outcomes(), store.Ledger(), store.Badges(), badges, cache)
	return store, svc
}

var outcomeSeq int64

func addOutcome(t *testing.T, store *memory.Store, userID int64, points int64, ratio float64, at time.Time) {
	t.Helper()
	outcomeSeq++
	err := store.Outcomes().Create(context.Background(), &domain.Outcome{
		PredictionID:     outcomeSeq,
		UserID:           userID,
		QuestionID:       1,
		PointsAwarded:    points,
		CorrectnessRatio: ratio,
		ComputedAt:       at,
	})
	if err != nil {
		t.Fatalf("create outcome: %v", err)
	}
}

func TestRecomputeOrdering(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) // Wednesday
	svc.now = func() time.Time { return now }

	// A and B tie on points; A finished earlier so A ranks first.
	addOutcome(t, store, 1, 200, 1.0, now.Add(-3*time.Hour))
	addOutcome(t, store, 1, 100, 1.0, now.Add(-2*time.Hour))
	addOutcome(t, store, 2, 300, 1.0, now.Add(-1*time.Hour))
	addOutcome(t, store, 3, 100, 0.5, now.Add(-1*time.Hour))

	entries, err := svc.Recompute(context.Background(), domain.PeriodOverall)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].UserID != 1 || entries[1].UserID != 2 || entries[2].UserID != 3 {
		t.Fatalf("unexpected order: %+v", entries)
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, e.Rank)
		}
	}

	if entries[0].GamesPlayed != 2 || entries[0].WinRate != 1.0 {
		t.Fatalf("unexpected stats for leader: %+v", entries[0])
	}
	if entries[2].WinRate != 0 {
		t.Fatalf("partial credit must not count toward win rate: %+v", entries[2])
	}
}

func TestRecomputeCoinsEarned(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	now := time.Now().UTC()
	ctx := context.Background()

	addOutcome(t, store, 1, 100, 1.0, now.Add(-time.Hour))
	if _, err := store.Ledger().Append(ctx, &domain.Transaction{
		UserID: 1, Type: domain.TxPredictionCorrect, Amount: 100,
		ReferenceID: "prediction:1", CreatedAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Negative adjustments never show up in coinsEarned.
	if _, err := store.Ledger().Append(ctx, &domain.Transaction{
		UserID: 1, Type: domain.TxAdminAdjustment, Amount: -40,
		ReferenceID: "adjust:1", CreatedAt: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := svc.Recompute(ctx, domain.PeriodOverall)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if entries[0].CoinsEarned != 100 {
		t.Fatalf("coinsEarned = %d, want 100", entries[0].CoinsEarned)
	}
}

func TestRecomputeRepeatable(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	now := time.Now().UTC()
	svc.now = func() time.Time { return now }

	addOutcome(t, store, 1, 300, 1.0, now.Add(-2*time.Hour))
	addOutcome(t, store, 2, 200, 0.0, now.Add(-time.Hour))

	first, err := svc.Recompute(context.Background(), domain.PeriodOverall)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := svc.Recompute(context.Background(), domain.PeriodOverall)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recompute drifted:\n%+v\nvs\n%+v", first, second)
	}
}

func TestRecomputeDailyWindow(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	now := time.Now().UTC()
	svc.now = func() time.Time { return now }

	addOutcome(t, store, 1, 100, 1.0, now.Add(-time.Hour))
	addOutcome(t, store, 2, 500, 1.0, now.Add(-30*time.Hour)) // outside the window

	entries, err := svc.Recompute(context.Background(), domain.PeriodDaily)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 1 {
		t.Fatalf("daily window leaked old outcomes: %+v", entries)
	}
}

func TestWeeklyRecomputeAwardsPodium(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	now := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC) // Friday
	svc.now = func() time.Time { return now }

	for userID := int64(1); userID <= 5; userID++ {
		addOutcome(t, store, userID, 100*(6-userID), 1.0, now.Add(-time.Hour))
	}

	if _, err := svc.Recompute(context.Background(), domain.PeriodWeekly); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	types, err := store.Badges().TypesByUser(context.Background())
	if err != nil {
		t.Fatalf("TypesByUser: %v", err)
	}
	for userID := int64(1); userID <= 3; userID++ {
		if !hasBadge(types[userID], domain.BadgeWeeklyPodium) {
			t.Fatalf("user %d missing podium badge", userID)
		}
	}
	for userID := int64(4); userID <= 5; userID++ {
		if hasBadge(types[userID], domain.BadgeWeeklyPodium) {
			t.Fatalf("user %d should not have a podium badge", userID)
		}
	}
}

func TestRecomputeInvalidPeriod(t *testing.T) {
	_, svc := newLeaderboardFixture(nil)
	if _, err := svc.Recompute(context.Background(), "hourly"); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestLeaderboardNotify(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	addOutcome(t, store, 1, 100, 1.0, time.Now().UTC().Add(-time.Hour))

	var gotPeriod domain.Period
	var gotEntries []domain.LeaderboardEntry
	svc.SetNotify(func(p domain.Period, entries []domain.LeaderboardEntry) {
		gotPeriod = p
		gotEntries = entries
	})

	if _, err := svc.Recompute(context.Background(), domain.PeriodOverall); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if gotPeriod != domain.PeriodOverall || len(gotEntries) != 1 {
		t.Fatalf("notify not invoked with the fresh board: %s %v", gotPeriod, gotEntries)
	}
}

func TestLeaderboardSnapshotCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, svc := newLeaderboardFixture(client)
	now := time.Now().UTC()
	svc.now = func() time.Time { return now }

	addOutcome(t, store, 1, 100, 1.0, now.Add(-time.Hour))
	if _, err := svc.Recompute(context.Background(), domain.PeriodOverall); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	// New outcomes do not appear until the snapshot expires.
	addOutcome(t, store, 2, 900, 1.0, now.Add(-30*time.Minute))
	entries, err := svc.Top(context.Background(), domain.PeriodOverall, 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID != 1 {
		t.Fatalf("expected cached snapshot, got %+v", entries)
	}

	mr.FastForward(snapshotTTL + time.Second)
	entries, err = svc.Top(context.Background(), domain.PeriodOverall, 10)
	if err != nil {
		t.Fatalf("Top after expiry: %v", err)
	}
	if len(entries) != 2 || entries[0].UserID != 2 {
		t.Fatalf("expected fresh recompute after expiry, got %+v", entries)
	}
}

func TestRankUnrankedUser(t *testing.T) {
	store, svc := newLeaderboardFixture(nil)
	addOutcome(t, store, 1, 100, 1.0, time.Now().UTC().Add(-time.Hour))

	entry, err := svc.Rank(context.Background(), domain.PeriodOverall, 42)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry for unranked user, got %+v", entry)
	}
}
