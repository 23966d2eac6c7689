package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/logger"
)

const snapshotTTL = 5 * time.Minute

// NotifyFunc receives freshly recomputed boards, e.g. for the websocket
// feed.
type NotifyFunc func(period domain.Period, entries []domain.LeaderboardEntry)

// LeaderboardService projects ranked boards from the outcome and
// transaction history. Recomputation is a pure, repeatable projection over
// a consistent read of the logs, never an incremental patch, so re-running
// after a late correction cannot drift. Concurrent recomputes of the same
// period collapse into one via singleflight.
type LeaderboardService struct {
	outcomes OutcomeRepository
	ledger   LedgerRepository
	badges   BadgeRepository
	podium   *BadgeService

	cache  *redis.Client // optional snapshot cache
	sf     singleflight.Group
	now    func() time.Time
	notify NotifyFunc
}

func NewLeaderboardService(outcomes OutcomeRepository, ledger LedgerRepository, badges BadgeRepository, podium *BadgeService, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		outcomes: outcomes,
		ledger:   ledger,
		badges:   badges,
		podium:   podium,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetNotify registers a callback invoked after every recompute.
func (s *LeaderboardService) SetNotify(fn NotifyFunc) {
	s.notify = fn
}

// Recompute rebuilds the board for a period: totalPoints and winRate from
// outcomes, coinsEarned from reward transactions, ranks in a strict total
// order (points desc, earliest final-total timestamp, then userID).
func (s *LeaderboardService) Recompute(ctx context.Context, period domain.Period) ([]domain.LeaderboardEntry, error) {
	if !domain.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: unknown period %q", domain.ErrValidation, period)
	}

	v, err, _ := s.sf.Do(string(period), func() (interface{}, error) {
		return s.recompute(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.LeaderboardEntry), nil
}

func (s *LeaderboardService) recompute(ctx context.Context, period domain.Period) ([]domain.LeaderboardEntry, error) {
	from, to := period.Window(s.now())

	outs, err := s.outcomes.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	txs, err := s.ledger.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	badgeTypes, err := s.badges.TypesByUser(ctx)
	if err != nil {
		return nil, err
	}

	rows := map[int64]*domain.LeaderboardEntry{}
	row := func(userID int64) *domain.LeaderboardEntry {
		e, ok := rows[userID]
		if !ok {
			e = &domain.LeaderboardEntry{UserID: userID, Period: period, Badges: badgeTypes[userID]}
			rows[userID] = e
		}
		return e
	}

	correct := map[int64]int64{}
	for _, o := range outs {
		e := row(o.UserID)
		e.TotalPoints += o.PointsAwarded
		e.GamesPlayed++
		if o.Correct() {
			correct[o.UserID]++
		}
		if o.ComputedAt.After(e.LastScoredAt) {
			e.LastScoredAt = o.ComputedAt
		}
	}
	for _, tx := range txs {
		if tx.Amount > 0 {
			row(tx.UserID).CoinsEarned += tx.Amount
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for userID, e := range rows {
		if e.GamesPlayed > 0 {
			e.WinRate = float64(correct[userID]) / float64(e.GamesPlayed)
		}
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if !a.LastScoredAt.Equal(b.LastScoredAt) {
			return a.LastScoredAt.Before(b.LastScoredAt)
		}
		return a.UserID < b.UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	if period == domain.PeriodWeekly {
		s.awardPodium(ctx, entries)
	}
	s.cacheSnapshot(ctx, period, entries)

	leaderboardRecomputes.WithLabelValues(string(period)).Inc()
	if s.notify != nil {
		s.notify(period, entries)
	}
	return entries, nil
}

// Top returns the first limit entries, preferring the cached snapshot.
func (s *LeaderboardService) Top(ctx context.Context, period domain.Period, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, ok := s.cachedSnapshot(ctx, period)
	if !ok {
		var err error
		entries, err = s.Recompute(ctx, period)
		if err != nil {
			return nil, err
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Rank returns the user's entry for a period, or nil when unranked.
func (s *LeaderboardService) Rank(ctx context.Context, period domain.Period, userID int64) (*domain.LeaderboardEntry, error) {
	entries, ok := s.cachedSnapshot(ctx, period)
	if !ok {
		var err error
		entries, err = s.Recompute(ctx, period)
		if err != nil {
			return nil, err
		}
	}
	for i := range entries {
		if entries[i].UserID == userID {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func (s *LeaderboardService) awardPodium(ctx context.Context, entries []domain.LeaderboardEntry) {
	for i := 0; i < len(entries) && i < 3; i++ {
		if _, err := s.podium.AwardPodium(ctx, entries[i].UserID); err != nil {
			logger.Warn("podium badge grant failed", "user_id", entries[i].UserID, "error", err)
		}
	}
}

func snapshotKey(period domain.Period) string {
	return "leaderboard:" + string(period) + ":snapshot"
}

func zsetKey(period domain.Period) string {
	return "leaderboard:" + string(period)
}

// cacheSnapshot writes the board to redis, both as a JSON snapshot for
// reads and as a ZSET for ad-hoc range queries. Best effort: cache
// failures never fail a recompute.
func (s *LeaderboardService) cacheSnapshot(ctx context.Context, period domain.Period, entries []domain.LeaderboardEntry) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return
	}

	pipe := s.cache.Pipeline()
	pipe.Set(ctx, snapshotKey(period), data, snapshotTTL)
	zkey := zsetKey(period)
	pipe.Del(ctx, zkey)
	for _, e := range entries {
		pipe.ZAdd(ctx, zkey, redis.Z{Score: float64(e.TotalPoints), Member: fmt.Sprintf("%d", e.UserID)})
	}
	pipe.Expire(ctx, zkey, snapshotTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("leaderboard cache write failed", "period", period, "error", err)
	}
}

func (s *LeaderboardService) cachedSnapshot(ctx context.Context, period domain.Period) ([]domain.LeaderboardEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, snapshotKey(period)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}
