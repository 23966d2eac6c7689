package memory

import (
	"context"
	"sort"
	"time"

	"fantasy_arena/internal/domain"
)

// Badges is the in-memory BadgeRepository.
type Badges struct{ s *Store }

func (s *Store) Badges() *Badges { return &Badges{s: s} }

func (r *Badges) Grant(ctx context.Context, b *domain.Badge) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byType, ok := r.s.badges[b.UserID]
	if !ok {
		byType = make(map[domain.BadgeType]*domain.Badge)
		r.s.badges[b.UserID] = byType
	}
	if _, exists := byType[b.Type]; exists {
		return false, nil
	}
	if b.AwardedAt.IsZero() {
		b.AwardedAt = time.Now().UTC()
	}
	cp := *b
	byType[b.Type] = &cp
	return true, nil
}

func (r *Badges) ListByUser(ctx context.Context, userID int64) ([]*domain.Badge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Badge
	for _, b := range r.s.badges[userID] {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AwardedAt.Before(out[j].AwardedAt) })
	return out, nil
}

func (r *Badges) TypesByUser(ctx context.Context) (map[int64][]domain.BadgeType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make(map[int64][]domain.BadgeType, len(r.s.badges))
	for userID, byType := range r.s.badges {
		types := make([]domain.BadgeType, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		out[userID] = types
	}
	return out, nil
}

// Stats is the in-memory StatsRepository.
type Stats struct{ s *Store }

func (s *Store) Stats() *Stats { return &Stats{s: s} }

func (r *Stats) Get(ctx context.Context, userID int64) (*domain.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stats[userID]
	if !ok {
		return &domain.UserStats{UserID: userID}, nil
	}
	cp := *st
	return &cp, nil
}

func (r *Stats) RecordOutcome(ctx context.Context, o *domain.Outcome, hard bool) (*domain.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stats[o.UserID]
	if !ok {
		st = &domain.UserStats{UserID: o.UserID}
		r.s.stats[o.UserID] = st
	}

	st.TotalPredictions++
	st.TotalPoints += o.PointsAwarded
	st.LastScoredAt = o.ComputedAt
	if o.Correct() {
		st.CorrectPredictions++
		if hard {
			st.CorrectHard++
		}
		st.CurrentStreak++
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}
	} else {
		st.CurrentStreak = 0
	}

	cp := *st
	return &cp, nil
}
