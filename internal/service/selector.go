package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
)

// weight for event-tagged questions when an event filter is given; evergreen
// questions stay at 1 so they back-fill rather than dominate.
const eventWeight = 3

// SelectorService picks a bounded, diverse, non-repeating question set for a
// session. Selection is weighted random sampling without replacement and is
// deterministic for a fixed seed.
type SelectorService struct {
	questions QuestionRepository
	sessions  SessionRepository
	catalog   *catalog.Catalog

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewSelector creates a selector. A zero seed falls back to the clock.
func NewSelector(questions QuestionRepository, sessions SessionRepository, cat *catalog.Catalog, seed int64) *SelectorService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SelectorService{
		questions: questions,
		sessions:  sessions,
		catalog:   cat,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// SelectQuestions returns up to n questions for the user. A small pool is
// never an error: the target difficulty mix is relaxed first, then the
// cool-down window, then the count. The served set is recorded as a session
// so it feeds the next cool-down window.
func (s *SelectorService) SelectQuestions(ctx context.Context, userID int64, gt domain.GameType, eventID *int64, n int) (*domain.Session, []*domain.Question, error) {
	cfg, err := s.catalog.Config(gt)
	if err != nil {
		return nil, nil, err
	}
	if n <= 0 || n > cfg.MaxQuestionsPerSession {
		n = cfg.MaxQuestionsPerSession
	}

	pool, err := s.questions.ListActive(ctx, gt, eventID)
	if err != nil {
		return nil, nil, err
	}
	// Stable order so sampling depends only on the seed.
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	recent, err := s.sessions.RecentQuestionIDs(ctx, userID, gt, s.catalog.CooldownSessions())
	if err != nil {
		return nil, nil, err
	}

	var eligible, cooled []*domain.Question
	for _, q := range pool {
		if recent[q.ID] {
			cooled = append(cooled, q)
			continue
		}
		eligible = append(eligible, q)
	}

	s.mu.Lock()
	selected := s.sampleWithMix(eligible, eventID, n)
	if len(selected) < n {
		// Relax the cool-down before giving up on the count.
		selected = append(selected, s.weightedSample(cooled, eventID, n-len(selected))...)
	}
	s.mu.Unlock()

	if len(selected) < n {
		selectorShortfalls.Inc()
	}
	if len(selected) == 0 {
		return nil, nil, nil
	}

	sess := &domain.Session{
		UserID:    userID,
		GameType:  gt,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	for _, q := range selected {
		sess.QuestionIDs = append(sess.QuestionIDs, q.ID)
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	return sess, selected, nil
}

// sampleWithMix draws per-difficulty quotas first, then back-fills from the
// remaining eligible questions when a bucket runs dry. Caller holds s.mu.
func (s *SelectorService) sampleWithMix(eligible []*domain.Question, eventID *int64, n int) []*domain.Question {
	buckets := map[domain.Difficulty][]*domain.Question{}
	for _, q := range eligible {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	order := []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}
	mix := s.catalog.Mix()

	quotas := map[domain.Difficulty]int{}
	assigned := 0
	for _, d := range order {
		quotas[d] = int(float64(n) * mix[d])
		assigned += quotas[d]
	}
	// Rounding remainder goes to medium.
	quotas[domain.DifficultyMedium] += n - assigned

	var selected []*domain.Question
	taken := map[int64]bool{}
	for _, d := range order {
		picks := s.weightedSample(buckets[d], eventID, quotas[d])
		for _, q := range picks {
			taken[q.ID] = true
		}
		selected = append(selected, picks...)
	}

	if len(selected) < n {
		// Relax the mix: fill from whatever is left, any difficulty.
		var rest []*domain.Question
		for _, q := range eligible {
			if !taken[q.ID] {
				rest = append(rest, q)
			}
		}
		selected = append(selected, s.weightedSample(rest, eventID, n-len(selected))...)
	}
	return selected
}

// weightedSample draws up to k questions without replacement, favoring
// event-tagged questions when an event filter is present. Caller holds s.mu.
func (s *SelectorService) weightedSample(items []*domain.Question, eventID *int64, k int) []*domain.Question {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	pool := make([]*domain.Question, len(items))
	copy(pool, items)

	weight := func(q *domain.Question) int {
		if eventID != nil && !q.Evergreen() {
			return eventWeight
		}
		return 1
	}

	var out []*domain.Question
	for len(out) < k && len(pool) > 0 {
		total := 0
		for _, q := range pool {
			total += weight(q)
		}
		roll := s.rng.Intn(total)
		idx := 0
		for i, q := range pool {
			roll -= weight(q)
			if roll < 0 {
				idx = i
				break
			}
		}
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}
