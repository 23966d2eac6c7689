package memory

import (
	"context"

	"fantasy_arena/internal/domain"
)

// Questions is the in-memory QuestionRepository.
type Questions struct{ s *Store }

func (s *Store) Questions() *Questions { return &Questions{s: s} }

func (r *Questions) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *Questions) ListActive(ctx context.Context, gt domain.GameType, eventID *int64) ([]*domain.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Question
	for _, q := range r.s.questions {
		if q.Retired || q.GameType != gt {
			continue
		}
		if eventID != nil && !q.Evergreen() && *q.EventID != *eventID {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Questions) Retire(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.Retired = true
	return nil
}

// Sessions is the in-memory SessionRepository.
type Sessions struct{ s *Store }

func (s *Store) Sessions() *Sessions { return &Sessions{s: s} }

func (r *Sessions) Create(ctx context.Context, sess *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess.ID = r.s.id()
	cp := *sess
	r.s.sessions = append(r.s.sessions, &cp)
	return nil
}

func (r *Sessions) RecentQuestionIDs(ctx context.Context, userID int64, gt domain.GameType, lastN int) (map[int64]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[int64]bool)
	count := 0
	for i := len(r.s.sessions) - 1; i >= 0 && count < lastN; i-- {
		sess := r.s.sessions[i]
		if sess.UserID != userID || sess.GameType != gt {
			continue
		}
		for _, qid := range sess.QuestionIDs {
			seen[qid] = true
		}
		count++
	}
	return seen, nil
}
