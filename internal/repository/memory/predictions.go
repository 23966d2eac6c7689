package memory

import (
	"context"
	"sort"
	"time"

	"fantasy_arena/internal/domain"
)

// Predictions is the in-memory PredictionRepository.
type Predictions struct{ s *Store }

func (s *Store) Predictions() *Predictions { return &Predictions{s: s} }

func (r *Predictions) Create(ctx context.Context, p *domain.Prediction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := [2]int64{p.UserID, p.QuestionID}
	if _, exists := r.s.predictionByUQ[key]; exists {
		return domain.ErrDuplicatePrediction
	}

	p.ID = r.s.id()
	cp := *p
	r.s.predictions[p.ID] = &cp
	r.s.predictionByUQ[key] = p.ID
	return nil
}

func (r *Predictions) ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Prediction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Prediction
	for _, p := range r.s.predictions {
		if p.QuestionID == questionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Predictions) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Prediction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Prediction
	for _, p := range r.s.predictions {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Predictions) MarkLocked(ctx context.Context, questionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.predictions {
		if p.QuestionID == questionID {
			p.Locked = true
		}
	}
	return nil
}

// Results is the in-memory ResultRepository.
type Results struct{ s *Store }

func (s *Store) Results() *Results { return &Results{s: s} }

func (r *Results) Create(ctx context.Context, res *domain.Result) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.results[res.QuestionID]; exists {
		return domain.ErrDuplicateResult
	}
	cp := *res
	r.s.results[res.QuestionID] = &cp
	return nil
}

func (r *Results) GetByQuestionID(ctx context.Context, questionID int64) (*domain.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.results[questionID]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

// Outcomes is the in-memory OutcomeRepository.
type Outcomes struct{ s *Store }

func (s *Store) Outcomes() *Outcomes { return &Outcomes{s: s} }

func (r *Outcomes) Create(ctx context.Context, o *domain.Outcome) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.outcomeByPred[o.PredictionID]; exists {
		return domain.ErrDuplicateOutcome
	}
	o.ID = r.s.id()
	cp := *o
	r.s.outcomes[o.ID] = &cp
	r.s.outcomeByPred[o.PredictionID] = o.ID
	return nil
}

func (r *Outcomes) GetByPredictionID(ctx context.Context, predictionID int64) (*domain.Outcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.outcomeByPred[predictionID]
	if !ok {
		return nil, nil
	}
	cp := *r.s.outcomes[id]
	return &cp, nil
}

func (r *Outcomes) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Outcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Outcome
	for _, o := range r.s.outcomes {
		if !from.IsZero() && o.ComputedAt.Before(from) {
			continue
		}
		if !o.ComputedAt.Before(to) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
