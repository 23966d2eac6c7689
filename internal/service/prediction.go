package service

import (
	"context"
	"fmt"
	"time"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
)

// PredictionService is the write side of the prediction ledger: one
// submission per (user, question), shape-checked and lock-in-checked at
// write time so bad submissions never reach scoring.
type PredictionService struct {
	questions   QuestionRepository
	predictions PredictionRepository
	results     ResultRepository
	catalog     *catalog.Catalog

	now func() time.Time
}

func NewPredictionService(questions QuestionRepository, predictions PredictionRepository, results ResultRepository, cat *catalog.Catalog) *PredictionService {
	return &PredictionService{
		questions:   questions,
		predictions: predictions,
		results:     results,
		catalog:     cat,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and records a prediction. Late or malformed submissions
// fail with domain.ErrValidation; a repeat for the same question fails with
// domain.ErrDuplicatePrediction.
func (s *PredictionService) Submit(ctx context.Context, userID, questionID, sessionID int64, value domain.AnswerValue) (*domain.Prediction, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.Retired {
		return nil, fmt.Errorf("%w: question %d is retired", domain.ErrValidation, questionID)
	}

	if err := s.validateShape(q, value); err != nil {
		return nil, err
	}

	cfg, err := s.catalog.Config(q.GameType)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if deadline, ok := q.LockInDeadline(cfg.LockInOffset); ok && !now.Before(deadline) {
		return nil, domain.ErrLockedIn
	}

	// A declared result locks the question regardless of the event clock.
	res, err := s.results.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if res != nil {
		return nil, domain.ErrLockedIn
	}

	p := &domain.Prediction{
		UserID:      userID,
		QuestionID:  questionID,
		SessionID:   sessionID,
		Value:       value,
		SubmittedAt: now,
	}
	if err := s.predictions.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// History returns the user's most recent predictions.
func (s *PredictionService) History(ctx context.Context, userID int64, limit int) ([]*domain.Prediction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.predictions.ListByUser(ctx, userID, limit)
}

func (s *PredictionService) validateShape(q *domain.Question, value domain.AnswerValue) error {
	if !value.MatchesType(q.PredictionType) {
		return fmt.Errorf("%w: answer shape does not match %s", domain.ErrValidation, q.PredictionType)
	}

	switch q.PredictionType {
	case domain.PredictionBinary, domain.PredictionMultipleChoice:
		if len(q.Options) > 0 && !q.HasOption(value.Choice) {
			return fmt.Errorf("%w: %q is not an option", domain.ErrValidation, value.Choice)
		}
	case domain.PredictionRanking:
		if len(value.Order) != len(q.Options) {
			return fmt.Errorf("%w: ranking must order all %d items", domain.ErrValidation, len(q.Options))
		}
		seen := make(map[string]bool, len(value.Order))
		for _, item := range value.Order {
			if !q.HasOption(item) {
				return fmt.Errorf("%w: %q is not a ranking item", domain.ErrValidation, item)
			}
			if seen[item] {
				return fmt.Errorf("%w: %q ranked twice", domain.ErrValidation, item)
			}
			seen[item] = true
		}
	}
	return nil
}
