package service

import (
	"context"
	"time"

	"fantasy_arena/internal/domain"
)

// Repository contracts for the persistence collaborator. The engine is
// storage-agnostic: internal/repository implements these on postgres,
// internal/repository/memory on plain maps for tests. Implementations are
// expected to enforce the uniqueness guards and return the matching
// domain sentinel errors; anything else propagates as retryable.

type QuestionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	// ListActive returns non-retired questions for the game type. With an
	// event filter, event-tagged questions for that event plus evergreen
	// questions are returned.
	ListActive(ctx context.Context, gt domain.GameType, eventID *int64) ([]*domain.Question, error)
	// Retire soft-retires a question; retired questions stay readable for
	// scoring but leave the selection pool.
	Retire(ctx context.Context, id int64) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	// RecentQuestionIDs returns the ids served to the user in their last n
	// sessions of the game type.
	RecentQuestionIDs(ctx context.Context, userID int64, gt domain.GameType, lastN int) (map[int64]bool, error)
}

type PredictionRepository interface {
	// Create returns domain.ErrDuplicatePrediction when the user already
	// has a prediction for the question.
	Create(ctx context.Context, p *domain.Prediction) error
	ListByQuestion(ctx context.Context, questionID int64) ([]*domain.Prediction, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Prediction, error)
	MarkLocked(ctx context.Context, questionID int64) error
}

type ResultRepository interface {
	// Create returns domain.ErrDuplicateResult when a result already
	// exists for the question.
	Create(ctx context.Context, r *domain.Result) error
	GetByQuestionID(ctx context.Context, questionID int64) (*domain.Result, error)
}

type OutcomeRepository interface {
	// Create returns domain.ErrDuplicateOutcome when the prediction was
	// already scored.
	Create(ctx context.Context, o *domain.Outcome) error
	GetByPredictionID(ctx context.Context, predictionID int64) (*domain.Outcome, error)
	// ListBetween returns outcomes computed in [from, to). A zero from
	// means all-time.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Outcome, error)
}

type LedgerRepository interface {
	// Append writes one transaction and updates the cached wallet balance
	// atomically, returning the new balance. Returns
	// domain.ErrDuplicateTransaction for a repeated (reference, type) pair.
	Append(ctx context.Context, tx *domain.Transaction) (int64, error)
	Balance(ctx context.Context, userID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
	// SumByUser reduces the log to the signed sum, the balance invariant.
	SumByUser(ctx context.Context, userID int64) (int64, error)
	SetBalance(ctx context.Context, userID int64, balance int64) error
}

type BadgeRepository interface {
	// Grant awards the badge once; it reports false when the user already
	// holds it.
	Grant(ctx context.Context, b *domain.Badge) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Badge, error)
	// TypesByUser returns every user's badge types, for leaderboard
	// snapshots.
	TypesByUser(ctx context.Context) (map[int64][]domain.BadgeType, error)
}

type StatsRepository interface {
	// Get returns zero-valued stats for unknown users.
	Get(ctx context.Context, userID int64) (*domain.UserStats, error)
	// RecordOutcome folds one scored outcome into the user's cumulative
	// stats and returns the updated snapshot.
	RecordOutcome(ctx context.Context, o *domain.Outcome, hard bool) (*domain.UserStats, error)
}
