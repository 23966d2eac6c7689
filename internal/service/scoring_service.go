package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/logger"
	"fantasy_arena/internal/scoring"
)

// scoringConcurrency bounds concurrent per-question passes in a batch.
const scoringConcurrency = 4

// ScoringService reconciles declared results against the prediction ledger.
// Passes for different questions may run concurrently; passes for the same
// question are serialized with a per-question lock so the idempotence
// guards hold under retry.
type ScoringService struct {
	questions   QuestionRepository
	predictions PredictionRepository
	results     ResultRepository
	outcomes    OutcomeRepository
	stats       StatsRepository
	coins       *CoinService
	badges      *BadgeService
	catalog     *catalog.Catalog

	questionLocks *keyedMutex
	streakFloor   int
}

func NewScoringService(
	questions QuestionRepository,
	predictions PredictionRepository,
	results ResultRepository,
	outcomes OutcomeRepository,
	stats StatsRepository,
	coins *CoinService,
	badges *BadgeService,
	cat *catalog.Catalog,
) *ScoringService {
	return &ScoringService{
		questions:     questions,
		predictions:   predictions,
		results:       results,
		outcomes:      outcomes,
		stats:         stats,
		coins:         coins,
		badges:        badges,
		catalog:       cat,
		questionLocks: newKeyedMutex(),
		streakFloor:   3,
	}
}

// PassSummary reports one scoring pass. Skipped counts predictions that
// already had outcomes, which is the normal shape of a retried pass.
type PassSummary struct {
	QuestionID int64 `json:"question_id"`
	Scored     int   `json:"scored"`
	Skipped    int   `json:"skipped"`
}

// OnResultDeclared is the single entry point for the result-declaration
// collaborator. It stores the result (first declaration wins), locks the
// question's predictions, scores each one, credits coins and streak
// bonuses, and evaluates badges for the affected users.
//
// The pass is resumable: a persistence failure mid-batch leaves completed
// outcomes valid, and re-invoking skips them via the idempotence guards.
func (s *ScoringService) OnResultDeclared(ctx context.Context, res domain.Result) (*PassSummary, error) {
	q, err := s.questions.GetByID(ctx, res.QuestionID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.catalog.Config(q.GameType)
	if err != nil {
		return nil, err
	}
	if !res.Actual.MatchesType(q.PredictionType) {
		return nil, fmt.Errorf("%w: result shape does not match %s", domain.ErrValidation, q.PredictionType)
	}
	if res.DeclaredAt.IsZero() {
		res.DeclaredAt = time.Now().UTC()
	}

	unlock := s.questionLocks.Lock(res.QuestionID)
	defer unlock()

	if err := s.results.Create(ctx, &res); err != nil {
		if !errors.Is(err, domain.ErrDuplicateResult) {
			return nil, err
		}
		// Re-run: the stored result stays authoritative.
		stored, err := s.results.GetByQuestionID(ctx, res.QuestionID)
		if err != nil {
			return nil, err
		}
		res = *stored
	}

	if err := s.predictions.MarkLocked(ctx, res.QuestionID); err != nil {
		return nil, err
	}

	preds, err := s.predictions.ListByQuestion(ctx, res.QuestionID)
	if err != nil {
		return nil, err
	}

	summary := &PassSummary{QuestionID: res.QuestionID}
	affected := map[int64]bool{}

	for _, p := range preds {
		if err := ctx.Err(); err != nil {
			scoringPasses.WithLabelValues("aborted").Inc()
			return summary, err
		}

		out, err := scoring.Score(*p, res, *q, cfg)
		if err != nil {
			// Shape errors are caught at submission; reaching one here
			// means inconsistent stored data. Skip, never block the pass.
			logger.Error("unscorable prediction", "prediction_id", p.ID, "error", err)
			summary.Skipped++
			continue
		}

		fresh := true
		if err := s.outcomes.Create(ctx, &out); err != nil {
			if !errors.Is(err, domain.ErrDuplicateOutcome) {
				scoringPasses.WithLabelValues("failed").Inc()
				return summary, err
			}
			// Already scored; reload so the coin retry below sees the
			// canonical outcome.
			existing, gerr := s.outcomes.GetByPredictionID(ctx, p.ID)
			if gerr != nil {
				scoringPasses.WithLabelValues("failed").Inc()
				return summary, gerr
			}
			out = *existing
			fresh = false
			summary.Skipped++
		} else {
			summary.Scored++
			outcomesScored.Inc()
		}

		if err := s.settle(ctx, p, &out, q, fresh); err != nil {
			scoringPasses.WithLabelValues("failed").Inc()
			return summary, err
		}
		affected[p.UserID] = true
	}

	for userID := range affected {
		if _, err := s.badges.EvaluateUser(ctx, userID); err != nil {
			logger.Warn("badge evaluation failed", "user_id", userID, "error", err)
		}
	}

	scoringPasses.WithLabelValues("completed").Inc()
	return summary, nil
}

// settle folds the outcome into user stats and credits coins. Coin credits
// key on the prediction id, so retrying after a partial failure cannot
// double-pay.
func (s *ScoringService) settle(ctx context.Context, p *domain.Prediction, out *domain.Outcome, q *domain.Question, fresh bool) error {
	var streak int
	if fresh {
		st, err := s.stats.RecordOutcome(ctx, out, q.Difficulty == domain.DifficultyHard)
		if err != nil {
			return err
		}
		streak = st.CurrentStreak
	} else {
		st, err := s.stats.Get(ctx, p.UserID)
		if err != nil {
			return err
		}
		streak = st.CurrentStreak
	}

	if !out.Correct() {
		return nil
	}

	amount := s.catalog.PredictionReward(q.Difficulty)
	ref := fmt.Sprintf("prediction:%d", p.ID)
	if _, err := s.coins.Credit(ctx, p.UserID, domain.TxPredictionCorrect, amount, ref); err != nil && !errors.Is(err, domain.ErrDuplicateTransaction) {
		return err
	}

	if bonus := s.catalog.StreakBonus(streak); bonus > 0 {
		ref := fmt.Sprintf("streak:prediction:%d", p.ID)
		if _, err := s.coins.Credit(ctx, p.UserID, domain.TxStreakBonus, bonus, ref); err != nil && !errors.Is(err, domain.ErrDuplicateTransaction) {
			return err
		}
	}
	return nil
}

// OnResultsDeclared fans a batch of declarations out across questions,
// bounded by scoringConcurrency. Each question keeps its single-writer
// discipline through the per-question lock.
func (s *ScoringService) OnResultsDeclared(ctx context.Context, results []domain.Result) ([]*PassSummary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)

	var mu sync.Mutex
	summaries := make([]*PassSummary, 0, len(results))

	for _, res := range results {
		res := res
		g.Go(func() error {
			summary, err := s.OnResultDeclared(ctx, res)
			if summary != nil {
				mu.Lock()
				summaries = append(summaries, summary)
				mu.Unlock()
			}
			return err
		})
	}
	return summaries, g.Wait()
}
