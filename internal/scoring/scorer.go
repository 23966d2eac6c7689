package scoring

import (
	"fmt"
	"math"
	"time"

	"fantasy_arena/internal/domain"
)

// Scorer computes the correctness ratio for one prediction type. Ratios are
// always in [0, 1].
type Scorer interface {
	Type() domain.PredictionType
	Ratio(submitted, actual domain.AnswerValue) (float64, error)
}

// ForType returns the scorer for a prediction type.
func ForType(pt domain.PredictionType, tolerance float64) (Scorer, error) {
	switch pt {
	case domain.PredictionBinary, domain.PredictionMultipleChoice:
		return &exactScorer{pt: pt}, nil
	case domain.PredictionNumeric:
		return &numericScorer{tolerance: tolerance}, nil
	case domain.PredictionRanking:
		return &rankingScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown prediction type: %s", pt)
	}
}

// Score reconciles one prediction against a declared result and produces a
// write-once outcome. Shape mismatches were rejected at submission time, so
// one here means the stored data is inconsistent and surfaces as an error.
func Score(p domain.Prediction, r domain.Result, q domain.Question, cfg domain.GameConfiguration) (domain.Outcome, error) {
	if p.QuestionID != r.QuestionID {
		return domain.Outcome{}, fmt.Errorf("prediction question %d does not match result question %d", p.QuestionID, r.QuestionID)
	}

	s, err := ForType(q.PredictionType, cfg.NumericTolerance)
	if err != nil {
		return domain.Outcome{}, err
	}

	ratio, err := s.Ratio(p.Value, r.Actual)
	if err != nil {
		return domain.Outcome{}, err
	}

	return domain.Outcome{
		PredictionID:     p.ID,
		UserID:           p.UserID,
		QuestionID:       p.QuestionID,
		CorrectnessRatio: ratio,
		PointsAwarded:    Points(ratio, cfg.PointsPerCorrect),
		ComputedAt:       time.Now().UTC(),
	}, nil
}

// Points converts a correctness ratio to awarded points.
func Points(ratio float64, perCorrect int64) int64 {
	return int64(math.Round(ratio * float64(perCorrect)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
