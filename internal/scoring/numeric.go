package scoring

import (
	"errors"
	"math"

	"fantasy_arena/internal/domain"
)

// numericScorer gives linear partial credit inside the tolerance band
// around the actual value: 1 − |submitted − actual| / (|actual| × tolerance),
// clamped to [0, 1]. An exact match always scores 1, even when the band
// collapses (actual or tolerance zero).
type numericScorer struct {
	tolerance float64
}

func (s *numericScorer) Type() domain.PredictionType { return domain.PredictionNumeric }

func (s *numericScorer) Ratio(submitted, actual domain.AnswerValue) (float64, error) {
	if submitted.Number == nil || actual.Number == nil {
		return 0, errors.New("numeric answer requires a number")
	}

	sub, act := *submitted.Number, *actual.Number
	if sub == act {
		return 1, nil
	}

	band := math.Abs(act) * s.tolerance
	if band == 0 {
		return 0, nil
	}
	return clamp01(1 - math.Abs(sub-act)/band), nil
}
