package scoring

import (
	"fmt"

	"fantasy_arena/internal/domain"
)

// exactScorer covers binary and multiple choice: full credit on an exact
// match, nothing otherwise.
type exactScorer struct {
	pt domain.PredictionType
}

func (s *exactScorer) Type() domain.PredictionType { return s.pt }

func (s *exactScorer) Ratio(submitted, actual domain.AnswerValue) (float64, error) {
	if submitted.Choice == "" || actual.Choice == "" {
		return 0, fmt.Errorf("%s answer requires a choice", s.pt)
	}
	if submitted.Choice == actual.Choice {
		return 1, nil
	}
	return 0, nil
}
