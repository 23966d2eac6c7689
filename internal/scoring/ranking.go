package scoring

import (
	"errors"

	"fantasy_arena/internal/domain"
)

// rankingScorer gives Kendall-tau style partial credit: the share of
// adjacent pairs in the submitted order that the actual order agrees with.
type rankingScorer struct{}

func (s *rankingScorer) Type() domain.PredictionType { return domain.PredictionRanking }

func (s *rankingScorer) Ratio(submitted, actual domain.AnswerValue) (float64, error) {
	if len(submitted.Order) < 2 || len(actual.Order) < 2 {
		return 0, errors.New("ranking answer requires at least two items")
	}
	if len(submitted.Order) != len(actual.Order) {
		return 0, errors.New("ranking answer has wrong number of items")
	}

	pos := make(map[string]int, len(actual.Order))
	for i, item := range actual.Order {
		pos[item] = i
	}
	for _, item := range submitted.Order {
		if _, ok := pos[item]; !ok {
			return 0, errors.New("ranking answer contains unknown item")
		}
	}

	correct := 0
	total := len(submitted.Order) - 1
	for i := 0; i < total; i++ {
		if pos[submitted.Order[i]] < pos[submitted.Order[i+1]] {
			correct++
		}
	}
	return float64(correct) / float64(total), nil
}
