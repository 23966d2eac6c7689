package scoring

import (
	"testing"
	"time"

	"fantasy_arena/internal/domain"
)

func num(v float64) domain.AnswerValue {
	return domain.AnswerValue{Number: &v}
}

func choice(c string) domain.AnswerValue {
	return domain.AnswerValue{Choice: c}
}

func TestBinaryRatioIsZeroOrOne(t *testing.T) {
	s, err := ForType(domain.PredictionBinary, 0)
	if err != nil {
		t.Fatalf("ForType: %v", err)
	}

	cases := []struct {
		submitted, actual string
		want              float64
	}{
		{"yes", "yes", 1},
		{"no", "yes", 0},
		{"yes", "no", 0},
	}
	for _, tc := range cases {
		got, err := s.Ratio(choice(tc.submitted), choice(tc.actual))
		if err != nil {
			t.Fatalf("Ratio(%s,%s): %v", tc.submitted, tc.actual, err)
		}
		if got != tc.want {
			t.Fatalf("Ratio(%s,%s) = %f; want %f", tc.submitted, tc.actual, got, tc.want)
		}
	}
}

func TestNumericPartialCredit(t *testing.T) {
	s, err := ForType(domain.PredictionNumeric, 0.1)
	if err != nil {
		t.Fatalf("ForType: %v", err)
	}

	cases := []struct {
		name              string
		submitted, actual float64
		want              float64
	}{
		{"exact match", 100, 100, 1},
		{"half credit at half band", 95, 100, 0.5},
		{"zero outside band", 80, 100, 0},
		{"just inside band", 91, 100, 0.1},
		{"negative actual", -95, -100, 0.5},
	}
	for _, tc := range cases {
		got, err := s.Ratio(num(tc.submitted), num(tc.actual))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s: ratio = %f; want %f", tc.name, got, tc.want)
		}
	}
}

func TestNumericExactMatchWithZeroActual(t *testing.T) {
	s, _ := ForType(domain.PredictionNumeric, 0.1)

	got, err := s.Ratio(num(0), num(0))
	if err != nil || got != 1 {
		t.Fatalf("exact zero match: ratio = %f, err = %v; want 1, nil", got, err)
	}

	// Band collapses around zero, so any miss scores nothing.
	got, err = s.Ratio(num(0.001), num(0))
	if err != nil || got != 0 {
		t.Fatalf("near zero miss: ratio = %f, err = %v; want 0, nil", got, err)
	}
}

func TestRankingAdjacentPairs(t *testing.T) {
	s, err := ForType(domain.PredictionRanking, 0)
	if err != nil {
		t.Fatalf("ForType: %v", err)
	}

	order := func(items ...string) domain.AnswerValue {
		return domain.AnswerValue{Order: items}
	}
	actual := order("a", "b", "c", "d")

	cases := []struct {
		name      string
		submitted domain.AnswerValue
		want      float64
	}{
		{"perfect", order("a", "b", "c", "d"), 1},
		{"reversed", order("d", "c", "b", "a"), 0},
		{"one swap", order("a", "c", "b", "d"), 2.0 / 3.0},
	}
	for _, tc := range cases {
		got, err := s.Ratio(tc.submitted, actual)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s: ratio = %f; want %f", tc.name, got, tc.want)
		}
	}

	if _, err := s.Ratio(order("a", "b"), actual); err == nil {
		t.Fatal("expected error for mismatched item count")
	}
	if _, err := s.Ratio(order("a", "b", "c", "x"), actual); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestScoreRoundsPoints(t *testing.T) {
	start := time.Now().Add(time.Hour)
	q := domain.Question{
		ID:             7,
		GameType:       domain.GameStocks,
		PredictionType: domain.PredictionNumeric,
		Difficulty:     domain.DifficultyMedium,
		EventStart:     &start,
	}
	cfg := domain.GameConfiguration{
		GameType:         domain.GameStocks,
		PointsPerCorrect: 75,
		NumericTolerance: 0.1,
	}
	p := domain.Prediction{ID: 1, UserID: 5, QuestionID: 7, Value: num(95)}
	r := domain.Result{QuestionID: 7, Actual: num(100), DeclaredAt: time.Now()}

	out, err := Score(p, r, q, cfg)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if out.CorrectnessRatio != 0.5 {
		t.Fatalf("ratio = %f; want 0.5", out.CorrectnessRatio)
	}
	// round(0.5 * 75) = 38
	if out.PointsAwarded != 38 {
		t.Fatalf("points = %d; want 38", out.PointsAwarded)
	}
	if out.UserID != 5 || out.QuestionID != 7 || out.PredictionID != 1 {
		t.Fatalf("outcome identity fields wrong: %+v", out)
	}
}

func TestScoreRejectsMismatchedQuestion(t *testing.T) {
	p := domain.Prediction{ID: 1, QuestionID: 7, Value: choice("yes")}
	r := domain.Result{QuestionID: 8, Actual: choice("yes")}
	q := domain.Question{ID: 7, PredictionType: domain.PredictionBinary}

	if _, err := Score(p, r, q, domain.GameConfiguration{PointsPerCorrect: 10}); err == nil {
		t.Fatal("expected error for mismatched question ids")
	}
}
