package service

import (
	"context"
	"testing"
	"time"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/repository/memory"
)

func seedFootballPool(store *memory.Store, n int) {
	difficulties := []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}
	for i := 0; i < n; i++ {
		store.SeedQuestion(&domain.Question{
			GameType:       domain.GameFootball,
			PredictionType: domain.PredictionBinary,
			Difficulty:     difficulties[i%3],
			Prompt:         "will the home side win",
			Options:        []string{"yes", "no"},
			Reusable:       true,
			CreatedAt:      time.Now().UTC(),
		})
	}
}

func newSelector(store *memory.Store, seed int64) *SelectorService {
	return NewSelector(store.Questions(), store.Sessions(), catalog.Default(), seed)
}

func TestSelectQuestionsDeterministic(t *testing.T) {
	ctx := context.Background()

	ids := func() []int64 {
		store := memory.NewStore()
		seedFootballPool(store, 30)
		sess, _, err := newSelector(store, 42).SelectQuestions(ctx, 1, domain.GameFootball, nil, 5)
		if err != nil {
			t.Fatalf("SelectQuestions: %v", err)
		}
		return sess.QuestionIDs
	}

	first, second := ids(), ids()
	if len(first) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different selections: %v vs %v", first, second)
		}
	}
}

func TestSelectQuestionsDifficultyMix(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 60)

	_, questions, err := newSelector(store, 7).SelectQuestions(context.Background(), 1, domain.GameFootball, nil, 10)
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}

	counts := map[domain.Difficulty]int{}
	for _, q := range questions {
		counts[q.Difficulty]++
	}
	if counts[domain.DifficultyEasy] != 4 || counts[domain.DifficultyMedium] != 4 || counts[domain.DifficultyHard] != 2 {
		t.Fatalf("expected 4/4/2 mix, got %v", counts)
	}
}

func TestSelectQuestionsSmallPool(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 3)

	sess, questions, err := newSelector(store, 1).SelectQuestions(context.Background(), 1, domain.GameFootball, nil, 10)
	if err != nil {
		t.Fatalf("small pool must not error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected all 3 questions, got %d", len(questions))
	}
	if sess == nil || len(sess.QuestionIDs) != 3 {
		t.Fatalf("session should record the served set")
	}
}

func TestSelectQuestionsEmptyPool(t *testing.T) {
	store := memory.NewStore()

	sess, questions, err := newSelector(store, 1).SelectQuestions(context.Background(), 1, domain.GameFootball, nil, 5)
	if err != nil {
		t.Fatalf("empty pool must not error: %v", err)
	}
	if sess != nil || questions != nil {
		t.Fatalf("expected no session for empty pool, got %v", sess)
	}
}

func TestSelectQuestionsCooldown(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 6)
	sel := newSelector(store, 9)
	ctx := context.Background()

	first, _, err := sel.SelectQuestions(ctx, 1, domain.GameFootball, nil, 3)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	second, _, err := sel.SelectQuestions(ctx, 1, domain.GameFootball, nil, 3)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}

	served := map[int64]bool{}
	for _, id := range first.QuestionIDs {
		served[id] = true
	}
	for _, id := range second.QuestionIDs {
		if served[id] {
			t.Fatalf("question %d repeated within the cool-down window", id)
		}
	}
}

func TestSelectQuestionsRelaxesCooldown(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 3)
	sel := newSelector(store, 9)
	ctx := context.Background()

	if _, _, err := sel.SelectQuestions(ctx, 1, domain.GameFootball, nil, 3); err != nil {
		t.Fatalf("first session: %v", err)
	}
	_, questions, err := sel.SelectQuestions(ctx, 1, domain.GameFootball, nil, 3)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("cool-down should relax before shrinking the count, got %d questions", len(questions))
	}
}

func TestSelectQuestionsCooldownPerUser(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 3)
	sel := newSelector(store, 9)
	ctx := context.Background()

	if _, _, err := sel.SelectQuestions(ctx, 1, domain.GameFootball, nil, 3); err != nil {
		t.Fatalf("user 1 session: %v", err)
	}
	_, questions, err := sel.SelectQuestions(ctx, 2, domain.GameFootball, nil, 3)
	if err != nil {
		t.Fatalf("user 2 session: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("another user's history must not shrink the pool, got %d", len(questions))
	}
}

func TestSelectQuestionsUnknownGame(t *testing.T) {
	store := memory.NewStore()
	_, _, err := newSelector(store, 1).SelectQuestions(context.Background(), 1, "chess", nil, 5)
	if err == nil {
		t.Fatal("expected error for unknown game type")
	}
}

func TestSelectQuestionsClampsCount(t *testing.T) {
	store := memory.NewStore()
	seedFootballPool(store, 60)

	_, questions, err := newSelector(store, 3).SelectQuestions(context.Background(), 1, domain.GameFootball, nil, 500)
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("count should clamp to the per-session maximum, got %d", len(questions))
	}
}
