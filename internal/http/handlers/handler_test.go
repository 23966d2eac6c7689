package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
	"fantasy_arena/internal/http/middleware"
	"fantasy_arena/internal/repository/memory"
	"fantasy_arena/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	cat := catalog.Default()
	selector := service.NewSelector(store.Questions(), store.Sessions(), cat, 1)
	predictions := service.NewPredictionService(store.Questions(), store.Predictions(), store.Results(), cat)
	coins := service.NewCoinService(store.Ledger(), cat)
	badges := service.NewBadgeService(store.Badges(), store.Stats())
	scoring := service.NewScoringService(
		store.Questions(), store.Predictions(), store.Results(), store.Outcomes(),
		store.Stats(), coins, badges, cat)
	leaderboard := service.NewLeaderboardService(store.Outcomes(), store.Ledger(), store.Badges(), badges, nil)
	h := NewHandler(cat, store.Questions(), selector, predictions, scoring, coins, badges, leaderboard)

	r := gin.New()
	r.GET("/games", h.ListGames)
	r.POST("/sessions", middleware.JWT(), h.StartSession)
	r.POST("/predictions", middleware.JWT(), h.SubmitPrediction)
	r.GET("/me/wallet", middleware.JWT(), h.MyWallet)
	r.POST("/rewards/referral", middleware.JWT(), h.ClaimReferralReward)
	r.GET("/leaderboard", h.GetLeaderboard)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitPredictionEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	store.SeedQuestion(&domain.Question{
		ID:             1,
		GameType:       domain.GameFootball,
		PredictionType: domain.PredictionBinary,
		Options:        []string{"yes", "no"},
	})

	token, err := service.GenerateJWT(7)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	body := gin.H{"question_id": 1, "value": gin.H{"choice": "yes"}}
	w := doJSON(t, r, http.MethodPost, "/predictions", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same question again: conflict.
	w = doJSON(t, r, http.MethodPost, "/predictions", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", w.Code)
	}

	// Malformed answer shape: bad request.
	w = doJSON(t, r, http.MethodPost, "/predictions", token, gin.H{
		"question_id": 1, "value": gin.H{"number": 3},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad shape, got %d", w.Code)
	}

	// Unknown question: not found.
	w = doJSON(t, r, http.MethodPost, "/predictions", token, gin.H{
		"question_id": 99, "value": gin.H{"choice": "yes"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown question, got %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/predictions", "", gin.H{"question_id": 1})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/predictions", "not-a-token", gin.H{"question_id": 1})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}
}

func TestStartSessionEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	for i := 0; i < 5; i++ {
		store.SeedQuestion(&domain.Question{
			GameType:       domain.GameFootball,
			PredictionType: domain.PredictionBinary,
			Difficulty:     domain.DifficultyMedium,
			Options:        []string{"yes", "no"},
		})
	}

	token, _ := service.GenerateJWT(7)
	w := doJSON(t, r, http.MethodPost, "/sessions", token, gin.H{"game_type": "football", "count": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Session   *domain.Session    `json:"session"`
		Questions []*domain.Question `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Session == nil || len(resp.Questions) != 3 {
		t.Fatalf("unexpected session response: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/sessions", token, gin.H{"game_type": "chess"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown game, got %d", w.Code)
	}
}

func TestClaimRewardRetrySucceeds(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := service.GenerateJWT(7)

	body := gin.H{"reference_id": "referral:42"}
	w := doJSON(t, r, http.MethodPost, "/rewards/referral", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var first struct {
		Balance int64 `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Balance <= 0 {
		t.Fatalf("expected a credited balance, got %d", first.Balance)
	}

	// A collaborator retrying after a timeout replays the same reference
	// id. The claim already landed, so the retry reports the same success.
	w = doJSON(t, r, http.MethodPost, "/rewards/referral", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d: %s", w.Code, w.Body.String())
	}
	var second struct {
		Balance int64 `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.Balance != first.Balance {
		t.Fatalf("replay changed balance: %d -> %d", first.Balance, second.Balance)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/leaderboard?period=weekly", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/leaderboard?period=hourly", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", w.Code)
	}
}

func TestListGamesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/games", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Games []map[string]any `json:"games"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Games) != 4 {
		t.Fatalf("expected 4 configured games, got %d", len(resp.Games))
	}
}
