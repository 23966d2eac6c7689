package service

import "github.com/prometheus/client_golang/prometheus"

var (
	scoringPasses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fantasy_scoring_passes_total",
			Help: "Scoring passes by completion status",
		},
		[]string{"status"},
	)
	outcomesScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fantasy_outcomes_scored_total",
			Help: "Predictions scored",
		},
	)
	coinCredits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fantasy_coin_credits_total",
			Help: "Coin ledger credits by transaction type",
		},
		[]string{"type"},
	)
	selectorShortfalls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fantasy_selector_shortfalls_total",
			Help: "Selections that returned fewer questions than requested",
		},
	)
	leaderboardRecomputes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fantasy_leaderboard_recomputes_total",
			Help: "Leaderboard recomputations by period",
		},
		[]string{"period"},
	)
)

func init() {
	prometheus.MustRegister(scoringPasses, outcomesScored, coinCredits, selectorShortfalls, leaderboardRecomputes)
}
