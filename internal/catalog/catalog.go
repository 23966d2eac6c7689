package catalog

import (
	"sort"
	"time"

	"fantasy_arena/internal/domain"
)

// DifficultyMix is the target share of questions per difficulty for a
// session. Values sum to 1.
type DifficultyMix map[domain.Difficulty]float64

// DefaultMix approximates 40% easy, 40% medium, 20% hard.
var DefaultMix = DifficultyMix{
	domain.DifficultyEasy:   0.4,
	domain.DifficultyMedium: 0.4,
	domain.DifficultyHard:   0.2,
}

// Catalog holds the static rule sets: one GameConfiguration per game type
// plus the fixed coin reward table. Configurations are immutable once a
// session references them, so the catalog exposes copies only.
type Catalog struct {
	configs map[domain.GameType]domain.GameConfiguration
	rewards map[domain.TransactionType]int64

	hardMultiplier   int64
	streakBonusBase  int64
	streakBonusFloor int // streak length at which bonuses start
	streakCap        int

	cooldownSessions int
	mix              DifficultyMix
}

// Default returns the catalog with the shipped rule sets.
func Default() *Catalog {
	return &Catalog{
		configs: map[domain.GameType]domain.GameConfiguration{
			domain.GameCricket: {
				GameType:               domain.GameCricket,
				PredictionType:         domain.PredictionMultipleChoice,
				PointsPerCorrect:       100,
				NumericTolerance:       0.1,
				LockInOffset:           5 * time.Minute,
				MaxQuestionsPerSession: 10,
			},
			domain.GameFootball: {
				GameType:               domain.GameFootball,
				PredictionType:         domain.PredictionBinary,
				PointsPerCorrect:       100,
				NumericTolerance:       0.1,
				LockInOffset:           10 * time.Minute,
				MaxQuestionsPerSession: 10,
			},
			domain.GameStocks: {
				GameType:               domain.GameStocks,
				PredictionType:         domain.PredictionNumeric,
				PointsPerCorrect:       150,
				NumericTolerance:       0.1,
				LockInOffset:           15 * time.Minute,
				MaxQuestionsPerSession: 5,
			},
			domain.GameMotorsport: {
				GameType:               domain.GameMotorsport,
				PredictionType:         domain.PredictionRanking,
				PointsPerCorrect:       200,
				NumericTolerance:       0.1,
				LockInOffset:           30 * time.Minute,
				MaxQuestionsPerSession: 5,
			},
		},
		rewards: map[domain.TransactionType]int64{
			domain.TxPredictionCorrect: 100,
			domain.TxStreakBonus:       25,
			domain.TxReferral:          500,
			domain.TxQuizReward:        250,
		},
		hardMultiplier:   2,
		streakBonusBase:  25,
		streakBonusFloor: 3,
		streakCap:        10,
		cooldownSessions: 5,
		mix:              DefaultMix,
	}
}

// Config returns the rule set for a game type.
func (c *Catalog) Config(gt domain.GameType) (domain.GameConfiguration, error) {
	cfg, ok := c.configs[gt]
	if !ok {
		return domain.GameConfiguration{}, domain.ErrUnknownGameType
	}
	return cfg, nil
}

// GameTypes lists the configured game types in stable order.
func (c *Catalog) GameTypes() []domain.GameType {
	types := make([]domain.GameType, 0, len(c.configs))
	for gt := range c.configs {
		types = append(types, gt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// SetCooldownSessions overrides the cooldown window, for deployments that
// tune it via environment.
func (c *Catalog) SetCooldownSessions(n int) {
	if n > 0 {
		c.cooldownSessions = n
	}
}

// RewardAmount returns the fixed coin amount for a reward type. Amounts are
// configured, never computed dynamically; zero means no fixed reward exists
// for the type.
func (c *Catalog) RewardAmount(t domain.TransactionType) int64 {
	return c.rewards[t]
}

// PredictionReward returns the coin credit for a fully correct prediction,
// with the multiplier for hard questions.
func (c *Catalog) PredictionReward(d domain.Difficulty) int64 {
	base := c.rewards[domain.TxPredictionCorrect]
	if d == domain.DifficultyHard {
		return base * c.hardMultiplier
	}
	return base
}

// StreakBonus returns the bonus for a consecutive-correct streak, or zero
// if the streak is too short. The bonus scales with streak length and is
// capped.
func (c *Catalog) StreakBonus(streak int) int64 {
	if streak < c.streakBonusFloor {
		return 0
	}
	if streak > c.streakCap {
		streak = c.streakCap
	}
	return c.streakBonusBase * int64(streak)
}

// CooldownSessions is how many recent sessions a question must stay out of
// before it can be served to the same user again.
func (c *Catalog) CooldownSessions() int {
	return c.cooldownSessions
}

// Mix returns the target difficulty distribution for sessions.
func (c *Catalog) Mix() DifficultyMix {
	return c.mix
}
