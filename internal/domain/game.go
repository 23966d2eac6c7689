package domain

import "time"

// GameType identifies a supported prediction game.
type GameType string

const (
	GameCricket    GameType = "cricket"
	GameFootball   GameType = "football"
	GameStocks     GameType = "stocks"
	GameMotorsport GameType = "motorsport"
)

// PredictionType describes the shape of an answer.
type PredictionType string

const (
	PredictionBinary         PredictionType = "binary"
	PredictionMultipleChoice PredictionType = "multiple_choice"
	PredictionNumeric        PredictionType = "numeric"
	PredictionRanking        PredictionType = "ranking"
)

// Difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GameConfiguration is the immutable rule set for one game type.
// Once a session references it, it never changes.
type GameConfiguration struct {
	GameType               GameType       `json:"game_type"`
	PredictionType         PredictionType `json:"prediction_type"` // primary type used by authoring
	PointsPerCorrect       int64          `json:"points_per_correct"`
	NumericTolerance       float64        `json:"numeric_tolerance"` // fraction, e.g. 0.1 = ±10% band
	LockInOffset           time.Duration  `json:"lock_in_offset"`
	MaxQuestionsPerSession int            `json:"max_questions_per_session"`
}
