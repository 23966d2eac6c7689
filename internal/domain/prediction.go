package domain

import "time"

// Prediction is one user's submission for one question. At most one exists
// per (user, question) and it is immutable once locked.
type Prediction struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"user_id"`
	QuestionID  int64       `db:"question_id" json:"question_id"`
	SessionID   int64       `db:"session_id" json:"session_id"`
	Value       AnswerValue `db:"value" json:"value"`
	SubmittedAt time.Time   `db:"submitted_at" json:"submitted_at"`
	Locked      bool        `db:"locked" json:"locked"`
}

// Result is the declared real-world outcome for a question. Write-once;
// declaring it triggers scoring for every prediction on the question.
type Result struct {
	QuestionID int64       `db:"question_id" json:"question_id"`
	Actual     AnswerValue `db:"actual" json:"actual"`
	DeclaredAt time.Time   `db:"declared_at" json:"declared_at"`
	DeclaredBy string      `db:"declared_by" json:"declared_by"`
}

// Outcome is the write-once scoring result for a single prediction.
type Outcome struct {
	ID               int64     `db:"id" json:"id"`
	PredictionID     int64     `db:"prediction_id" json:"prediction_id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	QuestionID       int64     `db:"question_id" json:"question_id"`
	PointsAwarded    int64     `db:"points_awarded" json:"points_awarded"`
	CorrectnessRatio float64   `db:"correctness_ratio" json:"correctness_ratio"`
	ComputedAt       time.Time `db:"computed_at" json:"computed_at"`
}

// Correct reports full credit. Partial credit does not count toward win
// rate or streaks.
func (o *Outcome) Correct() bool {
	return o.CorrectnessRatio >= 1.0
}
