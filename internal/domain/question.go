package domain

import "time"

// AnswerValue is a typed answer. Exactly one field is used depending on the
// prediction type: Choice for binary/multiple choice, Number for numeric,
// Order for ranking.
type AnswerValue struct {
	Choice string   `json:"choice,omitempty"`
	Number *float64 `json:"number,omitempty"`
	Order  []string `json:"order,omitempty"`
}

// MatchesType reports whether the value has the shape expected for pt.
func (v AnswerValue) MatchesType(pt PredictionType) bool {
	switch pt {
	case PredictionBinary, PredictionMultipleChoice:
		return v.Choice != "" && v.Number == nil && len(v.Order) == 0
	case PredictionNumeric:
		return v.Number != nil && v.Choice == "" && len(v.Order) == 0
	case PredictionRanking:
		return len(v.Order) >= 2 && v.Choice == "" && v.Number == nil
	}
	return false
}

// Question is a reusable prediction question. Questions are authored
// externally and are read-only to the engine apart from soft retirement.
type Question struct {
	ID             int64          `db:"id" json:"id"`
	GameType       GameType       `db:"game_type" json:"game_type"`
	PredictionType PredictionType `db:"prediction_type" json:"prediction_type"`
	Difficulty     Difficulty     `db:"difficulty" json:"difficulty"`
	EventID        *int64         `db:"event_id" json:"event_id,omitempty"` // nil = evergreen
	EventStart     *time.Time     `db:"event_start" json:"event_start,omitempty"`
	Prompt         string         `db:"prompt" json:"prompt"`
	Options        []string       `db:"options" json:"options,omitempty"` // choices or ranking items
	CreatedBy      string         `db:"created_by" json:"created_by"`     // "system" or "admin"
	Reusable       bool           `db:"reusable" json:"reusable"`
	Retired        bool           `db:"retired" json:"retired"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// Evergreen questions are not tied to a specific event and may be served
// under any event filter.
func (q *Question) Evergreen() bool {
	return q.EventID == nil
}

// LockInDeadline returns when submissions close, if the question has one.
// Evergreen questions only lock once a result is declared.
func (q *Question) LockInDeadline(offset time.Duration) (time.Time, bool) {
	if q.EventStart == nil {
		return time.Time{}, false
	}
	return q.EventStart.Add(-offset), true
}

// HasOption reports whether choice is one of the question's options.
func (q *Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

// Session is a bounded set of questions served to one user at one time.
type Session struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	GameType    GameType  `db:"game_type" json:"game_type"`
	EventID     *int64    `db:"event_id" json:"event_id,omitempty"`
	QuestionIDs []int64   `db:"question_ids" json:"question_ids"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
