package domain

import "time"

// TransactionType classifies a coin transaction.
type TransactionType string

const (
	TxPredictionCorrect TransactionType = "prediction_correct"
	TxStreakBonus       TransactionType = "streak_bonus"
	TxReferral          TransactionType = "referral"
	TxQuizReward        TransactionType = "quiz_reward"
	TxAdminAdjustment   TransactionType = "admin_adjustment"
)

// RewardType reports whether t is a reward credit, which must carry a
// positive amount. Only admin adjustments may be negative.
func (t TransactionType) RewardType() bool {
	return t != TxAdminAdjustment
}

// Transaction is one append-only coin ledger entry. Entries are never
// deleted or mutated; at most one exists per (ReferenceID, Type).
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      int64           `db:"amount" json:"amount"` // signed
	ReferenceID string          `db:"reference_id" json:"reference_id"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Wallet caches the signed sum of a user's transactions. The transaction
// log is the source of truth; Balance is derived.
type Wallet struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Balance   int64     `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
