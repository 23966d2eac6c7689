package service

import (
	"context"
	"fmt"

	"fantasy_arena/internal/catalog"
	"fantasy_arena/internal/domain"
)

// CoinService is the coin ledger: append-only transactions with a cached
// per-user balance. Credits for one user are serialized with a per-user
// lock so concurrent reward triggers cannot lose updates.
type CoinService struct {
	ledger    LedgerRepository
	catalog   *catalog.Catalog
	userLocks *keyedMutex
}

func NewCoinService(ledger LedgerRepository, cat *catalog.Catalog) *CoinService {
	return &CoinService{
		ledger:    ledger,
		catalog:   cat,
		userLocks: newKeyedMutex(),
	}
}

// Credit appends a transaction and returns the new balance. Reward types
// require a positive amount; only admin adjustments may be negative. A
// repeated (referenceID, type) pair returns domain.ErrDuplicateTransaction,
// which callers treat as a successful no-op.
func (s *CoinService) Credit(ctx context.Context, userID int64, t domain.TransactionType, amount int64, referenceID string) (int64, error) {
	if referenceID == "" {
		return 0, fmt.Errorf("%w: reference id required", domain.ErrInvalidAmount)
	}
	if t.RewardType() && amount <= 0 {
		return 0, fmt.Errorf("%w: %s requires a positive amount", domain.ErrInvalidAmount, t)
	}
	if amount == 0 {
		return 0, domain.ErrInvalidAmount
	}

	unlock := s.userLocks.Lock(userID)
	defer unlock()

	balance, err := s.ledger.Append(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        t,
		Amount:      amount,
		ReferenceID: referenceID,
	})
	if err != nil {
		return balance, err
	}

	coinCredits.WithLabelValues(string(t)).Inc()
	return balance, nil
}

// CreditReward credits the fixed configured amount for a reward type.
func (s *CoinService) CreditReward(ctx context.Context, userID int64, t domain.TransactionType, referenceID string) (int64, error) {
	amount := s.catalog.RewardAmount(t)
	if amount <= 0 {
		return 0, fmt.Errorf("%w: no fixed reward for %s", domain.ErrInvalidAmount, t)
	}
	return s.Credit(ctx, userID, t, amount, referenceID)
}

// Balance returns the cached balance.
func (s *CoinService) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.ledger.Balance(ctx, userID)
}

// History returns the user's most recent transactions.
func (s *CoinService) History(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.ledger.ListByUser(ctx, userID, limit)
}

// RecomputeBalance rebuilds the cached balance from the transaction log.
// The log is the source of truth; this restores the sum invariant after any
// cache drift.
func (s *CoinService) RecomputeBalance(ctx context.Context, userID int64) (int64, error) {
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	sum, err := s.ledger.SumByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.ledger.SetBalance(ctx, userID, sum); err != nil {
		return 0, err
	}
	return sum, nil
}
