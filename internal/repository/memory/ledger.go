package memory

import (
	"context"
	"sort"
	"time"

	"fantasy_arena/internal/domain"
)

// Ledger is the in-memory LedgerRepository. The (reference, type) key map
// mirrors the unique index the postgres implementation relies on.
type Ledger struct{ s *Store }

func (s *Store) Ledger() *Ledger { return &Ledger{s: s} }

func ledgerKey(tx *domain.Transaction) string {
	return tx.ReferenceID + "|" + string(tx.Type)
}

func (r *Ledger) Append(ctx context.Context, tx *domain.Transaction) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := ledgerKey(tx)
	if _, exists := r.s.transactions[key]; exists {
		return r.s.balances[tx.UserID], domain.ErrDuplicateTransaction
	}

	tx.ID = r.s.id()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	cp := *tx
	r.s.transactions[key] = &cp
	r.s.txOrder = append(r.s.txOrder, &cp)
	r.s.balances[tx.UserID] += tx.Amount
	return r.s.balances[tx.UserID], nil
}

func (r *Ledger) Balance(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.balances[userID], nil
}

func (r *Ledger) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Transaction
	for i := len(r.s.txOrder) - 1; i >= 0; i-- {
		if r.s.txOrder[i].UserID != userID {
			continue
		}
		cp := *r.s.txOrder[i]
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Ledger) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Transaction
	for _, tx := range r.s.txOrder {
		if !from.IsZero() && tx.CreatedAt.Before(from) {
			continue
		}
		if !tx.CreatedAt.Before(to) {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Ledger) SumByUser(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var sum int64
	for _, tx := range r.s.txOrder {
		if tx.UserID == userID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (r *Ledger) SetBalance(ctx context.Context, userID int64, balance int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[userID] = balance
	return nil
}
