// Package memory implements the repository contracts on plain maps. It
// backs the engine tests and doubles as a reference implementation of the
// uniqueness guards the postgres repositories enforce with indexes.
package memory

import (
	"sync"

	"fantasy_arena/internal/domain"
)

// Store holds all in-memory state behind one mutex. Every repository view
// returned by the accessors shares it, so cross-entity operations see a
// consistent snapshot.
type Store struct {
	mu sync.Mutex

	questions map[int64]*domain.Question
	sessions  []*domain.Session

	predictions    map[int64]*domain.Prediction
	predictionByUQ map[[2]int64]int64 // (userID, questionID) -> prediction id
	results        map[int64]*domain.Result
	outcomes       map[int64]*domain.Outcome
	outcomeByPred  map[int64]int64

	transactions map[string]*domain.Transaction // (referenceID|type) -> tx
	txOrder      []*domain.Transaction
	balances     map[int64]int64

	badges map[int64]map[domain.BadgeType]*domain.Badge
	stats  map[int64]*domain.UserStats

	nextID int64
}

func NewStore() *Store {
	return &Store{
		questions:      make(map[int64]*domain.Question),
		predictions:    make(map[int64]*domain.Prediction),
		predictionByUQ: make(map[[2]int64]int64),
		results:        make(map[int64]*domain.Result),
		outcomes:       make(map[int64]*domain.Outcome),
		outcomeByPred:  make(map[int64]int64),
		transactions:   make(map[string]*domain.Transaction),
		balances:       make(map[int64]int64),
		badges:         make(map[int64]map[domain.BadgeType]*domain.Badge),
		stats:          make(map[int64]*domain.UserStats),
	}
}

// SeedQuestion inserts a question for tests and seeding tools.
func (s *Store) SeedQuestion(q *domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		q.ID = s.id()
	}
	cp := *q
	s.questions[q.ID] = &cp
}

// id allocates the next identifier; callers must hold s.mu.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}
