package handlers

import (
	"sync"

	"github.com/google/uuid"

	"consumption-solver/internal/dist"
	"consumption-solver/internal/model"
)

// solvedScenario keeps everything needed to tabulate policies for a
// stored solve: the scenario, its discretized shocks and the full
// backward-induction sequence.
type solvedScenario struct {
	Scenario  model.Scenario
	Shocks    *dist.Shocks
	Solutions []*model.Solution
}

// Store keeps completed solves in memory, keyed by ID. Solutions are
// immutable, so concurrent reads need no copying.
type Store struct {
	mu     sync.RWMutex
	solves map[string]*solvedScenario
}

// NewStore creates an empty solve store
func NewStore() *Store {
	return &Store{solves: make(map[string]*solvedScenario)}
}

// Put stores a solve and returns its new ID.
func (s *Store) Put(sv *solvedScenario) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.solves[id] = sv
	s.mu.Unlock()
	return id
}

// Get returns the solve stored under id.
func (s *Store) Get(id string) (*solvedScenario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.solves[id]
	return sv, ok
}
