package memory

import (
	"context"
	"sync"

	"cashflow/internal/core"
)

// Store is an in-memory rule set. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	rules []core.Rule
	reads int
}

func New(rules ...core.Rule) *Store {
	return &Store{rules: append([]core.Rule(nil), rules...)}
}

// ReadRules returns a copy of the stored rules.
func (s *Store) ReadRules(_ context.Context) ([]core.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return append([]core.Rule(nil), s.rules...), nil
}

// Append adds a rule. Rules are validated when projected, not here.
func (s *Store) Append(r core.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
}

// Replace swaps the whole rule set.
func (s *Store) Replace(rules []core.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append([]core.Rule(nil), rules...)
}

// Reads reports how many times ReadRules was called.
func (s *Store) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
