package store

import (
	"sync"

	"alchemist/internal/types"
)

// RuleStore holds the rule list and the allocation weight triple.
type RuleStore struct {
	mu         sync.RWMutex
	rules      []types.Rule
	priorities types.RulePriorities
	loading    bool
	lastError  string
}

// NewRuleStore creates a rule store with the default weights.
func NewRuleStore() *RuleStore {
	return &RuleStore{priorities: types.DefaultPriorities()}
}

// SetRules replaces the rule list.
func (s *RuleStore) SetRules(rules []types.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules[:0:0], rules...)
}

// Rules returns a snapshot of the rule list.
func (s *RuleStore) Rules() []types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Rule(nil), s.rules...)
}

// AddRule appends a saved rule.
func (s *RuleStore) AddRule(r types.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
}

// RemoveRule drops a rule by ID.
func (s *RuleStore) RemoveRule(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rules[:0]
	for _, r := range s.rules {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rules = kept
}

// ReplaceRule swaps the stored copy of a rule for its updated version.
func (s *RuleStore) ReplaceRule(r types.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].ID == r.ID {
			s.rules[i] = r
			return
		}
	}
	s.rules = append(s.rules, r)
}

// SetPriorities replaces the weight triple.
func (s *RuleStore) SetPriorities(p types.RulePriorities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priorities = p
}

// Priorities returns the current weight triple.
func (s *RuleStore) Priorities() types.RulePriorities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.priorities
}

// CanSavePriorities reports whether the weights are close enough to 1.0 for
// the save action to be enabled. Advisory: the check gates the UI action,
// nothing else.
func (s *RuleStore) CanSavePriorities() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.priorities.WithinTolerance()
}

// SetLoading flips the loading flag.
func (s *RuleStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports whether a rule fetch is in progress.
func (s *RuleStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records the last fetch/mutation error for display (empty clears).
func (s *RuleStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// LastError returns the recorded error message.
func (s *RuleStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
