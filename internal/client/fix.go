package client

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"alchemist/internal/types"
)

// FixSession resolves the ID-space mismatch between the two backend
// subsystems involved in AI fixes: the validation engine keys errors by the
// synthesized "<entity>-<row>" display IDs, while the fix-suggestion service
// keys fixes by actual record IDs, with an optional originalValidationId
// back-reference. A session holds the working error list, the reconciliation
// map and the set of already-applied fixes for one validate-and-fix pass.
type FixSession struct {
	mu     sync.Mutex
	errors []types.ValidationError
	fixes  []types.FixSuggestion
	idMap  map[string]string // original error ID -> actual record ID
	fixed  map[string]bool

	data *DataService
}

// synthesizedID matches the client-generated validation-error key format.
// A resolved fix target that still looks like this is not a real record ID
// and must never be sent to the update endpoint.
var synthesizedID = regexp.MustCompile(`^(clients|workers|tasks)-\d+$`)

// NewFixSession starts a fix pass over the given validation errors.
func NewFixSession(data *DataService, errs []types.ValidationError) *FixSession {
	return &FixSession{
		data:   data,
		errors: append([]types.ValidationError(nil), errs...),
		idMap:  make(map[string]string),
		fixed:  make(map[string]bool),
	}
}

// Reconcile matches fix suggestions against the original errors and records
// the {original error ID -> actual record ID} mapping. The mapping must be
// recorded before the UI swaps its error view for the suggested fixes, or
// Apply has nothing to resolve against.
//
// Matching order, per fix:
//  1. exact equality of the fix's originalValidationId against an error ID;
//  2. fallback: first error with the same field name. Ties on field name are
//     not disambiguated by row — a known precision gap, kept as-is rather
//     than guessed around.
func (s *FixSession) Reconcile(fixes []types.FixSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fixes = append([]types.FixSuggestion(nil), fixes...)
	for _, fix := range fixes {
		if fix.OriginalValidationID != "" {
			for _, e := range s.errors {
				if e.ID == fix.OriginalValidationID {
					s.idMap[e.ID] = fix.RowID
					break
				}
			}
			continue
		}
		for _, e := range s.errors {
			if e.Field == fix.Field {
				s.idMap[e.ID] = fix.RowID
				break
			}
		}
	}

}

// Fixes returns the reconciled suggestions.
func (s *FixSession) Fixes() []types.FixSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.FixSuggestion(nil), s.fixes...)
}

// Errors returns the working error list.
func (s *FixSession) Errors() []types.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ValidationError(nil), s.errors...)
}

// ResolveID returns the actual record ID a fix should be applied to: the
// mapped ID when the fix's row ID was recorded as an original error ID,
// otherwise the fix's own row ID.
func (s *FixSession) ResolveID(fix types.FixSuggestion) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(fix)
}

func (s *FixSession) resolveLocked(fix types.FixSuggestion) string {
	if actual, ok := s.idMap[fix.RowID]; ok {
		return actual
	}
	if fix.OriginalValidationID != "" {
		if actual, ok := s.idMap[fix.OriginalValidationID]; ok {
			return actual
		}
	}
	return fix.RowID
}

// Apply issues the suggested field update against the resolved record ID.
// It fails closed: when the resolved ID still matches the synthesized
// validation-error pattern, the fix is rejected with a descriptive error
// before any request is sent — issuing an update against such an ID would
// 404 against a record that never existed.
//
// On success the error entry is dropped from the working list without
// refetching; a refetch could recompute different synthesized IDs and loop.
func (s *FixSession) Apply(ctx context.Context, fix types.FixSuggestion) error {
	s.mu.Lock()
	actualID := s.resolveLocked(fix)
	s.mu.Unlock()

	if synthesizedID.MatchString(actualID) {
		return fmt.Errorf("cannot apply fix for %s.%s: %q is a validation display ID, not a record ID",
			fix.Entity, fix.Field, actualID)
	}
	if fix.Entity == "" {
		return fmt.Errorf("cannot apply fix for record %s: missing entity", actualID)
	}

	patch := map[string]any{fix.Field: fix.SuggestedValue}
	if _, err := s.data.Update(ctx, fix.Entity, actualID, patch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixed[actualID] = true
	for orig, actual := range s.idMap {
		if actual == actualID {
			s.fixed[orig] = true
		}
	}
	if fix.OriginalValidationID != "" {
		s.fixed[fix.OriginalValidationID] = true
	}
	remaining := s.errors[:0]
	for _, e := range s.errors {
		if !s.fixed[e.ID] {
			remaining = append(remaining, e)
		}
	}
	s.errors = remaining
	return nil
}

// Fixed reports whether the given ID (record or validation-error) has been
// fixed in this session.
func (s *FixSession) Fixed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fixed[id]
}
