package client

import (
	"context"
	"fmt"
	"net/http"

	"alchemist/internal/types"
)

// RuleService wraps the /rules resource family.
type RuleService struct {
	c *Client
}

// List fetches all allocation rules.
func (s *RuleService) List(ctx context.Context) ([]types.Rule, error) {
	var rules []types.Rule
	if err := s.c.do(ctx, s.c.std, http.MethodGet, "/rules", nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Create saves a new rule and returns the stored copy. The backend is the
// source of truth for the rule once saved; the returned copy carries the
// assigned ID and timestamps.
func (s *RuleService) Create(ctx context.Context, r types.Rule) (*types.Rule, error) {
	var created types.Rule
	if err := s.c.do(ctx, s.c.std, http.MethodPost, "/rules", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a rule.
func (s *RuleService) Update(ctx context.Context, id int, r types.Rule) (*types.Rule, error) {
	var updated types.Rule
	path := fmt.Sprintf("/rules/%d", id)
	if err := s.c.do(ctx, s.c.std, http.MethodPut, path, r, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a rule.
func (s *RuleService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, s.c.std, http.MethodDelete, fmt.Sprintf("/rules/%d", id), nil, nil)
}

// SetActive toggles a rule's active flag, leaving the rest of the rule
// untouched server-side.
func (s *RuleService) SetActive(ctx context.Context, id int, active bool) (*types.Rule, error) {
	var updated types.Rule
	path := fmt.Sprintf("/rules/%d", id)
	if err := s.c.do(ctx, s.c.std, http.MethodPut, path, map[string]any{"active": active}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetPriorities fetches the allocation weight triple.
func (s *RuleService) GetPriorities(ctx context.Context) (*types.RulePriorities, error) {
	var p types.RulePriorities
	if err := s.c.do(ctx, s.c.std, http.MethodGet, "/rules/priorities", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPriorities saves the weight triple. The sum-to-1 tolerance is enforced
// by the UI layer (save disabled outside tolerance); the service sends
// whatever it is given, matching the backend's advisory treatment.
func (s *RuleService) SetPriorities(ctx context.Context, p types.RulePriorities) error {
	return s.c.do(ctx, s.c.std, http.MethodPost, "/rules/priorities", p, nil)
}
