package client

import (
	"context"
	"fmt"
	"net/http"

	"alchemist/internal/types"
)

// AIService wraps the /ai endpoints. All calls ride the long-timeout client;
// inference latency dwarfs the regular data traffic.
//
// One quirk to be aware of: the recommendation and insight endpoints answer
// HTTP 400 when nothing has been uploaded yet. That is an expected empty
// state, not a failure, so those calls return empty results instead of
// propagating the error.
type AIService struct {
	c *Client
}

// Chat sends a free-text message with optional conversation context and
// returns the assistant's markdown reply.
func (s *AIService) Chat(ctx context.Context, message string, history []string) (string, error) {
	req := map[string]any{"message": message}
	if len(history) > 0 {
		req["history"] = history
	}
	var resp struct {
		Response string `json:"response"`
	}
	if err := s.c.do(ctx, s.c.long, http.MethodPost, "/ai/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Query runs a natural-language query over the uploaded data and returns the
// matching records.
func (s *AIService) Query(ctx context.Context, query string) ([]types.Record, error) {
	var records []types.Record
	req := map[string]any{"query": query}
	if err := s.c.do(ctx, s.c.long, http.MethodPost, "/ai/query", req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RecommendRules asks the AI for rule suggestions based on the uploaded
// data. HTTP 400 means "no data uploaded yet" and yields an empty slice.
func (s *AIService) RecommendRules(ctx context.Context, prompt string) ([]types.Rule, error) {
	req := map[string]any{}
	if prompt != "" {
		req["prompt"] = prompt
	}
	body, err := s.c.doRaw(ctx, s.c.long, http.MethodPost, "/ai/rule", req)
	if err != nil {
		if IsStatus(err, http.StatusBadRequest) {
			return nil, nil
		}
		return nil, err
	}

	// The envelope carries the rules either in data or in a sibling
	// recommendations field. Try the standard shape first; an envelope
	// failure or a non-array data payload falls through to the sibling.
	var rules []types.Rule
	if err := decodeEnvelope(body, &rules); err == nil {
		return rules, nil
	}
	var out struct {
		Recommendations []types.Rule `json:"recommendations"`
	}
	if err := decodeEnvelope(body, &out); err != nil {
		return nil, fmt.Errorf("recommend rules: %w", err)
	}
	return out.Recommendations, nil
}

// FixErrors asks the AI for fix suggestions for the given validation errors.
// The returned fixes are keyed by actual record IDs, not the synthesized
// validation-error IDs; see FixSession for the reconciliation.
func (s *AIService) FixErrors(ctx context.Context, errs []types.ValidationError) ([]types.FixSuggestion, error) {
	var fixes []types.FixSuggestion
	req := map[string]any{"errors": errs}
	if err := s.c.do(ctx, s.c.long, http.MethodPost, "/ai/fix-errors", req, &fixes); err != nil {
		return nil, err
	}
	return fixes, nil
}

// Insights returns a markdown analysis of the uploaded data. HTTP 400 means
// "no data uploaded yet" and yields an empty string.
func (s *AIService) Insights(ctx context.Context) (string, error) {
	var resp struct {
		Insights string `json:"insights"`
	}
	if err := s.c.do(ctx, s.c.long, http.MethodPost, "/ai/insights", map[string]any{}, &resp); err != nil {
		if IsStatus(err, http.StatusBadRequest) {
			return "", nil
		}
		return "", err
	}
	return resp.Insights, nil
}

// ValidateExtended runs the AI's extended validation pass and returns its
// issues with synthesized display IDs, same as the regular validation run.
func (s *AIService) ValidateExtended(ctx context.Context) ([]types.ValidationError, error) {
	body, err := s.c.doRaw(ctx, s.c.long, http.MethodPost, "/ai/validate-extended", map[string]any{})
	if err != nil {
		return nil, err
	}

	var out struct {
		Issues map[string][]wireValidationError `json:"issues"`
	}
	if err := decodeEnvelope(body, &out); err != nil {
		return nil, fmt.Errorf("validate extended: %w", err)
	}
	return adaptValidationErrors(out.Issues), nil
}

// wireValidationError is a backend validation finding before the client
// attaches its synthesized display ID.
type wireValidationError struct {
	Row      *int   `json:"row,omitempty"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Type     string `json:"type,omitempty"`
}

// adaptValidationErrors flattens the per-entity error map into a single list
// with synthesized "<entity>-<row>" IDs. Two errors on the same row share an
// ID; that collision is inherent to the scheme and callers must treat the ID
// as a display key only.
func adaptValidationErrors(byEntity map[string][]wireValidationError) []types.ValidationError {
	var errs []types.ValidationError
	for _, entity := range types.Entities {
		for _, we := range byEntity[string(entity)] {
			errs = append(errs, types.ValidationError{
				ID:       types.SynthesizeErrorID(entity, we.Row),
				Entity:   entity,
				Row:      we.Row,
				Field:    we.Field,
				Message:  we.Message,
				Severity: we.Severity,
				Type:     we.Type,
			})
		}
	}
	return errs
}
