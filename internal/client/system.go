package client

import (
	"context"
	"fmt"
	"net/http"

	"alchemist/internal/types"
)

// SystemService wraps health checks and the server-side validation engine.
type SystemService struct {
	c *Client
}

// Health checks the backend API. Rides the short-timeout client; health
// checks that hang are failures.
func (s *SystemService) Health(ctx context.Context) (*types.HealthStatus, error) {
	var h types.HealthStatus
	if err := s.c.do(ctx, s.c.short, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// AIHealth checks the AI subsystem.
func (s *SystemService) AIHealth(ctx context.Context) (*types.HealthStatus, error) {
	var h types.HealthStatus
	if err := s.c.do(ctx, s.c.short, http.MethodGet, "/ai/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ValidationSummary fetches the cached result of the last validation run.
func (s *SystemService) ValidationSummary(ctx context.Context) (*types.ValidationSummary, error) {
	var sum types.ValidationSummary
	if err := s.c.do(ctx, s.c.std, http.MethodGet, "/data/validation-summary", nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// ValidateOptions configures a validation run.
type ValidateOptions struct {
	CacheResults bool `json:"cacheResults"`
}

// ValidationReport is a full validation run: the aggregate summary plus the
// per-row findings with synthesized display IDs.
type ValidationReport struct {
	Summary types.ValidationSummary
	Errors  []types.ValidationError
}

// wireValidationReport is the data payload of /data/validate-enhanced.
type wireValidationReport struct {
	IsValid       bool                             `json:"isValid"`
	TotalErrors   int                              `json:"totalErrors"`
	TotalWarnings int                              `json:"totalWarnings"`
	LastRun       string                           `json:"lastRun,omitempty"`
	Errors        map[string][]wireValidationError `json:"errors"`
}

// Validate runs the server-side validation engine.
func (s *SystemService) Validate(ctx context.Context, opts ValidateOptions) (*ValidationReport, error) {
	var wire wireValidationReport
	if err := s.c.do(ctx, s.c.std, http.MethodPost, "/data/validate-enhanced", opts, &wire); err != nil {
		return nil, err
	}

	byEntity := make(map[string]int, len(wire.Errors))
	for entity, errs := range wire.Errors {
		byEntity[entity] = len(errs)
	}

	report := &ValidationReport{
		Summary: types.ValidationSummary{
			IsValid:       wire.IsValid,
			TotalErrors:   wire.TotalErrors,
			TotalWarnings: wire.TotalWarnings,
			ByEntity:      byEntity,
			LastRun:       wire.LastRun,
		},
		Errors: adaptValidationErrors(wire.Errors),
	}
	if report.Summary.TotalErrors == 0 && len(report.Errors) > 0 {
		// Older backend builds omit the counter; derive it.
		for _, e := range report.Errors {
			if e.Severity != "warning" {
				report.Summary.TotalErrors++
			}
		}
	}
	return report, nil
}

// String renders a one-line summary, used by the CLI status output.
func (r *ValidationReport) String() string {
	if r.Summary.IsValid {
		return "valid: no errors"
	}
	return fmt.Sprintf("invalid: %d errors, %d warnings", r.Summary.TotalErrors, r.Summary.TotalWarnings)
}
