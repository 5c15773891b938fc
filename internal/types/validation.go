package types

import "fmt"

// ValidationError is one finding from the backend validation engine. The
// backend does not supply a stable per-error key, so the client synthesizes
// ID as "<entity>-<row>". Two errors on the same row share an ID; treat it
// as a display key only, never as an update target.
type ValidationError struct {
	ID       string     `json:"id,omitempty"`
	Entity   EntityType `json:"entity"`
	Row      *int       `json:"row,omitempty"`
	Field    string     `json:"field"`
	Message  string     `json:"message"`
	Severity string     `json:"severity"` // "error" or "warning"
	Type     string     `json:"type,omitempty"`
}

// SynthesizeErrorID builds the display key for a validation error. A missing
// row number yields "<entity>-unknown".
func SynthesizeErrorID(entity EntityType, row *int) string {
	if row == nil {
		return fmt.Sprintf("%s-unknown", entity)
	}
	return fmt.Sprintf("%s-%d", entity, *row)
}

// FixSuggestion is an AI-proposed correction for a validation error. RowID is
// the actual record ID in the fix service's ID space; OriginalValidationID,
// when present, refers back to the synthesized validation-error ID.
type FixSuggestion struct {
	RowID                string     `json:"rowId"`
	OriginalValidationID string     `json:"originalValidationId,omitempty"`
	Entity               EntityType `json:"entity"`
	Field                string     `json:"field"`
	SuggestedValue       any        `json:"suggestedValue"`
	Reason               string     `json:"reason,omitempty"`
	Confidence           float64    `json:"confidence,omitempty"`
}

// ValidationSummary is the aggregate result of a validation run.
type ValidationSummary struct {
	IsValid       bool           `json:"isValid"`
	TotalErrors   int            `json:"totalErrors"`
	TotalWarnings int            `json:"totalWarnings"`
	ByEntity      map[string]int `json:"byEntity,omitempty"`
	LastRun       string         `json:"lastRun,omitempty"`
}
