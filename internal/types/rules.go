package types

import "math"

// RuleType is the structural kind of an allocation rule.
type RuleType string

const (
	RuleCoRun              RuleType = "coRun"
	RuleLoadLimit          RuleType = "loadLimit"
	RulePhaseWindow        RuleType = "phaseWindow"
	RuleSlotRestriction    RuleType = "slotRestriction"
	RulePatternMatch       RuleType = "patternMatch"
	RulePrecedenceOverride RuleType = "precedenceOverride"
)

// Rule is a named allocation constraint. The client only assembles the
// condition/action text; once saved, the backend copy is authoritative.
type Rule struct {
	ID          int      `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Condition   string   `json:"condition"`
	Action      string   `json:"action"`
	Priority    int      `json:"priority"` // 1-10
	Active      bool     `json:"active"`
	Type        RuleType `json:"type"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// WeightTolerance is how far the priority weight sum may drift from 1.0
// before saving is disabled. Advisory on the client; the backend still
// normalizes.
const WeightTolerance = 0.01

// RulePriorities holds the three normalized allocation weights.
type RulePriorities struct {
	PriorityLevel float64 `json:"priorityLevel"`
	Fairness      float64 `json:"fairness"`
	Cost          float64 `json:"cost"`
}

// DefaultPriorities returns the weights the client starts with.
func DefaultPriorities() RulePriorities {
	return RulePriorities{PriorityLevel: 0.4, Fairness: 0.3, Cost: 0.3}
}

// Sum returns the weight total.
func (p RulePriorities) Sum() float64 {
	return p.PriorityLevel + p.Fairness + p.Cost
}

// WithinTolerance reports whether the weights sum to 1.0 within
// WeightTolerance.
func (p RulePriorities) WithinTolerance() bool {
	return math.Abs(p.Sum()-1.0) <= WeightTolerance
}
