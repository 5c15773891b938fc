// Package rulegen synthesizes the textual condition/action pair for an
// allocation rule from builder form state. The output is a human-readable
// summary of the rule, not an executable expression; the backend keeps its
// own evaluation semantics once the rule is saved.
//
// Every builder is a pure function of its form. The caller recomputes on
// each input change, so the same form always yields the same fields.
package rulegen

import (
	"fmt"
	"strings"
)

// Fields is the synthesized condition/action pair for a rule.
type Fields struct {
	Condition string
	Action    string
}

// CoRunForm is the co-run builder's form state.
type CoRunForm struct {
	TaskIDs []string
}

// CoRunFields builds the fields for a co-run rule. An empty selection
// yields an empty condition. The warning flag is set when fewer than two
// distinct tasks are selected; the rule is still produced, the caller
// decides whether to surface the warning.
func CoRunFields(f CoRunForm) (Fields, bool) {
	ids := distinct(f.TaskIDs)
	if len(ids) == 0 {
		return Fields{}, true
	}
	joined := strings.Join(ids, ", ")
	fields := Fields{
		Condition: fmt.Sprintf("task.id IN (%s)", joined),
		Action:    fmt.Sprintf("Run tasks %s together in the same phase", joined),
	}
	return fields, len(ids) < 2
}

// LoadLimitForm is the load-limit builder's form state.
type LoadLimitForm struct {
	WorkerGroup string
	MaxSlots    int
}

// LoadLimitFields builds the fields for a load-limit rule. An empty worker
// group yields empty fields.
func LoadLimitFields(f LoadLimitForm) Fields {
	group := strings.TrimSpace(f.WorkerGroup)
	if group == "" {
		return Fields{}
	}
	slots := f.MaxSlots
	if slots < 1 {
		slots = 1
	}
	return Fields{
		Condition: fmt.Sprintf("worker.group === '%s'", group),
		Action:    fmt.Sprintf("Limit %s workers to max %d slots per phase", group, slots),
	}
}

// PhaseWindowForm is the phase-window builder's form state.
type PhaseWindowForm struct {
	TaskID string
	Phases []int
}

// PhaseWindowFields builds the fields for a phase-window rule. A missing
// task or an empty phase list yields empty fields.
func PhaseWindowFields(f PhaseWindowForm) Fields {
	task := strings.TrimSpace(f.TaskID)
	if task == "" || len(f.Phases) == 0 {
		return Fields{}
	}
	phases := make([]string, len(f.Phases))
	for i, p := range f.Phases {
		phases[i] = fmt.Sprintf("%d", p)
	}
	list := strings.Join(phases, ", ")
	return Fields{
		Condition: fmt.Sprintf("task.id === '%s'", task),
		Action:    fmt.Sprintf("Allow task %s only in phases %s", task, list),
	}
}

// distinct keeps the first occurrence of each non-empty ID, preserving
// order.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
