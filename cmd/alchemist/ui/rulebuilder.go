package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"alchemist/internal/client"
	"alchemist/internal/rulegen"
	"alchemist/internal/store"
	"alchemist/internal/types"
)

// builderTypes are the rule types the form can assemble locally. The
// remaining types come from AI recommendations, not manual entry.
var builderTypes = []types.RuleType{types.RuleCoRun, types.RuleLoadLimit, types.RulePhaseWindow}

// ruleSavedMsg reports a created rule.
type ruleSavedMsg struct{ rule *types.Rule }

// prioritiesSavedMsg reports committed priority weights.
type prioritiesSavedMsg struct{}

// RuleBuilderModel is the rule builder page: a type picker, per-type form
// fields with a live condition/action preview, and the priority weight
// editor.
type RuleBuilderModel struct {
	styles Styles
	rules  *client.RuleService
	store  *store.RuleStore

	typeIdx int
	inputs  []textinput.Model
	focus   int
	name    textinput.Model

	weights     [3]textinput.Model
	weightsMode bool

	fields  rulegen.Fields
	warn    bool
	status  string
	loading bool
}

// NewRuleBuilderModel creates the rule builder page.
func NewRuleBuilderModel(rules *client.RuleService, st *store.RuleStore, styles Styles) RuleBuilderModel {
	name := textinput.New()
	name.Placeholder = "rule name"
	name.CharLimit = 64
	name.Focus()

	m := RuleBuilderModel{
		styles: styles,
		rules:  rules,
		store:  st,
		name:   name,
	}
	m.inputs = m.formInputs()

	p := st.Priorities()
	for i, v := range []float64{p.PriorityLevel, p.Fairness, p.Cost} {
		in := textinput.New()
		in.CharLimit = 6
		in.SetValue(strconv.FormatFloat(v, 'f', 2, 64))
		m.weights[i] = in
	}
	return m
}

// formInputs builds the per-type field inputs.
func (m RuleBuilderModel) formInputs() []textinput.Model {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		return in
	}
	switch builderTypes[m.typeIdx] {
	case types.RuleCoRun:
		return []textinput.Model{mk("task IDs, comma separated (e.g. 3,7)")}
	case types.RuleLoadLimit:
		return []textinput.Model{mk("worker group"), mk("max slots per phase")}
	default:
		return []textinput.Model{mk("task ID"), mk("allowed phases, comma separated")}
	}
}

// Init loads the saved priorities.
func (m RuleBuilderModel) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := m.rules.GetPriorities(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return prioritiesMsg{p: *p}
	}
}

type prioritiesMsg struct{ p types.RulePriorities }

// recompute derives the condition/action preview from the form.
func (m *RuleBuilderModel) recompute() {
	switch builderTypes[m.typeIdx] {
	case types.RuleCoRun:
		ids := splitList(m.inputs[0].Value())
		m.fields, m.warn = rulegen.CoRunFields(rulegen.CoRunForm{TaskIDs: ids})
	case types.RuleLoadLimit:
		slots, _ := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
		m.fields = rulegen.LoadLimitFields(rulegen.LoadLimitForm{
			WorkerGroup: m.inputs[0].Value(),
			MaxSlots:    slots,
		})
		m.warn = false
	default:
		var phases []int
		for _, s := range splitList(m.inputs[1].Value()) {
			if n, err := strconv.Atoi(s); err == nil {
				phases = append(phases, n)
			}
		}
		m.fields = rulegen.PhaseWindowFields(rulegen.PhaseWindowForm{
			TaskID: strings.TrimSpace(m.inputs[0].Value()),
			Phases: phases,
		})
		m.warn = false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Update handles messages.
func (m RuleBuilderModel) Update(msg tea.Msg) (RuleBuilderModel, tea.Cmd) {
	switch msg := msg.(type) {
	case prioritiesMsg:
		m.store.SetPriorities(msg.p)
		for i, v := range []float64{msg.p.PriorityLevel, msg.p.Fairness, msg.p.Cost} {
			m.weights[i].SetValue(strconv.FormatFloat(v, 'f', 2, 64))
		}
		return m, nil

	case ruleSavedMsg:
		m.loading = false
		m.store.AddRule(*msg.rule)
		m.status = m.styles.Success.Render(fmt.Sprintf("rule %d saved", msg.rule.ID))
		return m, nil

	case prioritiesSavedMsg:
		m.loading = false
		m.status = m.styles.Success.Render("priorities saved")
		return m, nil

	case errMsg:
		m.loading = false
		m.status = m.styles.Error.Render(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		if m.weightsMode {
			return m.updateWeights(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m RuleBuilderModel) updateForm(msg tea.KeyMsg) (RuleBuilderModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+t":
		m.typeIdx = (m.typeIdx + 1) % len(builderTypes)
		m.inputs = m.formInputs()
		m.focus = 0
		m.recompute()
		return m, nil
	case "ctrl+w":
		m.weightsMode = true
		m.weights[0].Focus()
		return m, textinput.Blink
	case "tab", "down":
		m.focus = (m.focus + 1) % (len(m.inputs) + 1)
		return m.refocus(), nil
	case "shift+tab", "up":
		m.focus = (m.focus + len(m.inputs)) % (len(m.inputs) + 1)
		return m.refocus(), nil
	case "ctrl+s":
		return m.save()
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.inputs[m.focus-1], cmd = m.inputs[m.focus-1].Update(msg)
		m.recompute()
	}
	return m, cmd
}

func (m RuleBuilderModel) refocus() RuleBuilderModel {
	m.name.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focus == 0 {
		m.name.Focus()
	} else {
		m.inputs[m.focus-1].Focus()
	}
	return m
}

func (m RuleBuilderModel) save() (RuleBuilderModel, tea.Cmd) {
	if m.fields.Condition == "" {
		m.status = m.styles.Warning.Render("nothing to save: the form is incomplete")
		return m, nil
	}
	rule := types.Rule{
		Name:      strings.TrimSpace(m.name.Value()),
		Type:      builderTypes[m.typeIdx],
		Condition: m.fields.Condition,
		Action:    m.fields.Action,
		Priority:  5,
		Active:    true,
	}
	if rule.Name == "" {
		rule.Name = string(rule.Type) + " rule"
	}
	m.loading = true
	return m, func() tea.Msg {
		saved, err := m.rules.Create(context.Background(), rule)
		if err != nil {
			return errMsg{err}
		}
		return ruleSavedMsg{rule: saved}
	}
}

func (m RuleBuilderModel) updateWeights(msg tea.KeyMsg) (RuleBuilderModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+w":
		m.weightsMode = false
		for i := range m.weights {
			m.weights[i].Blur()
		}
		return m, nil
	case "tab", "down":
		return m.cycleWeight(1), nil
	case "shift+tab", "up":
		return m.cycleWeight(-1), nil
	case "enter", "ctrl+s":
		p := m.parsedWeights()
		m.store.SetPriorities(p)
		if !m.store.CanSavePriorities() {
			m.status = m.styles.Warning.Render(
				fmt.Sprintf("weights sum to %.2f, must be 1.00 within 0.01", p.Sum()))
			return m, nil
		}
		m.loading = true
		return m, func() tea.Msg {
			if err := m.rules.SetPriorities(context.Background(), p); err != nil {
				return errMsg{err}
			}
			return prioritiesSavedMsg{}
		}
	}

	for i := range m.weights {
		if m.weights[i].Focused() {
			var cmd tea.Cmd
			m.weights[i], cmd = m.weights[i].Update(msg)
			m.store.SetPriorities(m.parsedWeights())
			return m, cmd
		}
	}
	return m, nil
}

func (m RuleBuilderModel) cycleWeight(delta int) RuleBuilderModel {
	cur := 0
	for i := range m.weights {
		if m.weights[i].Focused() {
			cur = i
		}
		m.weights[i].Blur()
	}
	m.weights[(cur+delta+3)%3].Focus()
	return m
}

func (m RuleBuilderModel) parsedWeights() types.RulePriorities {
	parse := func(in textinput.Model) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(in.Value()), 64)
		if err != nil {
			return 0
		}
		return v
	}
	return types.RulePriorities{
		PriorityLevel: parse(m.weights[0]),
		Fairness:      parse(m.weights[1]),
		Cost:          parse(m.weights[2]),
	}
}

// View renders the page.
func (m RuleBuilderModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Rule Builder"))
	sb.WriteString("\n")

	if m.weightsMode {
		sb.WriteString(m.styles.Subtitle.Render("Priority weights (must sum to 1.0)"))
		sb.WriteString("\n")
		labels := []string{"priority level", "fairness", "cost"}
		for i := range m.weights {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", labels[i], m.weights[i].View()))
		}
		p := m.store.Priorities()
		line := fmt.Sprintf("sum: %.2f", p.Sum())
		if m.store.CanSavePriorities() {
			sb.WriteString(m.styles.Success.Render(line))
		} else {
			sb.WriteString(m.styles.Warning.Render(line + " (save disabled)"))
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Footer.Render("enter:save esc:back"))
	} else {
		sb.WriteString(m.styles.Badge.Render(string(builderTypes[m.typeIdx])))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", "name", m.name.View()))
		for i := range m.inputs {
			sb.WriteString(fmt.Sprintf("  %-10s %s\n", fmt.Sprintf("field %d", i+1), m.inputs[i].View()))
		}
		sb.WriteString("\n")

		preview := m.styles.Panel.Render(fmt.Sprintf(
			"condition: %s\naction:    %s", m.fields.Condition, m.fields.Action))
		sb.WriteString(preview)
		sb.WriteString("\n")
		if m.warn {
			sb.WriteString(m.styles.Warning.Render("co-run needs at least two distinct tasks"))
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Footer.Render("ctrl+t:type ctrl+w:weights ctrl+s:save tab:next field"))
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	return sb.String()
}
