package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alchemist/internal/client"
	"alchemist/internal/types"
)

// validationMsg carries a completed validation run.
type validationMsg struct{ report *client.ValidationReport }

// fixesMsg carries AI fix suggestions after reconciliation.
type fixesMsg struct{ fixes []types.FixSuggestion }

// fixAppliedMsg reports a committed fix.
type fixAppliedMsg struct{ id string }

// FixViewModel is the validation page: errors on the left, AI fix
// suggestions on the right, with single-keystroke apply.
type FixViewModel struct {
	styles Styles
	api    *client.Client

	session *client.FixSession
	cursor  int

	status  string
	loading bool
	width   int
}

// NewFixViewModel creates the validation/fix page.
func NewFixViewModel(api *client.Client, styles Styles) FixViewModel {
	return FixViewModel{styles: styles, api: api, width: 100}
}

// Init runs an initial validation pass.
func (m FixViewModel) Init() tea.Cmd {
	return m.validate()
}

func (m FixViewModel) validate() tea.Cmd {
	return func() tea.Msg {
		report, err := m.api.System().Validate(context.Background(), client.ValidateOptions{CacheResults: true})
		if err != nil {
			return errMsg{err}
		}
		return validationMsg{report: report}
	}
}

func (m FixViewModel) suggest() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		fixes, err := m.api.AI().FixErrors(context.Background(), session.Errors())
		if err != nil {
			return errMsg{err}
		}
		session.Reconcile(fixes)
		return fixesMsg{fixes: session.Fixes()}
	}
}

func (m FixViewModel) apply() (FixViewModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	fixes := m.session.Fixes()
	if m.cursor >= len(fixes) {
		return m, nil
	}
	fix := fixes[m.cursor]
	session := m.session
	m.loading = true
	return m, func() tea.Msg {
		if err := session.Apply(context.Background(), fix); err != nil {
			return errMsg{err}
		}
		return fixAppliedMsg{id: session.ResolveID(fix)}
	}
}

// Update handles messages.
func (m FixViewModel) Update(msg tea.Msg) (FixViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case validationMsg:
		m.loading = false
		m.session = client.NewFixSession(m.api.Data(), msg.report.Errors)
		m.cursor = 0
		m.status = m.styles.Info.Render(
			fmt.Sprintf("%d validation errors", len(msg.report.Errors)))
		return m, nil

	case fixesMsg:
		m.loading = false
		m.status = m.styles.Info.Render(fmt.Sprintf("%d fix suggestions", len(msg.fixes)))
		return m, nil

	case fixAppliedMsg:
		m.loading = false
		m.status = m.styles.Success.Render("applied fix for " + msg.id)
		return m, nil

	case errMsg:
		m.loading = false
		m.status = m.styles.Error.Render(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "v", "r":
			m.loading = true
			return m, m.validate()
		case "s":
			if m.session == nil || len(m.session.Errors()) == 0 {
				m.status = m.styles.Muted.Render("no errors to fix")
				return m, nil
			}
			m.loading = true
			return m, m.suggest()
		case "a", "enter":
			return m.apply()
		case "j", "down":
			if m.session != nil && m.cursor < len(m.session.Fixes())-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
	}
	return m, nil
}

// View renders errors and suggestions side by side.
func (m FixViewModel) View() string {
	var errsPane, fixPane strings.Builder

	errsPane.WriteString(m.styles.Subtitle.Render("Validation errors"))
	errsPane.WriteString("\n")
	if m.session == nil || len(m.session.Errors()) == 0 {
		errsPane.WriteString(m.styles.Muted.Render("(none)"))
	} else {
		for _, e := range m.session.Errors() {
			mark := "  "
			if m.session.Fixed(e.ID) {
				mark = m.styles.Success.Render("+ ")
			}
			errsPane.WriteString(fmt.Sprintf("%s%s %s: %s\n",
				mark, m.styles.Bold.Render(e.ID), e.Field, e.Message))
		}
	}

	fixPane.WriteString(m.styles.Subtitle.Render("Fix suggestions"))
	fixPane.WriteString("\n")
	if m.session == nil || len(m.session.Fixes()) == 0 {
		fixPane.WriteString(m.styles.Muted.Render("(press s to request fixes)"))
	} else {
		for i, f := range m.session.Fixes() {
			cursor := "  "
			if i == m.cursor {
				cursor = m.styles.Bold.Render("> ")
			}
			fixPane.WriteString(fmt.Sprintf("%s%s.%s = %v  (%.0f%%)\n",
				cursor, m.session.ResolveID(f), f.Field, f.SuggestedValue, f.Confidence*100))
			if f.Reason != "" {
				fixPane.WriteString(m.styles.Muted.Render("    " + f.Reason))
				fixPane.WriteString("\n")
			}
		}
	}

	half := m.width/2 - 2
	if half < 30 {
		half = 30
	}
	left := m.styles.Panel.Width(half).Render(errsPane.String())
	right := m.styles.Panel.Width(half).Render(fixPane.String())

	var sb strings.Builder
	title := "Validation & Fixes"
	if m.loading {
		title += " (working...)"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("v:validate s:suggest fixes a:apply j/k:move"))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	return sb.String()
}
