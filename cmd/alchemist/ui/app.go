package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"alchemist/internal/client"
	"alchemist/internal/store"
)

type page int

const (
	pageBrowser page = iota
	pageRules
	pageValidation
	pageUpload
)

var pageNames = []string{"Data", "Rules", "Validation", "Uploads"}

// AppModel is the top-level interactive model. It owns the stores and
// routes messages to the active page.
type AppModel struct {
	styles Styles

	active     page
	browser    BrowserModel
	rules      RuleBuilderModel
	validation FixViewModel
	uploads    UploadViewModel

	width  int
	height int
}

// NewAppModel wires the pages to a shared client and fresh stores.
func NewAppModel(api *client.Client, styles Styles) AppModel {
	dataStore := store.NewDataStore()
	ruleStore := store.NewRuleStore()
	uploadStore := store.NewUploadStore()

	return AppModel{
		styles:     styles,
		browser:    NewBrowserModel(api.Data(), dataStore, styles),
		rules:      NewRuleBuilderModel(api.Rules(), ruleStore, styles),
		validation: NewFixViewModel(api, styles),
		uploads:    NewUploadViewModel(api.Upload(), uploadStore, styles),
	}
}

// Init starts the active page.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.browser.Init(), m.uploads.Init())
}

// Update routes messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		cmds = append(cmds, cmd)
		m.validation, cmd = m.validation.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			return m, tea.Quit
		// Function keys always switch, even while a text input is
		// focused; otherwise the rule builder form would trap the user.
		case "f1", "f2", "f3", "f4":
			return m.switchTo(page(key[1] - '1'))
		case "1", "2", "3", "4":
			if !m.editing() {
				return m.switchTo(page(key[0] - '1'))
			}
		case "q":
			if m.active == pageBrowser && m.browser.mode == modeTable {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case pageBrowser:
		m.browser, cmd = m.browser.Update(msg)
	case pageRules:
		m.rules, cmd = m.rules.Update(msg)
	case pageValidation:
		m.validation, cmd = m.validation.Update(msg)
	case pageUpload:
		m.uploads, cmd = m.uploads.Update(msg)
	}
	return m, cmd
}

// switchTo activates a page and kicks off its initial fetch.
func (m AppModel) switchTo(p page) (tea.Model, tea.Cmd) {
	if p == m.active {
		return m, nil
	}
	m.active = p
	switch p {
	case pageBrowser:
		return m, m.browser.Init()
	case pageRules:
		return m, m.rules.Init()
	case pageValidation:
		return m, m.validation.Init()
	default:
		return m, m.uploads.Init()
	}
}

// editing reports whether the active page holds a focused text input, so
// number keys type instead of switching pages.
func (m AppModel) editing() bool {
	switch m.active {
	case pageBrowser:
		return m.browser.mode != modeTable
	case pageRules:
		return true
	}
	return false
}

// View renders the tab bar and the active page.
func (m AppModel) View() string {
	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf(" %d:%s ", i+1, name)
		if page(i) == m.active {
			tabs = append(tabs, m.styles.Badge.Render(label))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(label))
		}
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("alchemist " + strings.Join(tabs, "")))
	sb.WriteString("\n\n")
	switch m.active {
	case pageBrowser:
		sb.WriteString(m.browser.View())
	case pageRules:
		sb.WriteString(m.rules.View())
	case pageValidation:
		sb.WriteString(m.validation.View())
	case pageUpload:
		sb.WriteString(m.uploads.View())
	}
	return sb.String()
}

// Run starts the interactive interface and blocks until it exits.
func Run(api *client.Client, styles Styles) error {
	p := tea.NewProgram(NewAppModel(api, styles), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
