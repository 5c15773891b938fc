package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"alchemist/internal/client"
	"alchemist/internal/store"
	"alchemist/internal/types"
)

// uploadStatusMsg carries the synthesized per-entity upload status.
type uploadStatusMsg struct{ files []types.UploadFile }

// UploadViewModel is the upload status page. Uploads themselves happen
// through the CLI; this page shows what the backend has ingested.
type UploadViewModel struct {
	styles  Styles
	uploads *client.UploadService
	store   *store.UploadStore

	status  string
	loading bool
}

// NewUploadViewModel creates the upload status page.
func NewUploadViewModel(uploads *client.UploadService, st *store.UploadStore, styles Styles) UploadViewModel {
	return UploadViewModel{styles: styles, uploads: uploads, store: st}
}

// Init fetches the initial status.
func (m UploadViewModel) Init() tea.Cmd {
	return m.refresh()
}

func (m UploadViewModel) refresh() tea.Cmd {
	return func() tea.Msg {
		files, err := m.uploads.Status(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return uploadStatusMsg{files: files}
	}
}

// Update handles messages.
func (m UploadViewModel) Update(msg tea.Msg) (UploadViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadStatusMsg:
		m.loading = false
		m.store.SetFiles(msg.files)
		for _, f := range msg.files {
			m.store.SetProgress(f.ID, f.Progress)
			m.store.SetStatus(f.ID, f.Status)
		}
		m.status = ""
		return m, nil

	case errMsg:
		m.loading = false
		m.status = m.styles.Error.Render(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.refresh()
		}
	}
	return m, nil
}

// progressBar renders a 20-cell bar for a 0-100 percentage.
func (m UploadViewModel) progressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 5
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	if pct == 100 {
		return m.styles.Success.Render(bar)
	}
	return m.styles.Info.Render(bar)
}

// View renders the page.
func (m UploadViewModel) View() string {
	var sb strings.Builder
	title := "Upload Status"
	if m.loading {
		title += " (loading...)"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")

	files := m.store.Files()
	if len(files) == 0 {
		sb.WriteString(m.styles.Muted.Render("No data uploaded yet. Use: alchemist upload <file> --entity <type>"))
		sb.WriteString("\n")
	}
	for _, f := range files {
		state := string(f.Status)
		var badge string
		switch f.Status {
		case types.UploadCompleted:
			badge = m.styles.Success.Render(state)
		case types.UploadFailed:
			badge = m.styles.Error.Render(state)
		default:
			badge = m.styles.Warning.Render(state)
		}
		sb.WriteString(fmt.Sprintf("  %-24s %s %3d%%  %s",
			f.Name, m.progressBar(f.Progress), f.Progress, badge))
		if f.RowCount > 0 {
			sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d rows", f.RowCount)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("r:refresh"))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	return sb.String()
}
