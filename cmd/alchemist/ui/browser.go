package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"alchemist/internal/client"
	"alchemist/internal/store"
	"alchemist/internal/types"
)

type browserMode int

const (
	modeTable browserMode = iota
	modeFilter
	modeEdit
)

// recordsMsg carries a fetched page of records.
type recordsMsg struct {
	entity types.EntityType
	page   *client.PageResult[types.Record]
}

// recordSavedMsg reports a committed cell edit.
type recordSavedMsg struct{ id string }

// errMsg carries an async failure into the update loop.
type errMsg struct{ err error }

// BrowserModel is the entity browser page: a record table with filtering,
// pagination, multi-select and inline cell editing.
type BrowserModel struct {
	styles Styles
	data   *client.DataService
	store  *store.DataStore

	table  table.Model
	filter textinput.Model
	editor textinput.Model

	mode    browserMode
	col     int
	status  string
	loading bool
	width   int
	height  int
}

// browserColumns maps each entity to its visible record fields.
var browserColumns = map[types.EntityType][]string{
	types.EntityClients: {"id", "name", "email", "priority", "status"},
	types.EntityWorkers: {"id", "name", "email", "skills", "hourlyRate", "availability"},
	types.EntityTasks:   {"id", "title", "status", "priority", "clientId", "duration"},
}

// NewBrowserModel creates the entity browser page.
func NewBrowserModel(data *client.DataService, st *store.DataStore, styles Styles) BrowserModel {
	filter := textinput.New()
	filter.Placeholder = "field=value"
	filter.CharLimit = 64

	editor := textinput.New()
	editor.CharLimit = 256

	m := BrowserModel{
		styles: styles,
		data:   data,
		store:  st,
		filter: filter,
		editor: editor,
	}
	m.table = m.buildTable(nil)
	return m
}

// Init fetches the first page.
func (m BrowserModel) Init() tea.Cmd {
	return m.fetch()
}

// fetch loads the store's current view from the backend.
func (m BrowserModel) fetch() tea.Cmd {
	entity := m.store.Entity()
	p := m.store.Pagination()
	q := client.ListQuery{Page: p.Page, Limit: p.Limit, Filters: m.store.Filters()}
	return func() tea.Msg {
		page, err := m.data.List(context.Background(), entity, q)
		if err != nil {
			return errMsg{err}
		}
		return recordsMsg{entity: entity, page: page}
	}
}

// Update handles messages.
func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-8))
		return m, nil

	case recordsMsg:
		m.loading = false
		m.store.SetRecords(msg.entity, msg.page.Items, store.Pagination{
			Page:       msg.page.Page,
			Limit:      msg.page.Limit,
			Total:      msg.page.Total,
			TotalPages: msg.page.TotalPages,
		})
		if msg.entity == m.store.Entity() {
			m.table = m.buildTable(msg.page.Items)
		}
		m.status = ""
		return m, nil

	case recordSavedMsg:
		m.loading = false
		m.status = m.styles.Success.Render("saved " + msg.id)
		return m, m.fetch()

	case errMsg:
		m.loading = false
		m.status = m.styles.Error.Render(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeEdit:
			return m.updateEditor(msg)
		}
		return m.updateTable(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) updateTable(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.store.SetEntity(nextEntity(m.store.Entity()))
		m.col = 0
		m.filter.SetValue("")
		m.loading = true
		return m, m.fetch()
	case "/":
		m.mode = modeFilter
		m.filter.Focus()
		return m, textinput.Blink
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
		return m, nil
	case "right", "l":
		if m.col < len(browserColumns[m.store.Entity()])-1 {
			m.col++
		}
		return m, nil
	case "n":
		p := m.store.Pagination()
		if p.TotalPages == 0 || p.Page < p.TotalPages {
			m.store.SetPage(p.Page + 1)
			m.loading = true
			return m, m.fetch()
		}
		return m, nil
	case "p":
		m.store.SetPage(m.store.Pagination().Page - 1)
		m.loading = true
		return m, m.fetch()
	case " ":
		if id := m.selectedID(); id != "" {
			m.store.ToggleSelect(id)
			m.table = m.buildTable(m.store.Records(m.store.Entity()))
		}
		return m, nil
	case "enter", "e":
		return m.startEdit()
	case "x":
		return m.deleteSelected()
	case "c":
		m.store.ClearFilters()
		m.filter.SetValue("")
		m.loading = true
		return m, m.fetch()
	case "r":
		m.loading = true
		return m, m.fetch()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowserModel) updateFilter(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.filter.Blur()
		return m, nil
	case "enter":
		m.mode = modeTable
		m.filter.Blur()
		key, value, ok := strings.Cut(m.filter.Value(), "=")
		if ok {
			m.store.SetFilter(strings.TrimSpace(key), strings.TrimSpace(value))
		} else if strings.TrimSpace(m.filter.Value()) == "" {
			m.store.ClearFilters()
		}
		m.loading = true
		return m, m.fetch()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m BrowserModel) startEdit() (BrowserModel, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}
	field := browserColumns[m.store.Entity()][m.col]
	if field == "id" {
		m.status = m.styles.Warning.Render("record IDs are not editable")
		return m, nil
	}
	m.mode = modeEdit
	m.editor.SetValue(m.selectedCell())
	m.editor.Placeholder = field
	m.editor.Focus()
	return m, textinput.Blink
}

func (m BrowserModel) updateEditor(msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.editor.Blur()
		return m, nil
	case "enter":
		m.mode = modeTable
		m.editor.Blur()
		id := m.selectedID()
		entity := m.store.Entity()
		field := browserColumns[entity][m.col]
		value := m.editor.Value()
		m.loading = true
		return m, func() tea.Msg {
			_, err := m.data.Update(context.Background(), entity, id, map[string]any{field: value})
			if err != nil {
				return errMsg{err}
			}
			return recordSavedMsg{id: id}
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m BrowserModel) deleteSelected() (BrowserModel, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}
	entity := m.store.Entity()
	m.loading = true
	return m, func() tea.Msg {
		if err := m.data.Delete(context.Background(), entity, id); err != nil {
			return errMsg{err}
		}
		return recordSavedMsg{id: id}
	}
}

// selectedID returns the record ID of the highlighted table row.
func (m BrowserModel) selectedID() string {
	row := m.table.SelectedRow()
	if len(row) < 2 {
		return ""
	}
	return strings.TrimSpace(row[1])
}

func (m BrowserModel) selectedCell() string {
	row := m.table.SelectedRow()
	idx := m.col + 1 // leading selection marker column
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// buildTable rebuilds the bubbles table for the current entity.
func (m BrowserModel) buildTable(recs []types.Record) table.Model {
	fields := browserColumns[m.store.Entity()]
	cols := make([]table.Column, 0, len(fields)+1)
	cols = append(cols, table.Column{Title: " ", Width: 2})
	for _, f := range fields {
		w := len(f) + 2
		if w < 10 {
			w = 10
		}
		cols = append(cols, table.Column{Title: f, Width: w})
	}

	rows := make([]table.Row, 0, len(recs))
	for _, rec := range recs {
		mark := " "
		if m.store.Selected(rec.ID()) {
			mark = "*"
		}
		row := table.Row{mark}
		for _, f := range fields {
			row = append(row, CellValue(rec, f))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return t
}

// CellValue renders one record field for display. The CLI list command and
// the browser table share it so both render a record the same way.
func CellValue(rec types.Record, field string) string {
	v, ok := rec[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprintf("%v", p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// nextEntity cycles clients -> workers -> tasks -> clients.
func nextEntity(e types.EntityType) types.EntityType {
	for i, known := range types.Entities {
		if known == e {
			return types.Entities[(i+1)%len(types.Entities)]
		}
	}
	return types.EntityClients
}

// View renders the page.
func (m BrowserModel) View() string {
	var sb strings.Builder

	entity := m.store.Entity()
	p := m.store.Pagination()
	title := fmt.Sprintf("Data Browser - %s", entity)
	if m.loading {
		title += " (loading...)"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")

	if filters := m.store.Filters(); len(filters) > 0 {
		parts := make([]string, 0, len(filters))
		for k, v := range filters {
			parts = append(parts, k+"="+v)
		}
		sb.WriteString(m.styles.Badge.Render("filter: " + strings.Join(parts, " ")))
		sb.WriteString("\n")
	}

	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	switch m.mode {
	case modeFilter:
		sb.WriteString(m.styles.Bold.Render("filter> "))
		sb.WriteString(m.filter.View())
	case modeEdit:
		field := browserColumns[entity][m.col]
		sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("%s = ", field)))
		sb.WriteString(m.editor.View())
	default:
		footer := fmt.Sprintf("page %d/%d (%d total)  tab:entity /:filter e:edit x:delete space:select n/p:page r:refresh",
			p.Page, max(p.TotalPages, 1), p.Total)
		sb.WriteString(m.styles.Footer.Render(footer))
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	return sb.String()
}
