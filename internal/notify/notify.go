// Package notify surfaces transient user-facing messages, the terminal
// equivalent of the web client's toasts. The transport layer emits one
// notification per failed request unless the request path is on the quiet
// list.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notifier receives transient messages. Implementations must be safe for
// concurrent use; the transport may notify from any goroutine.
type Notifier interface {
	Notify(level Level, msg string)
}

// Terminal writes styled one-line notifications to a writer, normally
// stderr so they interleave cleanly with piped command output.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	okStyle   lipgloss.Style
	infoStyle lipgloss.Style
}

// NewTerminal creates a terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:       out,
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		infoStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
	}
}

// Notify implements Notifier.
func (t *Terminal) Notify(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var line string
	switch level {
	case LevelError:
		line = t.errStyle.Render("✗ " + msg)
	case LevelWarning:
		line = t.warnStyle.Render("⚠ " + msg)
	case LevelSuccess:
		line = t.okStyle.Render("✓ " + msg)
	default:
		line = t.infoStyle.Render("· " + msg)
	}
	fmt.Fprintln(t.out, line)
}

// Silent discards all notifications. The TUI installs it because pages
// render errors inline instead.
type Silent struct{}

// Notify implements Notifier.
func (Silent) Notify(Level, string) {}
