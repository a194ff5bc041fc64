// Package tui provides the Bubble Tea frontend: the game view, the variant
// menu, session history and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one gravity step.
// ID identifies the model that scheduled it, so ticks still in flight from
// a finished game are dropped by the next one.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
