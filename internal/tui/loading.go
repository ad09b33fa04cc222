package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is how often the spinner advances while a request is in flight.
var spinnerInterval = 120 * time.Millisecond

// SpinnerTickMsg triggers a re-render for the loading spinners.
type SpinnerTickMsg struct{}

// spinnerFrame selects a frame based on the current time so it animates on re-render.
func spinnerFrame(now time.Time) string {
	return spinnerFrames[now.UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// startSpinnerIfNeeded schedules a spinner tick while a fetch or refresh is in
// flight. At most one tick is pending at a time.
func (m *MonitorModel) startSpinnerIfNeeded() tea.Cmd {
	if !m.busy() || m.spinnerActive {
		return nil
	}
	m.spinnerActive = true
	return spinnerTick()
}

// busy returns true if any request is in flight.
func (m *MonitorModel) busy() bool {
	return m.state.Loading || m.state.Refreshing
}
