package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case RefreshRequestMsg:
		return m, m.refresh()

	case snapshotLoadedMsg:
		if m.closed {
			return m, nil
		}
		m.state.ResolveFetch(msg.snap, msg.err)

	case refreshDoneMsg:
		if m.closed {
			return m, nil
		}
		m.state.ResolveRefresh(msg.resp, msg.err)

	case SpinnerTickMsg:
		m.spinnerActive = false
		return m, m.startSpinnerIfNeeded()
	}

	return m, nil
}

func (m *MonitorModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	}
	return m, nil
}
