package tui

import tea "github.com/charmbracelet/bubbletea"

// Page is a top-level screen hosted by App.
type Page interface {
	ID() string
	Init() tea.Cmd
	// Update handles msg. A non-nil PageNav asks App to switch pages.
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}
