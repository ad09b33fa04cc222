package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette used by every view. InitializeSkin swaps it.
var (
	ColorNavy   lipgloss.TerminalColor = lipgloss.Color("#1E2A4A")
	ColorWhite  lipgloss.TerminalColor = lipgloss.Color("#F5F5F5")
	ColorGray   lipgloss.TerminalColor = lipgloss.Color("245")
	ColorBlue   lipgloss.TerminalColor = lipgloss.Color("#3D8BFD")
	ColorRed    lipgloss.TerminalColor = lipgloss.Color("#DC3545")
	ColorYellow lipgloss.TerminalColor = lipgloss.Color("#FFC107")
	ColorBlack  lipgloss.TerminalColor = lipgloss.Color("#212529")
)

type skin struct {
	navy, white, gray, blue, red, yellow, black lipgloss.TerminalColor
}

var skins = map[string]skin{
	"default": {
		navy:   lipgloss.Color("#1E2A4A"),
		white:  lipgloss.Color("#F5F5F5"),
		gray:   lipgloss.Color("245"),
		blue:   lipgloss.Color("#3D8BFD"),
		red:    lipgloss.Color("#DC3545"),
		yellow: lipgloss.Color("#FFC107"),
		black:  lipgloss.Color("#212529"),
	},
	"ansi": {
		navy:   lipgloss.Color("4"),
		white:  lipgloss.Color("15"),
		gray:   lipgloss.Color("8"),
		blue:   lipgloss.Color("12"),
		red:    lipgloss.Color("9"),
		yellow: lipgloss.Color("11"),
		black:  lipgloss.Color("0"),
	},
	"mono": {
		navy:   lipgloss.NoColor{},
		white:  lipgloss.NoColor{},
		gray:   lipgloss.NoColor{},
		blue:   lipgloss.NoColor{},
		red:    lipgloss.NoColor{},
		yellow: lipgloss.NoColor{},
		black:  lipgloss.NoColor{},
	},
}

// InitializeSkin selects the named palette. Unknown names leave the default
// palette in place and return an error.
func InitializeSkin(name string) error {
	if name == "" {
		name = "default"
	}
	s, ok := skins[name]
	if !ok {
		s = skins["default"]
		applySkin(s)
		return fmt.Errorf("unknown skin %q", name)
	}
	applySkin(s)
	return nil
}

func applySkin(s skin) {
	ColorNavy = s.navy
	ColorWhite = s.white
	ColorGray = s.gray
	ColorBlue = s.blue
	ColorRed = s.red
	ColorYellow = s.yellow
	ColorBlack = s.black
}
