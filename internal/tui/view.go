package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/subwatch/internal/monitor"
)

const (
	minCardWidth = 36
	maxCardWidth = 64
)

// cardWidth returns the width of the centered card for the current terminal.
func (m *MonitorModel) cardWidth() int {
	w := m.width - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// View renders the monitor
func (m *MonitorModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing monitor..."
	}

	r := m.RenderModel()
	card := m.renderCard(r, m.cardWidth())
	statusLine := m.renderStatusLine()

	bodyHeight := m.height - lipgloss.Height(statusLine)
	if bodyHeight < lipgloss.Height(card) {
		bodyHeight = lipgloss.Height(card)
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, card)

	return lipgloss.JoinVertical(lipgloss.Left, body, statusLine)
}

// renderCard draws the render model as a bordered card of the given width.
func (m *MonitorModel) renderCard(r monitor.RenderModel, width int) string {
	inner := width - 4 // border + padding
	frame := spinnerFrame(m.now())

	var sections []string

	title := lipgloss.NewStyle().
		Width(inner).
		Background(ColorNavy).
		Foreground(ColorWhite).
		Bold(true).
		Padding(0, 1).
		Render(r.Title)
	sections = append(sections, title, "")

	if r.Banner != "" {
		sections = append(sections, renderBanner(r.Banner, inner), "")
	}

	if r.ShowLoading {
		loading := lipgloss.NewStyle().
			Width(inner).
			Align(lipgloss.Center).
			Foreground(ColorGray).
			Italic(true).
			Render(frame + " " + r.LoadingText)
		sections = append(sections, "", loading, "")
	} else {
		if r.Warning != nil {
			sections = append(sections, renderWarning(r.Warning, inner), "")
		}
		sections = append(sections, renderCount(r, inner), "")
		sections = append(sections, renderDetails(r, inner))
	}

	sections = append(sections, "", renderRefreshButton(r, frame, inner))

	footer := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(ColorGray).
		Render(r.Footer)
	sections = append(sections, "", footer)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderBanner(msg string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(ColorRed).
		Foreground(ColorWhite).
		Padding(0, 1).
		Render("✖ " + msg)
}

func renderWarning(w *monitor.Warning, width int) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(ColorYellow).Render(w.Heading)
	lines := []string{heading, w.Message}
	if w.BlockedNote != "" {
		rule := lipgloss.NewStyle().Foreground(ColorGray).Render(strings.Repeat("─", max(width-4, 1)))
		note := lipgloss.NewStyle().Foreground(ColorGray).Italic(true).Render(w.BlockedNote)
		lines = append(lines, rule, note)
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorYellow).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}

func renderCount(r monitor.RenderModel, width int) string {
	count := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(ColorBlue).
		Render(r.Count)

	caption := lipgloss.NewStyle().Foreground(ColorGray).Render(r.CountCaption)
	if r.BlockedBadge {
		badge := lipgloss.NewStyle().
			Background(ColorYellow).
			Foreground(ColorBlack).
			Padding(0, 1).
			Render(monitor.BlockedBadge)
		caption += " " + badge
	}
	captionLine := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(caption)

	return lipgloss.JoinVertical(lipgloss.Left, count, captionLine)
}

func renderDetails(r monitor.RenderModel, width int) string {
	label := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(ColorGray)

	updated := r.LastUpdated
	if r.LastUpdatedAgo != "" {
		updated += " " + dim.Render("("+r.LastUpdatedAgo+")")
	}

	lines := []string{
		label.Render("Problem ID:") + " " + r.ProblemID,
		label.Render("Last Updated:") + " " + updated,
		dim.Render(r.AutoRefreshNote),
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func renderRefreshButton(r monitor.RenderModel, frame string, width int) string {
	text := r.RefreshLabel
	if r.RefreshInProgress {
		text = frame + " " + text
	}

	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true)
	if r.RefreshDisabled {
		style = style.Background(ColorGray).Foreground(ColorBlack).Faint(true)
	} else {
		style = style.Background(ColorBlue).Foreground(ColorWhite)
	}
	return style.Render("[ " + text + " ]")
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *MonitorModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	bindings := m.keys.ShortHelp()
	if m.showHelp {
		bindings = m.keys.FullHelp()
	}

	narrow := m.width < 60
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if narrow {
			parts = append(parts, h.Key)
		} else {
			parts = append(parts, h.Key+": "+h.Desc)
		}
	}
	leftText := " " + strings.Join(parts, " • ")

	var rightText string
	if m.sourceLabel != "" && !narrow {
		rightText = m.sourceLabel + " "
	}

	gap := m.width - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if gap < 1 {
		rightText = ""
		gap = max(m.width-lipgloss.Width(leftText), 0)
	}

	return baseStyle.Width(m.width).Render(leftText + strings.Repeat(" ", gap) + rightText)
}
