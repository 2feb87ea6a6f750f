package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/stats"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const titleFull = `┌─┐┬  ┌─┐┌─┐┬ ┬┌─┐ ┬ ┬┬┌─┐
├┤ │  ├─┤└─┐├─┤│─┼┐│ ││┌─┘
└  ┴─┘┴ ┴└─┘┴ ┴└─┘└└─┘┴└─┘`

const titleCompact = "F · L · A · S · H · Q · U · I · Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the profile numbers in a double-bordered box.
func renderStatsBar(sum stats.Summary, loaded bool, cw int, compact bool) string {
	quizStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	avgStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(theme.Cool).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !loaded:
		text = dimStyle.Render("…")
	case sum.Quizzes == 0:
		text = dimStyle.Render("No quizzes yet")
	case compact:
		text = fmt.Sprintf("%s %s %s",
			quizStyle.Render(fmt.Sprintf("■%d", sum.Quizzes)),
			avgStyle.Render(fmt.Sprintf("⌀%d%%", sum.AveragePercent)),
			timeStyle.Render(layout.FormatDuration(sum.TotalTime)),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			quizStyle.Render(fmt.Sprintf("■ %d QUIZZES", sum.Quizzes)),
			avgStyle.Render(fmt.Sprintf("⌀ %d%% AVG", sum.AveragePercent)),
			timeStyle.Render(fmt.Sprintf("◷ %s", layout.FormatDuration(sum.TotalTime))),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Cool).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderMenu renders each item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	buttons := make([]string, 0, len(items))
	for i, label := range items {
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders plain text lines for small terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
