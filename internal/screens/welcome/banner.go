package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗      █████╗ ███████╗██╗  ██╗ ██████╗ ██╗   ██╗██╗███████╗
 ██╔════╝██║     ██╔══██╗██╔════╝██║  ██║██╔═══██╗██║   ██║██║╚══███╔╝
 █████╗  ██║     ███████║███████╗███████║██║   ██║██║   ██║██║  ███╔╝
 ██╔══╝  ██║     ██╔══██║╚════██║██╔══██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ██║     ███████╗██║  ██║███████║██║  ██║╚██████╔╝╚██████╔╝██║███████╗
 ╚═╝     ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝ ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "F L A S H Q U I Z"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 74

// RenderBanner returns the banner styled in the primary color, falling back
// to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
