package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

// RenderBanner returns the startup banner: the art with the form title
// under it, centred on the terminal.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	block := slateStyle.Align(lipgloss.Center).
		Render(strings.TrimRight(bannerArt, "\n") + "\n\n" + LineTitle)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

func termWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
