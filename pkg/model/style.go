package model

import (
	"fmt"

	"github.com/byxorna/fable/pkg/ui"
	lib "github.com/charmbracelet/charm/ui/common"
	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

const (
	pagePadding = 1
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Book.

	spineStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	emptySpineStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Align(lipgloss.Center)

	pageStyle = lipgloss.NewStyle().
			Foreground(adaptive(ui.InkColor)).
			Background(adaptive(ui.PaperColor)).
			Padding(0, pagePadding)

	turningPageStyle = pageStyle.Copy().
				Background(adaptive(ui.TurningPaperColor)).
				Faint(true).
				Align(lipgloss.Center)

	gutterStyle = lipgloss.NewStyle().
			Foreground(adaptive(ui.GutterColor))

	imageFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Align(lipgloss.Center)

	captionStyle = lipgloss.NewStyle().
			Italic(true).
			Align(lipgloss.Center)

	// Navigation bar.

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(adaptive(ui.ButtonColor))

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(adaptive(ui.DisabledButtonColor)).
				Faint(true)

	navBarStyle = lipgloss.NewStyle().
			Foreground(adaptive(ui.StatusBarFg))

	// Dialog.

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 0).
			BorderTop(true).
			BorderLeft(true).
			BorderRight(true).
			BorderBottom(true)
)

func adaptive(c lib.ColorPair) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}
}

func errorView(err error, fatal bool) string {
	exitMsg := "press any key to "
	if fatal {
		exitMsg += "exit"
	} else {
		exitMsg += "return"
	}
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		te.String(" ERROR ").
			Foreground(lib.Cream.Color()).
			Background(lib.Red.Color()).
			String(),
		err,
		lib.Subtle(exitMsg),
	)
	return dialogBoxStyle.Copy().Align(lipgloss.Center).Render(s)
}

func logoView(title string) string {
	return ui.LogoStyle(" fable ") + " " + title
}
