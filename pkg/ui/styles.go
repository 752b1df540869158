package ui

import (
	lib "github.com/charmbracelet/charm/ui/common"
	te "github.com/muesli/termenv"
)

type StyleFunc func(string) string

const (
	DarkGrayHex = "#333333"
)

var (
	NormalFg    = NewFgStyle(lib.NewColorPair("#dddddd", "#1a1a1a"))
	DimNormalFg = NewFgStyle(lib.NewColorPair("#777777", "#A49FA5"))

	BrightGrayFg    = NewFgStyle(lib.NewColorPair("#979797", "#847A85"))
	DimBrightGrayFg = NewFgStyle(lib.NewColorPair("#4D4D4D", "#C2B8C2"))

	GreenFg   = NewFgStyle(lib.NewColorPair("#04B575", "#04B575"))
	FuchsiaFg = NewFgStyle(lib.Fuschia)
	IndigoFg  = NewFgStyle(lib.Indigo)
	RedFg     = NewFgStyle(lib.Red)

	// Paper and ink for the open spread
	PaperColor = lib.NewColorPair("#2b2621", "#f6efe1")
	InkColor   = lib.NewColorPair("#e8dcc4", "#3b2f22")
	// The page in motion is drawn a shade darker than the resting pages
	TurningPaperColor = lib.NewColorPair("#3a332b", "#e4d8bf")
	GutterColor       = lib.NewColorPair("#5a4a3a", "#b9a58a")

	ButtonColor         = lib.NewColorPair("#EE6FF8", "#F780E2")
	DisabledButtonColor = lib.NewColorPair("#4A4A4A", "#C2B8C2")

	StatusBarFg = lib.NewColorPair("#7D7D7D", "#656565")
	StatusBarBg = lib.NewColorPair("#242424", "#E6E6E6")

	MintGreen = lib.NewColorPair("#89F0CB", "#89F0CB")
	DarkGreen = lib.NewColorPair("#1C8760", "#1C8760")

	StatusBarNoteStyle    = NewStyle(StatusBarFg, StatusBarBg, false)
	StatusBarMessageStyle = NewStyle(MintGreen, DarkGreen, false)
	StatusBarErrorStyle   = NewStyle(lib.NewColorPair("#FFE1E1", "#FFE1E1"), lib.Red, false)
	StatusBarHelpStyle    = NewStyle(StatusBarFg, lib.NewColorPair("#323232", "#DCDCDC"), false)
	LogoStyle             = NewStyle(lib.Cream, lib.NewColorPair("#5A56E0", "#7571F9"), true)
	HelpViewStyle         = NewStyle(StatusBarFg, lib.NewColorPair("#1B1B1B", "#f2f2f2"), false)
)

// Returns a termenv style with foreground and background options.
func NewStyle(fg, bg lib.ColorPair, bold bool) StyleFunc {
	s := te.Style{}.Foreground(fg.Color()).Background(bg.Color())
	if bold {
		s = s.Bold()
	}
	return s.Styled
}

// Returns a new termenv style with foreground options only.
func NewFgStyle(c lib.ColorPair) StyleFunc {
	return te.Style{}.Foreground(c.Color()).Styled
}
