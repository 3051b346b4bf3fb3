package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	WarningFg   tcell.Color
	PlayingFg   tcell.Color
	MarkerFg    tcell.Color
	RulerFg     tcell.Color
	NotePrompt  tcell.Color
	ExportFlash tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		StatusBg:    tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		WarningFg:   tcell.Color208, // orange for missing-slice warnings
		PlayingFg:   tcell.Color41,
		MarkerFg:    tcell.Color220,
		RulerFg:     tcell.Color51,
		NotePrompt:  tcell.Color33,
		ExportFlash: tcell.Color41,
	}
}
