// Package keymap holds the declarative keyboard-shortcut table and the
// dispatcher that matches key events against it. The table doubles as the
// source for the help overlay: every binding carries a description and a
// category.
package keymap

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/mv-lab/cineview/internal/state"
)

// Binding maps one key chord to one action. Key is tcell.KeyRune for
// printable keys, with Rune set; modifier fields must match the event
// exactly for the binding to fire.
type Binding struct {
	Key   tcell.Key
	Rune  rune
	Ctrl  bool
	Shift bool
	Alt   bool

	Action      statepkg.Action
	Description string
	Category    string
}

// Categories in display order for the help overlay.
const (
	CategoryNavigation = "Navigation"
	CategoryZoom       = "Zoom"
	CategoryOverlays   = "Overlays"
	CategoryWindow     = "Window"
	CategoryExport     = "Export"
	CategoryTools      = "Tools"
	CategoryHelp       = "Help"
)

// DefaultBindings returns the stock shortcut table. Order matters: the
// dispatcher is first-match-wins, so earlier rows take priority.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: tcell.KeyUp, Action: statepkg.StepSliceAction{Delta: -1}, Description: "Previous slice", Category: CategoryNavigation},
		{Key: tcell.KeyLeft, Action: statepkg.StepSliceAction{Delta: -1}, Description: "Previous slice", Category: CategoryNavigation},
		{Key: tcell.KeyDown, Action: statepkg.StepSliceAction{Delta: 1}, Description: "Next slice", Category: CategoryNavigation},
		{Key: tcell.KeyRight, Action: statepkg.StepSliceAction{Delta: 1}, Description: "Next slice", Category: CategoryNavigation},
		{Key: tcell.KeyHome, Action: statepkg.FirstSliceAction{}, Description: "First slice", Category: CategoryNavigation},
		{Key: tcell.KeyEnd, Action: statepkg.LastSliceAction{}, Description: "Last slice", Category: CategoryNavigation},
		{Key: tcell.KeyRune, Rune: ' ', Action: statepkg.TogglePlaybackAction{}, Description: "Play/pause cine", Category: CategoryNavigation},

		{Key: tcell.KeyRune, Rune: '+', Action: statepkg.ZoomByAction{Factor: statepkg.ZoomStepIn}, Description: "Zoom in", Category: CategoryZoom},
		{Key: tcell.KeyRune, Rune: '=', Action: statepkg.ZoomByAction{Factor: statepkg.ZoomStepIn}, Description: "Zoom in", Category: CategoryZoom},
		{Key: tcell.KeyRune, Rune: '-', Action: statepkg.ZoomByAction{Factor: statepkg.ZoomStepOut}, Description: "Zoom out", Category: CategoryZoom},
		{Key: tcell.KeyRune, Rune: '0', Action: statepkg.ResetViewAction{}, Description: "Reset zoom and pan", Category: CategoryZoom},

		{Key: tcell.KeyRune, Rune: 'm', Action: statepkg.ToggleSegmentationAction{}, Description: "Toggle segmentation mask", Category: CategoryOverlays},
		{Key: tcell.KeyRune, Rune: 'h', Action: statepkg.ToggleHeatmapAction{}, Description: "Toggle heatmap", Category: CategoryOverlays},

		{Key: tcell.KeyRune, Rune: 'w', Action: statepkg.AdjustWindowWidthAction{Delta: statepkg.WindowWidthStep}, Description: "Widen window", Category: CategoryWindow},
		{Key: tcell.KeyRune, Rune: 'q', Action: statepkg.AdjustWindowWidthAction{Delta: -statepkg.WindowWidthStep}, Description: "Narrow window", Category: CategoryWindow},
		{Key: tcell.KeyRune, Rune: 'p', Action: statepkg.CycleWindowPresetAction{}, Description: "Next window preset", Category: CategoryWindow},
		{Key: tcell.KeyRune, Rune: 'a', Action: statepkg.AutoWindowRequestAction{}, Description: "Auto window from slice", Category: CategoryWindow},

		{Key: tcell.KeyRune, Rune: 's', Ctrl: true, Action: statepkg.ExportFrameAction{}, Description: "Export current frame", Category: CategoryExport},

		{Key: tcell.KeyRune, Rune: '1', Action: statepkg.SetToolAction{Tool: statepkg.ToolPan}, Description: "Pan tool", Category: CategoryTools},
		{Key: tcell.KeyRune, Rune: '2', Action: statepkg.SetToolAction{Tool: statepkg.ToolZoom}, Description: "Zoom tool", Category: CategoryTools},
		{Key: tcell.KeyRune, Rune: '3', Action: statepkg.SetToolAction{Tool: statepkg.ToolRuler}, Description: "Ruler tool", Category: CategoryTools},
		{Key: tcell.KeyRune, Rune: '4', Action: statepkg.SetToolAction{Tool: statepkg.ToolMarker}, Description: "Marker tool", Category: CategoryTools},
		{Key: tcell.KeyRune, Rune: 'n', Action: statepkg.NoteStartAction{}, Description: "Annotate slice", Category: CategoryTools},
		{Key: tcell.KeyRune, Rune: 'c', Action: statepkg.ClearAnnotationsAction{}, Description: "Clear slice annotations", Category: CategoryTools},

		{Key: tcell.KeyRune, Rune: '?', Action: statepkg.HelpToggleAction{}, Description: "Toggle shortcut help", Category: CategoryHelp},
	}
}
