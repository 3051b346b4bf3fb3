package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	statepkg "github.com/mv-lab/cineview/internal/state"
)

// exportFlashDuration is how long the "saved" notice stays on the status
// line after an export.
const exportFlashDuration = 3 * time.Second

// formatStatusLine builds the one-line session summary shown at the bottom
// of the screen.
func formatStatusLine(state *statepkg.ViewerState, now time.Time) string {
	if state == nil {
		return ""
	}

	center, width := state.WindowCenterWidth()
	windowName := state.WindowPreset
	if state.AutoWidth > 0 {
		windowName = "Auto"
	}
	parts := []string{
		fmt.Sprintf("slice %d/%d", state.CurrentSlice, state.TotalSlices),
		fmt.Sprintf("zoom %d%%", int(math.Round(state.Zoom*100))),
		fmt.Sprintf("%s W%d L%d", windowName, width, center),
		fmt.Sprintf("tool %s", state.ActiveTool),
	}

	if state.Playing {
		parts = append(parts, "cine ▶")
	}

	var overlays []string
	if state.ShowHeatmap {
		overlays = append(overlays, "heatmap")
	}
	if state.ShowSegmentation {
		overlays = append(overlays, "mask")
	}
	if len(overlays) > 0 {
		parts = append(parts, strings.Join(overlays, "+"))
	}

	if n := state.CurrentNote(); n != "" && !state.NoteActive {
		parts = append(parts, "note ✎")
	}

	if d := formatRulerLength(state); d != "" {
		parts = append(parts, d)
	}

	if state.MissingSlices > 0 {
		parts = append(parts, fmt.Sprintf("⚠ %d gap(s)", state.MissingSlices))
	}

	if state.LastExportPath != "" && now.Sub(state.LastExportTime) < exportFlashDuration {
		parts = append(parts, fmt.Sprintf("saved %s", state.LastExportPath))
	}

	if state.LastError != nil {
		parts = append(parts, fmt.Sprintf("error: %v", state.LastError))
	}

	return " " + strings.Join(parts, " · ")
}

// formatRulerLength reports the active measurement in millimetres using the
// series pixel spacing, or in pixels when spacing is unknown.
func formatRulerLength(state *statepkg.ViewerState) string {
	if state.RulerA == nil || state.RulerB == nil {
		return ""
	}
	dx := (state.RulerB.X - state.RulerA.X) * state.PixelSpacing[0]
	dy := (state.RulerB.Y - state.RulerA.Y) * state.PixelSpacing[1]
	mm := math.Hypot(dx, dy)
	return fmt.Sprintf("ruler %.1f mm", mm)
}

// formatNoteLine renders the note-entry prompt with a block cursor.
func formatNoteLine(state *statepkg.ViewerState) string {
	return fmt.Sprintf(" note [slice %d]: %s█", state.CurrentSlice, state.NoteDraft)
}
