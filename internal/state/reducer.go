package state

import (
	"strings"

	"github.com/mv-lab/cineview/internal/volume"
)

// StateReducer applies actions to the viewer state. Every input is
// defensively clamped or ignored; no action ever returns an error to the
// host, so the UI layer needs no error handling around dispatch.
type StateReducer struct{}

func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

func (r *StateReducer) Reduce(state *ViewerState, action Action) (*ViewerState, error) {
	switch a := action.(type) {

	// ===== SLICE NAVIGATION =====

	case SetSliceAction:
		state.CurrentSlice = clampSlice(a.Slice, state.TotalSlices)
		return state, nil

	case StepSliceAction:
		// Manual scrub clamps and stops at the boundary.
		state.CurrentSlice = clampSlice(state.CurrentSlice+a.Delta, state.TotalSlices)
		return state, nil

	case FirstSliceAction:
		state.CurrentSlice = 1
		return state, nil

	case LastSliceAction:
		state.CurrentSlice = state.TotalSlices
		return state, nil

	case PlaybackTickAction:
		// Cine playback loops: past the last slice it wraps to 1, not 0.
		if !state.Playing {
			return state, nil
		}
		next := state.CurrentSlice + 1
		if next > state.TotalSlices {
			next = 1
		}
		state.CurrentSlice = next
		return state, nil

	case TogglePlaybackAction:
		state.Playing = !state.Playing
		return state, nil

	// ===== VIEW TRANSFORM =====

	case SetZoomAction:
		state.Zoom = clampZoom(a.Zoom)
		return state, nil

	case ZoomByAction:
		if a.Factor > 0 {
			state.Zoom = clampZoom(state.Zoom * a.Factor)
		}
		return state, nil

	case SetPanAction:
		// Pan is unconstrained; the canvas may move freely.
		state.PanX = a.X
		state.PanY = a.Y
		return state, nil

	case PanByAction:
		state.PanX += a.Dx
		state.PanY += a.Dy
		return state, nil

	case ResetViewAction:
		// Resets the transform only; slice, preset and overlays survive.
		state.Zoom = 1.0
		state.PanX = 0
		state.PanY = 0
		return state, nil

	// ===== WINDOWING =====

	case SetWindowPresetAction:
		// Unknown names are ignored, keeping the prior preset.
		if _, ok := volume.PresetByName(a.Name); ok {
			state.WindowPreset = a.Name
			state.WindowWidthDelta = 0
			state.AutoWidth = 0
		}
		return state, nil

	case CycleWindowPresetAction:
		state.WindowPreset = nextPreset(state.WindowPreset)
		state.WindowWidthDelta = 0
		state.AutoWidth = 0
		return state, nil

	case SetAutoWindowAction:
		if a.Width > 0 {
			state.AutoCenter = a.Center
			state.AutoWidth = a.Width
			state.WindowWidthDelta = 0
		}
		return state, nil

	case AdjustWindowWidthAction:
		base := 0
		if state.AutoWidth > 0 {
			base = state.AutoWidth
		} else {
			p, ok := volume.PresetByName(state.WindowPreset)
			if !ok {
				p, _ = volume.PresetByName("SoftTissue")
			}
			base = p.Width
		}
		newDelta := state.WindowWidthDelta + a.Delta
		if base+newDelta < 1 {
			newDelta = 1 - base
		}
		state.WindowWidthDelta = newDelta
		return state, nil

	// ===== OVERLAYS & TOOLS =====

	case ToggleHeatmapAction:
		state.ShowHeatmap = !state.ShowHeatmap
		return state, nil

	case ToggleSegmentationAction:
		state.ShowSegmentation = !state.ShowSegmentation
		return state, nil

	case SetToolAction:
		if ValidTool(a.Tool) {
			state.ActiveTool = a.Tool
		}
		return state, nil

	// ===== ANNOTATIONS =====

	case NoteStartAction:
		state.NoteActive = true
		state.NoteDraft = state.CurrentNote()
		return state, nil

	case NoteCharAction:
		if state.NoteActive && a.Char >= ' ' {
			state.NoteDraft += string(a.Char)
		}
		return state, nil

	case NoteBackspaceAction:
		if state.NoteActive && state.NoteDraft != "" {
			runes := []rune(state.NoteDraft)
			state.NoteDraft = string(runes[:len(runes)-1])
		}
		return state, nil

	case NoteCommitAction:
		if state.NoteActive {
			text := strings.TrimSpace(state.NoteDraft)
			if text == "" {
				delete(state.Notes, state.CurrentSlice)
			} else {
				state.Notes[state.CurrentSlice] = text
			}
			state.NoteActive = false
			state.NoteDraft = ""
		}
		return state, nil

	case NoteCancelAction:
		state.NoteActive = false
		state.NoteDraft = ""
		return state, nil

	case DropMarkerAction:
		state.Markers[state.CurrentSlice] = append(state.Markers[state.CurrentSlice], a.At)
		return state, nil

	case RulerStartAction:
		p := a.At
		state.RulerA = &p
		state.RulerB = nil
		return state, nil

	case RulerDragAction:
		if state.RulerA != nil {
			p := a.At
			state.RulerB = &p
		}
		return state, nil

	case ClearAnnotationsAction:
		delete(state.Markers, state.CurrentSlice)
		delete(state.Notes, state.CurrentSlice)
		state.RulerA = nil
		state.RulerB = nil
		return state, nil

	// ===== VIEW / APPLICATION =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil
	}

	return state, nil
}

// nextPreset returns the preset following name in table order, wrapping at
// the end. Unknown names restart at the first entry.
func nextPreset(name string) string {
	for i, p := range volume.Presets {
		if p.Name == name {
			return volume.Presets[(i+1)%len(volume.Presets)].Name
		}
	}
	return volume.Presets[0].Name
}
