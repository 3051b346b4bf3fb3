package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== SLICE NAVIGATION ACTIONS =====

type SetSliceAction struct {
	Slice int
}
type StepSliceAction struct {
	Delta int
}
type FirstSliceAction struct{}
type LastSliceAction struct{}

// PlaybackTickAction is emitted only by the cine timer. Unlike manual
// stepping it wraps from the last slice back to the first.
type PlaybackTickAction struct{}
type TogglePlaybackAction struct{}

// ===== VIEW TRANSFORM ACTIONS =====

type SetZoomAction struct {
	Zoom float64
}
type ZoomByAction struct {
	Factor float64
}
type SetPanAction struct {
	X float64
	Y float64
}
type PanByAction struct {
	Dx float64
	Dy float64
}
type ResetViewAction struct{}

// ===== WINDOWING ACTIONS =====

type SetWindowPresetAction struct {
	Name string
}

// CycleWindowPresetAction advances through the preset table in order,
// standing in for the picker surface of a pointer-driven UI.
type CycleWindowPresetAction struct{}

// AutoWindowRequestAction is handled by the application: computing the
// window needs the volume data. The result comes back as SetAutoWindow.
type AutoWindowRequestAction struct{}
type SetAutoWindowAction struct {
	Center int
	Width  int
}
type AdjustWindowWidthAction struct {
	Delta int
}

// ===== OVERLAY & TOOL ACTIONS =====

type ToggleHeatmapAction struct{}
type ToggleSegmentationAction struct{}
type SetToolAction struct {
	Tool Tool
}

// ===== ANNOTATION ACTIONS =====

type NoteStartAction struct{}
type NoteCharAction struct {
	Char rune
}
type NoteBackspaceAction struct{}
type NoteCommitAction struct{}
type NoteCancelAction struct{}

type DropMarkerAction struct {
	At Point
}
type RulerStartAction struct {
	At Point
}
type RulerDragAction struct {
	At Point
}
type ClearAnnotationsAction struct{}

// ===== VIEW / APPLICATION ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ExportFrameAction is handled by the application, not the reducer: it
// touches the filesystem.
type ExportFrameAction struct{}

type QuitAction struct{}
