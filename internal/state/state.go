package state

import (
	"time"

	"github.com/mv-lab/cineview/internal/volume"
)

// Tool identifies the active pointer tool. Exactly one is active.
type Tool string

const (
	ToolPan    Tool = "pan"
	ToolZoom   Tool = "zoom"
	ToolRuler  Tool = "ruler"
	ToolMarker Tool = "marker"
)

// ValidTool reports whether t is one of the four pointer tools.
func ValidTool(t Tool) bool {
	switch t {
	case ToolPan, ToolZoom, ToolRuler, ToolMarker:
		return true
	}
	return false
}

// Zoom and stepping constants. The discrete step factors are part of the
// viewer contract and must not drift.
const (
	MinZoom     = 0.25
	MaxZoom     = 4.0
	ZoomStepIn  = 1.2
	ZoomStepOut = 1 / 1.2

	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9

	// WindowWidthStep is the HU delta applied per w/q keypress.
	WindowWidthStep = 50
)

// Point is a coordinate in image (slice pixel) space.
type Point struct {
	X float64
	Y float64
}

// ViewerState is the single source of truth for one viewing session. It is
// mutated only by the reducer on the event loop; everyone else sees
// snapshots.
type ViewerState struct {
	// Slice position, 1-based.
	CurrentSlice int
	TotalSlices  int

	// View transform.
	Zoom float64
	PanX float64
	PanY float64

	// Windowing. WindowWidthDelta is a session-level override on top of
	// the selected preset width; selecting a preset clears it. An auto
	// window (AutoWidth > 0) shadows the preset until one is selected.
	WindowPreset     string
	WindowWidthDelta int
	AutoCenter       int
	AutoWidth        int

	// Overlays, independent of each other.
	ShowHeatmap      bool
	ShowSegmentation bool

	ActiveTool Tool
	Playing    bool

	// Annotations.
	Notes   map[int]string  // per-slice note text
	Markers map[int][]Point // per-slice marker drops
	RulerA  *Point
	RulerB  *Point

	// Note-entry mode. While active, keyboard shortcuts are suppressed
	// and typed runes build NoteDraft.
	NoteActive bool
	NoteDraft  string

	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Series facts fixed at load time.
	PixelSpacing  [2]float64
	MissingSlices int

	// Status line
	LastExportPath string
	LastExportTime time.Time // for the brief export flash

	// Error state
	LastError error

	listeners []func(Snapshot)
}

// Snapshot is the immutable view published to observers after each reduced
// action. Reference-typed session data (notes, markers) is deliberately
// excluded; observers needing it read it on the event loop.
type Snapshot struct {
	CurrentSlice     int
	TotalSlices      int
	Zoom             float64
	PanX             float64
	PanY             float64
	WindowPreset     string
	WindowCenter     int
	WindowWidth      int
	ShowHeatmap      bool
	ShowSegmentation bool
	ActiveTool       Tool
	Playing          bool
}

// NewViewerState builds a session for a loaded series. The initial slice
// is clamped; callers typically pass the midpoint.
func NewViewerState(totalSlices, initialSlice int, preset string, tool Tool) *ViewerState {
	if totalSlices < 1 {
		totalSlices = 1
	}
	if _, ok := volume.PresetByName(preset); !ok {
		preset = "SoftTissue"
	}
	if !ValidTool(tool) {
		tool = ToolPan
	}
	return &ViewerState{
		CurrentSlice: clampSlice(initialSlice, totalSlices),
		TotalSlices:  totalSlices,
		Zoom:         1.0,
		WindowPreset: preset,
		ActiveTool:   tool,
		Notes:        make(map[int]string),
		Markers:      make(map[int][]Point),
		PixelSpacing: [2]float64{1, 1},
	}
}

// WindowCenterWidth resolves the active window: the auto window when one
// is set, the selected preset otherwise, plus the session width override.
// Width never drops below 1.
func (s *ViewerState) WindowCenterWidth() (center, width int) {
	if s.AutoWidth > 0 {
		center, width = s.AutoCenter, s.AutoWidth
	} else {
		p, ok := volume.PresetByName(s.WindowPreset)
		if !ok {
			p, _ = volume.PresetByName("SoftTissue")
		}
		center, width = p.Center, p.Width
	}
	width += s.WindowWidthDelta
	if width < 1 {
		width = 1
	}
	return center, width
}

// Snapshot returns a consistent value copy of the observable session state.
func (s *ViewerState) Snapshot() Snapshot {
	center, width := s.WindowCenterWidth()
	return Snapshot{
		CurrentSlice:     s.CurrentSlice,
		TotalSlices:      s.TotalSlices,
		Zoom:             s.Zoom,
		PanX:             s.PanX,
		PanY:             s.PanY,
		WindowPreset:     s.WindowPreset,
		WindowCenter:     center,
		WindowWidth:      width,
		ShowHeatmap:      s.ShowHeatmap,
		ShowSegmentation: s.ShowSegmentation,
		ActiveTool:       s.ActiveTool,
		Playing:          s.Playing,
	}
}

// Subscribe registers an observer called with a fresh snapshot after every
// reduced action. Registration is not concurrency-safe; do it before the
// event loop starts.
func (s *ViewerState) Subscribe(fn func(Snapshot)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// Notify publishes the current snapshot to all observers.
func (s *ViewerState) Notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// CurrentNote returns the note attached to the current slice, if any.
func (s *ViewerState) CurrentNote() string {
	return s.Notes[s.CurrentSlice]
}

// CurrentMarkers returns the markers dropped on the current slice.
func (s *ViewerState) CurrentMarkers() []Point {
	return s.Markers[s.CurrentSlice]
}

func clampSlice(n, total int) int {
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
