package state

import (
	"math"
	"testing"
)

// ===== ZOOM & PAN TESTS =====

func TestZoomByClampsToRange(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	// Zooming in forever saturates at MaxZoom.
	for i := 0; i < 50; i++ {
		if _, err := reducer.Reduce(state, ZoomByAction{Factor: ZoomStepIn}); err != nil {
			t.Fatalf("Reduce failed: %v", err)
		}
		if state.Zoom < MinZoom || state.Zoom > MaxZoom {
			t.Fatalf("Zoom %v escaped [%v, %v]", state.Zoom, MinZoom, MaxZoom)
		}
	}
	if state.Zoom != MaxZoom {
		t.Errorf("Expected saturation at %v, got %v", MaxZoom, state.Zoom)
	}

	// And zooming out forever saturates at MinZoom.
	for i := 0; i < 50; i++ {
		if _, err := reducer.Reduce(state, ZoomByAction{Factor: ZoomStepOut}); err != nil {
			t.Fatalf("Reduce failed: %v", err)
		}
		if state.Zoom < MinZoom || state.Zoom > MaxZoom {
			t.Fatalf("Zoom %v escaped [%v, %v]", state.Zoom, MinZoom, MaxZoom)
		}
	}
	if state.Zoom != MinZoom {
		t.Errorf("Expected saturation at %v, got %v", MinZoom, state.Zoom)
	}
}

func TestZoomRoundTrip(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, ZoomByAction{Factor: ZoomStepIn}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if math.Abs(state.Zoom-1.2) > 1e-9 {
		t.Fatalf("Expected zoom 1.2, got %v", state.Zoom)
	}
	if _, err := reducer.Reduce(state, ZoomByAction{Factor: ZoomStepOut}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if math.Abs(state.Zoom-1.0) > 1e-9 {
		t.Errorf("Zoom in/out round trip drifted to %v", state.Zoom)
	}
}

func TestSetZoomClamps(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, SetZoomAction{Zoom: 100}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.Zoom != MaxZoom {
		t.Errorf("SetZoom(100) = %v, expected %v", state.Zoom, MaxZoom)
	}
	if _, err := reducer.Reduce(state, SetZoomAction{Zoom: 0.01}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.Zoom != MinZoom {
		t.Errorf("SetZoom(0.01) = %v, expected %v", state.Zoom, MinZoom)
	}
}

func TestZoomByIgnoresNonPositiveFactor(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, ZoomByAction{Factor: -2}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.Zoom != 1.0 {
		t.Errorf("Negative factor changed zoom to %v", state.Zoom)
	}
}

func TestPanIsUnconstrained(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, SetPanAction{X: -1e6, Y: 1e6}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.PanX != -1e6 || state.PanY != 1e6 {
		t.Errorf("Pan = (%v, %v), expected (-1e6, 1e6)", state.PanX, state.PanY)
	}

	if _, err := reducer.Reduce(state, PanByAction{Dx: 10, Dy: -10}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.PanX != -1e6+10 || state.PanY != 1e6-10 {
		t.Errorf("PanBy landed at (%v, %v)", state.PanX, state.PanY)
	}
}

func TestResetViewTouchesOnlyTransform(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(100, 50, "SoftTissue", ToolPan)

	// Scenario from the viewer contract: step, zoom, preset, overlay, reset.
	if _, err := reducer.Reduce(state, StepSliceAction{Delta: 1}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, ZoomByAction{Factor: ZoomStepIn}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, SetWindowPresetAction{Name: "Brain"}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, ToggleHeatmapAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, SetPanAction{X: 12, Y: -7}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}

	if _, err := reducer.Reduce(state, ResetViewAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}

	if state.Zoom != 1.0 || state.PanX != 0 || state.PanY != 0 {
		t.Errorf("Reset left transform at zoom=%v pan=(%v,%v)", state.Zoom, state.PanX, state.PanY)
	}
	if state.CurrentSlice != 51 {
		t.Errorf("Reset moved slice to %d, expected 51", state.CurrentSlice)
	}
	if state.WindowPreset != "Brain" {
		t.Errorf("Reset changed preset to %q", state.WindowPreset)
	}
	if !state.ShowHeatmap {
		t.Error("Reset cleared the heatmap flag")
	}
}

// ===== WINDOWING TESTS =====

func TestSetWindowPresetUnknownIgnored(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Lung", ToolPan)

	if _, err := reducer.Reduce(state, SetWindowPresetAction{Name: "Liver"}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.WindowPreset != "Lung" {
		t.Errorf("Unknown preset replaced Lung with %q", state.WindowPreset)
	}

	if _, err := reducer.Reduce(state, SetWindowPresetAction{Name: "Bone"}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.WindowPreset != "Bone" {
		t.Errorf("Expected Bone, got %q", state.WindowPreset)
	}
}

func TestAdjustWindowWidth(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Brain", ToolPan) // Brain is 40/80

	if _, err := reducer.Reduce(state, AdjustWindowWidthAction{Delta: WindowWidthStep}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	center, width := state.WindowCenterWidth()
	if center != 40 || width != 130 {
		t.Errorf("After widen: %d/%d, expected 40/130", center, width)
	}

	// Narrowing below 1 floors the effective width at 1.
	for i := 0; i < 10; i++ {
		if _, err := reducer.Reduce(state, AdjustWindowWidthAction{Delta: -WindowWidthStep}); err != nil {
			t.Fatalf("Reduce failed: %v", err)
		}
	}
	if _, width = state.WindowCenterWidth(); width != 1 {
		t.Errorf("Width floor is 1, got %d", width)
	}
}

func TestSelectingPresetClearsWidthOverride(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Brain", ToolPan)

	if _, err := reducer.Reduce(state, AdjustWindowWidthAction{Delta: 200}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, SetWindowPresetAction{Name: "Lung"}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	_, width := state.WindowCenterWidth()
	if width != 1500 {
		t.Errorf("Preset change should reset width to 1500, got %d", width)
	}
}

func TestCycleWindowPresetWalksTableInOrder(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Lung", ToolPan)

	expect := []string{"Mediastinum", "Bone", "Brain", "SoftTissue", "Lung"}
	for _, name := range expect {
		if _, err := reducer.Reduce(state, CycleWindowPresetAction{}); err != nil {
			t.Fatalf("Reduce failed: %v", err)
		}
		if state.WindowPreset != name {
			t.Fatalf("Expected preset %s, got %s", name, state.WindowPreset)
		}
	}
}

func TestCycleWindowPresetClearsWidthOverride(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Brain", ToolPan)

	if _, err := reducer.Reduce(state, AdjustWindowWidthAction{Delta: 200}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, CycleWindowPresetAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.WindowWidthDelta != 0 {
		t.Errorf("Cycling presets should clear the override, got %d", state.WindowWidthDelta)
	}
}

func TestAutoWindowShadowsPresetUntilSelection(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Lung", ToolPan)

	if _, err := reducer.Reduce(state, SetAutoWindowAction{Center: -120, Width: 900}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	center, width := state.WindowCenterWidth()
	if center != -120 || width != 900 {
		t.Errorf("Expected auto window -120/900, got %d/%d", center, width)
	}

	// Width adjustments apply on top of the auto window.
	if _, err := reducer.Reduce(state, AdjustWindowWidthAction{Delta: WindowWidthStep}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, width = state.WindowCenterWidth(); width != 950 {
		t.Errorf("Expected widened auto window 950, got %d", width)
	}

	// Selecting a preset drops the auto window entirely.
	if _, err := reducer.Reduce(state, SetWindowPresetAction{Name: "Bone"}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	center, width = state.WindowCenterWidth()
	if center != 400 || width != 1800 {
		t.Errorf("Expected Bone 400/1800 after preset select, got %d/%d", center, width)
	}
}

func TestSetAutoWindowIgnoresDegenerateWidth(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "Lung", ToolPan)

	if _, err := reducer.Reduce(state, SetAutoWindowAction{Center: 0, Width: 0}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	center, width := state.WindowCenterWidth()
	if center != -600 || width != 1500 {
		t.Errorf("Degenerate auto window should leave Lung active, got %d/%d", center, width)
	}
}

// ===== OVERLAY & TOOL TESTS =====

func TestOverlayTogglesAreIndependent(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, ToggleHeatmapAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, ToggleSegmentationAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if !state.ShowHeatmap || !state.ShowSegmentation {
		t.Error("Both overlays should be active simultaneously")
	}

	if _, err := reducer.Reduce(state, ToggleHeatmapAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.ShowHeatmap {
		t.Error("Heatmap should toggle off")
	}
	if !state.ShowSegmentation {
		t.Error("Toggling heatmap must not touch segmentation")
	}
}

func TestSetToolRejectsUnknown(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, SetToolAction{Tool: ToolRuler}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.ActiveTool != ToolRuler {
		t.Errorf("Expected ruler tool, got %q", state.ActiveTool)
	}

	if _, err := reducer.Reduce(state, SetToolAction{Tool: Tool("lasso")}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.ActiveTool != ToolRuler {
		t.Errorf("Unknown tool replaced ruler with %q", state.ActiveTool)
	}
}

// ===== SNAPSHOT / OBSERVER TESTS =====

func TestSnapshotReflectsState(t *testing.T) {
	state := NewViewerState(20, 10, "Brain", ToolMarker)
	state.ShowHeatmap = true

	snap := state.Snapshot()
	if snap.CurrentSlice != 10 || snap.TotalSlices != 20 {
		t.Errorf("Snapshot slice %d/%d", snap.CurrentSlice, snap.TotalSlices)
	}
	if snap.WindowPreset != "Brain" || snap.WindowCenter != 40 || snap.WindowWidth != 80 {
		t.Errorf("Snapshot window %s %d/%d", snap.WindowPreset, snap.WindowCenter, snap.WindowWidth)
	}
	if !snap.ShowHeatmap || snap.ShowSegmentation {
		t.Error("Snapshot overlay flags wrong")
	}
	if snap.ActiveTool != ToolMarker {
		t.Errorf("Snapshot tool %q", snap.ActiveTool)
	}
}

func TestNotifyPublishesToAllObservers(t *testing.T) {
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	var got []Snapshot
	state.Subscribe(func(s Snapshot) { got = append(got, s) })
	state.Subscribe(func(s Snapshot) { got = append(got, s) })

	state.CurrentSlice = 7
	state.Notify()

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	for _, snap := range got {
		if snap.CurrentSlice != 7 {
			t.Errorf("Observer saw slice %d, expected 7", snap.CurrentSlice)
		}
	}
}

// ===== NOTE ENTRY TESTS =====

func TestNoteLifecycle(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, NoteStartAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	for _, r := range "nodule" {
		if _, err := reducer.Reduce(state, NoteCharAction{Char: r}); err != nil {
			t.Fatalf("Reduce failed: %v", err)
		}
	}
	if _, err := reducer.Reduce(state, NoteBackspaceAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, NoteCommitAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}

	if state.NoteActive {
		t.Error("Commit should leave note mode")
	}
	if got := state.CurrentNote(); got != "nodul" {
		t.Errorf("Note = %q, expected nodul", got)
	}
}

func TestNoteCancelDiscardsDraft(t *testing.T) {
	reducer := NewStateReducer()
	state := NewViewerState(10, 5, "SoftTissue", ToolPan)

	if _, err := reducer.Reduce(state, NoteStartAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, NoteCharAction{Char: 'x'}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if _, err := reducer.Reduce(state, NoteCancelAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}

	if state.NoteActive || state.NoteDraft != "" {
		t.Error("Cancel should clear note mode and draft")
	}
	if state.CurrentNote() != "" {
		t.Errorf("Cancel saved note %q", state.CurrentNote())
	}
}
