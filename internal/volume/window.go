package volume

// WindowPreset is a named center/width pair controlling how Hounsfield
// units map to display intensity for a given tissue type.
type WindowPreset struct {
	Name   string
	Center int
	Width  int
}

// Presets is the closed set of window presets surfaced by the viewer.
// Values follow the usual CT conventions (lung -600/1500, brain 40/80, ...).
var Presets = []WindowPreset{
	{Name: "Lung", Center: -600, Width: 1500},
	{Name: "Mediastinum", Center: 40, Width: 400},
	{Name: "Bone", Center: 400, Width: 1800},
	{Name: "Brain", Center: 40, Width: 80},
	{Name: "SoftTissue", Center: 40, Width: 350},
}

// PresetByName looks up a preset. Unknown names return ok=false; callers
// are expected to ignore the request rather than fail.
func PresetByName(name string) (WindowPreset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return WindowPreset{}, false
}

// ApplyWindow maps a Hounsfield value to display intensity in [0, 1]:
// a linear ramp from center-width/2 to center+width/2, clamped at both ends.
func ApplyWindow(hu float64, center, width int) float64 {
	w := float64(width)
	if w < 1 {
		w = 1
	}
	minVal := float64(center) - w/2
	switch {
	case hu <= minVal:
		return 0
	case hu >= minVal+w:
		return 1
	default:
		return (hu - minVal) / w
	}
}
