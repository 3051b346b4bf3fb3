package volume

// Overlay maps derived from the volume itself. Real deployments would
// receive these from an inference service; here they are computed
// deterministically so display and export paths are fully exercisable.

const (
	// segmentationThreshold marks aerated lung tissue inside the body.
	segmentationThreshold = -300.0

	// HeatmapAlpha and SegmentationAlpha are the blend weights used when
	// compositing overlays onto the windowed image.
	HeatmapAlpha      = 0.4
	SegmentationAlpha = 0.5
)

// SegmentationMask returns a Width×Height boolean mask for 0-based slice z:
// true where the sample reads as lung parenchyma (below the air/tissue
// threshold but above frank air).
func (v *Volume) SegmentationMask(z int) []bool {
	src := v.Slice(z)
	if src == nil {
		return nil
	}
	mask := make([]bool, len(src))
	for i, hu := range src {
		mask[i] = hu > -950 && hu < segmentationThreshold
	}
	return mask
}

// HeatmapValue returns the attention weight in [0, 1] at (x, y) of slice z.
// Dense structures (bone and above) light up; everything at or below soft
// tissue stays cold.
func (v *Volume) HeatmapValue(x, y, z int) float64 {
	hu := v.At(x, y, z)
	const lo, hi = 100.0, 900.0
	switch {
	case hu <= lo:
		return 0
	case hu >= hi:
		return 1
	default:
		return (hu - lo) / (hi - lo)
	}
}

// BlendHeatmap composites a heat value onto a gray intensity, returning
// RGB in [0, 1]. The colormap runs black-body style from the base gray
// through red to yellow.
func BlendHeatmap(gray, heat float64) (r, g, b float64) {
	if heat <= 0 {
		return gray, gray, gray
	}
	hr := 1.0
	hg := heat // red at low heat, yellow at full heat
	a := HeatmapAlpha * heat
	r = (1-a)*gray + a*hr
	g = (1-a)*gray + a*hg
	b = (1 - a) * gray
	return r, g, b
}

// BlendSegmentation tints a gray intensity green where the mask is set.
func BlendSegmentation(gray float64, masked bool) (r, g, b float64) {
	if !masked {
		return gray, gray, gray
	}
	a := SegmentationAlpha
	r = (1 - a) * gray
	g = (1-a)*gray + a
	b = (1 - a) * gray
	return r, g, b
}
