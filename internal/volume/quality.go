package volume

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MissingSlices estimates how many slices are absent from a series by
// comparing each inter-slice gap against the median spacing. Returns 0
// for series without position metadata.
func MissingSlices(positions []float64) int {
	if len(positions) < 2 {
		return 0
	}

	sorted := make([]float64, len(positions))
	copy(sorted, positions)
	sort.Float64s(sorted)

	diffs := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		diffs[i-1] = sorted[i] - sorted[i-1]
	}

	spacing := make([]float64, len(diffs))
	copy(spacing, diffs)
	sort.Float64s(spacing)
	median := stat.Quantile(0.5, stat.Empirical, spacing, nil)
	if median <= 0 {
		return 0
	}

	missing := 0
	for _, d := range diffs {
		expected := int(math.Round(d/median)) - 1
		if expected > 0 {
			missing += expected
		}
	}
	return missing
}

// AutoWindow suggests a center/width pair for 0-based slice z from the
// 2.5th and 97.5th HU percentiles, ignoring air. Falls back to the
// SoftTissue preset when the slice is all air.
func (v *Volume) AutoWindow(z int) (center, width int) {
	src := v.Slice(z)
	samples := make([]float64, 0, len(src))
	for _, hu := range src {
		if hu > -950 {
			samples = append(samples, hu)
		}
	}
	if len(samples) < 2 {
		p, _ := PresetByName("SoftTissue")
		return p.Center, p.Width
	}
	sort.Float64s(samples)

	lo := stat.Quantile(0.025, stat.Empirical, samples, nil)
	hi := stat.Quantile(0.975, stat.Empirical, samples, nil)
	width = int(math.Round(hi - lo))
	if width < 1 {
		width = 1
	}
	center = int(math.Round((hi + lo) / 2))
	return center, width
}
