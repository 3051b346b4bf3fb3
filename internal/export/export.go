// Package export writes the currently displayed frame to disk as a PNG,
// with the active window and overlays baked in.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/mv-lab/cineview/internal/volume"
)

// Options captures everything about the on-screen frame that affects the
// exported pixels. Pan is intentionally absent: exports always cover the
// full slice.
type Options struct {
	Slice        int // 1-based, matching the status line
	Center       int
	Width        int
	Heatmap      bool
	Segmentation bool
	Zoom         float64
	Dir          string
}

// Frame renders one slice through the current window and overlays, scales
// it by the current zoom and writes it under opts.Dir. It returns the path
// of the written file.
func Frame(vol *volume.Volume, opts Options) (string, error) {
	if vol == nil {
		return "", fmt.Errorf("no volume loaded")
	}
	z := opts.Slice - 1
	if z < 0 || z >= vol.Depth {
		return "", fmt.Errorf("slice %d out of range 1..%d", opts.Slice, vol.Depth)
	}

	img := renderSlice(vol, z, opts)

	if opts.Zoom > 0 && opts.Zoom != 1.0 {
		w := int(float64(vol.Width) * opts.Zoom)
		h := int(float64(vol.Height) * opts.Zoom)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	name := fmt.Sprintf("slice-%03d-%s.png", opts.Slice, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// renderSlice windows and composites one slice at native resolution.
func renderSlice(vol *volume.Volume, z int, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, vol.Width, vol.Height))

	var mask []bool
	if opts.Segmentation {
		mask = vol.SegmentationMask(z)
	}

	for y := 0; y < vol.Height; y++ {
		for x := 0; x < vol.Width; x++ {
			gray := volume.ApplyWindow(vol.At(x, y, z), opts.Center, opts.Width)
			r, g, b := gray, gray, gray
			if opts.Heatmap {
				r, g, b = volume.BlendHeatmap(gray, vol.HeatmapValue(x, y, z))
			}
			if mask != nil && mask[y*vol.Width+x] {
				mr, mg, mb := volume.BlendSegmentation(gray, true)
				// Overlays compose independently: average where both apply.
				if opts.Heatmap {
					r, g, b = (r+mr)/2, (g+mg)/2, (b+mb)/2
				} else {
					r, g, b = mr, mg, mb
				}
			}
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(r),
				G: toByte(g),
				B: toByte(b),
				A: 0xff,
			})
		}
	}
	return img
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
