// Package volume holds the in-memory slice stack the viewer displays:
// Hounsfield-unit sample data, windowing, synthetic overlays, and the
// loaders that build a volume from an image directory or a phantom.
package volume

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Volume is a W×H×D stack of slices in Hounsfield units. Slices are
// 1-based everywhere in the UI; internally storage is 0-based.
type Volume struct {
	Width  int
	Height int
	Depth  int

	// Data is slice-major: Data[z*Width*Height + y*Width + x].
	Data []float64

	// Positions holds the physical z position of each slice in mm,
	// used for gap detection. May be empty for image-derived volumes.
	Positions []float64

	// PixelSpacing is the in-plane mm-per-pixel pair (row, col).
	PixelSpacing [2]float64
}

// At returns the HU sample at (x, y) of 0-based slice z. Out-of-range
// coordinates read as air (-1000) so samplers never need bounds checks.
func (v *Volume) At(x, y, z int) float64 {
	if x < 0 || y < 0 || z < 0 || x >= v.Width || y >= v.Height || z >= v.Depth {
		return -1000
	}
	return v.Data[z*v.Width*v.Height+y*v.Width+x]
}

// Slice returns the backing samples of 0-based slice z.
func (v *Volume) Slice(z int) []float64 {
	if z < 0 || z >= v.Depth {
		return nil
	}
	n := v.Width * v.Height
	return v.Data[z*n : (z+1)*n]
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// LoadDir builds a volume from a directory of slice images, sorted by
// filename. Gray values are mapped linearly onto [huMin, huMax]. All
// slices must share the dimensions of the first.
func LoadDir(dir string, huMin, huMax float64) (*Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading series directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no slice images in %s", dir)
	}
	sort.Strings(names)

	if huMax <= huMin {
		huMin, huMax = -1000, 1000
	}

	var vol *Volume
	for i, name := range names {
		img, err := decodeImage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("decoding slice %s: %w", name, err)
		}
		b := img.Bounds()
		if vol == nil {
			vol = &Volume{
				Width:        b.Dx(),
				Height:       b.Dy(),
				Depth:        len(names),
				Data:         make([]float64, b.Dx()*b.Dy()*len(names)),
				PixelSpacing: [2]float64{1, 1},
			}
		} else if b.Dx() != vol.Width || b.Dy() != vol.Height {
			return nil, fmt.Errorf("slice %s is %dx%d, expected %dx%d",
				name, b.Dx(), b.Dy(), vol.Width, vol.Height)
		}

		dst := vol.Slice(i)
		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				gray := float64(r+g+bb) / 3 / 65535
				dst[y*vol.Width+x] = huMin + gray*(huMax-huMin)
			}
		}
	}
	return vol, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// Phantom generates a synthetic CT-like chest phantom: an elliptical body
// of soft tissue, two low-density lung fields, and a dense spine column.
// It lets the viewer run with no study on disk and gives tests a
// deterministic volume.
func Phantom(width, height, depth int) *Volume {
	if width < 8 {
		width = 8
	}
	if height < 8 {
		height = 8
	}
	if depth < 1 {
		depth = 1
	}

	v := &Volume{
		Width:        width,
		Height:       height,
		Depth:        depth,
		Data:         make([]float64, width*height*depth),
		Positions:    make([]float64, depth),
		PixelSpacing: [2]float64{0.7, 0.7},
	}

	cx := float64(width) / 2
	cy := float64(height) / 2
	for z := 0; z < depth; z++ {
		v.Positions[z] = float64(z) * 2.5

		// Lungs taper toward the ends of the stack.
		taper := 1.0
		if depth > 1 {
			t := float64(z)/float64(depth-1)*2 - 1 // -1..1
			taper = 1 - 0.6*t*t
		}

		dst := v.Slice(z)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				fx, fy := float64(x), float64(y)
				hu := -1000.0 // air

				if inEllipse(fx, fy, cx, cy, cx*0.9, cy*0.8) {
					hu = 40 // soft tissue body
					lungRx := cx * 0.3 * taper
					lungRy := cy * 0.45 * taper
					if inEllipse(fx, fy, cx*0.6, cy*0.9, lungRx, lungRy) ||
						inEllipse(fx, fy, cx*1.4, cy*0.9, lungRx, lungRy) {
						hu = -700
					}
					if inEllipse(fx, fy, cx, cy*1.5, cx*0.08, cy*0.08) {
						hu = 700 // spine
					}
				}
				dst[y*width+x] = hu
			}
		}
	}
	return v
}

func inEllipse(x, y, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return math.Sqrt(dx*dx+dy*dy) <= 1
}
