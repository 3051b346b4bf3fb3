package render

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mv-lab/cineview/internal/keymap"
	statepkg "github.com/mv-lab/cineview/internal/state"
	"github.com/mv-lab/cineview/internal/textutil"
	"github.com/mv-lab/cineview/internal/volume"
)

// Layout: header on row 0, the image panel on rows 1..h-2, status line on
// the last row. The panel renders two image rows per cell with the upper
// half block, which makes terminal cells roughly square in image space.
const (
	headerRows = 1
	statusRows = 1
)

// Renderer draws the whole screen from the viewer state.
type Renderer struct {
	screen     tcell.Screen
	theme      ColorTheme
	vol        *volume.Volume
	studyTitle string
	bindings   []keymap.Binding
}

// NewRenderer creates a renderer for one loaded series.
func NewRenderer(screen tcell.Screen, vol *volume.Volume, studyTitle string, bindings []keymap.Binding) *Renderer {
	return &Renderer{
		screen:     screen,
		theme:      GetColorTheme(),
		vol:        vol,
		studyTitle: studyTitle,
		bindings:   bindings,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.ViewerState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state != nil && state.HelpVisible {
		r.drawHelpOverlay(r.bindings, w, h)
		return
	}

	r.drawHeader(state, w)
	r.drawImagePanel(state, w, h)
	r.drawAnnotations(state, w, h)
	r.drawSliceGutter(state, w, h)
	r.drawStatusLine(state, w, h)

	r.screen.Show()
}

// drawHeader renders the study line at the top of the screen.
func (r *Renderer) drawHeader(state *statepkg.ViewerState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	endX := r.drawTextLine(0, 0, w, "cineview", style.Bold(true))
	if endX < w {
		endX = r.drawTextLine(endX, 0, w-endX, "  ", style)
	}
	title := textutil.SanitizeTerminalText(r.studyTitle)
	title = textutil.TruncateToWidth(title, w-endX)
	endX = r.drawTextLine(endX, 0, w-endX, title, style)

	for x := endX; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}

// drawImagePanel samples the volume through the view transform and paints
// it with half blocks: the foreground carries the upper image row, the
// background the lower.
func (r *Renderer) drawImagePanel(state *statepkg.ViewerState, w, h int) {
	panelH := h - headerRows - statusRows
	if panelH <= 0 || state == nil || r.vol == nil {
		return
	}

	z := state.CurrentSlice - 1
	center, width := state.WindowCenterWidth()

	var mask []bool
	if state.ShowSegmentation {
		mask = r.vol.SegmentationMask(z)
	}

	for cy := 0; cy < panelH; cy++ {
		for cx := 0; cx < w; cx++ {
			top := r.samplePixel(state, cx, cy*2, w, panelH*2, z, center, width, mask)
			bottom := r.samplePixel(state, cx, cy*2+1, w, panelH*2, z, center, width, mask)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r.screen.SetContent(cx, headerRows+cy, '▀', nil, style)
		}
	}
}

// samplePixel resolves one subpixel of the panel to a terminal color.
func (r *Renderer) samplePixel(state *statepkg.ViewerState, cx, py, panelW, pixH, z, center, width int, mask []bool) tcell.Color {
	ix, iy := r.panelToImage(state, float64(cx), float64(py), panelW, pixH)
	x := int(math.Round(ix))
	y := int(math.Round(iy))
	if x < 0 || x >= r.vol.Width || y < 0 || y >= r.vol.Height {
		return tcell.ColorBlack
	}

	gray := volume.ApplyWindow(r.vol.At(x, y, z), center, width)
	red, green, blue := gray, gray, gray
	if state.ShowHeatmap {
		red, green, blue = volume.BlendHeatmap(gray, r.vol.HeatmapValue(x, y, z))
	}
	if mask != nil && mask[y*r.vol.Width+x] {
		mr, mg, mb := volume.BlendSegmentation(gray, true)
		if state.ShowHeatmap {
			red, green, blue = (red+mr)/2, (green+mg)/2, (blue+mb)/2
		} else {
			red, green, blue = mr, mg, mb
		}
	}
	return rgbColor(red, green, blue)
}

// panelToImage maps a panel subpixel to image coordinates under the current
// zoom and pan.
func (r *Renderer) panelToImage(state *statepkg.ViewerState, px, py float64, panelW, pixH int) (float64, float64) {
	ix := float64(r.vol.Width)/2 + (px-float64(panelW)/2)/state.Zoom - state.PanX
	iy := float64(r.vol.Height)/2 + (py-float64(pixH)/2)/state.Zoom - state.PanY
	return ix, iy
}

// imageToPanel is the inverse mapping, returning the cell column and the
// subpixel row.
func (r *Renderer) imageToPanel(state *statepkg.ViewerState, ix, iy float64, panelW, pixH int) (float64, float64) {
	px := (ix-float64(r.vol.Width)/2+state.PanX)*state.Zoom + float64(panelW)/2
	py := (iy-float64(r.vol.Height)/2+state.PanY)*state.Zoom + float64(pixH)/2
	return px, py
}

// MapScreenToImage converts a screen cell to image coordinates, reporting
// false outside the image panel or the slice bounds. The input layer uses
// it to place mouse tools.
func (r *Renderer) MapScreenToImage(state *statepkg.ViewerState, x, y int) (statepkg.Point, bool) {
	if state == nil || r.vol == nil {
		return statepkg.Point{}, false
	}
	w, h := state.ScreenWidth, state.ScreenHeight
	panelH := h - headerRows - statusRows
	if panelH <= 0 || y < headerRows || y >= headerRows+panelH || x < 0 || x >= w {
		return statepkg.Point{}, false
	}
	ix, iy := r.panelToImage(state, float64(x), float64((y-headerRows)*2), w, panelH*2)
	if ix < 0 || ix >= float64(r.vol.Width) || iy < 0 || iy >= float64(r.vol.Height) {
		return statepkg.Point{}, false
	}
	return statepkg.Point{X: ix, Y: iy}, true
}

// drawAnnotations paints markers and the ruler for the current slice.
func (r *Renderer) drawAnnotations(state *statepkg.ViewerState, w, h int) {
	panelH := h - headerRows - statusRows
	if panelH <= 0 || state == nil || r.vol == nil {
		return
	}
	pixH := panelH * 2

	markerStyle := tcell.StyleDefault.Foreground(r.theme.MarkerFg)
	for _, m := range state.CurrentMarkers() {
		if cx, cy, ok := r.annotationCell(state, m, w, pixH, panelH); ok {
			r.screen.SetContent(cx, cy, '+', nil, markerStyle)
		}
	}

	if state.RulerA != nil && state.RulerB != nil {
		r.drawRuler(state, *state.RulerA, *state.RulerB, w, pixH, panelH)
	} else if state.RulerA != nil {
		if cx, cy, ok := r.annotationCell(state, *state.RulerA, w, pixH, panelH); ok {
			r.screen.SetContent(cx, cy, '+', nil, tcell.StyleDefault.Foreground(r.theme.RulerFg))
		}
	}
}

// drawRuler draws the measurement segment by stepping through image space.
func (r *Renderer) drawRuler(state *statepkg.ViewerState, a, b statepkg.Point, w, pixH, panelH int) {
	style := tcell.StyleDefault.Foreground(r.theme.RulerFg)
	steps := int(math.Hypot(b.X-a.X, b.Y-a.Y)*state.Zoom) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := statepkg.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
		if cx, cy, ok := r.annotationCell(state, p, w, pixH, panelH); ok {
			ch := '·'
			if i == 0 || i == steps {
				ch = '+'
			}
			r.screen.SetContent(cx, cy, ch, nil, style)
		}
	}
}

func (r *Renderer) annotationCell(state *statepkg.ViewerState, p statepkg.Point, w, pixH, panelH int) (int, int, bool) {
	px, py := r.imageToPanel(state, p.X, p.Y, w, pixH)
	cx := int(math.Round(px))
	cy := int(math.Round(py)) / 2
	if cx < 0 || cx >= w || cy < 0 || cy >= panelH {
		return 0, 0, false
	}
	return cx, headerRows + cy, true
}

// drawSliceGutter paints a one-column slider on the right edge showing the
// current position within the stack.
func (r *Renderer) drawSliceGutter(state *statepkg.ViewerState, w, h int) {
	panelH := h - headerRows - statusRows
	if panelH <= 0 || w < 1 || state == nil || state.TotalSlices < 2 {
		return
	}
	x := w - 1
	thumb := (state.CurrentSlice - 1) * (panelH - 1) / (state.TotalSlices - 1)

	trackStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	thumbStyle := tcell.StyleDefault.Foreground(r.theme.Foreground).Bold(true)
	for cy := 0; cy < panelH; cy++ {
		if cy == thumb {
			r.screen.SetContent(x, headerRows+cy, '█', nil, thumbStyle)
		} else {
			r.screen.SetContent(x, headerRows+cy, '░', nil, trackStyle)
		}
	}
}

// drawStatusLine renders the bottom row: the note prompt while a note is
// being edited, the session summary otherwise.
func (r *Renderer) drawStatusLine(state *statepkg.ViewerState, w, h int) {
	if h < 1 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)

	var line string
	if state != nil && state.NoteActive {
		line = formatNoteLine(state)
		style = style.Foreground(r.theme.NotePrompt)
	} else {
		line = formatStatusLine(state, time.Now())
	}
	line = textutil.SanitizeTerminalText(line)
	line = textutil.TruncateToWidth(line, w)

	endX := r.drawTextLine(0, y, w, line, style)
	for x := endX; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawTextLine writes text at (x, y) clipped to maxWidth columns and
// returns the column after the last rune written.
func (r *Renderer) drawTextLine(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	endX := x
	limit := x + maxWidth
	for _, ru := range text {
		rw := runewidth.RuneWidth(ru)
		if rw <= 0 {
			rw = 1
		}
		if endX+rw > limit {
			break
		}
		r.screen.SetContent(endX, y, ru, nil, style)
		endX += rw
	}
	return endX
}

// rgbColor converts unit-range RGB to a tcell color.
func rgbColor(red, green, blue float64) tcell.Color {
	return tcell.NewRGBColor(toChannel(red), toChannel(green), toChannel(blue))
}

func toChannel(v float64) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v*255 + 0.5)
}
