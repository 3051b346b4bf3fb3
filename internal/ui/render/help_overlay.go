package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/mv-lab/cineview/internal/keymap"
	"github.com/mv-lab/cineview/internal/textutil"
)

// buildHelpOverlayLines renders the shortcut table as overlay text. Bindings
// that share a description are folded onto one row ("↑/←  Previous slice"),
// and categories keep the table's order.
func buildHelpOverlayLines(bindings []keymap.Binding) []string {
	type row struct {
		keys []string
		desc string
	}
	type section struct {
		title string
		rows  []*row
	}

	var sections []*section
	byTitle := make(map[string]*section)
	rowByDesc := make(map[string]*row)

	for _, b := range bindings {
		sec, ok := byTitle[b.Category]
		if !ok {
			sec = &section{title: b.Category}
			byTitle[b.Category] = sec
			sections = append(sections, sec)
		}
		key := b.Category + "\x00" + b.Description
		if r, ok := rowByDesc[key]; ok {
			r.keys = append(r.keys, keyLabel(b))
			continue
		}
		r := &row{keys: []string{keyLabel(b)}, desc: b.Description}
		rowByDesc[key] = r
		sec.rows = append(sec.rows, r)
	}

	lines := make([]string, 0, len(bindings)+2*len(sections)+4)
	for i, sec := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sec.title)
		for _, r := range sec.rows {
			keys := textutil.SanitizeTerminalText(strings.Join(r.keys, "/"))
			desc := textutil.SanitizeTerminalText(r.desc)
			lines = append(lines, fmt.Sprintf("  %-12s %s", keys, desc))
		}
	}
	lines = append(lines, "", "  Esc          Stop cine playback", "  Ctrl+C       Quit")
	return lines
}

// keyLabel formats one binding for display.
func keyLabel(b keymap.Binding) string {
	var label string
	switch b.Key {
	case tcell.KeyRune:
		switch b.Rune {
		case ' ':
			label = "Space"
		default:
			label = string(unicode.ToLower(b.Rune))
		}
	case tcell.KeyUp:
		label = "↑"
	case tcell.KeyDown:
		label = "↓"
	case tcell.KeyLeft:
		label = "←"
	case tcell.KeyRight:
		label = "→"
	case tcell.KeyHome:
		label = "Home"
	case tcell.KeyEnd:
		label = "End"
	default:
		label = tcell.KeyNames[b.Key]
	}
	if b.Alt {
		label = "Alt+" + label
	}
	if b.Shift {
		label = "Shift+" + label
	}
	if b.Ctrl {
		label = "Ctrl+" + strings.ToUpper(label)
	}
	return label
}

// drawHelpOverlay paints the shortcut reference over the whole screen.
func (r *Renderer) drawHelpOverlay(bindings []keymap.Binding, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	titleStyle := baseStyle.Bold(true)
	r.drawTextLine(1, 0, w-1, "Keyboard & mouse reference", titleStyle)

	lines := buildHelpOverlayLines(bindings)
	y := 2
	for _, line := range lines {
		if y >= h-1 {
			break
		}
		style := baseStyle
		if line != "" && !strings.HasPrefix(line, " ") {
			style = titleStyle
		}
		r.drawTextLine(1, y, w-2, line, style)
		y++
	}

	if h > 0 {
		r.drawTextLine(1, h-1, w-2, "? or Esc to close", baseStyle.Dim(true))
	}
	r.screen.Show()
}
