package keymap

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/mv-lab/cineview/internal/state"
)

// Dispatcher matches key events against a binding table. Matching is
// first-match-wins in table order; rune comparison is case-insensitive;
// modifiers must match exactly (a plain 's' never fires a Ctrl+S binding
// and vice versa). While a text input is focused the dispatcher is
// suppressed and consumes nothing, so every keystroke reaches the input.
type Dispatcher struct {
	bindings    []Binding
	textFocused func() bool
}

func NewDispatcher(bindings []Binding, textFocused func() bool) *Dispatcher {
	if textFocused == nil {
		textFocused = func() bool { return false }
	}
	return &Dispatcher{bindings: bindings, textFocused: textFocused}
}

// Bindings returns the table in priority order, for help rendering.
func (d *Dispatcher) Bindings() []Binding {
	return d.bindings
}

// Match resolves a key event to an action. The second return value reports
// whether the event was consumed; unmatched events are left to the caller.
func (d *Dispatcher) Match(ev *tcell.EventKey) (statepkg.Action, bool) {
	if d.textFocused() {
		return nil, false
	}

	key, r, ctrl, shift, alt := normalize(ev)
	for _, b := range d.bindings {
		if b.Ctrl != ctrl || b.Shift != shift || b.Alt != alt {
			continue
		}
		if b.Key != key {
			continue
		}
		if key == tcell.KeyRune && unicode.ToLower(b.Rune) != unicode.ToLower(r) {
			continue
		}
		return b.Action, true
	}
	return nil, false
}

// normalize folds tcell's dedicated Ctrl+letter key codes back into a rune
// plus a ctrl flag, so table entries can be written as {Rune: 's', Ctrl: true}.
// Tab, Enter and Backspace share code points with Ctrl+I/M/H and are kept
// as-is.
func normalize(ev *tcell.EventKey) (key tcell.Key, r rune, ctrl, shift, alt bool) {
	key = ev.Key()
	r = ev.Rune()
	mods := ev.Modifiers()
	ctrl = mods&tcell.ModCtrl != 0
	shift = mods&tcell.ModShift != 0
	alt = mods&tcell.ModAlt != 0

	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		switch key {
		case tcell.KeyTAB, tcell.KeyEnter, tcell.KeyBackspace:
		default:
			r = rune('a' + int(key) - int(tcell.KeyCtrlA))
			key = tcell.KeyRune
			ctrl = true
		}
	}
	return key, r, ctrl, shift, alt
}
