package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mv-lab/cineview/internal/keymap"
	statepkg "github.com/mv-lab/cineview/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.ViewerState // Reference to current state for mode checking
	dispatcher *keymap.Dispatcher

	// screenToImage maps a screen cell to image (slice pixel) space.
	// The renderer installs it; until then mouse tools are inert.
	screenToImage func(x, y int) (statepkg.Point, bool)

	// Mouse drag tracking.
	dragging   bool
	lastMouseX int
	lastMouseY int
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	ih := &InputHandler{
		actionChan: actionChan,
	}
	ih.dispatcher = keymap.NewDispatcher(keymap.DefaultBindings(), func() bool {
		return ih.state != nil && ih.state.NoteActive
	})
	return ih
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.ViewerState) {
	ih.state = state
}

// SetScreenToImage installs the coordinate mapper used by mouse tools.
func (ih *InputHandler) SetScreenToImage(fn func(x, y int) (statepkg.Point, bool)) {
	ih.screenToImage = fn
}

// Bindings exposes the shortcut table for help rendering.
func (ih *InputHandler) Bindings() []keymap.Binding {
	return ih.dispatcher.Bindings()
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should exit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
		return true
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	noteActive := ih.state != nil && ih.state.NoteActive
	helpVisible := ih.state != nil && ih.state.HelpVisible
	playing := ih.state != nil && ih.state.Playing

	// Note entry owns the keyboard: every keystroke edits the draft and
	// no shortcut fires, so typing 'm' never flips an overlay.
	if noteActive {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEnter:
			ih.actionChan <- statepkg.NoteCommitAction{}
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.NoteCancelAction{}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			ih.actionChan <- statepkg.NoteBackspaceAction{}
		case tcell.KeyRune:
			ih.actionChan <- statepkg.NoteCharAction{Char: ev.Rune()}
		}
		return true
	}

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			if ev.Rune() == '?' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyEscape:
		if playing {
			ih.actionChan <- statepkg.TogglePlaybackAction{}
		}
		return true
	}

	if action, ok := ih.dispatcher.Match(ev); ok {
		ih.actionChan <- action
	}
	return true
}

// processMouseEvent handles wheel and pointer-tool input.
func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	// Wheel: Ctrl zooms, plain scrubs slices.
	switch {
	case buttons&tcell.WheelUp != 0:
		if ctrl {
			ih.actionChan <- statepkg.ZoomByAction{Factor: statepkg.WheelZoomIn}
		} else {
			ih.actionChan <- statepkg.StepSliceAction{Delta: -1}
		}
		return
	case buttons&tcell.WheelDown != 0:
		if ctrl {
			ih.actionChan <- statepkg.ZoomByAction{Factor: statepkg.WheelZoomOut}
		} else {
			ih.actionChan <- statepkg.StepSliceAction{Delta: 1}
		}
		return
	}

	tool := statepkg.ToolPan
	zoom := 1.0
	if ih.state != nil {
		tool = ih.state.ActiveTool
		zoom = ih.state.Zoom
	}

	switch {
	case buttons&tcell.Button1 != 0:
		if !ih.dragging {
			ih.dragging = true
			ih.lastMouseX, ih.lastMouseY = x, y
			ih.pressAt(tool, x, y)
			return
		}
		dx, dy := x-ih.lastMouseX, y-ih.lastMouseY
		ih.lastMouseX, ih.lastMouseY = x, y
		if dx == 0 && dy == 0 {
			return
		}
		switch tool {
		case statepkg.ToolPan:
			// Drag moves the image with the pointer: a cell of screen
			// travel is 1/zoom pixels of image travel.
			ih.actionChan <- statepkg.PanByAction{Dx: float64(dx) / zoom, Dy: float64(dy) / zoom}
		case statepkg.ToolRuler:
			if p, ok := ih.mapToImage(x, y); ok {
				ih.actionChan <- statepkg.RulerDragAction{At: p}
			}
		}

	case buttons&tcell.Button2 != 0:
		ih.dragging = false
		if tool == statepkg.ToolZoom {
			ih.actionChan <- statepkg.ZoomByAction{Factor: statepkg.ZoomStepOut}
		}

	default:
		ih.dragging = false
	}
}

// pressAt fires the tool's press action at a screen position.
func (ih *InputHandler) pressAt(tool statepkg.Tool, x, y int) {
	switch tool {
	case statepkg.ToolZoom:
		ih.actionChan <- statepkg.ZoomByAction{Factor: statepkg.ZoomStepIn}
	case statepkg.ToolRuler:
		if p, ok := ih.mapToImage(x, y); ok {
			ih.actionChan <- statepkg.RulerStartAction{At: p}
		}
	case statepkg.ToolMarker:
		if p, ok := ih.mapToImage(x, y); ok {
			ih.actionChan <- statepkg.DropMarkerAction{At: p}
		}
	}
}

func (ih *InputHandler) mapToImage(x, y int) (statepkg.Point, bool) {
	if ih.screenToImage == nil {
		return statepkg.Point{}, false
	}
	return ih.screenToImage(x, y)
}
