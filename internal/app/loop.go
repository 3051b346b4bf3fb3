package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/mv-lab/cineview/internal/state"
)

// Run drives the event loop until quit. Rendering is coalesced: however
// many events arrive in a burst, the screen is painted at most once per
// loop iteration.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var cineTimer *time.Timer
	var cineCh <-chan time.Time

	startCine := func() {
		if cineTimer == nil {
			cineTimer = time.NewTimer(app.cineEvery)
		} else {
			if !cineTimer.Stop() {
				select {
				case <-cineTimer.C:
				default:
				}
			}
			cineTimer.Reset(app.cineEvery)
		}
		cineCh = cineTimer.C
	}

	stopCine := func() {
		if cineTimer == nil {
			return
		}
		if !cineTimer.Stop() {
			select {
			case <-cineTimer.C:
			default:
			}
		}
		cineCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		// The timer is armed while playing and fully drained otherwise, so
		// a stale tick can never fire after pause.
		if app.state.Playing {
			if cineCh == nil {
				startCine()
			}
		} else {
			stopCine()
		}

		// A nil cineCh blocks forever, which is exactly the off state.
		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-cineCh:
			app.applyAction(statepkg.PlaybackTickAction{})
			if app.state.Playing {
				startCine()
			} else {
				cineCh = nil
			}
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopCine()
}

// handleEvent feeds one terminal event through the input layer. It returns
// true when a redraw may be needed.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize, *tcell.EventMouse:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}
