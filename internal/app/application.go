// Package app wires the screen, input, reducer and renderer together and
// owns the event loop plus the cine playback timer.
package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mv-lab/cineview/internal/config"
	statepkg "github.com/mv-lab/cineview/internal/state"
	"github.com/mv-lab/cineview/internal/study"
	inputui "github.com/mv-lab/cineview/internal/ui/input"
	renderui "github.com/mv-lab/cineview/internal/ui/render"
	"github.com/mv-lab/cineview/internal/volume"
)

// Application represents the running viewer.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.ViewerState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	vol        *volume.Volume
	exportDir  string
	cineEvery  time.Duration
	shouldQuit bool
}

// NewApplication builds the viewer around an already-loaded series.
func NewApplication(vol *volume.Volume, st *study.Study, cfg *config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplicationWithScreen(screen, vol, st, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplicationWithScreen finishes construction on a prepared screen. Split
// out so tests can drive the app on a simulation screen.
func newApplicationWithScreen(screen tcell.Screen, vol *volume.Volume, st *study.Study, cfg *config.Config) (*Application, error) {
	state := newInitialState(vol, st, cfg)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	renderer := renderui.NewRenderer(screen, vol, st.Title(), inputHandler.Bindings())

	inputHandler.SetState(state)
	inputHandler.SetScreenToImage(func(x, y int) (statepkg.Point, bool) {
		return renderer.MapScreenToImage(state, x, y)
	})

	return &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderer,
		input:     inputHandler,
		actionCh:  actionCh,
		vol:       vol,
		exportDir: cfg.Export.Dir,
		cineEvery: time.Duration(cfg.Playback.IntervalMs) * time.Millisecond,
	}, nil
}

// newInitialState opens the session at the series midpoint with the
// configured preset and tool.
func newInitialState(vol *volume.Volume, st *study.Study, cfg *config.Config) *statepkg.ViewerState {
	state := statepkg.NewViewerState(
		vol.Depth,
		(vol.Depth+1)/2,
		cfg.Display.DefaultPreset,
		statepkg.Tool(cfg.Display.DefaultTool),
	)

	if len(st.PixelSpacing) >= 2 {
		state.PixelSpacing = [2]float64{st.PixelSpacing[0], st.PixelSpacing[1]}
	} else if vol.PixelSpacing[0] > 0 {
		state.PixelSpacing = vol.PixelSpacing
	}
	state.MissingSlices = volume.MissingSlices(vol.Positions)
	return state
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}
