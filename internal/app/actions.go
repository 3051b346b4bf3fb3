package app

import (
	"time"

	"github.com/mv-lab/cineview/internal/export"
	statepkg "github.com/mv-lab/cineview/internal/state"
)

// handleAction routes one action. Quit and export are application
// concerns; everything else goes through the reducer. Returns true when a
// redraw may be needed.
func (app *Application) handleAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false

	case statepkg.ExportFrameAction:
		app.handleExport()
		return true

	case statepkg.AutoWindowRequestAction:
		app.handleAutoWindow()
		return true
	}

	app.applyAction(action)
	return true
}

// applyAction reduces one action and publishes the resulting snapshot.
func (app *Application) applyAction(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
	app.state.Notify()
}

// handleExport writes the current frame to the export directory and
// records the outcome on the status line.
func (app *Application) handleExport() {
	center, width := app.state.WindowCenterWidth()
	path, err := export.Frame(app.vol, export.Options{
		Slice:        app.state.CurrentSlice,
		Center:       center,
		Width:        width,
		Heatmap:      app.state.ShowHeatmap,
		Segmentation: app.state.ShowSegmentation,
		Zoom:         app.state.Zoom,
		Dir:          app.exportDir,
	})
	if err != nil {
		app.state.LastError = err
		return
	}
	app.state.LastError = nil
	app.state.LastExportPath = path
	app.state.LastExportTime = time.Now()
}

// handleAutoWindow derives a window from the current slice content and
// applies it as the active window.
func (app *Application) handleAutoWindow() {
	if app.vol == nil {
		return
	}
	center, width := app.vol.AutoWindow(app.state.CurrentSlice - 1)
	app.applyAction(statepkg.SetAutoWindowAction{Center: center, Width: width})
}

// processActions drains any actions queued behind the one just handled.
func (app *Application) processActions() bool {
	handled := false
	for {
		select {
		case action, ok := <-app.actionCh:
			if !ok {
				return handled
			}
			if app.handleAction(action) {
				handled = true
			}
		default:
			return handled
		}
	}
}
