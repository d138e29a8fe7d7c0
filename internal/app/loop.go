package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/quizmark/internal/source"
	"github.com/kk-code-lab/quizmark/internal/ui/form"
)

// Run processes terminal events until the learner quits. The terminal
// stays open until Close.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var watchCh <-chan time.Time
	if app.watch {
		ticker := time.NewTicker(app.interval)
		defer ticker.Stop()
		watchCh = ticker.C
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev, ok := <-eventChan:
			if !ok {
				app.shouldQuit = true
				continue
			}
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-watchCh:
			if app.checkSource() {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize, *tcell.EventMouse:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action form.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case form.QuitAction:
		app.shouldQuit = true
		return false
	case form.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case form.ReloadAction:
		return app.reload()
	}

	return app.reducer.Reduce(app.state, action)
}

// checkSource reloads when the watched file's mtime or size changed.
func (app *Application) checkSource() bool {
	stamp, err := app.statSource(app.file.Path)
	if err != nil {
		app.state.Status = "source unavailable"
		app.logger.Warn("stat "+app.file.Path, err)
		return true
	}
	if stamp.Equal(app.file.Stamp()) {
		return false
	}
	return app.reload()
}

func (app *Application) reload() bool {
	if app.file.Path == "" || app.file.Path == source.Stdin {
		return false
	}
	file, err := app.loadSource(app.file.Path)
	if err != nil {
		app.state.Status = "reload failed"
		app.logger.Warn("reload "+app.file.Path, err)
		return true
	}
	if !app.refresh(file) {
		app.state.Status = ""
	}
	return true
}
