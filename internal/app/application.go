package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/grade"
	"github.com/kk-code-lab/quizmark/internal/logging"
	"github.com/kk-code-lab/quizmark/internal/markup"
	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/source"
	"github.com/kk-code-lab/quizmark/internal/ui/form"
)

const defaultWatchInterval = 500 * time.Millisecond

// Options configures a form session over one markup file.
type Options struct {
	Parser        markup.Parser
	Answers       answers.State
	Watch         bool
	WatchInterval time.Duration
	Logger        *logging.Logger
}

// Application owns the answers of the running form. The form itself only
// reports changes; the application applies them and re-renders.
type Application struct {
	screen   tcell.Screen
	parser   markup.Parser
	logger   *logging.Logger
	state    *form.State
	reducer  *form.Reducer
	renderer *form.Renderer
	input    *form.InputHandler
	actionCh chan form.Action

	file    source.File
	doc     markup.Document
	answers answers.State

	watch      bool
	interval   time.Duration
	loadSource func(path string) (source.File, error)
	statSource func(path string) (source.Stamp, error)

	shouldQuit bool
	closeOnce  sync.Once
}

var newScreen = tcell.NewScreen

// NewApplication opens the terminal and loads path.
func NewApplication(path string, opts Options) (*Application, error) {
	file, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	screen, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		screen.Fini()
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	return newApplication(screen, file, opts), nil
}

func newApplication(screen tcell.Screen, file source.File, opts Options) *Application {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = defaultWatchInterval
	}
	actionCh := make(chan form.Action, 10)
	app := &Application{
		screen:     screen,
		parser:     opts.Parser,
		logger:     opts.Logger,
		renderer:   form.NewRenderer(screen),
		input:      form.NewInputHandler(actionCh),
		actionCh:   actionCh,
		watch:      opts.Watch && file.Path != source.Stdin,
		interval:   opts.WatchInterval,
		loadSource: source.Load,
		statSource: source.StatStamp,
	}
	app.reducer = form.NewReducer(app.applyChange)

	app.Open(file)
	app.answers = opts.Answers.Prune(app.doc)

	w, h := screen.Size()
	app.state = form.NewState(render.Build(app.doc, app.answers), w, h)
	app.state.Title = app.title()
	app.input.SetState(app.state)
	return app
}

// Open switches to a different document. Answers never carry over between
// documents.
func (app *Application) Open(file source.File) {
	app.file = file
	app.doc = app.parser.ParseLines(file.Lines())
	app.answers = app.answers.Clear()
	app.rebuild()
}

// Close releases the terminal. Only the first call has an effect.
func (app *Application) Close() error {
	app.closeOnce.Do(app.screen.Fini)
	return nil
}

func (app *Application) Answers() answers.State {
	return app.answers
}

func (app *Application) Document() markup.Document {
	return app.doc
}

// Result is what a finished session leaves behind.
type Result struct {
	Document markup.Document
	Answers  answers.State
}

func (app *Application) Result() Result {
	return Result{Document: app.doc, Answers: app.answers}
}

// Report grades the current answers.
func (app *Application) Report(policy grade.Policy) grade.Report {
	return grade.Grade(app.doc, app.answers, policy)
}

func (app *Application) applyChange(c answers.Change) {
	app.answers = app.answers.Apply(c)
	app.rebuild()
}

// refresh re-parses the same source after an edit, keeping answers that
// still address a control.
func (app *Application) refresh(file source.File) bool {
	doc := app.parser.ParseLines(file.Lines())
	app.file = file
	if doc.ID == app.doc.ID {
		return false
	}
	before := app.answers.Len()
	app.doc = doc
	app.answers = app.answers.Prune(doc)
	app.rebuild()
	if app.state != nil {
		app.state.Status = "reloaded " + time.Now().Format("15:04:05")
		if dropped := before - app.answers.Len(); dropped > 0 {
			app.state.Status = fmt.Sprintf("reloaded, %d answers dropped", dropped)
		}
	}
	app.logger.Debug("reloaded "+file.Path, map[string]any{"questions": len(doc.Questions()), "answers": app.answers.Len()})
	return true
}

func (app *Application) rebuild() {
	if app.state == nil {
		return
	}
	app.state.SetTree(render.Build(app.doc, app.answers))
	app.state.Title = app.title()
}

func (app *Application) title() string {
	if app.file.Path == source.Stdin {
		return "stdin"
	}
	return filepath.Base(app.file.Path)
}
