package form

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/quizmark/internal/render"
)

const wheelScrollLines = 3

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan Action
	state      *State
}

func NewInputHandler(actionChan chan Action) *InputHandler {
	return &InputHandler{actionChan: actionChan}
}

// SetState sets the state reference used to tell typing from commands.
func (ih *InputHandler) SetState(state *State) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- ResizeAction{Width: w, Height: h}
		return true
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			ih.actionChan <- ScrollAction{Lines: -wheelScrollLines}
		case ev.Buttons()&tcell.WheelDown != 0:
			ih.actionChan <- ScrollAction{Lines: wheelScrollLines}
		case ev.Buttons()&tcell.Button1 != 0:
			ih.processClick(ev.Position())
		}
		return true
	default:
		return true
	}
}

// processClick focuses the clicked control and toggles radios and
// checkboxes.
func (ih *InputHandler) processClick(x, y int) {
	if ih.state == nil {
		return
	}
	idx, ok := ih.state.ControlAt(x, y)
	if !ok {
		return
	}
	ih.actionChan <- FocusAction{Control: idx}
	switch ih.state.Tree.Controls[idx].Kind {
	case render.ControlRadio, render.ControlCheckbox:
		ih.actionChan <- ActivateAction{}
	}
}

func (ih *InputHandler) editingText() bool {
	if ih.state == nil {
		return false
	}
	c, ok := ih.state.FocusedControl()
	return ok && c.Kind == render.ControlText
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	editing := ih.editingText()

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		ih.actionChan <- QuitAction{}
		return false
	case tcell.KeyTab:
		ih.actionChan <- FocusMoveAction{Delta: 1, Wrap: true}
	case tcell.KeyBacktab:
		ih.actionChan <- FocusMoveAction{Delta: -1, Wrap: true}
	case tcell.KeyDown:
		ih.actionChan <- FocusMoveAction{Delta: 1}
	case tcell.KeyUp:
		ih.actionChan <- FocusMoveAction{Delta: -1}
	case tcell.KeyLeft:
		ih.actionChan <- StepAction{Delta: -1}
	case tcell.KeyRight:
		ih.actionChan <- StepAction{Delta: 1}
	case tcell.KeyPgUp:
		ih.actionChan <- PageAction{Delta: -1}
	case tcell.KeyPgDn:
		ih.actionChan <- PageAction{Delta: 1}
	case tcell.KeyEnter:
		if editing {
			ih.actionChan <- FocusMoveAction{Delta: 1}
		} else {
			ih.actionChan <- ActivateAction{}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- BackspaceAction{}
	case tcell.KeyDelete:
		ih.actionChan <- DeleteAction{}
	case tcell.KeyCtrlU:
		ih.actionChan <- ClearFieldAction{}
	case tcell.KeyCtrlR:
		ih.actionChan <- ReloadAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- SuspendAction{}
	case tcell.KeyRune:
		r := ev.Rune()
		if editing {
			if unicode.IsPrint(r) {
				ih.actionChan <- InsertRuneAction{Char: r}
			}
			return true
		}
		switch r {
		case ' ':
			ih.actionChan <- ActivateAction{}
		case 'q', 'Q':
			ih.actionChan <- QuitAction{}
			return false
		}
	}
	return true
}
