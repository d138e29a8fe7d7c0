package form

import (
	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/render"
)

// Reducer applies actions to a form State. Answer edits never touch the
// State directly; they are reported through onChange and come back as a
// new tree via State.SetTree.
type Reducer struct {
	onChange render.OnChange
}

func NewReducer(onChange render.OnChange) *Reducer {
	return &Reducer{onChange: onChange}
}

// Reduce applies action to s and reports whether the screen needs a redraw.
func (r *Reducer) Reduce(s *State, action Action) bool {
	switch a := action.(type) {
	case FocusMoveAction:
		return r.moveFocus(s, a)

	case FocusAction:
		if a.Control < 0 || a.Control >= len(s.Tree.Controls) || a.Control == s.Focus {
			return false
		}
		s.Focus = a.Control
		if c, ok := s.FocusedControl(); ok {
			s.Cursor = len([]rune(c.Value))
		}
		s.ensureVisible()
		return true

	case ActivateAction:
		c, ok := s.FocusedControl()
		if !ok {
			return false
		}
		if c.Kind == render.ControlSelect {
			return r.emit(c.Cycle(1))
		}
		return r.emit(c.Toggle())

	case StepAction:
		c, ok := s.FocusedControl()
		if !ok {
			return false
		}
		if c.Kind == render.ControlText {
			before := s.Cursor
			s.Cursor += a.Delta
			s.clampCursor()
			return s.Cursor != before
		}
		return r.emit(c.Cycle(a.Delta))

	case InsertRuneAction:
		return r.editText(s, func(value []rune, cursor int) ([]rune, int) {
			out := make([]rune, 0, len(value)+1)
			out = append(out, value[:cursor]...)
			out = append(out, a.Char)
			out = append(out, value[cursor:]...)
			return out, cursor + 1
		})

	case BackspaceAction:
		return r.editText(s, func(value []rune, cursor int) ([]rune, int) {
			if cursor == 0 {
				return value, cursor
			}
			return append(value[:cursor-1:cursor-1], value[cursor:]...), cursor - 1
		})

	case DeleteAction:
		return r.editText(s, func(value []rune, cursor int) ([]rune, int) {
			if cursor >= len(value) {
				return value, cursor
			}
			return append(value[:cursor:cursor], value[cursor+1:]...), cursor
		})

	case ClearFieldAction:
		return r.editText(s, func([]rune, int) ([]rune, int) {
			return nil, 0
		})

	case ScrollAction:
		before := s.Scroll
		s.Scroll += a.Lines
		s.clampScroll()
		return s.Scroll != before

	case PageAction:
		before := s.Scroll
		s.Scroll += a.Delta * s.BodyHeight()
		s.clampScroll()
		r.focusVisible(s)
		return s.Scroll != before

	case ResizeAction:
		s.Resize(a.Width, a.Height)
		return true
	}
	return false
}

func (r *Reducer) moveFocus(s *State, a FocusMoveAction) bool {
	n := len(s.Tree.Controls)
	if n == 0 || a.Delta == 0 {
		return false
	}
	next := s.Focus + a.Delta
	if s.Focus < 0 {
		next = 0
	}
	if a.Wrap {
		next = ((next % n) + n) % n
	} else {
		next = min(max(next, 0), n-1)
	}
	if next == s.Focus {
		return false
	}
	s.Focus = next
	if c, ok := s.FocusedControl(); ok {
		s.Cursor = len([]rune(c.Value))
	}
	s.ensureVisible()
	return true
}

// focusVisible moves focus onto the screen after a page scroll.
func (r *Reducer) focusVisible(s *State) {
	row := s.ControlRow(s.Focus)
	body := s.BodyHeight()
	if row >= s.Scroll && row < s.Scroll+body {
		return
	}
	for idx := range s.Tree.Controls {
		cr := s.ControlRow(idx)
		if cr >= s.Scroll && cr < s.Scroll+body {
			s.Focus = idx
			if c, ok := s.FocusedControl(); ok {
				s.Cursor = len([]rune(c.Value))
			}
			return
		}
	}
}

func (r *Reducer) editText(s *State, edit func(value []rune, cursor int) ([]rune, int)) bool {
	c, ok := s.FocusedControl()
	if !ok || c.Kind != render.ControlText {
		return false
	}
	s.clampCursor()
	value, cursor := edit([]rune(c.Value), s.Cursor)
	change, ok := c.Edit(string(value))
	if !ok {
		return false
	}
	s.Cursor = cursor
	r.emit(change, true)
	return true
}

func (r *Reducer) emit(change answers.Change, ok bool) bool {
	if !ok || r.onChange == nil {
		return false
	}
	r.onChange(change)
	return true
}
