package form

import (
	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/textutil"
)

const (
	headerRows = 1
	footerRows = 1
)

// State is the UI state of the terminal form. It never holds answers: the
// rendered Tree is replaced by the owner after every change.
type State struct {
	Tree   render.Tree
	Title  string
	Status string

	Focus  int
	Cursor int
	Scroll int

	Width  int
	Height int

	rows        []Row
	controlRows []int
}

func NewState(tree render.Tree, width, height int) *State {
	s := &State{Focus: render.NoControl, Width: width, Height: height}
	s.SetTree(tree)
	return s
}

// SetTree swaps in a freshly rendered tree. Focus follows the control with
// the same answer key, so edits and reloads keep the learner's place.
func (s *State) SetTree(tree render.Tree) {
	prev, hadFocus := s.FocusedControl()
	prevFocus := s.Focus
	s.Tree = tree
	s.relayout()

	switch {
	case len(tree.Controls) == 0:
		s.Focus = render.NoControl
	case hadFocus:
		s.Focus = tree.FindControl(prev.Key, prev.Value)
		if s.Focus == render.NoControl {
			s.Focus = min(prevFocus, len(tree.Controls)-1)
		}
	default:
		s.Focus = 0
	}

	if c, ok := s.FocusedControl(); ok && (!hadFocus || c.Key != prev.Key) {
		s.Cursor = len([]rune(c.Value))
	}
	s.clampCursor()
	s.ensureVisible()
}

func (s *State) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.relayout()
	s.ensureVisible()
}

func (s *State) relayout() {
	s.rows, s.controlRows = Layout(s.Tree, s.Width)
}

func (s *State) Rows() []Row {
	return s.rows
}

// BodyHeight is the number of rows available for the form itself.
func (s *State) BodyHeight() int {
	h := s.Height - headerRows - footerRows
	if h < 1 {
		return 1
	}
	return h
}

func (s *State) FocusedControl() (render.Control, bool) {
	if s.Focus < 0 || s.Focus >= len(s.Tree.Controls) {
		return render.Control{}, false
	}
	return s.Tree.Controls[s.Focus], true
}

// ControlRow returns the first layout row of control idx.
func (s *State) ControlRow(idx int) int {
	if idx < 0 || idx >= len(s.controlRows) {
		return -1
	}
	return s.controlRows[idx]
}

// ControlAt returns the control drawn at screen cell x, y.
func (s *State) ControlAt(x, y int) (int, bool) {
	i := y - headerRows
	if i < 0 || i >= s.BodyHeight() || x < 0 {
		return render.NoControl, false
	}
	rowIdx := s.Scroll + i
	if rowIdx >= len(s.rows) {
		return render.NoControl, false
	}
	col := 0
	for _, sp := range s.rows[rowIdx] {
		w := textutil.DisplayWidth(sp.Text)
		if x < col+w {
			return sp.Control, sp.Control != render.NoControl
		}
		col += w
	}
	return render.NoControl, false
}

func (s *State) maxScroll() int {
	m := len(s.rows) - s.BodyHeight()
	if m < 0 {
		return 0
	}
	return m
}

func (s *State) clampScroll() {
	s.Scroll = min(max(s.Scroll, 0), s.maxScroll())
}

func (s *State) clampCursor() {
	c, ok := s.FocusedControl()
	if !ok || c.Kind != render.ControlText {
		s.Cursor = 0
		return
	}
	s.Cursor = min(max(s.Cursor, 0), len([]rune(c.Value)))
}

// ensureVisible scrolls so the focused control is on screen.
func (s *State) ensureVisible() {
	row := s.ControlRow(s.Focus)
	if row >= 0 {
		body := s.BodyHeight()
		if row < s.Scroll {
			s.Scroll = row
		} else if row >= s.Scroll+body {
			s.Scroll = row - body + 1
		}
	}
	s.clampScroll()
}
