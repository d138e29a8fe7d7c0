package render

import "github.com/kk-code-lab/quizmark/internal/answers"

// Toggle returns the change produced by activating c. Radio buttons select
// themselves, checkboxes flip. Text and select controls are not toggled.
func (c Control) Toggle() (answers.Change, bool) {
	switch c.Kind {
	case ControlRadio:
		if c.Checked {
			return answers.Change{}, false
		}
		return answers.Change{Question: c.Key.Question, Slot: c.Key.Slot, Value: c.Value}, true
	case ControlCheckbox:
		value := answers.Checked
		if c.Checked {
			value = ""
		}
		return answers.Change{Question: c.Key.Question, Slot: c.Key.Slot, Value: value}, true
	}
	return answers.Change{}, false
}

// Cycle moves a select by delta options, wrapping around. From no selection
// a forward step picks the first option and a backward step the last.
func (c Control) Cycle(delta int) (answers.Change, bool) {
	if c.Kind != ControlSelect || len(c.Options) == 0 || delta == 0 {
		return answers.Change{}, false
	}
	n := len(c.Options)
	pos := -1
	for i, id := range c.Options {
		if id == c.Value {
			pos = i
			break
		}
	}
	var next int
	switch {
	case pos < 0 && delta > 0:
		next = 0
	case pos < 0:
		next = n - 1
	default:
		next = ((pos+delta)%n + n) % n
	}
	return answers.Change{Question: c.Key.Question, Slot: c.Key.Slot, Value: c.Options[next]}, true
}

// Edit returns the change that replaces the text of a blank.
func (c Control) Edit(text string) (answers.Change, bool) {
	if c.Kind != ControlText || text == c.Value {
		return answers.Change{}, false
	}
	return answers.Change{Question: c.Key.Question, Slot: c.Key.Slot, Value: text}, true
}
