package form

// Action is a request to change form UI state.
type Action interface{}

// ===== FOCUS ACTIONS =====

// FocusMoveAction moves focus by Delta controls. Tab order wraps, arrow
// keys stop at the ends.
type FocusMoveAction struct {
	Delta int
	Wrap  bool
}

// FocusAction focuses one control, as a mouse click does.
type FocusAction struct {
	Control int
}

// ===== CONTROL ACTIONS =====

type ActivateAction struct{}

// StepAction cycles a focused select or moves the cursor in a focused blank.
type StepAction struct {
	Delta int
}

type InsertRuneAction struct {
	Char rune
}

type BackspaceAction struct{}
type DeleteAction struct{}
type ClearFieldAction struct{}

// ===== SCROLL ACTIONS =====

type ScrollAction struct {
	Lines int
}

type PageAction struct {
	Delta int
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type QuitAction struct{}

// ===== APP ACTIONS =====
// Handled by the owner of the form, not by Reducer.

// ReloadAction re-reads the source document.
type ReloadAction struct{}

// SuspendAction returns the terminal to the shell (Ctrl-Z).
type SuspendAction struct{}
