// Package render turns a parsed document and the current answers into a
// toolkit-independent form tree. Terminal, static and HTTP front ends all
// walk the same Tree and report edits through an OnChange callback.
package render

import (
	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

// NoControl marks a segment or option that is not bound to a control.
const NoControl = -1

// OnChange receives every answer edit made through a rendered form.
type OnChange func(answers.Change)

type Style int

const (
	StylePlain Style = iota
	StyleEmphasis
	StyleStrong
	StyleStrike
	StyleCode
	StyleNumber
	StyleBlank
	StyleWarning
	StyleUncertain
	StyleRule
)

var styleNames = [...]string{
	StylePlain:     "plain",
	StyleEmphasis:  "emphasis",
	StyleStrong:    "strong",
	StyleStrike:    "strike",
	StyleCode:      "code",
	StyleNumber:    "number",
	StyleBlank:     "blank",
	StyleWarning:   "warning",
	StyleUncertain: "uncertain",
	StyleRule:      "rule",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "plain"
	}
	return styleNames[s]
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Segment is a chunk of text with a style. A segment whose Control is not
// NoControl is an inline control (a blank) and Text is its current value.
type Segment struct {
	Text    string `json:"text"`
	Style   Style  `json:"style"`
	Control int    `json:"control"`
}

func textSegment(text string, style Style) Segment {
	return Segment{Text: text, Style: style, Control: NoControl}
}

type NodeKind int

const (
	NodeText NodeKind = iota
	NodeDivider
	NodeQuestion
)

func (k NodeKind) MarshalText() ([]byte, error) {
	switch k {
	case NodeDivider:
		return []byte("divider"), nil
	case NodeQuestion:
		return []byte("question"), nil
	default:
		return []byte("text"), nil
	}
}

// Node is one top-level block of the form.
type Node struct {
	Kind         NodeKind    `json:"kind"`
	QuestionID   string      `json:"question_id,omitempty"`
	Number       int         `json:"number,omitempty"`
	QuestionKind markup.Kind `json:"question_kind,omitempty"`
	Lines        [][]Segment `json:"lines"`
	Groups       []Group     `json:"groups,omitempty"`
}

type GroupKind int

const (
	GroupRadio GroupKind = iota
	GroupCheckbox
	GroupSelect
)

func (k GroupKind) String() string {
	switch k {
	case GroupCheckbox:
		return "checkbox"
	case GroupSelect:
		return "select"
	default:
		return "radio"
	}
}

func (k GroupKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Group is the option list of a question: its choice options as radio
// buttons or checkboxes, or its dropdown options as one select.
type Group struct {
	Kind    GroupKind `json:"kind"`
	Options []Option  `json:"options"`
}

// Option is one entry of a group. For select groups every option shares
// the group's single control.
type Option struct {
	ID       string    `json:"id"`
	Text     []Segment `json:"text"`
	Selected bool      `json:"selected"`
	Control  int       `json:"control"`
}

type ControlKind int

const (
	ControlText ControlKind = iota
	ControlRadio
	ControlCheckbox
	ControlSelect
)

func (k ControlKind) String() string {
	switch k {
	case ControlRadio:
		return "radio"
	case ControlCheckbox:
		return "checkbox"
	case ControlSelect:
		return "select"
	default:
		return "text"
	}
}

func (k ControlKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Control is one focusable input. Value is the answer the control shows:
// the typed text of a blank, the option id a radio button selects, or the
// selected option id of a select. Node indexes Tree.Nodes.
type Control struct {
	Kind    ControlKind `json:"kind"`
	Key     answers.Key `json:"key"`
	Value   string      `json:"value"`
	Checked bool        `json:"checked"`
	Options []string    `json:"options,omitempty"`
	Node    int         `json:"node"`
}

// Tree is the rendered form. Controls lists every control in document
// order, which is also the focus order.
type Tree struct {
	DocumentID string    `json:"document_id"`
	Nodes      []Node    `json:"nodes"`
	Controls   []Control `json:"controls"`
}

// Questions counts the question nodes of t.
func (t Tree) Questions() int {
	n := 0
	for _, node := range t.Nodes {
		if node.Kind == NodeQuestion {
			n++
		}
	}
	return n
}

// FindControl returns the index of the control addressing key and value,
// or NoControl. Radio buttons share a key and are told apart by value.
func (t Tree) FindControl(key answers.Key, value string) int {
	fallback := NoControl
	for i, c := range t.Controls {
		if c.Key != key {
			continue
		}
		if c.Kind != ControlRadio || c.Value == value {
			return i
		}
		if fallback == NoControl {
			fallback = i
		}
	}
	return fallback
}
