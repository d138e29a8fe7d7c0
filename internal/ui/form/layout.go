package form

import (
	"strings"

	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/textutil"
)

const (
	minFieldWidth = 8
	optionIndent  = "   "
)

type SpanRole int

const (
	RoleText SpanRole = iota
	// RoleGlyph is control chrome such as "( )" or the brackets of a blank.
	RoleGlyph
	// RoleField is the editable text of a blank.
	RoleField
	// RoleOption is one entry of a select.
	RoleOption
)

// Span is a styled run of one screen row.
type Span struct {
	Text     string
	Style    render.Style
	Control  int
	Role     SpanRole
	Selected bool
}

type Row []Span

func (r Row) Width() int {
	w := 0
	for _, sp := range r {
		w += textutil.DisplayWidth(sp.Text)
	}
	return w
}

func (r Row) Text() string {
	var b strings.Builder
	for _, sp := range r {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Layout wraps the tree to width columns. controlRows maps each control to
// the first row it appears on.
func Layout(tree render.Tree, width int) (rows []Row, controlRows []int) {
	controlRows = make([]int, len(tree.Controls))
	for i := range controlRows {
		controlRows[i] = -1
	}
	if width <= 0 {
		width = 1
	}

	for idx, node := range tree.Nodes {
		if idx > 0 {
			rows = append(rows, nil)
		}
		switch node.Kind {
		case render.NodeDivider:
			rows = append(rows, Row{{Text: strings.Repeat("─", width), Style: render.StyleRule, Control: render.NoControl}})
			continue
		case render.NodeQuestion:
			indent := 0
			if len(node.Lines) > 0 && len(node.Lines[0]) > 0 && node.Lines[0][0].Style == render.StyleNumber {
				indent = textutil.DisplayWidth(node.Lines[0][0].Text)
			}
			for _, line := range node.Lines {
				rows = append(rows, wrapSpans(lineSpans(line), width, indent)...)
			}
			for _, g := range node.Groups {
				rows = append(rows, groupRows(tree, g, width)...)
			}
		default:
			for _, line := range node.Lines {
				rows = append(rows, wrapSpans(lineSpans(line), width, 0)...)
			}
		}
	}

	for rowIdx, row := range rows {
		for _, sp := range row {
			if sp.Control >= 0 && sp.Control < len(controlRows) && controlRows[sp.Control] < 0 {
				controlRows[sp.Control] = rowIdx
			}
		}
	}
	return rows, controlRows
}

func lineSpans(line []render.Segment) []Span {
	spans := make([]Span, 0, len(line))
	for _, seg := range line {
		if seg.Control != render.NoControl {
			spans = append(spans,
				Span{Text: "[", Style: render.StyleBlank, Control: seg.Control, Role: RoleGlyph},
				Span{Text: FieldText(seg.Text), Style: render.StyleBlank, Control: seg.Control, Role: RoleField},
				Span{Text: "]", Style: render.StyleBlank, Control: seg.Control, Role: RoleGlyph},
			)
			continue
		}
		spans = append(spans, Span{Text: cleanText(seg.Text), Style: seg.Style, Control: render.NoControl})
	}
	return spans
}

// FieldText pads a blank's value with underscores to a minimum width.
func FieldText(value string) string {
	value = cleanText(value)
	if w := textutil.DisplayWidth(value); w < minFieldWidth {
		return value + strings.Repeat("_", minFieldWidth-w)
	}
	return value
}

func cleanText(text string) string {
	return textutil.SanitizeTerminalText(textutil.ExpandTabs(text, textutil.DefaultTabWidth))
}

func groupRows(tree render.Tree, g render.Group, width int) []Row {
	if g.Kind == render.GroupSelect {
		spans := []Span{{Text: optionIndent + "{ ", Style: render.StylePlain, Control: render.NoControl, Role: RoleGlyph}}
		for i, opt := range g.Options {
			if i > 0 {
				spans = append(spans, Span{Text: " | ", Style: render.StylePlain, Control: opt.Control, Role: RoleGlyph})
			}
			for _, seg := range opt.Text {
				spans = append(spans, Span{Text: cleanText(seg.Text), Style: seg.Style, Control: opt.Control, Role: RoleOption, Selected: opt.Selected})
			}
		}
		spans = append(spans, Span{Text: " }", Style: render.StylePlain, Control: render.NoControl, Role: RoleGlyph})
		return wrapSpans(spans, width, len(optionIndent)+2)
	}

	var rows []Row
	for _, opt := range g.Options {
		box := "( ) "
		switch {
		case g.Kind == render.GroupCheckbox && opt.Selected:
			box = "[x] "
		case g.Kind == render.GroupCheckbox:
			box = "[ ] "
		case opt.Selected:
			box = "(•) "
		}
		spans := []Span{
			{Text: optionIndent, Style: render.StylePlain, Control: render.NoControl},
			{Text: box, Style: render.StylePlain, Control: opt.Control, Role: RoleGlyph, Selected: opt.Selected},
		}
		for _, seg := range opt.Text {
			spans = append(spans, Span{Text: cleanText(seg.Text), Style: seg.Style, Control: opt.Control, Selected: opt.Selected})
		}
		rows = append(rows, wrapSpans(spans, width, len(optionIndent)+textutil.DisplayWidth(box))...)
	}
	return rows
}

// wrapSpans breaks spans into rows of at most width columns. Text spans
// break between words; blank fields are never split. Continuation rows are
// indented by indent columns.
func wrapSpans(spans []Span, width, indent int) []Row {
	if indent >= width {
		indent = 0
	}
	var rows []Row
	var current Row
	used := 0

	newRow := func() {
		if n := len(current); n > 0 && current[n-1].Role == RoleText {
			current[n-1].Text = strings.TrimRight(current[n-1].Text, " ")
		}
		rows = append(rows, current)
		current = nil
		used = 0
		if indent > 0 {
			current = append(current, Span{Text: strings.Repeat(" ", indent), Style: render.StylePlain, Control: render.NoControl})
			used = indent
		}
	}

	for _, sp := range spans {
		if sp.Role == RoleField || sp.Role == RoleGlyph {
			w := textutil.DisplayWidth(sp.Text)
			if used > indent && used+w > width {
				newRow()
			}
			current = append(current, sp)
			used += w
			continue
		}
		for _, word := range strings.SplitAfter(sp.Text, " ") {
			if word == "" {
				continue
			}
			w := textutil.DisplayWidth(strings.TrimRight(word, " "))
			if used > indent && used+w > width {
				newRow()
				word = strings.TrimLeft(word, " ")
				if word == "" {
					continue
				}
			}
			piece := sp
			piece.Text = word
			current = append(current, piece)
			used += textutil.DisplayWidth(word)
		}
	}
	if len(current) > 0 || len(rows) == 0 {
		rows = append(rows, current)
	}
	return mergeRows(rows)
}

// mergeRows joins adjacent word pieces that share the same attributes.
func mergeRows(rows []Row) []Row {
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		merged := Row{row[0]}
		for _, sp := range row[1:] {
			last := &merged[len(merged)-1]
			if last.Style == sp.Style && last.Control == sp.Control && last.Role == sp.Role && last.Selected == sp.Selected && sp.Role != RoleField {
				last.Text += sp.Text
				continue
			}
			merged = append(merged, sp)
		}
		rows[i] = merged
	}
	return rows
}
