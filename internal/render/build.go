package render

import (
	"strconv"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

const (
	warningIcon   = "⚠ "
	uncertainIcon = "? "
)

// Build renders doc with the answers in state. It has no side effects:
// the same inputs always produce an equal Tree.
func Build(doc markup.Document, state answers.State) Tree {
	b := &treeBuilder{state: state, tree: Tree{DocumentID: doc.ID}}
	for _, block := range doc.Blocks {
		switch blk := block.(type) {
		case markup.Paragraph:
			b.tree.Nodes = append(b.tree.Nodes, Node{
				Kind:  NodeText,
				Lines: b.inlineLines(blk.Text, blk.Items, nil),
			})
		case markup.Separator:
			b.tree.Nodes = append(b.tree.Nodes, Node{
				Kind:  NodeDivider,
				Lines: [][]Segment{{textSegment("─", StyleRule)}},
			})
		case markup.Question:
			b.question(blk)
		}
	}
	return b.tree
}

type treeBuilder struct {
	state answers.State
	tree  Tree
}

func (b *treeBuilder) nodeIndex() int {
	return len(b.tree.Nodes)
}

func (b *treeBuilder) addControl(c Control) int {
	c.Node = b.nodeIndex()
	b.tree.Controls = append(b.tree.Controls, c)
	return len(b.tree.Controls) - 1
}

func (b *treeBuilder) question(q markup.Question) {
	node := Node{
		Kind:         NodeQuestion,
		QuestionID:   q.ID,
		Number:       q.Number,
		QuestionKind: q.Kind,
	}

	// Controls must follow document order: inline blanks of the prompt come
	// before the option groups below it.
	lines := b.inlineLines(q.Prompt, q.Items, &q)
	number := textSegment(strconv.Itoa(q.Number)+". ", StyleNumber)
	if len(lines) == 0 {
		lines = [][]Segment{{number}}
	} else {
		lines[0] = append([]Segment{number}, lines[0]...)
	}
	node.Lines = lines

	choiceGroup, selectGroup := -1, -1
	for idx, item := range q.Items {
		switch it := item.(type) {
		case markup.ChoiceOption:
			if choiceGroup < 0 {
				kind := GroupRadio
				if q.ChoiceMode() == markup.KindMultiChoice {
					kind = GroupCheckbox
				}
				choiceGroup = len(node.Groups)
				node.Groups = append(node.Groups, Group{Kind: kind})
			}
			g := &node.Groups[choiceGroup]
			g.Options = append(g.Options, b.choiceOption(q, idx, it, g.Kind))
		case markup.DropdownOption:
			if selectGroup < 0 {
				selectGroup = len(node.Groups)
				node.Groups = append(node.Groups, Group{Kind: GroupSelect})
			}
			g := &node.Groups[selectGroup]
			g.Options = append(g.Options, Option{
				ID:       markup.ItemID(idx),
				Text:     optionSegments(it.Text),
				Selected: b.state.Value(q.ID, answers.SlotDropdown) == markup.ItemID(idx),
				Control:  NoControl,
			})
		}
	}
	if selectGroup >= 0 {
		b.bindSelect(q, &node.Groups[selectGroup])
	}
	b.tree.Nodes = append(b.tree.Nodes, node)
}

func (b *treeBuilder) choiceOption(q markup.Question, idx int, opt markup.ChoiceOption, kind GroupKind) Option {
	id := markup.ItemID(idx)
	o := Option{ID: id, Text: optionSegments(opt.Text)}
	c := Control{}
	if kind == GroupCheckbox {
		o.Selected = b.state.Value(q.ID, id) == answers.Checked
		c = Control{Kind: ControlCheckbox, Key: answers.Key{Question: q.ID, Slot: id}, Value: answers.Checked}
	} else {
		o.Selected = b.state.Value(q.ID, answers.SlotChoice) == id
		c = Control{Kind: ControlRadio, Key: answers.Key{Question: q.ID, Slot: answers.SlotChoice}, Value: id}
	}
	c.Checked = o.Selected
	o.Control = b.addControl(c)
	return o
}

func (b *treeBuilder) bindSelect(q markup.Question, g *Group) {
	c := Control{
		Kind:  ControlSelect,
		Key:   answers.Key{Question: q.ID, Slot: answers.SlotDropdown},
		Value: b.state.Value(q.ID, answers.SlotDropdown),
	}
	for _, opt := range g.Options {
		c.Options = append(c.Options, opt.ID)
	}
	if c.Value != "" && !containsID(c.Options, c.Value) {
		c.Value = ""
	}
	idx := b.addControl(c)
	for i := range g.Options {
		g.Options[i].Control = idx
	}
}

// inlineLines converts prose into lines of segments. q is nil for
// paragraphs, whose items can only be markers.
func (b *treeBuilder) inlineLines(inlines []markup.Inline, items []markup.Item, q *markup.Question) [][]Segment {
	var lines [][]Segment
	var current []Segment

	var walk func(inlines []markup.Inline, style Style)
	walk = func(inlines []markup.Inline, style Style) {
		for _, inline := range inlines {
			switch inline.Type {
			case markup.InlineLineBreak:
				if current == nil {
					current = []Segment{}
				}
				lines = append(lines, current)
				current = nil
			case markup.InlineItemRef:
				current = append(current, b.itemSegments(inline.Item, items, q)...)
			case markup.InlineText:
				current = append(current, textSegment(inline.Literal, style))
			case markup.InlineCode:
				current = append(current, textSegment(inline.Literal, StyleCode))
			case markup.InlineEmphasis:
				walk(inline.Children, StyleEmphasis)
			case markup.InlineStrong:
				walk(inline.Children, StyleStrong)
			case markup.InlineStrike:
				walk(inline.Children, StyleStrike)
			}
		}
	}
	walk(inlines, StylePlain)
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func (b *treeBuilder) itemSegments(idx int, items []markup.Item, q *markup.Question) []Segment {
	if idx < 0 || idx >= len(items) {
		return nil
	}
	switch it := items[idx].(type) {
	case markup.InlineMarker:
		style, icon := StyleWarning, warningIcon
		if it.Kind == markup.MarkerUncertain {
			style, icon = StyleUncertain, uncertainIcon
		}
		return []Segment{textSegment(icon+it.Text, style)}
	case markup.BlankToken:
		if q == nil {
			return nil
		}
		slot := markup.ItemID(idx)
		value := b.state.Value(q.ID, slot)
		control := b.addControl(Control{
			Kind:  ControlText,
			Key:   answers.Key{Question: q.ID, Slot: slot},
			Value: value,
		})
		return []Segment{{Text: value, Style: StyleBlank, Control: control}}
	}
	return nil
}

func optionSegments(text string) []Segment {
	return inlineSegments(markup.ParseInlineText(text), StylePlain)
}

func inlineSegments(inlines []markup.Inline, defaultStyle Style) []Segment {
	var segments []Segment
	for _, inline := range inlines {
		switch inline.Type {
		case markup.InlineText:
			segments = append(segments, textSegment(inline.Literal, defaultStyle))
		case markup.InlineEmphasis:
			segments = append(segments, inlineSegments(inline.Children, StyleEmphasis)...)
		case markup.InlineStrong:
			segments = append(segments, inlineSegments(inline.Children, StyleStrong)...)
		case markup.InlineStrike:
			segments = append(segments, inlineSegments(inline.Children, StyleStrike)...)
		case markup.InlineCode:
			segments = append(segments, textSegment(inline.Literal, StyleCode))
		case markup.InlineLineBreak:
			segments = append(segments, textSegment(" ", defaultStyle))
		}
	}
	return segments
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// PlainLine joins the text of a line of segments.
func PlainLine(line []Segment) string {
	total := 0
	for _, seg := range line {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range line {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}
