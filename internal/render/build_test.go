package render

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

func TestBuildSingleChoice(t *testing.T) {
	doc := markup.Parse("[!num] What is 2 + 2?\n[ ] 3\n[*] 4\n[ ] 5")
	state := answers.New().Apply(answers.Change{Question: "q1", Slot: answers.SlotChoice, Value: "2"})
	tree := Build(doc, state)

	if len(tree.Nodes) != 1 || tree.Nodes[0].Kind != NodeQuestion {
		t.Fatalf("expected one question node, got %+v", tree.Nodes)
	}
	node := tree.Nodes[0]
	if got := PlainLine(node.Lines[0]); got != "1. What is 2 + 2?" {
		t.Fatalf("unexpected prompt line %q", got)
	}
	if len(node.Groups) != 1 || node.Groups[0].Kind != GroupRadio {
		t.Fatalf("expected one radio group, got %+v", node.Groups)
	}
	var selected []bool
	for _, opt := range node.Groups[0].Options {
		selected = append(selected, opt.Selected)
	}
	if !reflect.DeepEqual(selected, []bool{false, true, false}) {
		t.Fatalf("unexpected selection %v", selected)
	}
	if len(tree.Controls) != 3 {
		t.Fatalf("expected 3 radio controls, got %d", len(tree.Controls))
	}
	for i, c := range tree.Controls {
		if c.Kind != ControlRadio || c.Key != (answers.Key{Question: "q1", Slot: answers.SlotChoice}) {
			t.Fatalf("control %d: unexpected %+v", i, c)
		}
	}
}

func TestBuildIsPure(t *testing.T) {
	doc := markup.Parse("Intro *text*\n\n[!num] Capital is [T*Paris]\n[*] a\n[ ] b\n[D] x\n[D*] y")
	state := answers.New().
		Apply(answers.Change{Question: "q1", Slot: "5", Value: "Par"}).
		Apply(answers.Change{Question: "q1", Slot: answers.SlotDropdown, Value: "4"})
	before := state.Map()

	first := Build(doc, state)
	second := Build(doc, state)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical trees from identical inputs")
	}
	if !reflect.DeepEqual(state.Map(), before) {
		t.Fatalf("Build must not modify the answer state")
	}
}

func TestBuildBlankIsInlineControl(t *testing.T) {
	doc := markup.Parse("[!num] The capital is [T*Paris] today")
	state := answers.New().Apply(answers.Change{Question: "q1", Slot: "1", Value: "Par"})
	tree := Build(doc, state)

	line := tree.Nodes[0].Lines[0]
	var blank *Segment
	for i := range line {
		if line[i].Control != NoControl {
			blank = &line[i]
		}
	}
	if blank == nil {
		t.Fatalf("expected a control segment in %+v", line)
	}
	if blank.Text != "Par" || blank.Style != StyleBlank {
		t.Fatalf("unexpected blank segment %+v", *blank)
	}
	c := tree.Controls[blank.Control]
	if c.Kind != ControlText || c.Key.Slot != "1" || c.Value != "Par" {
		t.Fatalf("unexpected blank control %+v", c)
	}
	if strings.Contains(PlainLine(line), "[T*") {
		t.Fatalf("token syntax leaked into rendered text: %q", PlainLine(line))
	}
}

func TestBuildEmptyBlankRendersNormally(t *testing.T) {
	tree := Build(markup.Parse("[!num] Say anything [T*]"), answers.New())
	if len(tree.Controls) != 1 || tree.Controls[0].Kind != ControlText {
		t.Fatalf("expected one text control, got %+v", tree.Controls)
	}
}

func TestBuildMixedControlOrder(t *testing.T) {
	doc := markup.Parse("[!num] Fill [T*cat]\n[*] a\n[ ] b\n[D] x\n[D*] y")
	tree := Build(doc, answers.New())

	var kinds []ControlKind
	for _, c := range tree.Controls {
		kinds = append(kinds, c.Kind)
	}
	want := []ControlKind{ControlText, ControlRadio, ControlRadio, ControlSelect}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("unexpected control order %v", kinds)
	}
	groups := tree.Nodes[0].Groups
	if len(groups) != 2 || groups[0].Kind != GroupRadio || groups[1].Kind != GroupSelect {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if tree.Controls[0].Key.Slot != "5" {
		t.Fatalf("expected blank slot to follow option items, got %q", tree.Controls[0].Key.Slot)
	}
	if tree.Nodes[0].QuestionKind != markup.KindMixed {
		t.Fatalf("expected mixed kind, got %s", tree.Nodes[0].QuestionKind)
	}
}

func TestBuildCheckboxGroup(t *testing.T) {
	doc := markup.Parse("[!num] Pick two\n[*] a\n[*] b\n[ ] c")
	state := answers.New().Apply(answers.Change{Question: "q1", Slot: "1", Value: answers.Checked})
	tree := Build(doc, state)

	g := tree.Nodes[0].Groups[0]
	if g.Kind != GroupCheckbox {
		t.Fatalf("expected checkbox group, got %s", g.Kind)
	}
	first := tree.Controls[g.Options[0].Control]
	if !first.Checked || first.Key.Slot != "1" {
		t.Fatalf("unexpected first checkbox %+v", first)
	}
	change, ok := first.Toggle()
	if !ok || change.Value != "" {
		t.Fatalf("expected toggle to clear, got %+v", change)
	}
	change, ok = tree.Controls[g.Options[2].Control].Toggle()
	if !ok || change.Slot != "3" || change.Value != answers.Checked {
		t.Fatalf("expected toggle to check, got %+v", change)
	}
}

func TestBuildSelectCycle(t *testing.T) {
	doc := markup.Parse("[!num] Pick\n[D] x\n[D*] y\n[D] z")
	tree := Build(doc, answers.New())
	c := tree.Controls[0]
	if c.Kind != ControlSelect || !reflect.DeepEqual(c.Options, []string{"1", "2", "3"}) {
		t.Fatalf("unexpected select %+v", c)
	}

	tests := []struct {
		value string
		delta int
		want  string
	}{
		{"", 1, "1"},
		{"", -1, "3"},
		{"1", 1, "2"},
		{"3", 1, "1"},
		{"1", -1, "3"},
	}
	for _, tt := range tests {
		c.Value = tt.value
		change, ok := c.Cycle(tt.delta)
		if !ok || change.Value != tt.want || change.Slot != answers.SlotDropdown {
			t.Fatalf("Cycle(%d) from %q = %+v, want %q", tt.delta, tt.value, change, tt.want)
		}
	}
}

func TestBuildStaleSelectionIsIgnored(t *testing.T) {
	doc := markup.Parse("[!num] Pick\n[D] x\n[D*] y")
	state := answers.New().Apply(answers.Change{Question: "q1", Slot: answers.SlotDropdown, Value: "9"})
	tree := Build(doc, state)
	if tree.Controls[0].Value != "" {
		t.Fatalf("expected unknown option id to render as unselected")
	}
}

func TestBuildMarkers(t *testing.T) {
	tree := Build(markup.Parse("Read carefully [!] spelling counts\nAnd [?] maybe"), answers.New())
	var styles []Style
	for _, line := range tree.Nodes[0].Lines {
		for _, seg := range line {
			if seg.Style == StyleWarning || seg.Style == StyleUncertain {
				styles = append(styles, seg.Style)
				if !strings.HasPrefix(seg.Text, warningIcon) && !strings.HasPrefix(seg.Text, uncertainIcon) {
					t.Fatalf("expected icon prefix, got %q", seg.Text)
				}
			}
		}
	}
	if !reflect.DeepEqual(styles, []Style{StyleWarning, StyleUncertain}) {
		t.Fatalf("unexpected marker styles %v", styles)
	}
}

func TestBuildWithoutQuestions(t *testing.T) {
	tree := Build(markup.Parse("Intro\n---\nOutro"), answers.New())
	var kinds []NodeKind
	for _, n := range tree.Nodes {
		kinds = append(kinds, n.Kind)
	}
	if !reflect.DeepEqual(kinds, []NodeKind{NodeText, NodeDivider, NodeText}) {
		t.Fatalf("unexpected node kinds %v", kinds)
	}
	if len(tree.Controls) != 0 || tree.Questions() != 0 {
		t.Fatalf("expected no controls")
	}
}

func TestFindControl(t *testing.T) {
	tree := Build(markup.Parse("[!num] Q\n[ ] a\n[*] b\n[!num] Fill [T*x]"), answers.New())
	if got := tree.FindControl(answers.Key{Question: "q1", Slot: answers.SlotChoice}, "2"); got != 1 {
		t.Fatalf("expected second radio, got %d", got)
	}
	if got := tree.FindControl(answers.Key{Question: "q2", Slot: "1"}, "typed"); got != 2 {
		t.Fatalf("expected blank control, got %d", got)
	}
	if got := tree.FindControl(answers.Key{Question: "q9", Slot: "1"}, ""); got != NoControl {
		t.Fatalf("expected no control, got %d", got)
	}
}

func TestTreeMarshalJSON(t *testing.T) {
	tree := Build(markup.Parse("[!num] Capital [T*Paris]"), answers.New())
	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"kind":"question"`, `"style":"blank"`, `"question_kind":"fill-blank"`, `"question":"q1"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in %s", want, data)
		}
	}
}
