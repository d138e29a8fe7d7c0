package grade

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

func change(q, slot, value string) answers.Change {
	return answers.Change{Question: q, Slot: slot, Value: value}
}

func TestGradeSingleChoice(t *testing.T) {
	doc := markup.Parse("[!num] What is 2 + 2?\n[ ] 3\n[*] 4\n[ ] 5")
	tests := []struct {
		name    string
		state   answers.State
		score   int
		correct bool
	}{
		{"correct", answers.New().Apply(change("q1", answers.SlotChoice, "2")), 1, true},
		{"wrong", answers.New().Apply(change("q1", answers.SlotChoice, "3")), 0, false},
		{"unanswered", answers.New(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Grade(doc, tt.state, Policy{})
			if report.Max != 1 || report.Score != tt.score {
				t.Fatalf("expected %d/1, got %d/%d", tt.score, report.Score, report.Max)
			}
			if got := report.Results[0].Units[0].Correct; got != tt.correct {
				t.Fatalf("expected correct=%v, got %v", tt.correct, got)
			}
		})
	}
}

func TestGradeSingleChoiceWithoutKeyIsUngradable(t *testing.T) {
	doc := markup.Parse("[!num] Opinion?\n[ ] yes\n[ ] no")
	report := Grade(doc, answers.New().Apply(change("q1", answers.SlotChoice, "1")), Policy{})
	if report.Max != 0 || report.Score != 0 {
		t.Fatalf("expected ungradable question, got %d/%d", report.Score, report.Max)
	}
	u := report.Results[0].Units[0]
	if u.Gradable || !u.Answered() {
		t.Fatalf("unexpected unit %+v", u)
	}
}

func TestGradeMultiChoiceAllOrNothing(t *testing.T) {
	doc := markup.Parse("[!num] Pick the fruits\n[*] apple\n[ ] stone\n[*] pear")
	exact := answers.New().
		Apply(change("q1", "1", answers.Checked)).
		Apply(change("q1", "3", answers.Checked))
	partial := answers.New().Apply(change("q1", "1", answers.Checked))
	extra := exact.Apply(change("q1", "2", answers.Checked))

	if r := Grade(doc, exact, Policy{}); r.Score != 1 {
		t.Fatalf("expected exact selection to score, got %d", r.Score)
	}
	if r := Grade(doc, partial, Policy{}); r.Score != 0 {
		t.Fatalf("expected partial selection to fail")
	}
	r := Grade(doc, extra, Policy{})
	if r.Score != 0 {
		t.Fatalf("expected extra selection to fail")
	}
	u := r.Results[0].Units[0]
	if !reflect.DeepEqual(u.Given, []string{"apple", "stone", "pear"}) {
		t.Fatalf("unexpected given %v", u.Given)
	}
	if !reflect.DeepEqual(u.Expected, []string{"apple", "pear"}) {
		t.Fatalf("unexpected expected %v", u.Expected)
	}
}

func TestGradeDropdownAcceptsAnyMarked(t *testing.T) {
	doc := markup.Parse("[!num] Language of the web\n[D] Python\n[D*] JavaScript\n[D*] TypeScript")
	r := Grade(doc, answers.New().Apply(change("q1", answers.SlotDropdown, "3")), Policy{})
	if r.Score != 1 || r.Max != 1 {
		t.Fatalf("expected 1/1, got %d/%d", r.Score, r.Max)
	}
}

func TestGradeBlanks(t *testing.T) {
	doc := markup.Parse("[!num] The capital is [T*Paris] and the river is [T*Seine]. Empty [T*]")
	state := answers.New().
		Apply(change("q1", "1", "  paris ")).
		Apply(change("q1", "2", "Rhine")).
		Apply(change("q1", "3", "anything"))
	r := Grade(doc, state, Policy{})
	if r.Max != 3 || r.Score != 1 {
		t.Fatalf("expected 1/3, got %d/%d", r.Score, r.Max)
	}
	if !r.Results[0].Units[0].Correct {
		t.Fatalf("expected case-insensitive match")
	}
	if r.Results[0].Units[2].Correct {
		t.Fatalf("expected empty blank to be always wrong")
	}

	strict := Grade(doc, state, Policy{CaseSensitive: true})
	if strict.Score != 0 {
		t.Fatalf("expected case-sensitive policy to reject 'paris'")
	}
}

func TestGradeMixedQuestionUnits(t *testing.T) {
	doc := markup.Parse("[!num] Fill [T*cat] then choose\n[*] a\n[ ] b\n[D] x\n[D*] y")
	state := answers.New().
		Apply(change("q1", answers.SlotChoice, "1")).
		Apply(change("q1", answers.SlotDropdown, "3")).
		Apply(change("q1", "5", "CAT"))
	r := Grade(doc, state, Policy{})
	res := r.Results[0]
	if res.Kind != markup.KindMixed {
		t.Fatalf("expected mixed kind, got %s", res.Kind)
	}
	var kinds []UnitKind
	for _, u := range res.Units {
		kinds = append(kinds, u.Kind)
	}
	if !reflect.DeepEqual(kinds, []UnitKind{UnitChoice, UnitDropdown, UnitBlank}) {
		t.Fatalf("unexpected unit order %v", kinds)
	}
	if res.Score != 2 || res.Max != 3 {
		t.Fatalf("expected 2/3, got %d/%d", res.Score, res.Max)
	}
	if r.Answered != 3 || r.Units != 3 {
		t.Fatalf("expected 3 answered of 3, got %d of %d", r.Answered, r.Units)
	}
}

func TestGradeDocumentWithoutQuestions(t *testing.T) {
	r := Grade(markup.Parse("Just prose.\n---\nMore prose."), answers.New(), Policy{})
	if len(r.Results) != 0 || r.Max != 0 || r.Percent() != 0 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  New   York ", "new york"},
		{"STRASSE", "strasse"},
		{"straße", "strasse"},
		{"Café", "café"},
	}
	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in, Policy{}); got != tt.want {
			t.Fatalf("NormalizeAnswer(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestResultCorrectAndGradable(t *testing.T) {
	doc := markup.Parse("[!num] 2+2\n[ ] 3\n[*] 4\n---\n[!num] Opinion\n[ ] a\n[ ] b")
	r := Grade(doc, answers.New().Apply(change("q1", answers.SlotChoice, "2")), Policy{})
	if !r.Results[0].Gradable() || !r.Results[0].Correct() {
		t.Fatalf("expected q1 gradable and correct: %+v", r.Results[0])
	}
	if r.Results[1].Gradable() || r.Results[1].Correct() {
		t.Fatalf("expected q2 ungradable: %+v", r.Results[1])
	}
}

func TestResultJSONCarriesFlags(t *testing.T) {
	doc := markup.Parse("[!num] 2+2\n[ ] 3\n[*] 4\n---\n[!num] Opinion\n[ ] a\n[ ] b")
	r := Grade(doc, answers.New().Apply(change("q1", answers.SlotChoice, "2")), Policy{})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Results []struct {
			QuestionID string `json:"question_id"`
			Score      int    `json:"score"`
			Gradable   bool   `json:"gradable"`
			Correct    bool   `json:"correct"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := decoded.Results
	if len(got) != 2 || got[0].QuestionID != "q1" || got[0].Score != 1 {
		t.Fatalf("unexpected results %s", data)
	}
	if !got[0].Gradable || !got[0].Correct {
		t.Fatalf("expected q1 gradable and correct: %s", data)
	}
	if got[1].Gradable || got[1].Correct {
		t.Fatalf("expected q2 ungradable: %s", data)
	}
}
