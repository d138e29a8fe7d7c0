// Package grade scores an answer state against a parsed document.
//
// Markup accepts states that have no single obvious score (a single-choice
// group with nothing marked, a dropdown with several marked options, choice
// and dropdown groups under one question). The rules applied here are:
//
//   - every choice group, dropdown group and blank is one scoring unit;
//     mixed questions are the sum of their units
//   - a choice group with one marked option is exclusive; with more than one
//     it is a checkbox group scored all-or-nothing against the marked set
//   - a choice group with no marked option cannot be scored and does not
//     count toward Max
//   - a dropdown is correct when the selected option is any marked option;
//     with none marked it cannot be scored
//   - a blank with an empty expected answer is always wrong
package grade

import (
	"encoding/json"

	"github.com/kk-code-lab/quizmark/internal/answers"
	"github.com/kk-code-lab/quizmark/internal/markup"
)

type UnitKind int

const (
	UnitChoice UnitKind = iota
	UnitMultiChoice
	UnitDropdown
	UnitBlank
)

func (k UnitKind) String() string {
	switch k {
	case UnitChoice:
		return "choice"
	case UnitMultiChoice:
		return "multi-choice"
	case UnitDropdown:
		return "dropdown"
	default:
		return "blank"
	}
}

func (k UnitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Policy tunes answer comparison for blanks.
type Policy struct {
	CaseSensitive bool
}

// UnitResult is the outcome of one scoring unit. Given and Expected hold
// display text, not item ids.
type UnitResult struct {
	Kind     UnitKind `json:"kind"`
	Slot     string   `json:"slot"`
	Given    []string `json:"given"`
	Expected []string `json:"expected"`
	Correct  bool     `json:"correct"`
	Gradable bool     `json:"gradable"`
}

func (u UnitResult) Answered() bool {
	return len(u.Given) > 0
}

type Result struct {
	QuestionID string       `json:"question_id"`
	Number     int          `json:"number,omitempty"`
	Kind       markup.Kind  `json:"kind"`
	Units      []UnitResult `json:"units"`
	Score      int          `json:"score"`
	Max        int          `json:"max"`
}

// Gradable reports whether any unit of the question can be scored.
func (r Result) Gradable() bool {
	return r.Max > 0
}

// Correct reports whether every gradable unit was answered correctly.
func (r Result) Correct() bool {
	return r.Gradable() && r.Score == r.Max
}

// MarshalJSON adds the derived gradable and correct flags.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		Gradable bool `json:"gradable"`
		Correct  bool `json:"correct"`
	}{plain(r), r.Gradable(), r.Correct()})
}

type Report struct {
	DocumentID string   `json:"document_id"`
	Results    []Result `json:"results"`
	Score      int      `json:"score"`
	Max        int      `json:"max"`
	Answered   int      `json:"answered"`
	Units      int      `json:"units"`
}

// Percent returns the score as a percentage of Max, or 0 when nothing was
// gradable.
func (r Report) Percent() float64 {
	if r.Max == 0 {
		return 0
	}
	return float64(r.Score) * 100 / float64(r.Max)
}

func Grade(doc markup.Document, state answers.State, policy Policy) Report {
	report := Report{DocumentID: doc.ID}
	for _, q := range doc.Questions() {
		res := gradeQuestion(q, state, policy)
		report.Results = append(report.Results, res)
		report.Score += res.Score
		report.Max += res.Max
		for _, u := range res.Units {
			report.Units++
			if u.Answered() {
				report.Answered++
			}
		}
	}
	return report
}

func gradeQuestion(q markup.Question, state answers.State, policy Policy) Result {
	res := Result{QuestionID: q.ID, Number: q.Number, Kind: q.Kind}
	counts := markup.CountItems(q.Items)
	if counts.Choices > 0 {
		if q.ChoiceMode() == markup.KindMultiChoice {
			res.Units = append(res.Units, gradeMultiChoice(q, state))
		} else {
			res.Units = append(res.Units, gradeExclusive(q, state, markup.ItemChoice, answers.SlotChoice))
		}
	}
	if counts.Dropdowns > 0 {
		res.Units = append(res.Units, gradeExclusive(q, state, markup.ItemDropdown, answers.SlotDropdown))
	}
	for idx, item := range q.Items {
		if blank, ok := item.(markup.BlankToken); ok {
			res.Units = append(res.Units, gradeBlank(q, idx, blank, state, policy))
		}
	}
	for _, u := range res.Units {
		if !u.Gradable {
			continue
		}
		res.Max++
		if u.Correct {
			res.Score++
		}
	}
	return res
}

func gradeExclusive(q markup.Question, state answers.State, typ markup.ItemType, slot string) UnitResult {
	u := UnitResult{Kind: UnitChoice, Slot: slot}
	if typ == markup.ItemDropdown {
		u.Kind = UnitDropdown
	}
	selected := state.Value(q.ID, slot)
	for idx, item := range q.Items {
		if item.ItemType() != typ {
			continue
		}
		text, correct := optionText(item)
		if correct {
			u.Expected = append(u.Expected, text)
		}
		if markup.ItemID(idx) == selected {
			u.Given = []string{text}
			u.Correct = correct
		}
	}
	u.Gradable = len(u.Expected) > 0
	if !u.Gradable {
		u.Correct = false
	}
	return u
}

func gradeMultiChoice(q markup.Question, state answers.State) UnitResult {
	u := UnitResult{Kind: UnitMultiChoice, Slot: answers.SlotChoice, Gradable: true, Correct: true}
	for idx, item := range q.Items {
		opt, ok := item.(markup.ChoiceOption)
		if !ok {
			continue
		}
		checked := state.Value(q.ID, markup.ItemID(idx)) == answers.Checked
		if opt.Correct {
			u.Expected = append(u.Expected, opt.Text)
		}
		if checked {
			u.Given = append(u.Given, opt.Text)
		}
		if checked != opt.Correct {
			u.Correct = false
		}
	}
	return u
}

func gradeBlank(q markup.Question, idx int, blank markup.BlankToken, state answers.State, policy Policy) UnitResult {
	slot := markup.ItemID(idx)
	u := UnitResult{Kind: UnitBlank, Slot: slot, Gradable: true, Expected: []string{blank.Expected}}
	given := state.Value(q.ID, slot)
	if given != "" {
		u.Given = []string{given}
	}
	u.Correct = blank.Expected != "" && Equivalent(given, blank.Expected, policy)
	return u
}

func optionText(item markup.Item) (string, bool) {
	switch it := item.(type) {
	case markup.ChoiceOption:
		return it.Text, it.Correct
	case markup.DropdownOption:
		return it.Text, it.Correct
	}
	return "", false
}
