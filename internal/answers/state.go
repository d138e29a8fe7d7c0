package answers

import (
	"sort"

	"github.com/kk-code-lab/quizmark/internal/markup"
)

// Group slots. Radio and select groups store the chosen option's item id
// under these slots; checkboxes and blanks use their own item id as slot.
const (
	SlotChoice   = "choice"
	SlotDropdown = "dropdown"
)

// Checked is the value stored for a ticked checkbox.
const Checked = "x"

// Key addresses one answer slot of one question.
type Key struct {
	Question string `json:"question"`
	Slot     string `json:"slot"`
}

func (k Key) String() string {
	return k.Question + "/" + k.Slot
}

// Change is the only way an answer is reported by a renderer. An empty
// Value clears the slot.
type Change struct {
	Question string
	Slot     string
	Value    string
}

func (c Change) Key() Key {
	return Key{Question: c.Question, Slot: c.Slot}
}

// State is the learner's current answers. It is a value type: Apply, Prune
// and Clear return a new State and leave the receiver untouched, so a
// render tree built from an older State stays consistent.
type State struct {
	values map[Key]string
}

func New() State {
	return State{}
}

// FromMap builds a State from question -> slot -> value.
func FromMap(m map[string]map[string]string) State {
	s := State{values: make(map[Key]string)}
	for q, slots := range m {
		for slot, v := range slots {
			if v == "" {
				continue
			}
			s.values[Key{Question: q, Slot: slot}] = v
		}
	}
	return s
}

// Get returns the value stored for k and whether it is set.
func (s State) Get(k Key) (string, bool) {
	v, ok := s.values[k]
	return v, ok
}

// Value is Get without the presence flag.
func (s State) Value(question, slot string) string {
	return s.values[Key{Question: question, Slot: slot}]
}

func (s State) Len() int {
	return len(s.values)
}

func (s State) Apply(c Change) State {
	next := s.clone()
	if c.Value == "" {
		delete(next.values, c.Key())
	} else {
		next.values[c.Key()] = c.Value
	}
	return next
}

// Clear drops every answer; used when a different document is loaded.
func (s State) Clear() State {
	return State{}
}

// Prune keeps only answers whose key still addresses a control of doc, and
// whose group selections still name an option of the right type.
func (s State) Prune(doc markup.Document) State {
	next := State{values: make(map[Key]string)}
	for k, v := range s.values {
		q, ok := doc.Question(k.Question)
		if !ok {
			continue
		}
		if ValidSlot(q, k.Slot, v) {
			next.values[k] = v
		}
	}
	return next
}

// ValidSlot reports whether slot/value can address an answer of q.
func ValidSlot(q markup.Question, slot, value string) bool {
	switch slot {
	case SlotChoice:
		if q.ChoiceMode() == markup.KindMultiChoice {
			return false
		}
		return optionIs(q, value, markup.ItemChoice)
	case SlotDropdown:
		return optionIs(q, value, markup.ItemDropdown)
	}
	idx, ok := markup.ItemIndex(slot)
	if !ok || idx >= len(q.Items) {
		return false
	}
	switch q.Items[idx].(type) {
	case markup.BlankToken:
		return true
	case markup.ChoiceOption:
		return q.ChoiceMode() == markup.KindMultiChoice && value == Checked
	}
	return false
}

func optionIs(q markup.Question, id string, want markup.ItemType) bool {
	idx, ok := markup.ItemIndex(id)
	if !ok || idx >= len(q.Items) {
		return false
	}
	return q.Items[idx].ItemType() == want
}

// Keys returns the set keys in a stable order.
func (s State) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Question != keys[j].Question {
			return questionLess(keys[i].Question, keys[j].Question)
		}
		return slotLess(keys[i].Slot, keys[j].Slot)
	})
	return keys
}

// Map returns the answers as question -> slot -> value.
func (s State) Map() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for k, v := range s.values {
		slots, ok := out[k.Question]
		if !ok {
			slots = make(map[string]string)
			out[k.Question] = slots
		}
		slots[k.Slot] = v
	}
	return out
}

func (s State) clone() State {
	next := State{values: make(map[Key]string, len(s.values)+1)}
	for k, v := range s.values {
		next.values[k] = v
	}
	return next
}

// questionLess orders "q2" before "q10".
func questionLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func slotLess(a, b string) bool {
	ai, aok := markup.ItemIndex(a)
	bi, bok := markup.ItemIndex(b)
	switch {
	case aok && bok:
		return ai < bi
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
