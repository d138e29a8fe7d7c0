package markup

import "strconv"

// Document is the parsed form of a question-set source. It is never mutated
// after Parse returns.
type Document struct {
	ID     string
	Blocks []Block
}

// Block is one top-level unit of a Document.
type Block interface {
	BlockType() BlockType
}

type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockSeparator
	BlockQuestion
)

// Kind is the inferred classification of a question, derived from the item
// syntax encountered while parsing.
type Kind int

const (
	KindPlain Kind = iota
	KindSingleChoice
	KindMultiChoice
	KindFillBlank
	KindDropdown
	KindMixed
)

var kindNames = [...]string{
	KindPlain:        "plain",
	KindSingleChoice: "single-choice",
	KindMultiChoice:  "multi-choice",
	KindFillBlank:    "fill-blank",
	KindDropdown:     "dropdown",
	KindMixed:        "mixed",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps a kind name back to its value.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindPlain, false
}

type InlineType int

const (
	InlineText InlineType = iota
	InlineEmphasis
	InlineStrong
	InlineStrike
	InlineCode
	InlineLineBreak
	// InlineItemRef is the placeholder left where an inline token was cut
	// out of the prose. Item indexes the owning block's Items.
	InlineItemRef
)

// Inline is a run of prompt or paragraph text.
type Inline struct {
	Type     InlineType
	Literal  string
	Children []Inline
	Item     int
}

// Paragraph is free-form prose outside of any question.
type Paragraph struct {
	Text  []Inline
	Items []Item
}

func (Paragraph) BlockType() BlockType { return BlockParagraph }

// Separator is a horizontal rule between questions.
type Separator struct{}

func (Separator) BlockType() BlockType { return BlockSeparator }

// Question is an answerable unit. ID and Number come from its position among
// the questions of the document; reordering the source changes both.
type Question struct {
	ID     string
	Number int
	Prompt []Inline
	Items  []Item
	Kind   Kind
	// Anonymous is set for questions opened implicitly by an orphan option
	// line or by a paragraph carrying a blank.
	Anonymous bool
}

func (Question) BlockType() BlockType { return BlockQuestion }

// ItemID returns the position-derived identity of the item at index idx.
func ItemID(idx int) string {
	return strconv.Itoa(idx + 1)
}

// ItemIndex is the inverse of ItemID.
func ItemIndex(id string) (int, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// Item is an entry attached to a block.
type Item interface {
	ItemType() ItemType
}

type ItemType int

const (
	ItemChoice ItemType = iota
	ItemBlank
	ItemDropdown
	ItemMarker
)

// ChoiceOption is a `[ ]` or `[*]` line.
type ChoiceOption struct {
	Text    string
	Correct bool
}

func (ChoiceOption) ItemType() ItemType { return ItemChoice }

// BlankToken is an inline `[T*answer]` slot.
type BlankToken struct {
	Expected string
}

func (BlankToken) ItemType() ItemType { return ItemBlank }

// DropdownOption is a `[D]` or `[D*]` line.
type DropdownOption struct {
	Text    string
	Correct bool
}

func (DropdownOption) ItemType() ItemType { return ItemDropdown }

type MarkerKind int

const (
	MarkerWarning MarkerKind = iota
	MarkerUncertain
)

func (k MarkerKind) String() string {
	if k == MarkerUncertain {
		return "uncertain"
	}
	return "warning"
}

// InlineMarker is a non-answerable `[!]` or `[?]` annotation; Text is the
// rest of the line it appeared on.
type InlineMarker struct {
	Kind MarkerKind
	Text string
}

func (InlineMarker) ItemType() ItemType { return ItemMarker }

// Questions returns the questions of d in document order.
func (d Document) Questions() []Question {
	var out []Question
	for _, b := range d.Blocks {
		if q, ok := b.(Question); ok {
			out = append(out, q)
		}
	}
	return out
}

// Question looks up a question by its ID.
func (d Document) Question(id string) (Question, bool) {
	for _, b := range d.Blocks {
		if q, ok := b.(Question); ok && q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
