package markup

import "encoding/json"

type wireDocument struct {
	ID     string      `json:"id" yaml:"id"`
	Blocks []wireBlock `json:"blocks" yaml:"blocks"`
}

type wireBlock struct {
	Type      string       `json:"type" yaml:"type"`
	ID        string       `json:"id,omitempty" yaml:"id,omitempty"`
	Number    int          `json:"number,omitempty" yaml:"number,omitempty"`
	Kind      string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Anonymous bool         `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Text      []wireInline `json:"text,omitempty" yaml:"text,omitempty"`
	Items     []wireItem   `json:"items,omitempty" yaml:"items,omitempty"`
}

type wireInline struct {
	Type     string       `json:"type" yaml:"type"`
	Literal  string       `json:"literal,omitempty" yaml:"literal,omitempty"`
	Children []wireInline `json:"children,omitempty" yaml:"children,omitempty"`
	Item     string       `json:"item,omitempty" yaml:"item,omitempty"`
}

type wireItem struct {
	ID       string  `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Correct  bool    `json:"correct,omitempty" yaml:"correct,omitempty"`
	Expected *string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Marker   string  `json:"marker,omitempty" yaml:"marker,omitempty"`
}

var inlineNames = map[InlineType]string{
	InlineText:      "text",
	InlineEmphasis:  "emphasis",
	InlineStrong:    "strong",
	InlineStrike:    "strike",
	InlineCode:      "code",
	InlineLineBreak: "break",
	InlineItemRef:   "item",
}

// MarshalJSON encodes the document with explicit type tags so clients do not
// need to know the Go interface layout.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.wire(), nil
}

func (d Document) wire() wireDocument {
	out := wireDocument{ID: d.ID, Blocks: make([]wireBlock, 0, len(d.Blocks))}
	for _, block := range d.Blocks {
		switch b := block.(type) {
		case Paragraph:
			out.Blocks = append(out.Blocks, wireBlock{
				Type:  "paragraph",
				Text:  wireInlines(b.Text),
				Items: wireItems(b.Items),
			})
		case Separator:
			out.Blocks = append(out.Blocks, wireBlock{Type: "separator"})
		case Question:
			out.Blocks = append(out.Blocks, wireBlock{
				Type:      "question",
				ID:        b.ID,
				Number:    b.Number,
				Kind:      b.Kind.String(),
				Anonymous: b.Anonymous,
				Text:      wireInlines(b.Prompt),
				Items:     wireItems(b.Items),
			})
		}
	}
	return out
}

func wireInlines(inlines []Inline) []wireInline {
	if len(inlines) == 0 {
		return nil
	}
	out := make([]wireInline, 0, len(inlines))
	for _, in := range inlines {
		w := wireInline{
			Type:     inlineNames[in.Type],
			Literal:  in.Literal,
			Children: wireInlines(in.Children),
		}
		if in.Type == InlineItemRef {
			w.Item = ItemID(in.Item)
		}
		out = append(out, w)
	}
	return out
}

func wireItems(items []Item) []wireItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]wireItem, 0, len(items))
	for idx, item := range items {
		w := wireItem{ID: ItemID(idx)}
		switch it := item.(type) {
		case ChoiceOption:
			w.Type, w.Text, w.Correct = "choice", it.Text, it.Correct
		case DropdownOption:
			w.Type, w.Text, w.Correct = "dropdown", it.Text, it.Correct
		case BlankToken:
			expected := it.Expected
			w.Type, w.Expected = "blank", &expected
		case InlineMarker:
			w.Type, w.Text, w.Marker = "marker", it.Text, it.Kind.String()
		}
		out = append(out, w)
	}
	return out
}
