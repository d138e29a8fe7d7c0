package markup

import (
	"strings"
	"unicode"
)

const (
	tokenBlankOpen = "[T*"
	tokenWarning   = "[!]"
	tokenUncertain = "[?]"
)

// itemSink collects the items cut out of prose during the inline scan.
// A nil sink leaves token syntax as literal text.
type itemSink struct {
	items []Item
}

func (s *itemSink) add(item Item) int {
	s.items = append(s.items, item)
	return len(s.items) - 1
}

func (s *itemSink) hasBlank() bool {
	for _, item := range s.items {
		if _, ok := item.(BlankToken); ok {
			return true
		}
	}
	return false
}

// ParseInlineText parses emphasis in short labels such as option text.
// Answer and marker tokens are not recognized there.
func ParseInlineText(text string) []Inline {
	return parseInline(text, nil)
}

func parseInline(text string, sink *itemSink) []Inline {
	runes := []rune(text)
	var nodes []Inline
	var buf []rune

	flushText := func() {
		if len(buf) == 0 {
			return
		}
		nodes = append(nodes, Inline{Type: InlineText, Literal: string(buf)})
		buf = buf[:0]
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) && runes[i+1] != '\n' {
				buf = append(buf, runes[i+1])
				i += 2
			} else {
				buf = append(buf, r)
				i++
			}
		case '\n':
			flushText()
			nodes = append(nodes, Inline{Type: InlineLineBreak})
			i++
		case '[':
			if sink == nil {
				buf = append(buf, r)
				i++
				continue
			}
			item, consumed, ok := parseToken(runes[i:])
			if !ok {
				buf = append(buf, r)
				i++
				continue
			}
			flushText()
			nodes = append(nodes, Inline{Type: InlineItemRef, Item: sink.add(item)})
			i += consumed
		case '`':
			count := countRepeat(runes[i:], '`')
			end := findClosingBackticks(runes[i+count:], count)
			if end == -1 {
				buf = append(buf, runes[i:i+count]...)
				i += count
				continue
			}
			flushText()
			nodes = append(nodes, Inline{Type: InlineCode, Literal: string(runes[i+count : i+count+end])})
			i += count + end + count
		case '*', '_':
			run := countRepeat(runes[i:], r)
			if r == '_' && run > 2 {
				// answer lines such as "____" stay literal
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			if run >= 2 {
				run = 2
			} else {
				run = 1
			}
			closeIdx := findClosingDelimiter(runes, i+run, r, run, sink != nil)
			if closeIdx <= i+run {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			if isAlnum(runes, i-1) && isAlnum(runes, closeIdx+run) {
				buf = append(buf, r)
				i++
				continue
			}
			flushText()
			content := parseInline(string(runes[i+run:closeIdx]), sink)
			kind := InlineEmphasis
			if run == 2 {
				kind = InlineStrong
			}
			nodes = append(nodes, Inline{Type: kind, Children: content})
			i = closeIdx + run
		case '~':
			run := countRepeat(runes[i:], r)
			if run < 2 {
				buf = append(buf, r)
				i++
				continue
			}
			closeIdx := findClosingDelimiter(runes, i+2, r, 2, sink != nil)
			if closeIdx <= i+2 {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			flushText()
			content := parseInline(string(runes[i+2:closeIdx]), sink)
			nodes = append(nodes, Inline{Type: InlineStrike, Children: content})
			i = closeIdx + 2
		default:
			buf = append(buf, r)
			i++
		}
	}

	flushText()
	return nodes
}

// parseToken recognizes an answer or marker token at the start of runes and
// reports how many runes it spans. Tokens never cross a line break.
func parseToken(runes []rune) (Item, int, bool) {
	s := string(runes[:min(len(runes), 3)])
	switch s {
	case tokenWarning, tokenUncertain:
		kind := MarkerWarning
		if s == tokenUncertain {
			kind = MarkerUncertain
		}
		// Marker text runs to the end of the line or up to the next token.
		end := 3
		for end < len(runes) && runes[end] != '\n' && !tokenAhead(runes[end:]) {
			end++
		}
		return InlineMarker{Kind: kind, Text: strings.TrimSpace(string(runes[3:end]))}, end, true
	case tokenBlankOpen:
		for j := 3; j < len(runes); j++ {
			switch runes[j] {
			case '\n', '[':
				return nil, 0, false
			case ']':
				return BlankToken{Expected: strings.TrimSpace(string(runes[3:j]))}, j + 1, true
			}
		}
	}
	return nil, 0, false
}

func findClosingBackticks(runes []rune, count int) int {
	for i := 0; i < len(runes); i++ {
		if runes[i] != '`' {
			continue
		}
		if countRepeat(runes[i:], '`') == count {
			return i
		}
	}
	return -1
}

// tokenAhead reports whether runes starts with a complete token.
func tokenAhead(runes []rune) bool {
	if len(runes) < 3 || runes[0] != '[' {
		return false
	}
	switch string(runes[:3]) {
	case tokenWarning, tokenUncertain:
		return true
	case tokenBlankOpen:
		_, _, ok := parseToken(runes)
		return ok
	}
	return false
}

// findClosingDelimiter returns the index of the run closing an emphasis
// opened before start, or -1. With tokens set, delimiters inside answer
// and marker tokens are skipped.
func findClosingDelimiter(runes []rune, start int, delim rune, count int, tokens bool) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == '\n' {
			return -1
		}
		if tokens && runes[i] == '[' {
			if _, n, ok := parseToken(runes[i:]); ok {
				i += n - 1
				continue
			}
		}
		if runes[i] != delim {
			continue
		}
		if countRepeat(runes[i:], delim) < count {
			continue
		}
		if i > 0 && runes[i-1] == '\\' {
			continue
		}
		return i
	}
	return -1
}

func isAlnum(runes []rune, idx int) bool {
	if idx < 0 || idx >= len(runes) {
		return false
	}
	return unicode.IsLetter(runes[idx]) || unicode.IsDigit(runes[idx])
}

func countRepeat(runes []rune, target rune) int {
	n := 0
	for n < len(runes) && runes[n] == target {
		n++
	}
	return n
}

// PlainText flattens inlines back into readable text. Item references are
// resolved through items; blanks read as "____".
func PlainText(inlines []Inline, items []Item) string {
	var b strings.Builder
	writePlain(&b, inlines, items)
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline, items []Item) {
	for _, in := range inlines {
		switch in.Type {
		case InlineText, InlineCode:
			b.WriteString(in.Literal)
		case InlineLineBreak:
			b.WriteByte('\n')
		case InlineEmphasis, InlineStrong, InlineStrike:
			writePlain(b, in.Children, items)
		case InlineItemRef:
			if in.Item < 0 || in.Item >= len(items) {
				continue
			}
			switch it := items[in.Item].(type) {
			case BlankToken:
				b.WriteString("____")
			case InlineMarker:
				b.WriteString(it.Text)
			}
		}
	}
}
