package markup

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultQuestionPrefix opens a new question when it starts a line.
const DefaultQuestionPrefix = "[!num]"

const (
	markChoice          = "[ ]"
	markChoiceCorrect   = "[*]"
	markDropdown        = "[D]"
	markDropdownCorrect = "[D*]"
)

var documentNamespace = uuid.MustParse("8c2f0a3e-5b71-4d2a-9e64-1f3b7c9d0a52")

// Options tune the line syntax recognized by a Parser.
type Options struct {
	QuestionPrefix string
}

// Parser turns quiz markup into a Document. The zero value is ready to use.
type Parser struct {
	prefix string
}

// NewParser returns a Parser using opts; empty fields fall back to defaults.
func NewParser(opts Options) Parser {
	return Parser{prefix: strings.TrimSpace(opts.QuestionPrefix)}
}

// Parse parses text with the default options.
func Parse(text string) Document {
	return Parser{}.Parse(text)
}

// ParseLines parses pre-split lines with the default options.
func ParseLines(lines []string) Document {
	return Parser{}.ParseLines(lines)
}

// Parse never fails: lines that match no known syntax degrade into prose.
func (p Parser) Parse(text string) Document {
	if text == "" {
		return Document{ID: documentID(text)}
	}
	return p.ParseLines(strings.Split(text, "\n"))
}

func (p Parser) ParseLines(lines []string) Document {
	b := &docBuilder{}
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		switch kind, rest := p.classify(line); kind {
		case lineBlank:
			b.blank()
		case lineSeparator:
			b.closeBlock()
			b.blocks = append(b.blocks, Separator{})
		case lineQuestion:
			b.closeBlock()
			b.openQuestion(false)
			if rest != "" {
				b.appendProse(rest)
			}
		case lineChoice, lineChoiceCorrect:
			b.appendOption(ChoiceOption{Text: rest, Correct: kind == lineChoiceCorrect})
		case lineDropdown, lineDropdownCorrect:
			b.appendOption(DropdownOption{Text: rest, Correct: kind == lineDropdownCorrect})
		default:
			b.appendProse(strings.TrimRight(line, " \t"))
		}
	}
	b.closeBlock()
	return Document{
		ID:     documentID(strings.Join(lines, "\n")),
		Blocks: b.blocks,
	}
}

func documentID(text string) string {
	return uuid.NewSHA1(documentNamespace, []byte(text)).String()
}

type lineKind int

const (
	lineText lineKind = iota
	lineBlank
	lineSeparator
	lineQuestion
	lineChoice
	lineChoiceCorrect
	lineDropdown
	lineDropdownCorrect
)

func (p Parser) questionPrefix() string {
	if p.prefix == "" {
		return DefaultQuestionPrefix
	}
	return p.prefix
}

func (p Parser) classify(line string) (lineKind, string) {
	trimmed := strings.TrimLeft(line, " \t")
	if isBlankLine(trimmed) {
		return lineBlank, ""
	}
	if isSeparatorLine(trimmed) {
		return lineSeparator, ""
	}
	if rest, ok := strings.CutPrefix(trimmed, p.questionPrefix()); ok {
		return lineQuestion, strings.TrimSpace(rest)
	}
	switch {
	case strings.HasPrefix(trimmed, markChoiceCorrect):
		return lineChoiceCorrect, strings.TrimSpace(trimmed[len(markChoiceCorrect):])
	case strings.HasPrefix(trimmed, markChoice):
		return lineChoice, strings.TrimSpace(trimmed[len(markChoice):])
	case strings.HasPrefix(trimmed, markDropdownCorrect):
		return lineDropdownCorrect, strings.TrimSpace(trimmed[len(markDropdownCorrect):])
	case strings.HasPrefix(trimmed, markDropdown):
		return lineDropdown, strings.TrimSpace(trimmed[len(markDropdown):])
	}
	return lineText, ""
}

// docBuilder holds the single open block while lines are scanned.
type docBuilder struct {
	blocks    []Block
	questions int

	inQuestion bool
	anonymous  bool
	prose      []string
	items      []Item
}

func (b *docBuilder) openQuestion(anonymous bool) {
	b.inQuestion = true
	b.anonymous = anonymous
	b.prose = nil
	b.items = nil
}

func (b *docBuilder) appendProse(line string) {
	b.prose = append(b.prose, line)
}

func (b *docBuilder) appendOption(item Item) {
	if !b.inQuestion {
		// An option with nothing open yet: keep any pending prose as its own
		// paragraph and hang the option off an unnamed question.
		b.closeBlock()
		b.openQuestion(true)
	}
	b.items = append(b.items, item)
}

func (b *docBuilder) blank() {
	switch {
	case !b.inQuestion:
		b.closeBlock()
	case b.hasOptions():
		b.closeBlock()
	case len(b.prose) > 0 && b.prose[len(b.prose)-1] != "":
		b.prose = append(b.prose, "")
	}
}

func (b *docBuilder) hasOptions() bool {
	for _, item := range b.items {
		switch item.(type) {
		case ChoiceOption, DropdownOption:
			return true
		}
	}
	return false
}

func (b *docBuilder) closeBlock() {
	if b.inQuestion {
		b.closeQuestion()
		return
	}
	if len(b.prose) == 0 {
		return
	}
	sink := &itemSink{}
	text := parseInline(joinProse(b.prose), sink)
	b.prose = nil
	if sink.hasBlank() {
		b.emitQuestion(text, sink.items, true)
		return
	}
	b.blocks = append(b.blocks, Paragraph{Text: text, Items: sink.items})
}

func (b *docBuilder) closeQuestion() {
	// Option lines occupy the first item slots; prompt tokens follow them.
	sink := &itemSink{items: b.items}
	prompt := parseInline(joinProse(b.prose), sink)
	b.emitQuestion(prompt, sink.items, b.anonymous)
	b.inQuestion = false
	b.anonymous = false
	b.prose = nil
	b.items = nil
}

func (b *docBuilder) emitQuestion(prompt []Inline, items []Item, anonymous bool) {
	b.questions++
	b.blocks = append(b.blocks, Question{
		ID:        fmt.Sprintf("q%d", b.questions),
		Number:    b.questions,
		Prompt:    prompt,
		Items:     items,
		Kind:      inferKind(items),
		Anonymous: anonymous,
	})
}

func joinProse(lines []string) string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isSeparatorLine(trimmed string) bool {
	trimmed = strings.TrimRight(trimmed, " \t")
	if len(trimmed) < 3 {
		return false
	}
	return countRepeat([]rune(trimmed), '-') == len(trimmed)
}
