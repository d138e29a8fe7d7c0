package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += runeColumns(ru)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text, counting grapheme
// clusters such as emoji sequences once.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate cuts text to at most width columns, ending with tail when cut.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, tail)
}

// PadRight pads text with spaces to width columns.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// Wrap breaks text into lines of at most width columns, preferring spaces.
// Words wider than width are split.
func Wrap(text string, width int) []string {
	if width <= 0 || DisplayWidth(text) <= width {
		return []string{text}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}
	for _, word := range strings.SplitAfter(text, " ") {
		w := DisplayWidth(word)
		if lineWidth > 0 && lineWidth+w > width && lineWidth+DisplayWidth(strings.TrimRight(word, " ")) > width {
			flush()
		}
		for w > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			if lineWidth > 0 {
				flush()
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = DisplayWidth(word)
		}
		line.WriteString(word)
		lineWidth += w
	}
	if lineWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func runeColumns(ru rune) int {
	width := runewidth.RuneWidth(ru)
	if width < 1 {
		width = 1
	}
	return width
}
