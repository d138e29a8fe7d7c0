// Package printer writes a rendered form or a grade report as plain or
// colored text, for non-interactive use and for piping.
package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/textutil"
)

const (
	defaultRuleWidth = 40
	emptyBlank       = "____"
	optionIndent     = "   "
)

type Options struct {
	NoColor bool
	// Width limits dividers; 0 uses a default.
	Width int
}

// Print writes tree to w.
func Print(w io.Writer, tree render.Tree, opts Options) error {
	bw := bufio.NewWriter(w)
	p := printer{w: bw, opts: opts}
	for idx, node := range tree.Nodes {
		if idx > 0 {
			p.line("")
		}
		switch node.Kind {
		case render.NodeDivider:
			width := opts.Width
			if width <= 0 {
				width = defaultRuleWidth
			}
			p.line(p.style(strings.Repeat("─", width), render.StyleRule))
		case render.NodeQuestion:
			for _, line := range node.Lines {
				p.line(p.segments(line))
			}
			for _, g := range node.Groups {
				p.group(g)
			}
		default:
			for _, line := range node.Lines {
				p.line(p.segments(line))
			}
		}
	}
	return bw.Flush()
}

type printer struct {
	w    *bufio.Writer
	opts Options
}

func (p printer) line(text string) {
	_, _ = p.w.WriteString(strings.TrimRight(text, " "))
	_ = p.w.WriteByte('\n')
}

func (p printer) segments(line []render.Segment) string {
	var b strings.Builder
	for _, seg := range line {
		if seg.Control != render.NoControl {
			b.WriteString(p.blank(seg.Text))
			continue
		}
		b.WriteString(p.style(clean(seg.Text), seg.Style))
	}
	return b.String()
}

func (p printer) blank(value string) string {
	if value == "" {
		return p.style("["+emptyBlank+"]", render.StyleBlank)
	}
	return p.style("["+clean(value)+"]", render.StyleBlank)
}

func (p printer) group(g render.Group) {
	if g.Kind == render.GroupSelect {
		parts := make([]string, 0, len(g.Options))
		for _, opt := range g.Options {
			text := p.plainSegments(opt.Text)
			if opt.Selected {
				text = p.selected(text)
			}
			parts = append(parts, text)
		}
		p.line(optionIndent + "{" + strings.Join(parts, " | ") + "}")
		return
	}
	for _, opt := range g.Options {
		box := "( ) "
		switch {
		case g.Kind == render.GroupCheckbox && opt.Selected:
			box = "[x] "
		case g.Kind == render.GroupCheckbox:
			box = "[ ] "
		case opt.Selected:
			box = "(•) "
		}
		text := p.plainSegments(opt.Text)
		if opt.Selected {
			text = p.selected(text)
		}
		p.line(optionIndent + box + text)
	}
}

func (p printer) plainSegments(segs []render.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(p.style(clean(seg.Text), seg.Style))
	}
	return b.String()
}

func (p printer) selected(text string) string {
	if p.opts.NoColor {
		return ">" + text
	}
	return lipgloss.NewStyle().Bold(true).Underline(true).Render(text)
}

// style applies optional color styling.
func (p printer) style(text string, style render.Style) string {
	if p.opts.NoColor || text == "" {
		return text
	}
	return lipglossStyle(style).Render(text)
}

func lipglossStyle(style render.Style) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch style {
	case render.StyleEmphasis:
		return s.Italic(true)
	case render.StyleStrong:
		return s.Bold(true)
	case render.StyleStrike:
		return s.Strikethrough(true)
	case render.StyleCode:
		return s.Foreground(lipgloss.Color("44"))
	case render.StyleNumber:
		return s.Foreground(lipgloss.Color("33")).Bold(true)
	case render.StyleBlank:
		return s.Foreground(lipgloss.Color("51")).Underline(true)
	case render.StyleWarning:
		return s.Foreground(lipgloss.Color("214")).Bold(true)
	case render.StyleUncertain:
		return s.Foreground(lipgloss.Color("141"))
	case render.StyleRule:
		return s.Foreground(lipgloss.Color("240"))
	default:
		return s
	}
}

func clean(text string) string {
	return textutil.SanitizeTerminalText(textutil.ExpandTabs(text, textutil.DefaultTabWidth))
}
