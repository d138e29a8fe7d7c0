package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kk-code-lab/quizmark/internal/grade"
)

const (
	markCorrect    = "✓"
	markWrong      = "✗"
	markUnanswered = "–"
	markUngraded   = "·"
)

// PrintReport writes a grading summary followed by one row per scoring unit.
func PrintReport(w io.Writer, report grade.Report, opts Options) error {
	summary := fmt.Sprintf("Score: %d/%d (%.0f%%) · answered %d of %d",
		report.Score, report.Max, report.Percent(), report.Answered, report.Units)
	if !opts.NoColor {
		summary = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(summary)
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}
	if report.Units == 0 {
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Type", "", "Answer", "Expected")
	var marks []string
	for _, res := range report.Results {
		for _, u := range res.Units {
			mark := unitMark(u)
			marks = append(marks, mark)
			t.Row(strconv.Itoa(res.Number), u.Kind.String(), mark, joinOr(u.Given, ""), expectedText(u))
		}
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		s := lipgloss.NewStyle().Padding(0, 1)
		if opts.NoColor || row == table.HeaderRow {
			return s
		}
		if col == 2 && row >= 0 && row < len(marks) {
			switch marks[row] {
			case markCorrect:
				return s.Foreground(lipgloss.Color("42"))
			case markWrong:
				return s.Foreground(lipgloss.Color("196"))
			}
			return s.Foreground(lipgloss.Color("244"))
		}
		return s
	})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func unitMark(u grade.UnitResult) string {
	switch {
	case !u.Gradable:
		return markUngraded
	case u.Correct:
		return markCorrect
	case !u.Answered():
		return markUnanswered
	default:
		return markWrong
	}
}

func expectedText(u grade.UnitResult) string {
	if !u.Gradable && len(u.Expected) == 0 {
		return "(no key)"
	}
	if u.Kind == grade.UnitBlank && len(u.Expected) == 1 && u.Expected[0] == "" {
		return "(empty)"
	}
	return joinOr(u.Expected, "")
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return clean(strings.Join(values, ", "))
}
