package form

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/quizmark/internal/render"
)

// ColorTheme defines form colors.
type ColorTheme struct {
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	NumberFg    tcell.Color
	CodeFg      tcell.Color
	FieldFg     tcell.Color
	WarningFg   tcell.Color
	UncertainFg tcell.Color
	RuleFg      tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color33,
		HeaderFg:    tcell.ColorWhite,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		NumberFg:    tcell.Color33,
		CodeFg:      tcell.Color44,
		FieldFg:     tcell.Color51,
		WarningFg:   tcell.Color214,
		UncertainFg: tcell.Color141,
		RuleFg:      tcell.Color240,
	}
}

// styleFor maps a render style onto terminal attributes.
func (t ColorTheme) styleFor(style render.Style) tcell.Style {
	base := tcell.StyleDefault.Foreground(t.Foreground)
	switch style {
	case render.StyleEmphasis:
		return base.Italic(true)
	case render.StyleStrong:
		return base.Bold(true)
	case render.StyleStrike:
		return base.StrikeThrough(true)
	case render.StyleCode:
		return base.Foreground(t.CodeFg)
	case render.StyleNumber:
		return base.Foreground(t.NumberFg).Bold(true)
	case render.StyleBlank:
		return base.Foreground(t.FieldFg).Underline(true)
	case render.StyleWarning:
		return base.Foreground(t.WarningFg).Bold(true)
	case render.StyleUncertain:
		return base.Foreground(t.UncertainFg)
	case render.StyleRule:
		return base.Foreground(t.RuleFg)
	default:
		return base
	}
}
