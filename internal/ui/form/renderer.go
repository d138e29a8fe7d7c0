package form

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/quizmark/internal/render"
	"github.com/kk-code-lab/quizmark/internal/textutil"
	"github.com/mattn/go-runewidth"
)

const helpText = "Tab/↑↓ move · Space select · ←→ change · PgUp/PgDn scroll · ^R reload · Esc quit"

// Renderer paints a form State onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: GetColorTheme()}
}

// Render draws the entire form based on state
func (r *Renderer) Render(s *State) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(s, w)
	cursorX, cursorY, showCursor := r.drawBody(s, w, h)
	r.drawFooter(w, h)

	if showCursor {
		r.screen.ShowCursor(cursorX, cursorY)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

func (r *Renderer) drawHeader(s *State, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	title := "quizmark"
	if s.Title != "" {
		title += " · " + s.Title
	}
	x := r.drawText(0, 0, w, " "+textutil.SanitizeTerminalText(title), style.Bold(true))
	if s.Status != "" {
		status := textutil.SanitizeTerminalText(s.Status) + " "
		sx := w - textutil.DisplayWidth(status)
		if sx > x+1 {
			for ; x < sx; x++ {
				r.screen.SetContent(x, 0, ' ', nil, style)
			}
			x = r.drawText(sx, 0, w, status, style)
		}
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}

func (r *Renderer) drawFooter(w, h int) {
	if h < headerRows+footerRows+1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.drawText(0, h-1, w, textutil.Truncate(" "+helpText, w, "…"), style)
}

func (r *Renderer) drawBody(s *State, w, h int) (int, int, bool) {
	rows := s.Rows()
	body := s.BodyHeight()
	focused, hasFocus := s.FocusedControl()
	cursorX, cursorY, showCursor := 0, 0, false

	for i := 0; i < body; i++ {
		rowIdx := s.Scroll + i
		if rowIdx >= len(rows) {
			break
		}
		y := headerRows + i
		if y >= h-footerRows {
			break
		}
		x := 0
		for _, sp := range rows[rowIdx] {
			style := r.spanStyle(s, sp)
			if hasFocus && focused.Kind == render.ControlText && sp.Control == s.Focus && sp.Role == RoleField {
				cursorX = x + textutil.DisplayWidth(string([]rune(focused.Value)[:min(s.Cursor, len([]rune(focused.Value)))]))
				cursorY = y
				showCursor = cursorX < w
			}
			x = r.drawText(x, y, w, sp.Text, style)
		}
	}
	return cursorX, cursorY, showCursor
}

func (r *Renderer) spanStyle(s *State, sp Span) tcell.Style {
	style := r.theme.styleFor(sp.Style)
	if sp.Selected && sp.Role == RoleOption {
		style = style.Bold(true).Underline(true)
	}
	if sp.Control >= 0 && sp.Control == s.Focus && sp.Role != RoleField {
		style = style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	return style
}

// drawText draws text from startX, stopping at maxX. Zero-width runes are
// attached to the preceding cell.
func (r *Renderer) drawText(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if x >= maxX {
			break
		}
		mainc := runes[i]
		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}
		w := runewidth.RuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}
