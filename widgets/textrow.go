package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// TextRow is a single-line list row: left-aligned text padded to the
// row width, with a distinct background when marked selected.
type TextRow struct {
	core.BaseWidget
	Text          string
	Style         tcell.Style
	SelectedStyle tcell.Style
	Selected      bool
}

// NewTextRow creates a row with theme-default styles. Position and
// size are assigned by the hosting list.
func NewTextRow(text string) *TextRow {
	t := &TextRow{Text: text}

	tm := theme.Get()
	fg := tm.GetSemanticColor("text.primary")
	bg := tm.GetSemanticColor("bg.base")
	selBg := tm.GetSemanticColor("bg.selection")
	t.Style = tcell.StyleDefault.Foreground(fg).Background(bg)
	t.SelectedStyle = tcell.StyleDefault.Foreground(fg).Background(selBg)

	return t
}

// PreferredHeight reports the display rows this widget needs at any width.
func (t *TextRow) PreferredHeight(width int) int {
	return 1
}

// Draw renders the row text, truncated to the row width.
func (t *TextRow) Draw(painter *core.Painter) {
	r := t.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	style := t.Style
	if t.Selected {
		style = t.SelectedStyle
	}
	painter.Fill(r, ' ', style)

	text := t.Text
	if runewidth.StringWidth(text) > r.W {
		text = runewidth.Truncate(text, r.W, "…")
	}
	clipped := painter.WithClip(r)
	clipped.DrawText(r.X, r.Y, text, style)
}
