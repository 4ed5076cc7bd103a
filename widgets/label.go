package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// Label is a static single-line text widget.
type Label struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
}

// NewLabel creates a label sized to its text.
func NewLabel(x, y int, text string) *Label {
	l := &Label{Text: text}

	tm := theme.Get()
	fg := tm.GetSemanticColor("text.primary")
	bg := tm.GetSemanticColor("bg.base")
	l.Style = tcell.StyleDefault.Foreground(fg).Background(bg)

	l.SetPosition(x, y)
	l.Resize(runewidth.StringWidth(text), 1)
	return l
}

// SetText replaces the label text. The widget keeps its current width;
// longer text is truncated when drawn.
func (l *Label) SetText(text string) {
	l.Text = text
}

// Draw renders the label, truncated to its width.
func (l *Label) Draw(painter *core.Painter) {
	r := l.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	line := core.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}
	painter.Fill(line, ' ', l.Style)

	text := l.Text
	if runewidth.StringWidth(text) > r.W {
		text = runewidth.Truncate(text, r.W, "…")
	}
	clipped := painter.WithClip(line)
	clipped.DrawText(r.X, r.Y, text, l.Style)
}
