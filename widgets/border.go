package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelview/core"
)

// Border draws a frame around its Rect, optionally with a title inlaid
// in the top edge, and sizes a child widget into the interior.
type Border struct {
	core.BaseWidget
	Style tcell.Style
	// FocusedStyle, when set, replaces Style while any widget inside the
	// frame holds focus.
	FocusedStyle tcell.Style
	Charset      [6]rune // h, v, tl, tr, bl, br
	Title        string
	Child        core.Widget
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	b := &Border{Style: style}
	// default single-line charset
	b.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	b.SetPosition(x, y)
	b.Resize(w, h)
	return b
}

// ClientRect returns the interior area available to the child.
func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{X: r.X, Y: r.Y, W: 0, H: 0}
	}
	return core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

func (b *Border) SetChild(w core.Widget) {
	b.Child = w
	if b.Child != nil {
		cr := b.ClientRect()
		b.Child.SetPosition(cr.X, cr.Y)
		b.Child.Resize(cr.W, cr.H)
	}
}

func (b *Border) Resize(w, h int) {
	b.BaseWidget.Resize(w, h)
	if b.Child != nil {
		cr := b.ClientRect()
		b.Child.SetPosition(cr.X, cr.Y)
		b.Child.Resize(cr.W, cr.H)
	}
}

func (b *Border) Draw(p *core.Painter) {
	style := b.frameStyle()
	p.DrawBorder(b.Rect, style, b.Charset)
	if b.Title != "" && b.Rect.W > 6 {
		title := b.Title
		if max := b.Rect.W - 6; runewidth.StringWidth(title) > max {
			title = runewidth.Truncate(title, max, "…")
		}
		p.DrawText(b.Rect.X+2, b.Rect.Y, " "+title+" ", style)
	}
	if b.Child != nil {
		b.Child.Draw(p)
	}
}

func (b *Border) frameStyle() tcell.Style {
	if b.FocusedStyle == (tcell.Style{}) {
		return b.Style
	}
	if hasFocusedDescendant(b.Child) {
		return b.FocusedStyle
	}
	return b.Style
}

// hasFocusedDescendant walks the subtree under w looking for a focused
// widget.
func hasFocusedDescendant(w core.Widget) bool {
	if w == nil {
		return false
	}
	if fs, ok := w.(core.FocusState); ok && fs.IsFocused() {
		return true
	}
	if cc, ok := w.(core.ChildContainer); ok {
		found := false
		cc.VisitChildren(func(child core.Widget) {
			if found {
				return
			}
			if hasFocusedDescendant(child) {
				found = true
			}
		})
		return found
	}
	return false
}

// VisitChildren implements core.ChildContainer so hosts can reach the
// child for focus traversal and invalidator propagation.
func (b *Border) VisitChildren(f func(core.Widget)) {
	if b.Child != nil {
		f(b.Child)
	}
}

// WidgetAt implements core.HitTester: interior points hit the child,
// frame cells hit the border itself.
func (b *Border) WidgetAt(x, y int) core.Widget {
	if b.Child != nil && b.ClientRect().Contains(x, y) {
		if ht, ok := b.Child.(core.HitTester); ok {
			if w := ht.WidgetAt(x, y); w != nil {
				return w
			}
		}
		if b.Child.HitTest(x, y) {
			return b.Child
		}
	}
	if b.Rect.Contains(x, y) {
		return b
	}
	return nil
}
