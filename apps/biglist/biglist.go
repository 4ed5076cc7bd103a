package biglist

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/adapter"
	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/listview"
	"github.com/framegrace/texelview/theme"
	"github.com/framegrace/texelview/widgets"
)

// New builds the synthetic big-list demo: a framed list over a generated
// collection (a million rows by default) with a pinned column header and a
// live position ruler on the bottom line. An optional single argument
// overrides the configured row count.
func New(args []string) (core.App, error) {
	cfg := config.App("biglist")
	total := cfg.GetInt("biglist", "rows", 1000000)
	rowHeight := cfg.GetInt("biglist", "row_height", 1)

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("biglist: invalid row count %q", args[0])
		}
		total = n
	}

	tm := theme.Get()
	frameStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.default")).
		Background(tm.GetSemanticColor("bg.base"))
	focusedFrame := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.focus")).
		Background(tm.GetSemanticColor("bg.base"))
	headerStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("accent.primary")).
		Background(tm.GetSemanticColor("bg.surface")).
		Bold(true)
	rulerStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.muted")).
		Background(tm.GetSemanticColor("bg.surface"))

	ui := core.NewUIManager()

	frame := widgets.NewBorder(0, 0, 0, 0, frameStyle)
	frame.Title = "biglist"
	frame.FocusedStyle = focusedFrame

	list := listview.New(listview.Options{
		RowHeight:   rowHeight,
		TotalRows:   total + 1, // index 0 is the header
		PinFirstRow: true,
		BuildRow: func(index int) core.Widget {
			if index == 0 {
				h := widgets.NewTextRow(headerText())
				h.Style = headerStyle
				return h
			}
			return widgets.NewTextRow(rowText(index - 1))
		},
	})

	ruler := &rulerBar{view: list, style: rulerStyle}

	frame.SetChild(list)
	ui.AddWidget(frame)
	ui.AddWidget(ruler)
	ui.Focus(list)

	app := adapter.NewUIApp("biglist", ui)
	app.OnResize = func(w, h int) {
		frame.SetPosition(0, 0)
		frame.Resize(w, h)
		in := frame.ClientRect()
		ruler.SetPosition(in.X, in.Y+in.H-1)
		ruler.Resize(in.W, 1)
	}
	app.OnStop = func() {
		list.Close()
	}
	return app, nil
}

func headerText() string {
	return fmt.Sprintf(" %10s  %-12s  %-8s", "ROW", "NAME", "DIGEST")
}

var names = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliett", "kilo", "lima",
}

// rowText renders a deterministic synthetic record so any row can be
// produced on demand without backing storage.
func rowText(n int) string {
	return fmt.Sprintf(" %10d  %-12s  %08x", n, names[n%len(names)], uint32(n)*2654435761)
}

// rulerBar is a one-line overlay on the list's bottom row showing the
// current window and scroll offset. It queries the list at draw time, so
// any repaint of the list area refreshes it too.
type rulerBar struct {
	core.BaseWidget
	view  *listview.ListView
	style tcell.Style
}

func (b *rulerBar) ZIndex() int { return 1 }

// HandleMouse forwards to the list so wheel scrolling keeps working on
// the overlaid line.
func (b *rulerBar) HandleMouse(ev *tcell.EventMouse) bool {
	return b.view.HandleMouse(ev)
}

func (b *rulerBar) Draw(painter *core.Painter) {
	r := b.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	start, end := b.view.Window()
	total := b.view.TotalRows() - 1 // drop the header row
	if total < 0 {
		total = 0
	}
	text := fmt.Sprintf(" rows %d-%d of %d  offset %d ", start, end, total, b.view.ScrollPosition())

	p := painter.WithClip(r)
	p.Fill(r, ' ', b.style)
	p.DrawText(r.X, r.Y, text, b.style)
}
