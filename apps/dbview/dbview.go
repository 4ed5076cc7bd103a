package dbview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/adapter"
	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/listview"
	"github.com/framegrace/texelview/theme"
	"github.com/framegrace/texelview/widgets"
)

// New builds the table viewer: one SQLite table rendered as a list with
// the column names pinned on top. Rows load in batches on demand, so the
// table can be far larger than memory. Arguments override the configured
// database path and table name, in that order. With no database
// configured, a generated demo table in the temp directory is used.
func New(args []string) (core.App, error) {
	cfg := config.App("dbview")
	path := cfg.GetString("dbview", "db_path", "")
	table := cfg.GetString("dbview", "table", "entries")
	batch := cfg.GetInt("dbview", "batch_size", 256)

	if len(args) > 0 {
		path = args[0]
	}
	if len(args) > 1 {
		table = args[1]
	}

	demo := path == ""
	if demo {
		path = filepath.Join(os.TempDir(), "texelview-demo.db")
	}

	src, err := openTableSource(path, table, batch, demo)
	if err != nil {
		return nil, fmt.Errorf("dbview: %w", err)
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
	footerStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.muted")).
		Background(tm.GetSemanticColor("bg.mantle"))

	widths := columnWidths(src.Columns())

	ui := core.NewUIManager()

	frame := widgets.NewBorder(0, 0, 0, 0, frameStyle)
	frame.Title = "dbview: " + table
	frame.FocusedStyle = focusedFrame

	list := listview.New(listview.Options{
		RowHeight:   1,
		TotalRows:   src.Count() + 1, // index 0 is the column header
		PinFirstRow: true,
		BuildRow: func(index int) core.Widget {
			if index == 0 {
				h := widgets.NewTextRow(formatColumns(headerCells(src.Columns()), widths))
				h.Style = headerStyle
				return h
			}
			vals, err := src.Row(index - 1)
			if err != nil {
				return widgets.NewTextRow(" ! " + err.Error())
			}
			return widgets.NewTextRow(formatColumns(vals, widths))
		},
	})

	footer := widgets.NewLabel(0, 0, fmt.Sprintf(" %s  %d rows", path, src.Count()))
	footer.Style = footerStyle

	frame.SetChild(list)
	ui.AddWidget(frame)
	ui.AddWidget(footer)
	ui.Focus(list)

	app := adapter.NewUIApp("dbview", ui)
	app.OnResize = func(w, h int) {
		frame.SetPosition(0, 0)
		frame.Resize(w, h-1)
		footer.SetPosition(0, h-1)
		footer.Resize(w, 1)
	}
	app.OnStop = func() {
		list.Close()
		src.Close()
	}
	return app, nil
}

// columnWidths sizes each display column from its name, clamped to a
// readable range.
func columnWidths(cols []string) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		w := len(c)
		if w < 8 {
			w = 8
		}
		if w > 18 {
			w = 18
		}
		widths[i] = w
	}
	return widths
}

func headerCells(cols []string) []string {
	up := make([]string, len(cols))
	for i, c := range cols {
		up[i] = strings.ToUpper(c)
	}
	return up
}

func formatColumns(vals []string, widths []int) string {
	var sb strings.Builder
	sb.WriteByte(' ')
	for i, w := range widths {
		v := ""
		if i < len(vals) {
			v = vals[i]
		}
		fmt.Fprintf(&sb, "%-*.*s", w, w, v)
		if i < len(widths)-1 {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}
