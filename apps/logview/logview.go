package logview

import (
	"errors"
	"fmt"
	"log"
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

// New builds the file viewer: a static file rendered with syntax
// highlighting, newest-capped to the configured line limit. The single
// optional argument overrides the configured path.
func New(args []string) (core.App, error) {
	cfg := config.App("logview")
	path := cfg.GetString("logview", "path", "")
	maxLines := cfg.GetInt("logview", "max_lines", 100000)
	styleName := cfg.GetString("logview", "style", defaultStyleName)

	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, errors.New("logview: no file given (set logview.path or pass one)")
	}

	lines, total, err := readTail(path, maxLines)
	if err != nil {
		return nil, fmt.Errorf("logview: %w", err)
	}

	tm := theme.Get()
	base := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.primary")).
		Background(tm.GetSemanticColor("bg.base"))
	frameStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.default")).
		Background(tm.GetSemanticColor("bg.base"))
	focusedFrame := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.focus")).
		Background(tm.GetSemanticColor("bg.base"))
	footerStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.muted")).
		Background(tm.GetSemanticColor("bg.mantle"))

	text := strings.Join(lines, "\n")
	det := detectLanguage(filepath.Base(path), text)
	styled := highlightLines(text, det.lexer, styleName, base)
	if len(lines) == 0 {
		styled = nil
	}
	log.Printf("[logview] %s: %d lines, language %q via %s", path, len(lines), det.lexer, det.method)

	ui := core.NewUIManager()

	frame := widgets.NewBorder(0, 0, 0, 0, frameStyle)
	frame.Title = "logview: " + filepath.Base(path)
	frame.FocusedStyle = focusedFrame

	list := listview.New(listview.Options{
		TotalRows: len(styled),
		BuildRow: func(index int) core.Widget {
			return &chunkRow{chunks: styled[index], base: base}
		},
	})

	footer := widgets.NewLabel(0, 0, footerText(path, len(lines), total, det))
	footer.Style = footerStyle

	frame.SetChild(list)
	ui.AddWidget(frame)
	ui.AddWidget(footer)
	ui.Focus(list)

	app := adapter.NewUIApp("logview", ui)
	app.OnResize = func(w, h int) {
		frame.SetPosition(0, 0)
		frame.Resize(w, h-1)
		footer.SetPosition(0, h-1)
		footer.Resize(w, 1)
	}
	app.OnStop = func() {
		list.Close()
	}
	return app, nil
}

func footerText(path string, kept, total int, det detection) string {
	lang := det.lexer
	if lang == "" {
		lang = "plain"
	}
	if kept < total {
		return fmt.Sprintf(" %s  last %d of %d lines  %s (%s)", path, kept, total, lang, det.method)
	}
	return fmt.Sprintf(" %s  %d lines  %s (%s)", path, kept, lang, det.method)
}

// readTail loads the file and keeps the last max lines. Returns the kept
// lines and the file's full line count.
func readTail(path string, max int) ([]string, int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	if len(b) == 0 {
		return nil, 0, nil
	}
	if max <= 0 {
		max = 100000
	}

	text := strings.TrimSuffix(string(b), "\n")
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	total := len(lines)
	if total > max {
		lines = lines[total-max:]
	}
	return lines, total, nil
}

// chunkRow renders one highlighted line as consecutive styled runs.
type chunkRow struct {
	core.BaseWidget
	chunks []chunk
	base   tcell.Style
}

func (c *chunkRow) PreferredHeight(width int) int { return 1 }

func (c *chunkRow) Draw(painter *core.Painter) {
	r := c.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	p := painter.WithClip(r)
	p.Fill(r, ' ', c.base)
	x := r.X
	for _, ch := range c.chunks {
		if x >= r.X+r.W {
			break
		}
		x = p.DrawText(x, r.Y, ch.text, ch.style)
	}
}
