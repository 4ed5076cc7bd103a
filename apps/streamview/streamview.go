package streamview

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/adapter"
	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/listview"
	"github.com/framegrace/texelview/theme"
	"github.com/framegrace/texelview/widgets"
)

// scrollbackSlack is how far past the cap the buffer may grow before a
// trim, so the list is not rebuilt on every line.
const scrollbackSlack = 64

// New builds the live stream viewer: a shell command's pty output tailed
// into a capped list. Arguments form the command line, overriding the
// configured command. While the view rests at the bottom it follows new
// output; scrolling up pauses following and End resumes it.
func New(args []string) (core.App, error) {
	cfg := config.App("streamview")
	command := cfg.GetString("streamview", "command", "")
	follow := cfg.GetBool("streamview", "follow", true)
	scrollback := cfg.GetInt("streamview", "scrollback", 10000)

	if len(args) > 0 {
		command = strings.Join(args, " ")
	}
	if command == "" {
		return nil, errors.New("streamview: no command given (set streamview.command or pass one)")
	}
	if scrollback <= 0 {
		scrollback = 10000
	}

	tm := theme.Get()
	frameStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.default")).
		Background(tm.GetSemanticColor("bg.base"))
	focusedFrame := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("border.focus")).
		Background(tm.GetSemanticColor("bg.base"))
	statusStyle := tcell.StyleDefault.
		Foreground(tm.GetSemanticColor("text.muted")).
		Background(tm.GetSemanticColor("bg.surface"))

	ui := core.NewUIManager()

	frame := widgets.NewBorder(0, 0, 0, 0, frameStyle)
	frame.Title = "streamview: " + command
	frame.FocusedStyle = focusedFrame

	list := listview.New(listview.Options{RowHeight: 1})

	s := &stream{list: list, follow: follow, scrollback: scrollback}
	s.tail = newTailer(command, s.appendLine)

	status := &streamStatus{stream: s, style: statusStyle}

	frame.SetChild(list)
	ui.AddWidget(frame)
	ui.AddWidget(status)
	ui.Focus(list)

	app := adapter.NewUIApp("streamview", ui)
	app.OnResize = func(w, h int) {
		frame.SetPosition(0, 0)
		frame.Resize(w, h)
		in := frame.ClientRect()
		status.SetPosition(in.X, in.Y+in.H-1)
		status.Resize(in.W, 1)
		s.setSize(in.W, in.H)
		s.tail.Resize(in.W, in.H)
	}
	app.OnRun = func() error {
		w, h := s.size()
		return s.tail.Start(w, h)
	}
	app.OnPaste = s.tail.Write
	app.OnStop = func() {
		s.tail.Stop()
		list.Close()
	}
	return app, nil
}

type stream struct {
	list       *listview.ListView
	tail       *tailer
	follow     bool
	scrollback int

	mu sync.Mutex
	w  int
	h  int
}

func (s *stream) setSize(w, h int) {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
}

func (s *stream) size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// appendLine runs on the tailer's reader goroutine. Whether the view was
// resting at the bottom is sampled before the append, so a user who has
// scrolled up keeps their place while the stream grows.
func (s *stream) appendLine(line string) {
	wasBottom := s.list.AtBottom()
	s.list.AppendRows(line)

	total := s.list.TotalRows()
	if total > s.scrollback+scrollbackSlack {
		s.list.TrimFront(total - s.scrollback)
		total = s.scrollback
	}
	if s.follow && wasBottom && total > 0 {
		s.list.EnsureRowVisible(total - 1)
	}
}

// streamStatus is a one-line overlay on the list's bottom row showing
// the line count and follow state. It reads the list at draw time, so
// every repaint of the list area refreshes it.
type streamStatus struct {
	core.BaseWidget
	stream *stream
	style  tcell.Style
}

func (b *streamStatus) ZIndex() int { return 1 }

// HandleMouse forwards to the list so wheel scrolling keeps working on
// the overlaid line.
func (b *streamStatus) HandleMouse(ev *tcell.EventMouse) bool {
	return b.stream.list.HandleMouse(ev)
}

func (b *streamStatus) Draw(painter *core.Painter) {
	r := b.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	total := b.stream.list.TotalRows()
	state := "tailing"
	switch {
	case !b.stream.follow:
		state = "manual"
	case !b.stream.list.AtBottom():
		state = "paused (End resumes)"
	}
	text := fmt.Sprintf(" %d lines  %s ", total, state)

	p := painter.WithClip(r)
	p.Fill(r, ' ', b.style)
	p.DrawText(r.X, r.Y, text, b.style)
}
