package adapter

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
)

// UIApp adapts a UIManager widget tree to the core.App interface. Apps
// compose one: build widgets into the manager, set OnResize to lay them
// out, and set OnStop to release backing resources.
type UIApp struct {
	title   string
	ui      *core.UIManager
	stopCh  chan struct{}
	refresh chan<- bool

	// OnResize lays the widget tree out for a new screen size. Called
	// after the manager itself has been resized.
	OnResize func(w, h int)

	// OnRun starts background work when the shell launches the app,
	// after the first Resize. A non-nil error aborts the run.
	OnRun func() error

	// OnPaste receives pasted input from the hosting shell.
	OnPaste func([]byte)

	// OnStop releases app resources. Runs once, when Stop is first
	// called.
	OnStop func()
}

func NewUIApp(title string, ui *core.UIManager) *UIApp {
	if ui == nil {
		ui = core.NewUIManager()
	}
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

func (a *UIApp) Run() error {
	if a.OnRun != nil {
		if err := a.OnRun(); err != nil {
			return err
		}
	}
	<-a.stopCh
	return nil
}

func (a *UIApp) Stop() {
	select {
	case <-a.stopCh:
		return
	default:
		close(a.stopCh)
	}
	if a.OnStop != nil {
		a.OnStop()
	}
}

func (a *UIApp) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	if a.OnResize != nil {
		a.OnResize(cols, rows)
	}
}

func (a *UIApp) Render() [][]core.Cell { return a.ui.Render() }

func (a *UIApp) GetTitle() string {
	if a.title == "" {
		return "texelview"
	}
	return a.title
}

func (a *UIApp) HandleKey(ev *tcell.EventKey) { a.ui.HandleKey(ev) }

func (a *UIApp) HandleMouse(ev *tcell.EventMouse) { a.ui.HandleMouse(ev) }

func (a *UIApp) HandlePaste(b []byte) {
	if a.OnPaste != nil {
		a.OnPaste(b)
	}
}

func (a *UIApp) SetRefreshNotifier(ch chan<- bool) {
	a.refresh = ch
	a.ui.SetRefreshNotifier(ch)
}

// UI exposes the manager for composition.
func (a *UIApp) UI() *core.UIManager { return a.ui }
