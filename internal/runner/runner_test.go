// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runner/runner_test.go
// Summary: Exercises the standalone runner harness: event routing,
// refresh wakeups, paste collection and shutdown.

package runner_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/internal/runner"
)

type stubApp struct {
	mu           sync.Mutex
	renderCount  int
	resizes      [][2]int
	keys         []*tcell.EventKey
	mouses       []*tcell.EventMouse
	pastes       [][]byte
	stopCalled   bool
	stopCh       chan struct{}
	runStarted   chan struct{}
	runCompleted chan struct{}
	refresh      chan<- bool
	runErr       error
}

func newStubApp() *stubApp {
	return &stubApp{
		stopCh:       make(chan struct{}),
		runStarted:   make(chan struct{}),
		runCompleted: make(chan struct{}),
	}
}

func (a *stubApp) Run() error {
	close(a.runStarted)
	<-a.stopCh
	close(a.runCompleted)
	return a.runErr
}

func (a *stubApp) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCalled {
		return
	}
	a.stopCalled = true
	close(a.stopCh)
}

func (a *stubApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.resizes = append(a.resizes, [2]int{cols, rows})
	a.mu.Unlock()
}

func (a *stubApp) Render() [][]core.Cell {
	a.mu.Lock()
	a.renderCount++
	a.mu.Unlock()
	return [][]core.Cell{{{Ch: 'X'}}}
}

func (a *stubApp) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	a.keys = append(a.keys, ev)
	a.mu.Unlock()
}

func (a *stubApp) HandleMouse(ev *tcell.EventMouse) {
	a.mu.Lock()
	a.mouses = append(a.mouses, ev)
	a.mu.Unlock()
}

func (a *stubApp) HandlePaste(b []byte) {
	a.mu.Lock()
	a.pastes = append(a.pastes, append([]byte(nil), b...))
	a.mu.Unlock()
}

func (a *stubApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }
func (a *stubApp) GetTitle() string                  { return "stub" }

func (a *stubApp) waitRunStarted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runStarted:
	case <-time.After(time.Second):
		t.Fatal("app.Run was not invoked")
	}
}

func (a *stubApp) waitRunCompleted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runCompleted:
	case <-time.After(time.Second):
		t.Fatal("app was not stopped")
	}
}

func (a *stubApp) renderCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderCount
}

func (a *stubApp) lastResize() (int, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.resizes) == 0 {
		return 0, 0, false
	}
	last := a.resizes[len(a.resizes)-1]
	return last[0], last[1], true
}

func (a *stubApp) recordedKeys() []*tcell.EventKey {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*tcell.EventKey, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a *stubApp) recordedPastes() [][]byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]byte, len(a.pastes))
	copy(out, a.pastes)
	return out
}

func (a *stubApp) recordedMouse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.mouses)
}

func (a *stubApp) requestRefresh() {
	if a.refresh == nil {
		return
	}
	select {
	case a.refresh <- true:
	default:
	}
}

func startRun(t *testing.T, app *stubApp) (tcell.SimulationScreen, chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	runner.SetScreenFactory(func() (tcell.Screen, error) {
		return screen, nil
	})
	t.Cleanup(func() { runner.SetScreenFactory(nil) })

	errCh := make(chan error, 1)
	go func() {
		errCh <- runner.Run(func(args []string) (core.App, error) {
			return app, nil
		}, nil)
	}()
	app.waitRunStarted(t)
	return screen, errCh
}

func TestRunHandlesInputRefreshAndShutdown(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRun(t, app)

	if calls := app.renderCalls(); calls == 0 {
		t.Fatalf("expected initial render, got %d", calls)
	}

	app.requestRefresh()
	waitFor(func() bool {
		return app.renderCalls() > 1
	}, 500*time.Millisecond, t, "render after refresh")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	waitFor(func() bool {
		keys := app.recordedKeys()
		return len(keys) > 0 && keys[0].Rune() == 'x'
	}, 500*time.Millisecond, t, "key press to be handled")

	screen.PostEvent(tcell.NewEventResize(50, 12))
	waitFor(func() bool {
		w, h, ok := app.lastResize()
		return ok && w == 50 && h == 12
	}, 500*time.Millisecond, t, "resize event to be handled")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not exit after Ctrl-C")
	}

	app.waitRunCompleted(t)
	if !app.stopCalled {
		t.Fatal("app.Stop was not invoked")
	}
}

func TestRunCollectsBracketedPaste(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRun(t, app)

	screen.PostEvent(tcell.NewEventPaste(true))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'h', 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'i', 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	screen.PostEvent(tcell.NewEventPaste(false))

	waitFor(func() bool {
		p := app.recordedPastes()
		return len(p) == 1 && string(p[0]) == "hi\n"
	}, 500*time.Millisecond, t, "paste to be delivered")

	// Keys inside the paste must not reach normal key handling.
	if keys := app.recordedKeys(); len(keys) != 0 {
		t.Errorf("paste leaked %d key events", len(keys))
	}

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	<-errCh
}

func TestRunForwardsMouse(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRun(t, app)

	screen.PostEvent(tcell.NewEventMouse(3, 4, tcell.Button1, 0))
	waitFor(func() bool {
		return app.recordedMouse() > 0
	}, 500*time.Millisecond, t, "mouse event to be handled")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	<-errCh
}

func TestRunBuilderErrorPropagates(t *testing.T) {
	wantErr := errors.New("bad args")
	err := runner.Run(func(args []string) (core.App, error) {
		return nil, wantErr
	}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRunAppUnknownReturnsError(t *testing.T) {
	if err := runner.RunApp("does-not-exist", nil); err == nil {
		t.Fatal("expected error for unknown app")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"biglist", "dbview", "logview", "streamview"}
	got := runner.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func waitFor(cond func() bool, timeout time.Duration, t *testing.T, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}
