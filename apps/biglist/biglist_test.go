package biglist

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
)

func newTestApp(t *testing.T, args ...string) core.App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	app, err := New(args)
	if err != nil {
		t.Fatalf("New(%v) returned error: %v", args, err)
	}
	t.Cleanup(app.Stop)
	return app
}

func renderLine(buf [][]core.Cell, y int) string {
	var sb strings.Builder
	for _, c := range buf[y] {
		if c.Ch == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(c.Ch)
		}
	}
	return sb.String()
}

func TestBiglistRenderDimensions(t *testing.T) {
	app := newTestApp(t, "50")
	app.Resize(60, 12)
	buf := app.Render()
	if len(buf) != 12 || len(buf[0]) != 60 {
		t.Fatalf("unexpected buffer dimensions: %dx%d", len(buf), len(buf[0]))
	}
}

func TestBiglistHeaderAndFirstRows(t *testing.T) {
	app := newTestApp(t, "50")
	app.Resize(60, 12)
	buf := app.Render()

	if got := renderLine(buf, 1); !strings.Contains(got, "ROW") {
		t.Errorf("expected column header on line 1, got %q", got)
	}
	if got := renderLine(buf, 2); !strings.Contains(got, "alpha") {
		t.Errorf("expected first data row on line 2, got %q", got)
	}
	if got := renderLine(buf, 10); !strings.Contains(got, "of 50") {
		t.Errorf("expected ruler on bottom interior line, got %q", got)
	}
}

func TestBiglistScrollKeepsHeaderPinned(t *testing.T) {
	app := newTestApp(t, "200")
	app.Resize(60, 12)
	app.Render()

	for i := 0; i < 5; i++ {
		app.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	buf := app.Render()

	if got := renderLine(buf, 1); !strings.Contains(got, "ROW") {
		t.Errorf("header not pinned after scrolling, line 1 = %q", got)
	}
	if got := renderLine(buf, 10); !strings.Contains(got, "offset 5") {
		t.Errorf("ruler did not track scroll, got %q", got)
	}
}

func TestBiglistRejectsBadRowCount(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := New([]string{"many"}); err == nil {
		t.Fatal("expected error for non-numeric row count")
	}
	if _, err := New([]string{"-3"}); err == nil {
		t.Fatal("expected error for negative row count")
	}
}

func TestBiglistRowTextDeterministic(t *testing.T) {
	a := rowText(42)
	b := rowText(42)
	if a != b {
		t.Fatalf("rowText not deterministic: %q vs %q", a, b)
	}
	if !strings.Contains(a, "42") {
		t.Errorf("rowText(42) = %q, want the row number in it", a)
	}
}
