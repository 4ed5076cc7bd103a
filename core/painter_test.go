package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestPainterSetCellClipping(t *testing.T) {
	buf := NewBuffer(10, 5, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 2, Y: 1, W: 4, H: 2})

	p.SetCell(3, 2, 'A', tcell.StyleDefault)
	if buf[2][3].Ch != 'A' {
		t.Errorf("cell inside clip not written, got %q", buf[2][3].Ch)
	}

	p.SetCell(0, 0, 'B', tcell.StyleDefault)
	if buf[0][0].Ch == 'B' {
		t.Error("cell outside clip was written")
	}

	p.SetCell(6, 1, 'C', tcell.StyleDefault)
	if buf[1][6].Ch == 'C' {
		t.Error("cell right of clip was written")
	}

	// Out-of-buffer coordinates must not panic.
	p.SetCell(-1, -1, 'D', tcell.StyleDefault)
	p.SetCell(100, 100, 'E', tcell.StyleDefault)
}

func TestPainterFill(t *testing.T) {
	buf := NewBuffer(8, 4, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 8, H: 4})
	style := tcell.StyleDefault.Background(tcell.ColorBlue)

	p.Fill(Rect{X: 1, Y: 1, W: 3, H: 2}, '#', style)

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 1 && x < 4 && y >= 1 && y < 3
			if inside && buf[y][x].Ch != '#' {
				t.Errorf("cell (%d,%d) = %q, want '#'", x, y, buf[y][x].Ch)
			}
			if !inside && buf[y][x].Ch == '#' {
				t.Errorf("cell (%d,%d) filled outside rect", x, y)
			}
		}
	}
}

func TestPainterFillRespectsClip(t *testing.T) {
	buf := NewBuffer(8, 4, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 4, H: 4})

	p.Fill(Rect{X: 2, Y: 0, W: 6, H: 1}, 'x', tcell.StyleDefault)

	if buf[0][3].Ch != 'x' {
		t.Error("fill inside clip missing")
	}
	if buf[0][4].Ch == 'x' {
		t.Error("fill leaked past clip boundary")
	}
}

func TestPainterDrawText(t *testing.T) {
	buf := NewBuffer(10, 2, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 2})

	end := p.DrawText(1, 0, "hi", tcell.StyleDefault)
	if end != 3 {
		t.Errorf("DrawText returned %d, want 3", end)
	}
	if buf[0][1].Ch != 'h' || buf[0][2].Ch != 'i' {
		t.Errorf("text not written, got %q %q", buf[0][1].Ch, buf[0][2].Ch)
	}
}

func TestPainterDrawTextWideRunes(t *testing.T) {
	buf := NewBuffer(10, 1, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 1})

	end := p.DrawText(0, 0, "日本", tcell.StyleDefault)
	if end != 4 {
		t.Errorf("DrawText returned %d, want 4 (two double-width runes)", end)
	}
	if buf[0][0].Ch != '日' {
		t.Errorf("head rune = %q, want 日", buf[0][0].Ch)
	}
	if buf[0][1].Ch != 0 {
		t.Errorf("trailing cell of wide rune = %q, want placeholder", buf[0][1].Ch)
	}
	if buf[0][2].Ch != '本' {
		t.Errorf("second rune = %q, want 本", buf[0][2].Ch)
	}
}

func TestPainterWithClip(t *testing.T) {
	buf := NewBuffer(10, 5, tcell.StyleDefault)
	p := NewPainter(buf, Rect{X: 0, Y: 0, W: 10, H: 5})
	sub := p.WithClip(Rect{X: 2, Y: 2, W: 20, H: 20})

	got := sub.Clip()
	want := Rect{X: 2, Y: 2, W: 8, H: 3}
	if got != want {
		t.Errorf("sub clip = %+v, want %+v", got, want)
	}

	// Sub-painter shares the underlying buffer.
	sub.SetCell(3, 3, 'Z', tcell.StyleDefault)
	if buf[3][3].Ch != 'Z' {
		t.Error("sub-painter write did not reach shared buffer")
	}
}
