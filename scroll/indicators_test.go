// Copyright 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
)

func createTestBuffer(w, h int) [][]core.Cell {
	return core.NewBuffer(w, h, tcell.StyleDefault)
}

func getCell(buf [][]core.Cell, x, y int) rune {
	if y < 0 || y >= len(buf) || x < 0 || x >= len(buf[y]) {
		return 0
	}
	return buf[y][x].Ch
}

func TestDrawIndicatorsBothDirections(t *testing.T) {
	buf := createTestBuffer(50, 20)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 50, H: 20})

	rect := core.Rect{X: 5, Y: 2, W: 40, H: 10}
	state := NewState(100, 10).ScrollBy(30)

	DrawIndicatorsSimple(painter, rect, state, tcell.StyleDefault)

	upX, upY := 5+40-1, 2
	if ch := getCell(buf, upX, upY); ch != DefaultUpGlyph {
		t.Errorf("up indicator at (%d,%d) = %c, want %c", upX, upY, ch, DefaultUpGlyph)
	}
	downX, downY := 5+40-1, 2+10-1
	if ch := getCell(buf, downX, downY); ch != DefaultDownGlyph {
		t.Errorf("down indicator at (%d,%d) = %c, want %c", downX, downY, ch, DefaultDownGlyph)
	}
}

func TestDrawIndicatorsAtTop(t *testing.T) {
	buf := createTestBuffer(50, 20)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 50, H: 20})

	rect := core.Rect{X: 0, Y: 0, W: 40, H: 10}
	state := NewState(100, 10)

	DrawIndicatorsSimple(painter, rect, state, tcell.StyleDefault)

	if ch := getCell(buf, 39, 0); ch == DefaultUpGlyph {
		t.Error("up indicator drawn at top of content")
	}
	if ch := getCell(buf, 39, 9); ch != DefaultDownGlyph {
		t.Errorf("down indicator = %c, want %c", ch, DefaultDownGlyph)
	}
}

func TestDrawIndicatorsContentFits(t *testing.T) {
	buf := createTestBuffer(50, 20)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 50, H: 20})

	rect := core.Rect{X: 0, Y: 0, W: 40, H: 10}
	state := NewState(5, 10)

	DrawIndicatorsSimple(painter, rect, state, tcell.StyleDefault)

	if ch := getCell(buf, 39, 0); ch == DefaultUpGlyph {
		t.Error("indicator drawn for content that fits")
	}
	if ch := getCell(buf, 39, 9); ch == DefaultDownGlyph {
		t.Error("indicator drawn for content that fits")
	}
}

func TestDrawIndicatorsLeftPosition(t *testing.T) {
	buf := createTestBuffer(50, 20)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 50, H: 20})

	rect := core.Rect{X: 5, Y: 2, W: 40, H: 10}
	state := NewState(100, 10).ScrollBy(30)

	cfg := DefaultIndicatorConfig(tcell.StyleDefault)
	cfg.Position = IndicatorLeft
	DrawIndicators(painter, rect, state, cfg)

	if ch := getCell(buf, 5, 2); ch != DefaultUpGlyph {
		t.Errorf("left up indicator = %c, want %c", ch, DefaultUpGlyph)
	}
	if ch := getCell(buf, 5, 11); ch != DefaultDownGlyph {
		t.Errorf("left down indicator = %c, want %c", ch, DefaultDownGlyph)
	}
}

func TestDrawIndicatorsCustomGlyphs(t *testing.T) {
	buf := createTestBuffer(50, 20)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 50, H: 20})

	rect := core.Rect{X: 0, Y: 0, W: 10, H: 5}
	state := NewState(100, 5).ScrollBy(30)

	cfg := IndicatorConfig{Style: tcell.StyleDefault, UpGlyph: '^', DownGlyph: 'v'}
	DrawIndicators(painter, rect, state, cfg)

	if ch := getCell(buf, 9, 0); ch != '^' {
		t.Errorf("custom up glyph = %c, want ^", ch)
	}
	if ch := getCell(buf, 9, 4); ch != 'v' {
		t.Errorf("custom down glyph = %c, want v", ch)
	}
}

func TestDrawIndicatorsEmptyRect(t *testing.T) {
	buf := createTestBuffer(10, 10)
	painter := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 10, H: 10})

	// Must not panic or draw anything.
	DrawIndicatorsSimple(painter, core.Rect{X: 0, Y: 0, W: 0, H: 0}, NewState(100, 10).ScrollBy(5), tcell.StyleDefault)
}
