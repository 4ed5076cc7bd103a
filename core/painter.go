// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/painter.go
// Summary: Clipped cell painter widgets draw through.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter writes cells into a shared buffer, restricted to a clip region.
// Widgets receive a Painter in Draw and must not retain it.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter wraps a buffer with a clip region. Cells outside the clip or the
// buffer are silently dropped.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// WithClip returns a painter on the same buffer whose clip is the
// intersection of the current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// Clip returns the painter's current clip region.
func (p *Painter) Clip() Rect {
	return p.clip
}

// SetCell writes a single cell if it falls inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) {
		return
	}
	row := p.buf[y]
	if x < 0 || x >= len(row) {
		return
	}
	row[x] = Cell{Ch: ch, Style: style}
}

// Fill writes ch into every cell of r that falls inside the clip.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	area := p.clip.Intersect(r)
	if area.Empty() {
		return
	}
	for y := area.Y; y < area.Y+area.H; y++ {
		if y < 0 || y >= len(p.buf) {
			continue
		}
		row := p.buf[y]
		for x := area.X; x < area.X+area.W; x++ {
			if x < 0 || x >= len(row) {
				continue
			}
			row[x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawBorder draws a single-cell border along the edges of r.
// Charset order is h, v, tl, tr, bl, br.
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 1 || r.H < 1 {
		return
	}
	h, v := charset[0], charset[1]
	x2 := r.X + r.W - 1
	y2 := r.Y + r.H - 1
	for x := r.X + 1; x < x2; x++ {
		p.SetCell(x, r.Y, h, style)
		p.SetCell(x, y2, h, style)
	}
	for y := r.Y + 1; y < y2; y++ {
		p.SetCell(r.X, y, v, style)
		p.SetCell(x2, y, v, style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(x2, r.Y, charset[3], style)
	p.SetCell(r.X, y2, charset[4], style)
	p.SetCell(x2, y2, charset[5], style)
}

// DrawText writes a string starting at (x, y), advancing by display width.
// Wide runes occupy two columns; the trailing column is written as a zero
// rune so the screen driver leaves the glyph intact. Returns the x position
// after the last written rune.
func (p *Painter) DrawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		p.SetCell(x, y, ch, style)
		for i := 1; i < w; i++ {
			p.SetCell(x+i, y, 0, style)
		}
		x += w
	}
	return x
}
