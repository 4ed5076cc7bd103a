// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/cell.go
// Summary: Cell is the unit of rendered terminal output.

package core

import "github.com/gdamore/tcell/v2"

// Cell is a single rendered character with its style.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// NewBuffer allocates a w×h cell buffer filled with blanks in the given style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	buf := make([][]Cell, h)
	for y := 0; y < h; y++ {
		row := make([]Cell, w)
		for x := 0; x < w; x++ {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}
