// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/window.go
// Summary: Window placement math for the row recycler.

package listview

// windowAnchor returns the first row index to materialize for a scroll
// offset. The window starts one screenful above the visible band so
// small scrolls in either direction stay inside already-built rows.
func windowAnchor(offset, rowHeight, screenRows int) int {
	start := offset/rowHeight - screenRows
	if start < 0 {
		start = 0
	}
	return start
}

// windowStale reports whether the materialized window must be rebuilt
// for the current offset. A window is stale when none exists yet, when
// the caller forces it, or when the offset has drifted further from the
// last reconciled offset than the drift budget allows.
func windowStale(hasWindow, force bool, offset, lastOffset, budget int) bool {
	if !hasWindow || force {
		return true
	}
	d := offset - lastOffset
	if d < 0 {
		d = -d
	}
	return d > budget
}

// driftBudget returns the scroll distance, in cells, the view tolerates
// before re-anchoring the window: two thirds of a screenful. The window
// extends a full screenful past the visible band on each side, so
// recomputation always lands before the band can reach unbuilt rows.
func driftBudget(screenRows, rowHeight int) int {
	return (2 * screenRows * rowHeight) / 3
}

// ceilDiv rounds the quotient up. Used for rows-per-screen so a partial
// trailing row still counts.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
