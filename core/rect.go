// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/rect.go
// Summary: Integer rectangle used for widget bounds, clips and dirty regions.

package core

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether two rects share any area.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Intersect returns the overlapping region of two rects. The result is empty
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rect covering both rects.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.W, o.X+o.W)
	y1 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// touchesOrOverlaps reports overlap or edge/corner adjacency. Adjacent rects
// merge into one block during dirty-rect compaction.
func (r Rect) touchesOrOverlaps(o Rect) bool {
	if r.Overlaps(o) {
		return true
	}
	rx1, ry1 := r.X+r.W, r.Y+r.H
	ox1, oy1 := o.X+o.W, o.Y+o.H
	horiz := (rx1 == o.X || ox1 == r.X) && !(r.Y >= oy1 || ry1 <= o.Y)
	vert := (ry1 == o.Y || oy1 == r.Y) && !(r.X >= ox1 || rx1 <= o.X)
	corner := (rx1 == o.X || ox1 == r.X) && (ry1 == o.Y || oy1 == r.Y)
	return horiz || vert || corner
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
