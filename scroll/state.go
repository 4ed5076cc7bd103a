// Copyright 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/state.go
// Summary: Immutable scroll state arithmetic shared by scrollable widgets.
// Offsets are clamped so the viewport never runs past the content.

package scroll

// State describes a vertical scroll position over content of a known
// height. All methods are value-returning; a State is never mutated in
// place. Units are whatever the caller measures in (typically terminal
// rows, or cells for widgets with taller rows).
type State struct {
	Offset         int
	ContentHeight  int
	ViewportHeight int
}

// NewState creates a scroll state at the top of the content.
func NewState(contentHeight, viewportHeight int) State {
	s := State{ContentHeight: contentHeight, ViewportHeight: viewportHeight}
	return s.clamp()
}

func (s State) maxOffset() int {
	m := s.ContentHeight - s.ViewportHeight
	if m < 0 {
		m = 0
	}
	return m
}

func (s State) clamp() State {
	if max := s.maxOffset(); s.Offset > max {
		s.Offset = max
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// WithContentHeight returns the state with a new content height,
// re-clamping the offset.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = h
	return s.clamp()
}

// WithViewportHeight returns the state with a new viewport height,
// re-clamping the offset.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = h
	return s.clamp()
}

// ScrollBy moves the offset by delta (positive = down).
func (s State) ScrollBy(delta int) State {
	s.Offset += delta
	return s.clamp()
}

// ScrollTo moves minimally so the given row is inside the viewport.
// Rows already visible leave the state unchanged.
func (s State) ScrollTo(row int) State {
	if row < s.Offset {
		s.Offset = row
	} else if row >= s.Offset+s.ViewportHeight {
		s.Offset = row - s.ViewportHeight + 1
	}
	return s.clamp()
}

// ScrollToSpan moves minimally so the span [top, top+height) is fully
// visible. A span taller than the viewport keeps its top edge visible.
func (s State) ScrollToSpan(top, height int) State {
	if height < 1 {
		height = 1
	}
	if top < s.Offset {
		s.Offset = top
	} else if top+height > s.Offset+s.ViewportHeight {
		s.Offset = top + height - s.ViewportHeight
		if s.Offset > top {
			s.Offset = top
		}
	}
	return s.clamp()
}

// ScrollToCentered centers the given row in the viewport.
func (s State) ScrollToCentered(row int) State {
	s.Offset = row - s.ViewportHeight/2
	return s.clamp()
}

// ScrollToTop moves to the start of the content.
func (s State) ScrollToTop() State {
	s.Offset = 0
	return s
}

// ScrollToBottom moves to the end of the content.
func (s State) ScrollToBottom() State {
	s.Offset = s.maxOffset()
	return s
}

// IsRowVisible reports whether the row is inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// CanScroll reports whether the content overflows the viewport.
func (s State) CanScroll() bool {
	return s.ContentHeight > s.ViewportHeight
}

// CanScrollUp reports whether content exists above the viewport.
func (s State) CanScrollUp() bool {
	return s.Offset > 0
}

// CanScrollDown reports whether content exists below the viewport.
func (s State) CanScrollDown() bool {
	return s.Offset < s.maxOffset()
}
