// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/listview.go
// Summary: Virtualized list widget. Materializes a window of rows
// around the viewport and recycles rows that scroll out of it.

package listview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/config"
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

// ListView renders a large ordered collection of uniform-height rows
// inside a fixed viewport. Only rows near the visible band are ever
// built; rows leaving the window are hidden immediately and destroyed
// once scrolling pauses. The window spans three screenfuls, anchored
// one screenful above the visible band, so ordinary scrolling reuses
// already-built rows and rebuilds happen at a bounded rate.
//
// All exported methods are safe for concurrent use. A single mutex
// guards the widget state; the deferred cleanup timer takes the same
// lock.
type ListView struct {
	core.BaseWidget

	mu   sync.Mutex
	opts Options

	// Metrics. rowHeight 0 means not yet measured; screenRows 0 means
	// sizing has not been derived since the viewport last had a height.
	rowHeight     int
	totalRows     int
	seenTotalRows int
	screenRows    int
	windowRows    int
	drift         int

	scrollState scroll.State

	// Materialized window. windowCap records the capacity in effect
	// when the window was anchored; trims cover
	// [windowStart, windowStart+windowCap) even when the tail was
	// clipped by the row count.
	hasWindow   bool
	windowStart int
	windowEnd   int
	windowCap   int
	lastOffset  int

	pool    rowPool
	pinned  core.Widget
	cleanup *cleaner

	inv func(core.Rect)

	style        tcell.Style
	indicators   bool
	indicatorCfg scroll.IndicatorConfig
	wheelStep    int
}

// New creates a list view. The view stays empty until it has a size
// and Update has run; callers typically Resize it once and then call
// Update(false) whenever the collection may have changed.
func New(opts Options) *ListView {
	sys := config.System()
	if opts.CleanupDelay <= 0 {
		ms := sys.GetInt("listview", "cleanup_delay_ms", 100)
		opts.CleanupDelay = time.Duration(ms) * time.Millisecond
	}

	th := theme.Get()
	base := tcell.StyleDefault.
		Foreground(th.GetSemanticColor("text.primary")).
		Background(th.GetSemanticColor("bg.base"))
	indicator := tcell.StyleDefault.
		Foreground(th.GetSemanticColor("text.muted")).
		Background(th.GetSemanticColor("bg.base"))

	lv := &ListView{
		opts:         opts,
		rowHeight:    opts.RowHeight,
		cleanup:      newCleaner(opts.CleanupDelay),
		style:        base,
		indicators:   sys.GetBool("listview", "indicators", true),
		indicatorCfg: scroll.DefaultIndicatorConfig(indicator),
		wheelStep:    sys.GetInt("listview", "wheel_step", 3),
	}
	if lv.rowHeight < 0 {
		lv.rowHeight = 0
	}
	lv.SetFocusable(true)
	return lv
}

// Update re-derives metrics and, when needed, re-anchors the window of
// materialized rows around the current scroll offset. force rebuilds
// the window even when the offset has not drifted.
func (lv *ListView) Update(force bool) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.updateLocked(force)
}

// updateLocked is the single funnel every trigger goes through: react
// to at most one metric change, decide whether the window went stale,
// then reconcile and re-arm the collector.
func (lv *ListView) updateLocked(force bool) {
	lv.syncTotalsLocked()

	switch {
	case lv.rowHeight <= 0 && lv.totalRows > 0:
		if !lv.measureLocked() {
			return
		}
		lv.recomputeLocked()
	case lv.rowHeight > 0 && lv.totalRows != lv.seenTotalRows:
		lv.recomputeLocked()
	case lv.rowHeight > 0 && lv.screenRows == 0 && lv.Rect.H > 0:
		lv.recomputeLocked()
	}

	if lv.totalRows == 0 {
		lv.teardownLocked()
		lv.rescheduleLocked()
		return
	}
	if lv.rowHeight <= 0 || lv.screenRows <= 0 {
		return
	}

	offset := lv.scrollState.Offset
	if windowStale(lv.hasWindow, force, offset, lv.lastOffset, lv.drift) {
		lv.reconcileLocked(windowAnchor(offset, lv.rowHeight, lv.screenRows))
	}
	lv.rescheduleLocked()
}

// reconcileLocked re-anchors the window at newStart: builds rows that
// entered it and re-tags rows that left it as stale. Stale rows stop
// rendering immediately but are destroyed later, off the hot path.
// Trim ranges come from the previously recorded anchor and capacity,
// never from scanning widget state.
func (lv *ListView) reconcileLocked(newStart int) {
	newEnd := newStart + lv.windowRows
	if newEnd > lv.totalRows {
		newEnd = lv.totalRows
	}

	prevStart, prevEnd := 0, 0
	hadWindow := lv.hasWindow
	if hadWindow {
		prevStart = lv.windowStart
		prevEnd = lv.windowStart + lv.windowCap
	}
	pinned := lv.pinnedActiveLocked()

	for i := newStart; i < newEnd; i++ {
		if pinned && i == 0 {
			continue
		}
		if lv.pool.liveAt(i) != nil {
			continue
		}
		w := lv.buildRowLocked(i)
		if w == nil {
			continue
		}
		w.Resize(lv.Rect.W, lv.rowHeight)
		lv.pool.attach(i, w)
	}

	if hadWindow {
		hi := newStart
		if hi > prevEnd {
			hi = prevEnd
		}
		for i := prevStart; i < hi; i++ {
			if pinned && i == 0 {
				continue
			}
			lv.pool.markStale(i)
		}
		lo := newEnd
		if lo < prevStart {
			lo = prevStart
		}
		for i := lo; i < prevEnd; i++ {
			if pinned && i == 0 {
				continue
			}
			lv.pool.markStale(i)
		}
	}

	lv.hasWindow = true
	lv.windowStart = newStart
	lv.windowEnd = newEnd
	lv.windowCap = lv.windowRows
	lv.lastOffset = lv.scrollState.Offset

	if lv.opts.AfterReconcile != nil {
		lv.opts.AfterReconcile()
	}
	lv.invalidateLocked()
}

// rescheduleLocked re-arms the deferred collector while stale rows are
// pending. Re-arming on every update coalesces a scroll burst into a
// single collection pass once the updates settle.
func (lv *ListView) rescheduleLocked() {
	if !lv.pool.hasStale() {
		return
	}
	lv.cleanup.schedule(lv.collect)
}

// collect runs on the cleaner's timer goroutine.
func (lv *ListView) collect() {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.pool.collectStale(lv.destroyRowLocked)
}

// Rebuild discards every materialized row, including the pinned one,
// and rebuilds the window from the current collection. Use it after
// editing row content in place; scroll position is preserved.
func (lv *ListView) Rebuild() {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.rebuildLocked()
}

func (lv *ListView) rebuildLocked() {
	lv.pool.markAllStale()
	lv.hasWindow = false
	if lv.pinned != nil {
		lv.destroyRowLocked(lv.pinned)
		lv.pinned = nil
	}
	lv.syncTotalsLocked()
	lv.syncPinnedLocked()
	lv.updateLocked(false)
	lv.rescheduleLocked()
	lv.invalidateLocked()
}

// TrimFront drops the first n text rows and shifts the scroll offset so
// the surviving content keeps its place on screen. Tailing views use it
// to cap scrollback. Without backing rows it is a no-op.
func (lv *ListView) TrimFront(n int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if n <= 0 || len(lv.opts.Rows) == 0 {
		return
	}
	if n > len(lv.opts.Rows) {
		n = len(lv.opts.Rows)
	}
	lv.opts.Rows = append([]string(nil), lv.opts.Rows[n:]...)
	lv.scrollState = lv.scrollState.ScrollToTop().ScrollBy(lv.scrollState.Offset - n*lv.rowHeight)
	lv.rebuildLocked()
}

// EnsureRowVisible scrolls the minimum distance that brings the row
// fully into view, then refreshes the window. Out-of-range indices are
// ignored.
func (lv *ListView) EnsureRowVisible(index int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if lv.rowHeight <= 0 || index < 0 || index >= lv.totalRows {
		return
	}
	before := lv.scrollState.Offset
	lv.scrollState = lv.scrollState.ScrollToSpan(index*lv.rowHeight, lv.rowHeight)
	lv.updateLocked(false)
	if lv.scrollState.Offset != before {
		lv.invalidateLocked()
	}
}

// RowIndexAt maps a viewport-relative y coordinate to the row index
// rendered there, or -1 when y lies outside the viewport or past the
// last row.
func (lv *ListView) RowIndexAt(y int) int {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if lv.rowHeight <= 0 || y < 0 || y >= lv.Rect.H {
		return -1
	}
	index := (lv.scrollState.Offset + y) / lv.rowHeight
	if index >= lv.totalRows {
		return -1
	}
	return index
}

// RowAt returns the live widget materialized for the row, or nil when
// the row is outside the window.
func (lv *ListView) RowAt(index int) core.Widget {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if lv.pinnedActiveLocked() && index == 0 {
		return lv.pinned
	}
	return lv.pool.liveAt(index)
}

// ScrollPosition returns the current offset in cells from the top of
// the content.
func (lv *ListView) ScrollPosition() int {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return lv.scrollState.Offset
}

// AtBottom reports whether the viewport rests at the end of the
// content. An empty or unmeasured list counts as at the bottom.
func (lv *ListView) AtBottom() bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	return !lv.scrollState.CanScrollDown()
}

// ScrollTo jumps to an absolute offset in cells, clamped to the
// scrollable range, and refreshes the window.
func (lv *ListView) ScrollTo(offset int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	before := lv.scrollState.Offset
	lv.scrollState = lv.scrollState.ScrollToTop().ScrollBy(offset)
	lv.updateLocked(false)
	if lv.scrollState.Offset != before {
		lv.invalidateLocked()
	}
}

// Window returns the half-open index range of currently materialized
// rows. Before the first reconcile it returns (0, 0).
func (lv *ListView) Window() (start, end int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if !lv.hasWindow {
		return 0, 0
	}
	return lv.windowStart, lv.windowEnd
}

// TotalRows returns the current row count.
func (lv *ListView) TotalRows() int {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.syncTotalsLocked()
	return lv.totalRows
}

// SetRowHeight changes the uniform row height. The row at the top of
// the viewport stays at the top. Non-positive or unchanged heights are
// ignored.
func (lv *ListView) SetRowHeight(h int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if h <= 0 || h == lv.rowHeight {
		return
	}
	top := 0
	if lv.rowHeight > 0 {
		top = lv.scrollState.Offset / lv.rowHeight
	}
	lv.rowHeight = h
	lv.recomputeLocked()
	lv.scrollState = lv.scrollState.ScrollToTop().ScrollBy(top * h)
	lv.updateLocked(true)
	lv.invalidateLocked()
}

// SetRows replaces the text row content and refreshes. Rows already
// materialized keep their widgets; call Rebuild after editing content
// in place.
func (lv *ListView) SetRows(rows []string) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.opts.Rows = rows
	lv.updateLocked(false)
	lv.invalidateLocked()
}

// SetTotalRows sets the explicit row count override used together with
// a row builder. Zero removes the override.
func (lv *ListView) SetTotalRows(n int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if n < 0 {
		n = 0
	}
	lv.opts.TotalRows = n
	lv.updateLocked(false)
	lv.invalidateLocked()
}

// AppendRows adds text rows at the end and refreshes.
func (lv *ListView) AppendRows(rows ...string) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.opts.Rows = append(lv.opts.Rows, rows...)
	lv.updateLocked(false)
	lv.invalidateLocked()
}

// Resize updates the viewport and re-derives everything that depends
// on it: rows per screen, window capacity and drift budget follow the
// height, row widgets follow the width.
func (lv *ListView) Resize(w, h int) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.BaseWidget.Resize(w, h)
	if lv.rowHeight > 0 {
		lv.recomputeLocked()
	}
	lv.updateLocked(false)
	lv.invalidateLocked()
}

// HandleKey implements list navigation: Up/Down move one row,
// PgUp/PgDn one viewport, Home/End jump to either end.
func (lv *ListView) HandleKey(ev *tcell.EventKey) bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	step := lv.rowHeight
	if step <= 0 {
		step = 1
	}

	switch ev.Key() {
	case tcell.KeyUp:
		return lv.scrollByLocked(-step)
	case tcell.KeyDown:
		return lv.scrollByLocked(step)
	case tcell.KeyPgUp:
		return lv.scrollByLocked(-lv.Rect.H)
	case tcell.KeyPgDn:
		return lv.scrollByLocked(lv.Rect.H)
	case tcell.KeyHome:
		return lv.scrollEndLocked(false)
	case tcell.KeyEnd:
		return lv.scrollEndLocked(true)
	}
	return false
}

// HandleMouse scrolls on wheel events over the widget.
func (lv *ListView) HandleMouse(ev *tcell.EventMouse) bool {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	x, y := ev.Position()
	if !lv.Rect.Contains(x, y) {
		return false
	}

	step := lv.wheelStep
	if step <= 0 {
		step = 1
	}
	unit := lv.rowHeight
	if unit <= 0 {
		unit = 1
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return lv.scrollByLocked(-step * unit)
	case ev.Buttons()&tcell.WheelDown != 0:
		return lv.scrollByLocked(step * unit)
	}
	return false
}

// scrollByLocked moves the offset, refreshes the window and reports
// the event consumed. Movement at an edge still counts as handled.
func (lv *ListView) scrollByLocked(delta int) bool {
	before := lv.scrollState.Offset
	lv.scrollState = lv.scrollState.ScrollBy(delta)
	lv.updateLocked(false)
	if lv.scrollState.Offset != before {
		lv.invalidateLocked()
	}
	return true
}

func (lv *ListView) scrollEndLocked(bottom bool) bool {
	before := lv.scrollState.Offset
	if bottom {
		lv.scrollState = lv.scrollState.ScrollToBottom()
	} else {
		lv.scrollState = lv.scrollState.ScrollToTop()
	}
	lv.updateLocked(false)
	if lv.scrollState.Offset != before {
		lv.invalidateLocked()
	}
	return true
}

// Draw paints the visible slice of the window: background, live rows
// at their content positions, the pinned row fixed at the viewport
// top, then scroll indicators.
func (lv *ListView) Draw(p *core.Painter) {
	lv.mu.Lock()
	defer lv.mu.Unlock()

	r := lv.Rect
	if r.W <= 0 || r.H <= 0 {
		return
	}
	p.Fill(r, ' ', lv.EffectiveStyle(lv.style))

	if lv.rowHeight > 0 {
		clipped := p.WithClip(r)
		offset := lv.scrollState.Offset
		for i := range lv.pool.records {
			rec := &lv.pool.records[i]
			if rec.state != rowLive {
				continue
			}
			y := r.Y + rec.index*lv.rowHeight - offset
			if y+lv.rowHeight <= r.Y || y >= r.Y+r.H {
				continue
			}
			rec.widget.SetPosition(r.X, y)
			rec.widget.Draw(clipped)
		}
		if lv.pinned != nil {
			lv.pinned.SetPosition(r.X, r.Y)
			lv.pinned.Draw(clipped)
		}
	}

	if lv.indicators {
		scroll.DrawIndicators(p, r, lv.scrollState, lv.indicatorCfg)
	}
}

// Close stops the deferred collector and destroys every materialized
// row. The view must not be used afterwards.
func (lv *ListView) Close() {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.cleanup.stop()
	lv.pool.drain(lv.destroyRowLocked)
	if lv.pinned != nil {
		lv.destroyRowLocked(lv.pinned)
		lv.pinned = nil
	}
	lv.hasWindow = false
}

// SetInvalidator wires the view into its host's damage tracking.
func (lv *ListView) SetInvalidator(inv func(core.Rect)) {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	lv.inv = inv
}

func (lv *ListView) invalidateLocked() {
	if lv.inv != nil {
		lv.inv(lv.Rect)
	}
}
