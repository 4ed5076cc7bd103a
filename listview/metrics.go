// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/metrics.go
// Summary: Row-height measurement and derived viewport sizing.

package listview

import (
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/widgets"
)

// syncTotalsLocked re-derives the row count from the options. An
// explicit TotalRows wins over len(Rows); both are re-read on every
// update so callers can mutate either between updates.
func (lv *ListView) syncTotalsLocked() {
	if lv.opts.TotalRows > 0 {
		lv.totalRows = lv.opts.TotalRows
		return
	}
	lv.totalRows = len(lv.opts.Rows)
}

// measureLocked determines the uniform row height by building one
// throwaway row and asking its size. Returns false while measurement
// cannot complete yet (viewport not laid out, or the sample row reports
// no height); the caller aborts silently and retries on the next
// update.
func (lv *ListView) measureLocked() bool {
	if lv.Rect.W <= 0 || lv.Rect.H <= 0 {
		return false
	}
	w := lv.buildRowLocked(0)
	if w == nil {
		return false
	}
	h := 0
	if hs, ok := w.(core.HeightSizer); ok {
		h = hs.PreferredHeight(lv.Rect.W)
	} else {
		_, h = w.Size()
	}
	lv.destroyRowLocked(w)
	if h <= 0 {
		return false
	}
	lv.rowHeight = h
	return true
}

// recomputeLocked refreshes everything derived from row height, row
// count and viewport size: rows per screen, window capacity, the drift
// budget and the scroll extents. Attached rows are resized to the
// current viewport width.
func (lv *ListView) recomputeLocked() {
	lv.seenTotalRows = lv.totalRows
	if lv.rowHeight <= 0 {
		return
	}

	h := lv.Rect.H
	if h > 0 {
		lv.screenRows = ceilDiv(h, lv.rowHeight)
	} else {
		lv.screenRows = 0
	}
	lv.windowRows = 3 * lv.screenRows
	lv.drift = driftBudget(lv.screenRows, lv.rowHeight)

	lv.scrollState = lv.scrollState.
		WithContentHeight(lv.rowHeight * lv.totalRows).
		WithViewportHeight(h)

	lv.syncPinnedLocked()
	for i := range lv.pool.records {
		lv.pool.records[i].widget.Resize(lv.Rect.W, lv.rowHeight)
	}
}

// syncPinnedLocked creates or destroys the pinned first row so it
// exists exactly while pinning is enabled and the collection is
// non-empty. The pinned widget lives outside the recycling pool.
func (lv *ListView) syncPinnedLocked() {
	if !lv.opts.PinFirstRow {
		return
	}
	switch {
	case lv.totalRows > 0 && lv.pinned == nil && lv.rowHeight > 0:
		lv.pinned = lv.buildRowLocked(0)
		if lv.pinned != nil {
			lv.pinned.Resize(lv.Rect.W, lv.rowHeight)
		}
	case lv.totalRows == 0 && lv.pinned != nil:
		lv.destroyRowLocked(lv.pinned)
		lv.pinned = nil
	}
}

// teardownLocked retires every materialized row after the collection
// emptied. Rows go through the usual stale-then-collect path; the
// pinned row, if any, is destroyed immediately.
func (lv *ListView) teardownLocked() {
	lv.syncPinnedLocked()
	if lv.pool.liveCount() > 0 {
		lv.pool.markAllStale()
		lv.invalidateLocked()
	}
	lv.hasWindow = false
	lv.windowStart = 0
	lv.windowEnd = 0
	lv.windowCap = 0
}

func (lv *ListView) pinnedActiveLocked() bool {
	return lv.pinned != nil
}

func (lv *ListView) buildRowLocked(index int) core.Widget {
	if lv.opts.BuildRow != nil {
		return lv.opts.BuildRow(index)
	}
	if index >= 0 && index < len(lv.opts.Rows) {
		return widgets.NewTextRow(lv.opts.Rows[index])
	}
	return nil
}

func (lv *ListView) destroyRowLocked(w core.Widget) {
	if lv.opts.DestroyRow != nil {
		lv.opts.DestroyRow(w)
	}
}
