// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/pool.go
// Summary: Bookkeeping for materialized row widgets.

package listview

import "github.com/framegrace/texelview/core"

type rowState uint8

const (
	rowLive rowState = iota
	rowStale
)

// rowRecord ties a built row widget to the index it was built for. The
// index is recorded at attach time and never recomputed from widget
// state.
type rowRecord struct {
	index  int
	state  rowState
	widget core.Widget
}

// rowPool holds every materialized row, live and stale alike. Stale
// rows stay attached (but hidden) until the deferred collector runs, so
// a window that swings back quickly costs a rebuild, not a crash.
// Windows are small, so lookups are plain linear scans.
type rowPool struct {
	records []rowRecord
}

// liveAt returns the live widget for index, or nil. A stale record for
// the same index never matches: once marked, it is collection-bound and
// a returning index gets a fresh widget.
func (p *rowPool) liveAt(index int) core.Widget {
	for i := range p.records {
		if p.records[i].index == index && p.records[i].state == rowLive {
			return p.records[i].widget
		}
	}
	return nil
}

func (p *rowPool) attach(index int, w core.Widget) {
	p.records = append(p.records, rowRecord{index: index, state: rowLive, widget: w})
}

// markStale re-tags the live record for index, if any. Already-stale
// records are left alone.
func (p *rowPool) markStale(index int) {
	for i := range p.records {
		if p.records[i].index == index && p.records[i].state == rowLive {
			p.records[i].state = rowStale
			return
		}
	}
}

func (p *rowPool) markAllStale() {
	for i := range p.records {
		p.records[i].state = rowStale
	}
}

// collectStale drops every stale record, invoking destroy on each
// widget first. Returns the number of records collected.
func (p *rowPool) collectStale(destroy func(core.Widget)) int {
	kept := p.records[:0]
	n := 0
	for _, rec := range p.records {
		if rec.state == rowStale {
			if destroy != nil {
				destroy(rec.widget)
			}
			n++
			continue
		}
		kept = append(kept, rec)
	}
	p.records = kept
	return n
}

// drain empties the pool, invoking destroy on every widget regardless
// of state.
func (p *rowPool) drain(destroy func(core.Widget)) {
	for i := range p.records {
		if destroy != nil {
			destroy(p.records[i].widget)
		}
	}
	p.records = nil
}

func (p *rowPool) hasStale() bool {
	for i := range p.records {
		if p.records[i].state == rowStale {
			return true
		}
	}
	return false
}

func (p *rowPool) liveCount() int {
	n := 0
	for i := range p.records {
		if p.records[i].state == rowLive {
			n++
		}
	}
	return n
}
