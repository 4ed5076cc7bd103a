// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listview/cleaner.go
// Summary: Deferred destruction of off-window rows.

package listview

import "time"

// DefaultCleanupDelay is the quiescence interval before stale rows are
// destroyed when neither Options.CleanupDelay nor the configured
// cleanup_delay_ms override it.
const DefaultCleanupDelay = 100 * time.Millisecond

// cleaner delays row destruction until updates have paused. Every
// schedule cancels the pending timer and starts a new one, so a scroll
// burst coalesces into a single collection pass after the last update.
type cleaner struct {
	delay time.Duration
	timer *time.Timer
}

func newCleaner(delay time.Duration) *cleaner {
	if delay <= 0 {
		delay = DefaultCleanupDelay
	}
	return &cleaner{delay: delay}
}

// schedule arms the timer to run fn after the quiescence delay,
// replacing any pending run. fn is invoked on a timer goroutine and
// must do its own locking.
func (c *cleaner) schedule(fn func()) {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, fn)
}

// stop cancels any pending run. A callback already in flight may still
// execute; callers serialize with it through their own lock.
func (c *cleaner) stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
