// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/app.go
// Summary: App contract hosted by runners and panes.

package core

import "github.com/gdamore/tcell/v2"

// App is a self-contained program that renders into a cell buffer. Run blocks
// until Stop is called or the app finishes; Render may be called from the
// host loop at any time after Resize.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
	GetTitle() string
}

// PasteHandler apps receive bracketed paste payloads.
type PasteHandler interface {
	HandlePaste(data []byte)
}

// MouseHandler apps receive raw mouse events from the host loop.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}
