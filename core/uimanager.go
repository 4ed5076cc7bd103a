package core

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/theme"
)

// UIManager owns a widget tree and composes it into a cell buffer. Widgets
// are absolutely positioned; later entries (or higher ZIndex) draw on top.
type UIManager struct {
	mu      sync.Mutex // protects widgets, focus, capture, buffer
	dirtyMu sync.Mutex // protects dirty list and notifier

	W, H     int
	widgets  []Widget
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	capture  Widget
	buf      [][]Cell
	dirty    []Rect
}

func NewUIManager() *UIManager {
	tm := theme.Get()
	bg := tm.GetSemanticColor("bg.base")
	fg := tm.GetSemanticColor("text.primary")
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(bg).Foreground(fg),
	}
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	u.invalidateAllLocked()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.widgets = append(u.widgets, w)
	u.propagateInvalidator(w)
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) propagateInvalidator(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.propagateInvalidator(child) })
	}
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() {
		return
	}
	if u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// HandleKey routes a key event to the focused widget, falling back to
// Tab/Shift-Tab focus traversal.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	// A modal widget gets all input, including Tab.
	if u.focused != nil {
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() {
			if u.focused.HandleKey(ev) {
				u.flushAfterInputLocked()
				return true
			}
			return false
		}
	}

	if u.focused != nil && u.focused.HandleKey(ev) {
		u.flushAfterInputLocked()
		return true
	}

	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		if u.cycleFocusLocked(forward) {
			u.dirtyMu.Lock()
			u.invalidateAllLocked()
			u.dirtyMu.Unlock()
			return true
		}
	}

	return false
}

// flushAfterInputLocked requests a refresh after a widget consumed input.
// Widgets that did not invalidate anything get a full redraw so consumed
// input is never visually lost.
func (u *UIManager) flushAfterInputLocked() {
	u.dirtyMu.Lock()
	if len(u.dirty) == 0 {
		u.invalidateAllLocked()
	} else {
		u.requestRefreshLocked()
	}
	u.dirtyMu.Unlock()
}

func (u *UIManager) cycleFocusLocked(forward bool) bool {
	if fc, ok := u.focused.(FocusCycler); ok {
		if fc.CycleFocus(forward) {
			return true
		}
	}
	for _, w := range u.widgets {
		if fc, ok := w.(FocusCycler); ok && u.containsLocked(w, u.focused) {
			if fc.CycleFocus(forward) {
				return true
			}
		}
	}
	return u.cycleRootWidgetsLocked(forward)
}

func (u *UIManager) containsLocked(w, target Widget) bool {
	if w == target {
		return true
	}
	if cc, ok := w.(ChildContainer); ok {
		found := false
		cc.VisitChildren(func(child Widget) {
			if found {
				return
			}
			if u.containsLocked(child, target) {
				found = true
			}
		})
		return found
	}
	return false
}

func (u *UIManager) cycleRootWidgetsLocked(forward bool) bool {
	if len(u.widgets) == 0 {
		return false
	}

	currentIdx := -1
	for i, w := range u.widgets {
		if u.containsLocked(w, u.focused) {
			currentIdx = i
			break
		}
	}

	n := len(u.widgets)
	for offset := 1; offset <= n; offset++ {
		var idx int
		if forward {
			idx = (currentIdx + offset) % n
		} else {
			idx = (currentIdx - offset + n) % n
		}
		if idx < 0 {
			idx += n
		}
		w := u.widgets[idx]
		if w.Focusable() {
			u.focusLocked(w)
			return true
		}
	}

	return false
}

// HandleMouse routes mouse events for click-to-focus and capture drags.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	wasCaptured := u.capture != nil
	nowDown := buttons&tcell.Button1 != 0

	// Click outside a modal widget dismisses it.
	if u.focused != nil && nowDown && !wasCaptured {
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() {
			if !u.focused.HitTest(x, y) {
				modal.DismissModal()
				u.dirtyMu.Lock()
				u.invalidateAllLocked()
				u.dirtyMu.Unlock()
				return true
			}
		}
	}

	// Press starts capture over the hit widget.
	if !wasCaptured && nowDown {
		if w := u.topmostAtLocked(x, y); w != nil {
			u.focusLocked(w)
			u.capture = w
			if mw, ok := w.(MouseAware); ok {
				_ = mw.HandleMouse(ev)
			}
			u.dirtyMu.Lock()
			u.invalidateAllLocked()
			u.dirtyMu.Unlock()
			return true
		}
		return false
	}

	// While captured, forward everything; release on button up.
	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		if wasCaptured && !nowDown {
			u.capture = nil
		}
		u.dirtyMu.Lock()
		u.invalidateAllLocked()
		u.dirtyMu.Unlock()
		return true
	}

	// Wheel events go to the topmost widget under the cursor.
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := u.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok {
				_ = mw.HandleMouse(ev)
				u.dirtyMu.Lock()
				u.invalidateAllLocked()
				u.dirtyMu.Unlock()
				return true
			}
		}
	}

	// Motion with no buttons: hover tracking.
	if buttons == tcell.ButtonNone {
		if w := u.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok {
				if mw.HandleMouse(ev) {
					u.dirtyMu.Lock()
					u.requestRefreshLocked()
					u.dirtyMu.Unlock()
					return true
				}
			}
		}
	}

	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	sorted := u.sortedWidgetsLocked()
	for i := len(sorted) - 1; i >= 0; i-- {
		if w := deepHit(sorted[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

func deepHit(w Widget, x, y int) Widget {
	if ht, ok := w.(HitTester); ok {
		if dw := ht.WidgetAt(x, y); dw != nil {
			return dw
		}
	}
	if w.HitTest(x, y) {
		return w
	}
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res != nil {
				return
			}
			if dw := deepHit(child, x, y); dw != nil {
				res = dw
			}
		})
		return res
	}
	return nil
}

// Invalidate marks a region for redraw. Thread-safe.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{X: 0, Y: 0, W: u.W, H: u.H})
	u.requestRefreshLocked()
}

func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

func (u *UIManager) ensureBufferLocked() {
	w, h := u.W, u.H
	if u.buf != nil && len(u.buf) == h && (h == 0 || len(u.buf[0]) == w) {
		return
	}
	u.buf = NewBuffer(w, h, u.bgStyle)
}

func widgetZ(w Widget) int {
	if zi, ok := w.(ZIndexer); ok {
		return zi.ZIndex()
	}
	return 0
}

func (u *UIManager) sortedWidgetsLocked() []Widget {
	sorted := make([]Widget, len(u.widgets))
	copy(sorted, u.widgets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return widgetZ(sorted[i]) < widgetZ(sorted[j])
	})
	return sorted
}

// Render redraws dirty regions and returns the framebuffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()

	u.dirtyMu.Lock()
	pending := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	sorted := u.sortedWidgetsLocked()

	if len(pending) == 0 {
		full := Rect{X: 0, Y: 0, W: u.W, H: u.H}
		p := NewPainter(u.buf, full)
		p.Fill(full, ' ', u.bgStyle)
		for _, w := range sorted {
			w.Draw(p)
		}
		return u.buf
	}

	surface := Rect{X: 0, Y: 0, W: u.W, H: u.H}
	for _, clip := range mergeRects(pending) {
		clip = clip.Intersect(surface)
		if clip.Empty() {
			continue
		}
		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range sorted {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if (Rect{X: wx, Y: wy, W: ww, H: wh}).Overlaps(clip) {
				w.Draw(p)
			}
		}
	}
	return u.buf
}

// mergeRects unions overlapping or edge-adjacent rectangles into a compact set.
func mergeRects(in []Rect) []Rect {
	out := make([]Rect, 0, len(in))
	for _, r := range in {
		if r.Empty() {
			continue
		}
		out = append(out, r)
	}
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(out) && !changed; i++ {
			for j := i + 1; j < len(out) && !changed; j++ {
				if out[i].touchesOrOverlaps(out[j]) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					changed = true
				}
			}
		}
	}
	return out
}
