package listview

import (
	"time"

	"github.com/framegrace/texelview/core"
)

// RowBuilder produces the widget for a row index.
type RowBuilder func(index int) core.Widget

// Options configures a ListView. Exactly one of Rows/BuildRow governs
// row content; BuildRow takes precedence when both are set.
type Options struct {
	// RowHeight is the uniform height of every row in cells. Zero means
	// unknown: the view builds one throwaway row on the first update and
	// measures it.
	RowHeight int

	// Rows holds plain text row content. Used only when BuildRow is nil;
	// each row becomes a widgets.TextRow.
	Rows []string

	// TotalRows overrides len(Rows) as the row count when > 0. Use it
	// with BuildRow for collections that are generated rather than held
	// in memory. Zero means "derive from Rows".
	TotalRows int

	// BuildRow builds the widget for a row index. Returning nil for a
	// valid index is a caller contract violation; the view renders
	// nothing for that slot.
	BuildRow RowBuilder

	// DestroyRow, when set, is called for each row widget before the
	// view drops it.
	DestroyRow func(core.Widget)

	// AfterReconcile, when set, runs after freshly entered rows have
	// been attached. It is called with the view's internal lock held;
	// it must not call back into the view.
	AfterReconcile func()

	// PinFirstRow keeps row 0 alive outside the recycling window and
	// draws it fixed at the top of the viewport.
	PinFirstRow bool

	// CleanupDelay is the quiescence interval before off-window rows
	// are destroyed. Zero selects the configured default.
	CleanupDelay time.Duration
}
