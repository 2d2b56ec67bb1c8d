package session

import "github.com/loomline/loomline/internal/editor"

// Options configures an interactive session. The zero value gives a
// working session: vim mode off, default capacities, no-op logging and
// metrics.
type Options struct {
	// VimMode enables modal key handling. When false every key is
	// interpreted with the plain chat bindings.
	VimMode bool
	// StartInNormal makes a vim-mode session begin in normal mode. The
	// default is insert mode, which is what a chat input wants.
	StartInNormal bool

	// HistorySize caps the input history ring.
	HistorySize int
	// UndoDepth caps the undo stack.
	UndoDepth int
	// KillRingCapacity caps the kill ring.
	KillRingCapacity int

	// Logger receives structured diagnostics. Defaults to NoOpLogger.
	Logger Logger
	// Metrics receives interaction statistics. Defaults to NoOpMetrics.
	Metrics Metrics
}

func (o *Options) setDefaults() {
	if o.HistorySize <= 0 {
		o.HistorySize = editor.DefaultHistoryCapacity
	}
	if o.UndoDepth <= 0 {
		o.UndoDepth = editor.DefaultUndoDepth
	}
	if o.KillRingCapacity <= 0 {
		o.KillRingCapacity = editor.DefaultKillRingCapacity
	}
	if o.Logger == nil {
		o.Logger = &NoOpLogger{}
	}
	if o.Metrics == nil {
		o.Metrics = &NoOpMetrics{}
	}
}
