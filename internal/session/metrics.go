package session

import (
	"sync"
	"time"
)

// Metrics collects interaction statistics for observability. Collection
// happens on the key-handling path, so implementations must be cheap.
type Metrics interface {
	// RecordKeystroke records one handled key in the given input mode.
	RecordKeystroke(mode string)
	// RecordEdit records a buffer mutation (insert, delete, kill, yank).
	RecordEdit(kind string)
	// RecordUndo records an undo or redo, distinguished by redo.
	RecordUndo(redo bool)
	// RecordHistoryNav records a step through the input history.
	RecordHistoryNav()
	// RecordSubmit records a submitted input with its byte length.
	RecordSubmit(length int)
	// RecordLayout records one input-layout computation and its duration.
	RecordLayout(duration time.Duration)
	// GetSnapshot returns the current metrics snapshot.
	GetSnapshot() MetricsSnapshot
	// Reset clears all metrics (useful for testing).
	Reset()
}

// MetricsSnapshot is a point-in-time view of collected metrics.
type MetricsSnapshot struct {
	Keystrokes      map[string]int64 // mode -> count
	Edits           map[string]int64 // kind -> count
	Undos           int64
	Redos           int64
	HistoryNavs     int64
	Submits         int64
	SubmittedBytes  int64
	Layouts         int64
	LayoutTotalTime time.Duration
	LayoutMaxTime   time.Duration
}

// NoOpMetrics discards all measurements.
type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordKeystroke(_ string)        {}
func (n *NoOpMetrics) RecordEdit(_ string)             {}
func (n *NoOpMetrics) RecordUndo(_ bool)               {}
func (n *NoOpMetrics) RecordHistoryNav()               {}
func (n *NoOpMetrics) RecordSubmit(_ int)              {}
func (n *NoOpMetrics) RecordLayout(_ time.Duration)    {}
func (n *NoOpMetrics) GetSnapshot() MetricsSnapshot    { return MetricsSnapshot{} }
func (n *NoOpMetrics) Reset()                          {}

// InMemoryMetrics is a thread-safe in-memory collector.
type InMemoryMetrics struct {
	mu             sync.RWMutex
	keystrokes     map[string]int64
	edits          map[string]int64
	undos          int64
	redos          int64
	historyNavs    int64
	submits        int64
	submittedBytes int64
	layouts        int64
	layoutTotal    time.Duration
	layoutMax      time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		keystrokes: make(map[string]int64),
		edits:      make(map[string]int64),
	}
}

func (m *InMemoryMetrics) RecordKeystroke(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keystrokes[mode]++
}

func (m *InMemoryMetrics) RecordEdit(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits[kind]++
}

func (m *InMemoryMetrics) RecordUndo(redo bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if redo {
		m.redos++
	} else {
		m.undos++
	}
}

func (m *InMemoryMetrics) RecordHistoryNav() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyNavs++
}

func (m *InMemoryMetrics) RecordSubmit(length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submits++
	m.submittedBytes += int64(length)
}

func (m *InMemoryMetrics) RecordLayout(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layouts++
	m.layoutTotal += duration
	if duration > m.layoutMax {
		m.layoutMax = duration
	}
}

func (m *InMemoryMetrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		Keystrokes:      make(map[string]int64, len(m.keystrokes)),
		Edits:           make(map[string]int64, len(m.edits)),
		Undos:           m.undos,
		Redos:           m.redos,
		HistoryNavs:     m.historyNavs,
		Submits:         m.submits,
		SubmittedBytes:  m.submittedBytes,
		Layouts:         m.layouts,
		LayoutTotalTime: m.layoutTotal,
		LayoutMaxTime:   m.layoutMax,
	}
	for k, v := range m.keystrokes {
		snapshot.Keystrokes[k] = v
	}
	for k, v := range m.edits {
		snapshot.Edits[k] = v
	}
	return snapshot
}

func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keystrokes = make(map[string]int64)
	m.edits = make(map[string]int64)
	m.undos = 0
	m.redos = 0
	m.historyNavs = 0
	m.submits = 0
	m.submittedBytes = 0
	m.layouts = 0
	m.layoutTotal = 0
	m.layoutMax = 0
}
