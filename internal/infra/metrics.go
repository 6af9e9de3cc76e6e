package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	messagesApplied atomic.Uint64
	sequenceGaps    atomic.Uint64
	crossedBooks    atomic.Uint64
	resubscribes    atomic.Uint64
	framesRendered  atomic.Uint64
	tradesSeen      atomic.Uint64
	errorsTotal     atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMessage records one successfully applied book message.
func (m *Metrics) RecordMessage() {
	m.messagesApplied.Add(1)
}

// RecordSequenceGap records a detected sequence-continuity fault.
func (m *Metrics) RecordSequenceGap() {
	m.sequenceGaps.Add(1)
}

// RecordCrossedBook records a detected crossed-book fault.
func (m *Metrics) RecordCrossedBook() {
	m.crossedBooks.Add(1)
}

// RecordResubscribe records one emitted resubscribe request.
func (m *Metrics) RecordResubscribe() {
	m.resubscribes.Add(1)
}

// RecordFrame records one projected display frame.
func (m *Metrics) RecordFrame() {
	m.framesRendered.Add(1)
}

// RecordTrade records one trade tick from the peer feed.
func (m *Metrics) RecordTrade() {
	m.tradesSeen.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MessagesApplied   uint64
	SequenceGaps      uint64
	CrossedBooks      uint64
	Resubscribes      uint64
	FramesRendered    uint64
	TradesSeen        uint64
	ErrorsTotal       uint64
	ActiveConnections int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MessagesApplied:   m.messagesApplied.Load(),
		SequenceGaps:      m.sequenceGaps.Load(),
		CrossedBooks:      m.crossedBooks.Load(),
		Resubscribes:      m.resubscribes.Load(),
		FramesRendered:    m.framesRendered.Load(),
		TradesSeen:        m.tradesSeen.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.messagesApplied.Store(0)
	m.sequenceGaps.Store(0)
	m.crossedBooks.Store(0)
	m.resubscribes.Store(0)
	m.framesRendered.Store(0)
	m.tradesSeen.Store(0)
	m.errorsTotal.Store(0)
	m.activeConnections.Store(0)
}
