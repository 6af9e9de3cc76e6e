package infra

import (
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordMessage()
	m.RecordMessage()
	m.RecordSequenceGap()
	m.RecordCrossedBook()
	m.RecordResubscribe()
	m.RecordFrame()
	m.RecordTrade()

	snap := m.Snapshot()

	if snap.MessagesApplied != 2 {
		t.Errorf("Expected 2 messages, got %d", snap.MessagesApplied)
	}
	if snap.SequenceGaps != 1 {
		t.Errorf("Expected 1 gap, got %d", snap.SequenceGaps)
	}
	if snap.CrossedBooks != 1 {
		t.Errorf("Expected 1 crossed book, got %d", snap.CrossedBooks)
	}
	if snap.Resubscribes != 1 {
		t.Errorf("Expected 1 resubscribe, got %d", snap.Resubscribes)
	}
	if snap.FramesRendered != 1 {
		t.Errorf("Expected 1 frame, got %d", snap.FramesRendered)
	}
	if snap.TradesSeen != 1 {
		t.Errorf("Expected 1 trade, got %d", snap.TradesSeen)
	}
}

func TestMetrics_Connections(t *testing.T) {
	m := &Metrics{}

	m.IncrementConnections()
	m.IncrementConnections()

	snap := m.Snapshot()
	if snap.ActiveConnections != 2 {
		t.Errorf("Expected 2 connections, got %d", snap.ActiveConnections)
	}

	m.DecrementConnections()
	snap = m.Snapshot()
	if snap.ActiveConnections != 1 {
		t.Errorf("Expected 1 connection, got %d", snap.ActiveConnections)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordMessage()
	m.RecordError()
	m.IncrementConnections()

	m.Reset()
	snap := m.Snapshot()

	if snap.MessagesApplied != 0 {
		t.Error("Expected 0 messages after reset")
	}
	if snap.ErrorsTotal != 0 {
		t.Error("Expected 0 errors after reset")
	}
	if snap.ActiveConnections != 0 {
		t.Error("Expected 0 connections after reset")
	}
}
