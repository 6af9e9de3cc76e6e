package view

import (
	"context"
	"log/slog"
	"time"

	"depth_go/internal/domain"
	"depth_go/internal/infra"
)

// DefaultRefreshInterval is the reference display cadence. Bursts of
// deltas landing between two ticks are folded into the book before a
// single projection, instead of projecting once per message.
const DefaultRefreshInterval = 150 * time.Millisecond

// Scheduler drives the projector at a fixed cadence decoupled from message
// arrival. It is a pure reader: book state comes in through the snapshot
// source, frames go out through the callback. The previous frame lives
// here and nowhere else.
type Scheduler struct {
	interval time.Duration
	depth    int
	source   func() domain.BookSnapshot
	onFrame  func(domain.DepthFrame)
	prev     domain.DepthFrame
}

// NewScheduler wires a snapshot source to a frame consumer.
func NewScheduler(interval time.Duration, depth int, source func() domain.BookSnapshot, onFrame func(domain.DepthFrame)) *Scheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Scheduler{
		interval: interval,
		depth:    depth,
		source:   source,
		onFrame:  onFrame,
	}
}

// Run ticks until the context is cancelled. Single goroutine only — the
// previous-frame state is unguarded.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("Refresh scheduler started", slog.Duration("interval", s.interval), slog.Int("depth", s.depth))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Refresh scheduler stopping...")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick projects the current book against the previous frame once.
func (s *Scheduler) Tick() {
	frame := Project(s.source(), s.prev, s.depth)
	s.prev = frame
	infra.GlobalMetrics.RecordFrame()

	if s.onFrame != nil {
		s.onFrame(frame)
	}
}
