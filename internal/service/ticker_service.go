package service

import (
	"context"
	"log/slog"
	"sync"

	"depth_go/internal/domain"
	"depth_go/internal/event"
	"depth_go/internal/infra"
)

// Journal is the sink for executed trades. Nil disables journaling.
type Journal interface {
	SaveTrade(trade *domain.Trade) error
}

// TickerService consumes the peer trade feed and maintains the last-price
// ticker: price, size, side, and the direction relative to the trade
// before it. No sequencing, no book semantics.
type TickerService struct {
	mu      sync.RWMutex
	last    domain.LastPrice
	inbox   chan *event.TradeEvent
	journal Journal
}

// NewTickerService creates a new TickerService instance
func NewTickerService(inboxSize int, journal Journal) *TickerService {
	return &TickerService{
		inbox:   make(chan *event.TradeEvent, inboxSize),
		journal: journal,
	}
}

// Inbox returns the channel for incoming trade events.
func (s *TickerService) Inbox() chan<- *event.TradeEvent {
	return s.inbox
}

// Run processes trades until the context is cancelled.
func (s *TickerService) Run(ctx context.Context) {
	slog.Info("Ticker service started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Ticker service stopping...")
			return
		case ev := <-s.inbox:
			s.processTrade(ev.Trade)
			event.ReleaseTradeEvent(ev)
		}
	}
}

func (s *TickerService) processTrade(trade domain.Trade) {
	s.mu.Lock()
	s.last = s.last.Apply(trade)
	s.mu.Unlock()

	infra.GlobalMetrics.RecordTrade()

	if s.journal != nil {
		if err := s.journal.SaveTrade(&trade); err != nil {
			// Journaling is best-effort; the ticker keeps running.
			slog.Warn("Trade journal write failed", slog.Any("error", err))
			infra.GlobalMetrics.RecordError()
		}
	}
}

// LastPrice returns the current ticker state (external read).
func (s *TickerService) LastPrice() domain.LastPrice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
