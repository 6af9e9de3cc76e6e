package event

import "depth_go/internal/domain"

// Event is anything the feed workers push toward a consumer inbox.
type Event interface {
	GetType() string
}

// BookUpdateEvent wraps one parsed snapshot/delta message on its way from
// the transport worker to the reconciliation engine.
type BookUpdateEvent struct {
	Update domain.BookUpdate
}

func (e *BookUpdateEvent) GetType() string { return string(e.Update.Type) }

// TradeEvent wraps one executed trade from the trade-history feed.
type TradeEvent struct {
	Trade domain.Trade
}

func (e *TradeEvent) GetType() string { return "trade" }
