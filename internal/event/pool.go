package event

import (
	"sync"

	"depth_go/internal/domain"
)

// Pools for high-frequency event allocation. The book feed bursts hard
// around volatile prints; recycling events keeps GC pressure off the
// ingestion path.
//
// Usage:
//
//	ev := AcquireBookUpdateEvent()
//	ev.Update = parsed
//	// ... send through inbox, consumer processes ...
//	ReleaseBookUpdateEvent(ev)  // Return to pool after processing
var bookUpdatePool = sync.Pool{
	New: func() interface{} {
		return &BookUpdateEvent{}
	},
}

// AcquireBookUpdateEvent gets a BookUpdateEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireBookUpdateEvent() *BookUpdateEvent {
	return bookUpdatePool.Get().(*BookUpdateEvent)
}

// ReleaseBookUpdateEvent returns a BookUpdateEvent to the pool.
// Level slices keep their capacity so refilled events don't reallocate.
func ReleaseBookUpdateEvent(ev *BookUpdateEvent) {
	if ev == nil {
		return
	}
	ev.Update = domain.BookUpdate{
		Bids: ev.Update.Bids[:0],
		Asks: ev.Update.Asks[:0],
	}

	bookUpdatePool.Put(ev)
}

// TradeEvent pool
var tradePool = sync.Pool{
	New: func() interface{} {
		return &TradeEvent{}
	},
}

// AcquireTradeEvent gets a TradeEvent from the pool.
func AcquireTradeEvent() *TradeEvent {
	return tradePool.Get().(*TradeEvent)
}

// ReleaseTradeEvent returns a TradeEvent to the pool.
func ReleaseTradeEvent(ev *TradeEvent) {
	if ev == nil {
		return
	}
	ev.Trade = domain.Trade{}

	tradePool.Put(ev)
}

// Warmup pre-allocates event objects to reduce GC pressure at startup.
// It acquires and releases a batch of events.
func Warmup() {
	const batchSize = 256

	bookEvs := make([]*BookUpdateEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		bookEvs = append(bookEvs, AcquireBookUpdateEvent())
	}
	for _, ev := range bookEvs {
		ReleaseBookUpdateEvent(ev)
	}

	tradeEvs := make([]*TradeEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		tradeEvs = append(tradeEvs, AcquireTradeEvent())
	}
	for _, ev := range tradeEvs {
		ReleaseTradeEvent(ev)
	}
}
