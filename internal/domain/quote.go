package domain

import "github.com/shopspring/decimal"

// PriceTick is a price scaled to the display granularity (one fractional
// digit). Integer keys make frame-to-frame row matching exact — comparing
// binary floats for equality would flicker rows as "new" spuriously.
type PriceTick int64

// tickExponent is the decimal exponent of one tick (0.1 price units).
const tickExponent = -1

// TickFromPrice rounds a price to the nearest display tick.
func TickFromPrice(p decimal.Decimal) PriceTick {
	return PriceTick(p.Shift(-tickExponent).Round(0).IntPart())
}

// Price converts the tick back to its decimal price.
func (t PriceTick) Price() decimal.Decimal {
	return decimal.New(int64(t), tickExponent)
}

// Quote is one [price, size] pair exactly as the exchange sends it.
// BTSE emits both quoted and bare numbers; decimal handles either.
type Quote [2]decimal.Decimal

func (q Quote) Price() decimal.Decimal { return q[0] }
func (q Quote) Size() decimal.Decimal  { return q[1] }

// NewQuote builds a Quote from string literals. Test helper friendly.
func NewQuote(price, size string) Quote {
	return Quote{decimal.RequireFromString(price), decimal.RequireFromString(size)}
}

// UpdateType discriminates full snapshots from incremental deltas.
type UpdateType string

const (
	UpdateSnapshot UpdateType = "snapshot"
	UpdateDelta    UpdateType = "delta"
)

// BookUpdate is one parsed order-book message from the feed.
type BookUpdate struct {
	Type       UpdateType
	Bids       []Quote
	Asks       []Quote
	SeqNum     uint64
	PrevSeqNum uint64
	Timestamp  int64
}
