package domain

import "github.com/shopspring/decimal"

// BookSnapshot is a consistent point-in-time copy of both sides, tagged
// with the sequence number of the last applied message. Maps are owned by
// the receiver; the engine never mutates a snapshot after handing it out.
type BookSnapshot struct {
	Bids   map[PriceTick]decimal.Decimal
	Asks   map[PriceTick]decimal.Decimal
	SeqNum uint64
}

// BestBid returns the highest bid tick, if any.
func (s BookSnapshot) BestBid() (PriceTick, bool) {
	var best PriceTick
	found := false
	for tick := range s.Bids {
		if !found || tick > best {
			best = tick
			found = true
		}
	}
	return best, found
}

// BestAsk returns the lowest ask tick, if any.
func (s BookSnapshot) BestAsk() (PriceTick, bool) {
	var best PriceTick
	found := false
	for tick := range s.Asks {
		if !found || tick < best {
			best = tick
			found = true
		}
	}
	return best, found
}
