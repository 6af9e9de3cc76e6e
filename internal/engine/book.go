package engine

import (
	"depth_go/internal/domain"

	"github.com/shopspring/decimal"
)

// side holds one side's resting liquidity keyed by display tick.
// Invariant: every stored size is strictly positive. A zero size in a feed
// message is a deletion instruction, never a level. No ordering is kept
// here — ordering is imposed at projection time.
type side struct {
	levels map[domain.PriceTick]decimal.Decimal
}

func newSide() *side {
	return &side{levels: make(map[domain.PriceTick]decimal.Decimal)}
}

// applySnapshot replaces the side wholesale. Zero or negative sizes are
// skipped (should not occur upstream).
func (s *side) applySnapshot(quotes []domain.Quote) {
	s.levels = make(map[domain.PriceTick]decimal.Decimal, len(quotes))
	for _, q := range quotes {
		if q.Size().IsPositive() {
			s.levels[domain.TickFromPrice(q.Price())] = q.Size()
		}
	}
}

// applyDelta folds per-price size changes into the side. Size zero removes
// the level; removing an absent level is a no-op. Duplicate prices within
// one batch are last-write-wins.
func (s *side) applyDelta(quotes []domain.Quote) {
	for _, q := range quotes {
		tick := domain.TickFromPrice(q.Price())
		if q.Size().IsPositive() {
			s.levels[tick] = q.Size()
		} else {
			delete(s.levels, tick)
		}
	}
}

func (s *side) clear() {
	s.levels = make(map[domain.PriceTick]decimal.Decimal)
}

func (s *side) len() int {
	return len(s.levels)
}

// best returns the side's top-of-book tick: highest for bids, lowest for asks.
func (s *side) best(highest bool) (domain.PriceTick, bool) {
	var best domain.PriceTick
	found := false
	for tick := range s.levels {
		if !found || (highest && tick > best) || (!highest && tick < best) {
			best = tick
			found = true
		}
	}
	return best, found
}

// copyLevels returns a fresh map with the side's current contents.
func (s *side) copyLevels() map[domain.PriceTick]decimal.Decimal {
	out := make(map[domain.PriceTick]decimal.Decimal, len(s.levels))
	for tick, size := range s.levels {
		out[tick] = size
	}
	return out
}
