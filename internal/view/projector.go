package view

import (
	"sort"

	"depth_go/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultDepth is the reference number of visible levels per side.
const DefaultDepth = 8

// Project derives the next display frame from a book snapshot and the
// previously produced frame. Pure function: identical inputs yield
// identical output, and neither input is mutated. The previous frame is
// consulted only for the per-row diff annotations (Change, IsNew), matched
// by display tick so binary-float drift can never flicker a row as new.
func Project(snap domain.BookSnapshot, prev domain.DepthFrame, depth int) domain.DepthFrame {
	return domain.DepthFrame{
		Bids: projectSide(snap.Bids, prev.Bids, depth, true),
		Asks: projectSide(snap.Asks, prev.Asks, depth, false),
	}
}

type entry struct {
	tick domain.PriceTick
	size decimal.Decimal
}

func projectSide(levels map[domain.PriceTick]decimal.Decimal, prevRows []domain.DepthRow, depth int, isBid bool) []domain.DepthRow {
	if len(levels) == 0 || depth <= 0 {
		return nil
	}

	entries := make([]entry, 0, len(levels))
	for tick, size := range levels {
		// The book guarantees positive sizes; filter defensively anyway.
		if size.IsPositive() {
			entries = append(entries, entry{tick: tick, size: size})
		}
	}
	if len(entries) == 0 {
		return nil
	}

	// Best-first: highest bid, lowest ask.
	sort.Slice(entries, func(i, j int) bool {
		if isBid {
			return entries[i].tick > entries[j].tick
		}
		return entries[i].tick < entries[j].tick
	})
	if len(entries) > depth {
		entries = entries[:depth]
	}

	prevAt := make(map[domain.PriceTick]domain.DepthRow, len(prevRows))
	for _, row := range prevRows {
		prevAt[row.Tick] = row
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.size)
	}

	// Cumulative totals walk from the spread outward on both sides.
	rows := make([]domain.DepthRow, len(entries))
	cumulative := decimal.Zero
	for i, e := range entries {
		cumulative = cumulative.Add(e.size)

		row := domain.DepthRow{
			Tick:    e.tick,
			Price:   e.tick.Price(),
			Size:    e.size,
			Total:   cumulative,
			Percent: cumulative.Div(total).InexactFloat64() * 100,
		}

		if prevRow, ok := prevAt[e.tick]; ok {
			switch {
			case e.size.GreaterThan(prevRow.Size):
				row.Change = domain.SizeIncreased
			case e.size.LessThan(prevRow.Size):
				row.Change = domain.SizeDecreased
			}
		} else {
			row.IsNew = true
		}

		rows[i] = row
	}

	// Asks are presented furthest-from-spread first so the two columns
	// converge toward the spread in a combined display. Totals stay
	// attached to their price.
	if !isBid {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	return rows
}
