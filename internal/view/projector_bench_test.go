package view

import (
	"testing"

	"depth_go/internal/domain"

	"github.com/shopspring/decimal"
)

// BenchmarkProject measures one full projection over a book sized like the
// live BTSE futures feed (a few hundred levels per side, depth 8 visible).
func BenchmarkProject(b *testing.B) {
	bids := make(map[domain.PriceTick]decimal.Decimal, 400)
	asks := make(map[domain.PriceTick]decimal.Decimal, 400)
	for i := 0; i < 400; i++ {
		bids[domain.PriceTick(600000-i*5)] = decimal.NewFromInt(3)
		asks[domain.PriceTick(600005+i*5)] = decimal.NewFromInt(3)
	}
	snap := domain.BookSnapshot{Bids: bids, Asks: asks}
	prev := Project(snap, domain.DepthFrame{}, DefaultDepth)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		prev = Project(snap, prev, DefaultDepth)
	}
}
