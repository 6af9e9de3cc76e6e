package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBookSnapshot_BestLevels(t *testing.T) {
	snap := BookSnapshot{
		Bids: map[PriceTick]decimal.Decimal{
			995:  decimal.NewFromInt(3),
			1000: decimal.NewFromInt(5),
		},
		Asks: map[PriceTick]decimal.Decimal{
			1005: decimal.NewFromInt(4),
			1010: decimal.NewFromInt(2),
		},
	}

	if bid, ok := snap.BestBid(); !ok || bid != 1000 {
		t.Errorf("BestBid = %d/%v, want 1000/true", bid, ok)
	}
	if ask, ok := snap.BestAsk(); !ok || ask != 1005 {
		t.Errorf("BestAsk = %d/%v, want 1005/true", ask, ok)
	}
}

func TestBookSnapshot_BestLevelsEmpty(t *testing.T) {
	var snap BookSnapshot

	if _, ok := snap.BestBid(); ok {
		t.Error("Empty book should have no best bid")
	}
	if _, ok := snap.BestAsk(); ok {
		t.Error("Empty book should have no best ask")
	}
}
