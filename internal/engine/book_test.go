package engine

import (
	"testing"

	"depth_go/internal/domain"

	"github.com/shopspring/decimal"
)

func TestSide_ApplyDelta_ZeroSizeDeletes(t *testing.T) {
	s := newSide()
	s.applySnapshot([]domain.Quote{
		domain.NewQuote("100.0", "5"),
		domain.NewQuote("99.5", "3"),
	})

	// Delete an existing level
	s.applyDelta([]domain.Quote{domain.NewQuote("100.0", "0")})
	if _, ok := s.levels[domain.TickFromPrice(decimal.RequireFromString("100.0"))]; ok {
		t.Error("Level 100.0 should be deleted by zero size")
	}

	// Deleting an absent level is a no-op, not an error
	s.applyDelta([]domain.Quote{domain.NewQuote("42.0", "0")})
	if s.len() != 1 {
		t.Errorf("Expected 1 level, got %d", s.len())
	}
}

func TestSide_ApplySnapshot_WholesaleReplace(t *testing.T) {
	s := newSide()
	s.applyDelta([]domain.Quote{
		domain.NewQuote("1.0", "1"),
		domain.NewQuote("2.0", "2"),
	})

	s.applySnapshot([]domain.Quote{
		domain.NewQuote("100.0", "5"),
		domain.NewQuote("99.5", "0"), // zero sizes in snapshots are omitted
	})

	if s.len() != 1 {
		t.Fatalf("Expected exactly 1 level after snapshot, got %d", s.len())
	}
	size, ok := s.levels[1000]
	if !ok {
		t.Fatal("Expected level at tick 1000")
	}
	if !size.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Size = %s, want 5", size)
	}
}

func TestSide_ApplyDelta_LastWriteWinsPerPrice(t *testing.T) {
	s := newSide()
	s.applyDelta([]domain.Quote{
		domain.NewQuote("100.0", "5"),
		domain.NewQuote("100.0", "7"),
	})

	if size := s.levels[1000]; !size.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Size = %s, want 7 (last occurrence wins)", size)
	}
}

func TestSide_Best(t *testing.T) {
	s := newSide()

	if _, ok := s.best(true); ok {
		t.Error("Empty side should have no best level")
	}

	s.applySnapshot([]domain.Quote{
		domain.NewQuote("100.0", "5"),
		domain.NewQuote("99.5", "3"),
		domain.NewQuote("101.5", "1"),
	})

	if best, _ := s.best(true); best != 1015 {
		t.Errorf("Highest = %d, want 1015", best)
	}
	if best, _ := s.best(false); best != 995 {
		t.Errorf("Lowest = %d, want 995", best)
	}
}

func TestSide_CopyLevelsIsDetached(t *testing.T) {
	s := newSide()
	s.applySnapshot([]domain.Quote{domain.NewQuote("100.0", "5")})

	levels := s.copyLevels()
	s.applyDelta([]domain.Quote{domain.NewQuote("100.0", "0")})

	if _, ok := levels[1000]; !ok {
		t.Error("Copied levels should not observe later mutation")
	}
}
