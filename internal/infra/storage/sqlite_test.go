package storage

import (
	"path/filepath"
	"testing"

	"depth_go/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Storage {
	dbName := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.Trade{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return &Storage{db: db}
}

func TestSaveAndRecentTrades(t *testing.T) {
	s := setupTestDB(t)

	trades := []domain.Trade{
		{Symbol: "BTCPFC", Price: decimal.RequireFromString("64250.5"), Size: decimal.RequireFromString("0.12"), Side: domain.TradeBuy, TradeID: 1, Timestamp: 1000},
		{Symbol: "BTCPFC", Price: decimal.RequireFromString("64251.0"), Size: decimal.RequireFromString("0.05"), Side: domain.TradeSell, TradeID: 2, Timestamp: 2000},
		{Symbol: "ETHPFC", Price: decimal.RequireFromString("3200.0"), Size: decimal.RequireFromString("1"), Side: domain.TradeBuy, TradeID: 3, Timestamp: 3000},
	}
	for i := range trades {
		if err := s.SaveTrade(&trades[i]); err != nil {
			t.Fatalf("SaveTrade failed: %v", err)
		}
	}

	fetched, err := s.RecentTrades("BTCPFC", 10)
	if err != nil {
		t.Fatalf("RecentTrades failed: %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("Expected 2 BTCPFC trades, got %d", len(fetched))
	}
	if fetched[0].TradeID != 2 {
		t.Errorf("Expected newest trade first, got TradeID %d", fetched[0].TradeID)
	}
	if !fetched[0].Price.Equal(decimal.RequireFromString("64251.0")) {
		t.Errorf("Price = %s, want 64251.0", fetched[0].Price)
	}
}

func TestRecentTrades_Limit(t *testing.T) {
	s := setupTestDB(t)

	for i := int64(0); i < 5; i++ {
		trade := domain.Trade{Symbol: "BTCPFC", Price: decimal.NewFromInt(100 + i), Size: decimal.NewFromInt(1), Side: domain.TradeBuy, TradeID: i, Timestamp: i * 1000}
		if err := s.SaveTrade(&trade); err != nil {
			t.Fatal(err)
		}
	}

	fetched, err := s.RecentTrades("BTCPFC", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(fetched) != 3 {
		t.Errorf("Expected 3 trades, got %d", len(fetched))
	}
}

func TestPruneTrades(t *testing.T) {
	s := setupTestDB(t)

	for i := int64(0); i < 4; i++ {
		trade := domain.Trade{Symbol: "BTCPFC", Price: decimal.NewFromInt(100), Size: decimal.NewFromInt(1), Side: domain.TradeBuy, TradeID: i, Timestamp: i * 1000}
		if err := s.SaveTrade(&trade); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := s.PruneTrades(2000)
	if err != nil {
		t.Fatalf("PruneTrades failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 pruned trades, got %d", deleted)
	}

	remaining, err := s.RecentTrades("BTCPFC", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Errorf("Expected 2 remaining trades, got %d", len(remaining))
	}
}
