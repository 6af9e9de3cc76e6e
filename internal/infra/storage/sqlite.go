package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"depth_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage journals trade ticks from the peer trade feed. The order-book
// replica itself is never persisted — it is rebuilt from a fresh exchange
// snapshot on every start.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.Trade{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "DepthGo", "data", "depthgo.db"), nil
}

// SaveTrade appends one trade tick to the journal.
func (s *Storage) SaveTrade(trade *domain.Trade) error {
	return s.db.Create(trade).Error
}

// RecentTrades returns the newest trades for a symbol, newest first.
func (s *Storage) RecentTrades(symbol string, limit int) ([]domain.Trade, error) {
	var trades []domain.Trade
	err := s.db.
		Where("symbol = ?", symbol).
		Order("timestamp desc").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// PruneTrades deletes journal entries older than the given timestamp
// (milliseconds). Keeps the viewer's database from growing unbounded.
func (s *Storage) PruneTrades(beforeTimestamp int64) (int64, error) {
	res := s.db.
		Where("timestamp < ?", beforeTimestamp).
		Delete(&domain.Trade{})
	return res.RowsAffected, res.Error
}
