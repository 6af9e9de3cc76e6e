package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the aggressor side reported by the trade feed.
type TradeSide string

const (
	TradeBuy  TradeSide = "BUY"
	TradeSell TradeSide = "SELL"
)

// Trade is one executed trade from the peer trade-history feed. It carries
// no sequence semantics — the trade feed is not reconciled.
type Trade struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	Symbol    string          `json:"symbol" gorm:"index"`
	Price     decimal.Decimal `json:"price" gorm:"type:text"`
	Size      decimal.Decimal `json:"size" gorm:"type:text"`
	Side      TradeSide       `json:"side"`
	TradeID   int64           `json:"trade_id"`
	Timestamp int64           `json:"timestamp"`
	CreatedAt time.Time       `json:"-"`
}

// PriceDirection says where the last trade price moved relative to the
// trade before it.
type PriceDirection int8

const (
	PriceFlat PriceDirection = iota
	PriceUp
	PriceDown
)

// LastPrice is the state of the last-trade ticker.
type LastPrice struct {
	Price     decimal.Decimal
	Size      decimal.Decimal
	Side      TradeSide
	Direction PriceDirection
}

// Apply folds the next trade into the ticker and returns the new state.
// Direction is flat when the price is unchanged or there was no prior trade.
func (lp LastPrice) Apply(t Trade) LastPrice {
	next := LastPrice{Price: t.Price, Size: t.Size, Side: t.Side, Direction: PriceFlat}
	if lp.Price.IsZero() {
		return next
	}
	switch {
	case t.Price.GreaterThan(lp.Price):
		next.Direction = PriceUp
	case t.Price.LessThan(lp.Price):
		next.Direction = PriceDown
	}
	return next
}
