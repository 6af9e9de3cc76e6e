package btse

import (
	"time"

	"depth_go/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	maxRetries   = 10
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second

	// bookTopicPrefix forms the order-book topic: "update:" + symbol.
	bookTopicPrefix = "update:"

	// tradeTopic is how trade-history pushes are tagged. The subscription
	// argument carries the symbol ("tradeHistoryApi:BTCPFC"); the push
	// envelope carries the bare topic.
	tradeTopic = "tradeHistoryApi"
)

// opRequest is a subscribe/unsubscribe control frame.
type opRequest struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

// bookEnvelope wraps one order-book push.
type bookEnvelope struct {
	Topic string   `json:"topic"`
	Data  bookData `json:"data"`
}

type bookData struct {
	Type       string         `json:"type"`
	Bids       []domain.Quote `json:"bids"`
	Asks       []domain.Quote `json:"asks"`
	SeqNum     uint64         `json:"seqNum"`
	PrevSeqNum uint64         `json:"prevSeqNum"`
	Timestamp  int64          `json:"timestamp"`
}

// tradeEnvelope wraps one trade-history push. The newest trade is element 0.
type tradeEnvelope struct {
	Topic string      `json:"topic"`
	Data  []tradeData `json:"data"`
}

type tradeData struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Size      decimal.Decimal `json:"size"`
	Side      string          `json:"side"`
	TradeID   int64           `json:"tradeId"`
	Timestamp int64           `json:"timestamp"`
}
