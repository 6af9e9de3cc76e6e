package domain

import "github.com/shopspring/decimal"

// SizeChange flags how a row's size moved against the previous frame.
type SizeChange int8

const (
	SizeUnchanged SizeChange = iota
	SizeIncreased
	SizeDecreased
)

// DepthRow is one rendered order-book row. Rows are rebuilt wholesale on
// every refresh tick and never mutated in place; the previous frame's rows
// are only consulted to derive Change/IsNew.
type DepthRow struct {
	Tick    PriceTick       `json:"tick"`
	Price   decimal.Decimal `json:"price"`
	Size    decimal.Decimal `json:"size"`
	Total   decimal.Decimal `json:"total"`   // cumulative size toward the spread
	Percent float64         `json:"percent"` // share of the visible slice, 0..100
	Change  SizeChange      `json:"change"`
	IsNew   bool            `json:"is_new"`
}

// DepthFrame is the pair of row sequences handed to the presentation layer.
// Asks are ordered furthest-from-spread first so both columns converge
// toward the spread in a combined display.
type DepthFrame struct {
	Bids []DepthRow
	Asks []DepthRow
}
