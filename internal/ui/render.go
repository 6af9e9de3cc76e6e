package ui

import (
	"fmt"
	"io"
	"strings"

	"depth_go/internal/domain"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Renderer writes display frames as a text table: asks stacked above the
// last-price line, bids below, both converging on the spread. It holds no
// state of its own — every frame is drawn purely from its inputs.
type Renderer struct {
	out   io.Writer
	clear bool // redraw in place using ANSI clear
}

// NewRenderer creates a renderer. clear redraws in place (live terminal);
// without it frames append, which suits piping and tests.
func NewRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{out: out, clear: clear}
}

// Render draws one frame plus the last-price line between the columns.
func (r *Renderer) Render(frame domain.DepthFrame, last domain.LastPrice) {
	var b strings.Builder

	if r.clear {
		b.WriteString("\033[H\033[2J")
	}

	b.WriteString("Order Book\n")
	fmt.Fprintf(&b, "%14s %14s %14s\n", "Price (USD)", "Size", "Total")

	for _, row := range frame.Asks {
		writeRow(&b, row)
	}

	b.WriteString(lastPriceLine(last))

	for _, row := range frame.Bids {
		writeRow(&b, row)
	}

	fmt.Fprint(r.out, b.String())
}

func writeRow(b *strings.Builder, row domain.DepthRow) {
	flag := " "
	switch row.Change {
	case domain.SizeIncreased:
		flag = "+"
	case domain.SizeDecreased:
		flag = "-"
	}
	marker := " "
	if row.IsNew {
		marker = "*"
	}

	fmt.Fprintf(b, "%14s %13s%s %14s %s%s\n",
		FormatPrice(row.Price),
		FormatSize(row.Size),
		flag,
		FormatSize(row.Total),
		depthBar(row.Percent),
		marker,
	)
}

func lastPriceLine(last domain.LastPrice) string {
	arrow := " "
	switch last.Direction {
	case domain.PriceUp:
		arrow = "▲"
	case domain.PriceDown:
		arrow = "▼"
	}
	return fmt.Sprintf("%14s %s\n", FormatPrice(last.Price), arrow)
}

// FormatPrice renders a price with en-US grouping and exactly one
// fractional digit, the same granularity rows are matched at.
func FormatPrice(p decimal.Decimal) string {
	fixed := p.StringFixed(1)
	dot := strings.LastIndexByte(fixed, '.')
	whole := fixed[:dot]

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var grouped strings.Builder
	if neg {
		grouped.WriteByte('-')
	}
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(ch)
	}
	return grouped.String() + fixed[dot:]
}

// FormatSize renders a size with en-US grouping, up to three fractional
// digits.
func FormatSize(s decimal.Decimal) string {
	return humanize.CommafWithDigits(s.InexactFloat64(), 3)
}

// depthBar visualizes the cumulative share of the visible slice, clamped
// to [0, 100].
func depthBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	width := int(percent / 10)
	return strings.Repeat("█", width) + strings.Repeat("░", 10-width)
}
