package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// RawTrade is a trade-like record as delivered by an import or a storage
// layer, before any validation. Field names vary between sources, so the
// aliased pairs (Side/Action, Quantity/Qty) are both present; the first
// non-empty one wins during normalization. Numeric fields are kept as text
// because most sources hand them over that way.
type RawTrade struct {
	ID       int64
	Date     string
	Time     string
	Symbol   string
	Side     string
	Action   string
	Quantity string
	Qty      string
	Price    string
	Fee      string
	Sequence int
}

// Trade is a validated, canonical trade record. Date is a YYYY-MM-DD day
// string; Timestamp carries the optional intraday execution time and is only
// used as a secondary sort key.
type Trade struct {
	ID        int64
	Date      string
	Symbol    string
	Side      Side
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	Fee       decimal.Decimal
	Sequence  int
	Timestamp time.Time
}

func NewTrade(
	date string,
	symbol string,
	side Side,
	quantity decimal.Decimal,
	price decimal.Decimal,
	fee decimal.Decimal,
	sequence int,
) Trade {
	return Trade{
		Date:     date,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
		Sequence: sequence,
	}
}
