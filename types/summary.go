package types

import "github.com/shopspring/decimal"

// DailySummary holds the realized profit and the traded value for one
// calendar day, both rounded to cents.
type DailySummary struct {
	Date          string
	Realized      decimal.Decimal
	TotalInvested decimal.Decimal
}

// PositionSnapshot is a read-only view of one symbol's open position.
type PositionSnapshot struct {
	Symbol    string
	Shares    decimal.Decimal
	AvgCost   decimal.Decimal
	LastPrice decimal.Decimal
}
