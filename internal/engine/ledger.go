package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// Ledger is the stateful lot-matching engine for one computation run. It
// lazily creates a position per symbol and accumulates realized P/L per
// calendar day. Ledgers are cheap and single-use: never share one between
// two computations.
type Ledger struct {
	method        MatchingMethod
	positions     map[string]*position
	realizedByDay map[string]decimal.Decimal
}

func NewLedger(method string) *Ledger {
	return &Ledger{
		method:        ResolveMethod(method),
		positions:     make(map[string]*position),
		realizedByDay: make(map[string]decimal.Decimal),
	}
}

// Apply processes a single trade and returns the realized P/L it produced.
// The trade's own date is the day the realized amount is booked under,
// regardless of when the consumed lots were opened.
func (l *Ledger) Apply(t types.Trade) decimal.Decimal {
	pos := l.positions[t.Symbol]
	if pos == nil {
		pos = newPosition(t.Symbol)
		l.positions[t.Symbol] = pos
	}

	realized := pos.apply(t.Side, t.Quantity, t.Price, t.Fee, l.method)
	l.realizedByDay[t.Date] = l.realizedByDay[t.Date].Add(realized)
	return realized
}

// RealizedByDay returns the accumulated day totals. The returned map is the
// ledger's own state; callers that outlive the ledger should copy it.
func (l *Ledger) RealizedByDay() map[string]decimal.Decimal {
	return l.realizedByDay
}

// Snapshot reports the current open position for a symbol.
func (l *Ledger) Snapshot(symbol string) (types.PositionSnapshot, bool) {
	pos := l.positions[symbol]
	if pos == nil {
		return types.PositionSnapshot{}, false
	}
	return types.PositionSnapshot{
		Symbol:    pos.symbol,
		Shares:    pos.shares,
		AvgCost:   pos.avgCost,
		LastPrice: pos.lastPrice,
	}, true
}
