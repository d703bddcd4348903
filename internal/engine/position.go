package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// position tracks the open long and short lots for one symbol, plus a cached
// summary. The summary never reports simultaneous net-long and net-short
// exposure, though both lot lists can be non-empty for the duration of a
// single trade that closes one side and opens the other.
type position struct {
	symbol    string
	longLots  []*lot
	shortLots []*lot
	shares    decimal.Decimal
	avgCost   decimal.Decimal
	lastPrice decimal.Decimal
}

func newPosition(symbol string) *position {
	return &position{symbol: symbol}
}

// apply runs one trade through the position and returns the realized P/L.
//
// A trade first closes opposing lots up to min(qty, opposing total), then
// opens a new lot with whatever quantity is left. The trade's fee is split
// proportionally: the share covering the closed quantity reduces realized
// P/L directly, the remainder is capitalized into the new lot's effective
// price (raising cost for longs, lowering proceeds for shorts).
func (p *position) apply(side types.Side, qty, price, fee decimal.Decimal, method MatchingMethod) decimal.Decimal {
	fee = fee.Abs()
	realized := decimal.Zero

	switch side {
	case types.SideTypeBuy:
		toClose := decimal.Min(qty, totalQuantity(p.shortLots))
		var closed, consumed decimal.Decimal
		p.shortLots, closed, consumed = consumeLots(p.shortLots, toClose, price, method, types.SideTypeBuy)

		closedFee := prorateFee(fee, consumed, qty)
		realized = realized.Add(closed).Sub(closedFee)

		if remaining := qty.Sub(consumed); remaining.GreaterThan(decimal.Zero) {
			p.longLots = append(p.longLots, openLot(remaining, price, fee.Sub(closedFee), side))
		}

	case types.SideTypeSell:
		toClose := decimal.Min(qty, totalQuantity(p.longLots))
		var closed, consumed decimal.Decimal
		p.longLots, closed, consumed = consumeLots(p.longLots, toClose, price, method, types.SideTypeSell)

		closedFee := prorateFee(fee, consumed, qty)
		realized = realized.Add(closed).Sub(closedFee)

		if remaining := qty.Sub(consumed); remaining.GreaterThan(decimal.Zero) {
			p.shortLots = append(p.shortLots, openLot(remaining, price, fee.Sub(closedFee), side))
		}
	}

	p.lastPrice = price
	p.refreshSummary()

	return realized
}

// prorateFee returns the portion of fee attributable to the consumed part of
// the trade quantity.
func prorateFee(fee, consumed, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	return fee.Mul(consumed).Div(qty)
}

// openLot builds a new lot whose effective price folds in the fee left over
// from the opening part of the trade.
func openLot(qty, price, openFee decimal.Decimal, side types.Side) *lot {
	effective := price
	if openFee.IsPositive() {
		perUnit := openFee.Div(qty)
		if side == types.SideTypeBuy {
			effective = effective.Add(perUnit)
		} else {
			effective = effective.Sub(perUnit)
		}
	}
	return &lot{qty: qty, price: effective}
}

// refreshSummary recomputes net shares and the weighted average cost of
// whichever side holds the net exposure. Flat positions report zero cost.
func (p *position) refreshSummary() {
	totalLong := totalQuantity(p.longLots)
	totalShort := totalQuantity(p.shortLots)

	net := totalLong.Sub(totalShort)
	p.shares = net

	avgCost := decimal.Zero
	switch {
	case totalLong.IsPositive() && !net.IsNegative():
		avgCost = weightedCost(p.longLots, totalLong)
	case totalShort.IsPositive() && !net.IsPositive():
		avgCost = weightedCost(p.shortLots, totalShort)
	}
	p.avgCost = avgCost
}

func weightedCost(lots []*lot, total decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lots {
		sum = sum.Add(l.qty.Mul(l.price))
	}
	return sum.Div(total)
}
