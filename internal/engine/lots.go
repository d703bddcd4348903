package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// lot is a block of shares opened at one effective price. The price already
// includes any fee that was capitalized when the lot was opened.
type lot struct {
	qty   decimal.Decimal
	price decimal.Decimal
}

func totalQuantity(lots []*lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.qty)
	}
	return total
}

// consumeLots draws down open lots against a closing trade and returns the
// surviving lots, the realized profit from the matched quantity and the
// quantity actually consumed. FIFO consumes from the front of the list,
// LIFO from the back. A lot whose remainder falls within lotEpsilon of zero
// is removed.
func consumeLots(
	lots []*lot,
	quantity decimal.Decimal,
	price decimal.Decimal,
	method MatchingMethod,
	closingSide types.Side,
) ([]*lot, decimal.Decimal, decimal.Decimal) {
	realized := decimal.Zero
	consumed := decimal.Zero
	remaining := quantity

	for remaining.GreaterThan(decimal.Zero) && len(lots) > 0 {
		index := 0
		if method == LIFO {
			index = len(lots) - 1
		}
		cur := lots[index]
		take := decimal.Min(remaining, cur.qty)

		if closingSide == types.SideTypeSell {
			realized = realized.Add(price.Sub(cur.price).Mul(take))
		} else {
			// BUY covering short lots.
			realized = realized.Add(cur.price.Sub(price).Mul(take))
		}

		cur.qty = cur.qty.Sub(take)
		consumed = consumed.Add(take)
		remaining = remaining.Sub(take)

		if cur.qty.LessThanOrEqual(lotEpsilon) {
			if index == 0 {
				lots = lots[1:]
			} else {
				lots = lots[:index]
			}
		}
	}

	return lots, realized, consumed
}
