package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// CalculateDailyRealized runs the lot-matching ledger across the full record
// set and returns realized P/L and traded value bucketed by calendar day.
// Records are normalized and globally sorted first; malformed rows never
// reach the ledger. Every day with at least one valid trade gets an entry,
// even when nothing was realized.
func CalculateDailyRealized(records []types.RawTrade, method string) map[string]types.DailySummary {
	trades := Normalize(records)
	sortTrades(trades)

	ledger := NewLedger(method)
	invested := make(map[string]decimal.Decimal)

	for _, t := range trades {
		ledger.Apply(t)
		invested[t.Date] = invested[t.Date].Add(t.Quantity.Mul(t.Price))
	}

	daily := make(map[string]types.DailySummary, len(ledger.realizedByDay))
	for day, realized := range ledger.realizedByDay {
		daily[day] = types.DailySummary{
			Date:          day,
			Realized:      realized.RoundBank(2),
			TotalInvested: invested[day].RoundBank(2),
		}
	}
	return daily
}

// CountWinLossDays classifies each trading day inside [start, end] as a win
// or a loss by its net realized P/L. Either bound may be empty for an
// open-ended window. The ledger still processes every record in
// chronological order so that positions opened before the window provide the
// correct cost basis inside it; only accumulation is windowed. Days whose
// net realized lands within the tolerance band count as neither.
func CountWinLossDays(records []types.RawTrade, start, end, method string) (wins, losses int) {
	trades := Normalize(records)
	sortTrades(trades)

	ledger := NewLedger(method)
	byDay := make(map[string]decimal.Decimal)

	for _, t := range trades {
		realized := ledger.Apply(t)
		if start != "" && t.Date < start {
			continue
		}
		if end != "" && t.Date > end {
			continue
		}
		byDay[t.Date] = byDay[t.Date].Add(realized)
	}

	for _, total := range byDay {
		switch {
		case total.GreaterThan(winLossTolerance):
			wins++
		case total.LessThan(winLossTolerance.Neg()):
			losses++
		}
	}
	return wins, losses
}
