package engine

import (
	"context"
	"fmt"

	"tradejournal/types"
)

type journalStore interface {
	ListTrades(ctx context.Context) ([]types.RawTrade, error)
	UpsertDailySummaries(daily map[string]types.DailySummary, ctx context.Context) error
}

// Engine ties the P/L computation to a trade/summary store. It holds no
// position state of its own; every Recompute builds a fresh ledger.
type Engine struct {
	db     journalStore
	method MatchingMethod
}

func NewEngine(db journalStore, method string) *Engine {
	return &Engine{
		db:     db,
		method: ResolveMethod(method),
	}
}

// Recompute recalculates daily summaries from every stored trade and
// persists them. The computed day map is returned either way, so callers can
// render it without a second round trip.
func (e *Engine) Recompute(ctx context.Context) (map[string]types.DailySummary, error) {
	records, err := e.db.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	daily := CalculateDailyRealized(records, string(e.method))
	if len(daily) == 0 {
		return daily, nil
	}

	if err := e.db.UpsertDailySummaries(daily, ctx); err != nil {
		return nil, fmt.Errorf("upsert daily summaries: %w", err)
	}
	return daily, nil
}

// WinLossDays counts winning and losing days over the stored trades within
// the optional [start, end] day window.
func (e *Engine) WinLossDays(start, end string, ctx context.Context) (wins, losses int, err error) {
	records, err := e.db.ListTrades(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list trades: %w", err)
	}
	wins, losses = CountWinLossDays(records, start, end, string(e.method))
	return wins, losses, nil
}
