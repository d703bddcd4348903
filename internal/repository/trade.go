package repository

import (
	"context"
	"fmt"

	"tradejournal/types"
)

// ListTrades returns every stored trade as a raw record, oldest first.
// Stored decimals are rendered back to strings so that all trades, whether
// read from the database or from a CSV file, pass through the same
// normalization path.
func (db *Database) ListTrades(ctx context.Context) ([]types.RawTrade, error) {
	rows, err := db.trades.SelectTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("select trades: %w", err)
	}

	records := make([]types.RawTrade, 0, len(rows))
	for _, r := range rows {
		records = append(records, types.RawTrade{
			ID:       r.ID,
			Date:     r.Date,
			Time:     r.Time,
			Symbol:   r.Symbol,
			Action:   r.Action,
			Qty:      r.Qty.String(),
			Price:    r.Price.String(),
			Fee:      r.Fee.String(),
			Sequence: r.Sequence,
		})
	}
	return records, nil
}

// InsertTrades stores normalized trades and returns how many rows were
// actually written. Duplicates of already stored trades are skipped.
func (db *Database) InsertTrades(trades []types.Trade, ctx context.Context) (int, error) {
	inserted := 0
	for _, t := range trades {
		row := tradeRow{
			Date:     t.Date,
			Symbol:   t.Symbol,
			Action:   string(t.Side),
			Qty:      t.Quantity,
			Price:    t.Price,
			Fee:      t.Fee,
			Sequence: t.Sequence,
		}
		if !t.Timestamp.IsZero() {
			row.Time = t.Timestamp.Format("15:04:05")
		}
		id, err := db.trades.InsertTrade(ctx, row)
		if err != nil {
			return inserted, fmt.Errorf("insert trade %s %s: %w", t.Date, t.Symbol, err)
		}
		if id != 0 {
			inserted++
		}
	}
	return inserted, nil
}
