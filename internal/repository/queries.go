package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type tradeRow struct {
	ID       int64
	Date     string
	Time     string
	Symbol   string
	Action   string
	Qty      decimal.Decimal
	Price    decimal.Decimal
	Fee      decimal.Decimal
	Sequence int
}

type summaryRow struct {
	Date          string
	Realized      decimal.Decimal
	TotalInvested decimal.Decimal
	UpdatedAt     time.Time
}

// queries is the pgx-backed implementation of the repository interfaces.
type queries struct {
	pool *pgxpool.Pool
}

func (q *queries) SelectTrades(ctx context.Context) ([]tradeRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, date, time, symbol, action, qty, price, fee, sequence
		FROM trades
		ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []tradeRow
	for rows.Next() {
		var r tradeRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Time, &r.Symbol, &r.Action, &r.Qty, &r.Price, &r.Fee, &r.Sequence); err != nil {
			return nil, err
		}
		trades = append(trades, r)
	}
	return trades, rows.Err()
}

// InsertTrade stores one trade and returns its id, or 0 when an identical
// row already exists.
func (q *queries) InsertTrade(ctx context.Context, row tradeRow) (int64, error) {
	var id int64
	err := q.pool.QueryRow(ctx, `
		INSERT INTO trades (date, time, symbol, action, qty, price, fee, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING
		RETURNING id`,
		row.Date, row.Time, row.Symbol, row.Action, row.Qty, row.Price, row.Fee, row.Sequence,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (q *queries) UpsertDailySummary(ctx context.Context, row summaryRow) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO daily_summary (date, realized, total_invested, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			realized       = EXCLUDED.realized,
			total_invested = EXCLUDED.total_invested,
			updated_at     = EXCLUDED.updated_at`,
		row.Date, row.Realized, row.TotalInvested, row.UpdatedAt,
	)
	return err
}

func (q *queries) SelectDailySummaries(ctx context.Context, start, end string) ([]summaryRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT date, realized, total_invested, updated_at
		FROM daily_summary
		WHERE date >= $1 AND date <= $2
		ORDER BY date`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []summaryRow
	for rows.Next() {
		var r summaryRow
		if err := rows.Scan(&r.Date, &r.Realized, &r.TotalInvested, &r.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, r)
	}
	return summaries, rows.Err()
}
