package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tradejournal/types"
)

// UpsertDailySummaries writes the given per-day results, replacing any
// rows that already exist for those dates.
func (db *Database) UpsertDailySummaries(daily map[string]types.DailySummary, ctx context.Context) error {
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	now := time.Now().UTC()
	for _, day := range days {
		s := daily[day]
		row := summaryRow{
			Date:          s.Date,
			Realized:      s.Realized,
			TotalInvested: s.TotalInvested,
			UpdatedAt:     now,
		}
		if err := db.summaries.UpsertDailySummary(ctx, row); err != nil {
			return fmt.Errorf("upsert daily summary %s: %w", day, err)
		}
	}
	return nil
}

// GetDailySummaries returns stored summaries for the inclusive date range.
func (db *Database) GetDailySummaries(start, end string, ctx context.Context) ([]types.DailySummary, error) {
	rows, err := db.summaries.SelectDailySummaries(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("select daily summaries: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoSummaries
	}

	summaries := make([]types.DailySummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, types.DailySummary{
			Date:          r.Date,
			Realized:      r.Realized,
			TotalInvested: r.TotalInvested,
		})
	}
	return summaries, nil
}
