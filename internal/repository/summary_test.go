package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tradejournal/types"
)

type mockSummariesRepository struct {
	sqlError error
	rows     []summaryRow
	upserted *[]summaryRow
}

func (m mockSummariesRepository) UpsertDailySummary(_ context.Context, row summaryRow) error {
	if m.sqlError != nil {
		return m.sqlError
	}
	*m.upserted = append(*m.upserted, row)
	return nil
}

func (m mockSummariesRepository) SelectDailySummaries(_ context.Context, start, end string) ([]summaryRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	var out []summaryRow
	for _, r := range m.rows {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestDatabase_UpsertDailySummaries(t *testing.T) {
	daily := map[string]types.DailySummary{
		"2024-03-04": {Date: "2024-03-04", Realized: decimal.RequireFromString("50"), TotalInvested: decimal.RequireFromString("1050")},
		"2024-03-01": {Date: "2024-03-01", Realized: decimal.RequireFromString("-12.5"), TotalInvested: decimal.RequireFromString("2000")},
	}
	tests := []struct {
		name    string
		daily   map[string]types.DailySummary
		sqlErr  error
		want    int
		wantErr bool
	}{
		{"should upsert every day", daily, nil, 2, false},
		{"should accept empty input", map[string]types.DailySummary{}, nil, 0, false},
		{"should propagate upsert error", daily, errors.New("connection refused"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured []summaryRow
			db := &Database{
				summaries: mockSummariesRepository{
					sqlError: tt.sqlErr,
					upserted: &captured,
				},
			}
			err := db.UpsertDailySummaries(tt.daily, context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpsertDailySummaries() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(captured) != tt.want {
				t.Fatalf("UpsertDailySummaries() upserted = %v, want %v", len(captured), tt.want)
			}
			if tt.want == 0 {
				return
			}
			// Rows go out in date order.
			if captured[0].Date != "2024-03-01" || captured[1].Date != "2024-03-04" {
				t.Errorf("UpsertDailySummaries() order got = %v, %v", captured[0].Date, captured[1].Date)
			}
			if captured[0].UpdatedAt.IsZero() {
				t.Errorf("UpsertDailySummaries() updated_at not set")
			}
		})
	}
}

func TestDatabase_GetDailySummaries(t *testing.T) {
	stored := []summaryRow{
		{Date: "2024-03-01", Realized: decimal.RequireFromString("-12.5"), TotalInvested: decimal.RequireFromString("2000")},
		{Date: "2024-03-04", Realized: decimal.RequireFromString("50"), TotalInvested: decimal.RequireFromString("1050")},
		{Date: "2024-03-05", Realized: decimal.RequireFromString("0"), TotalInvested: decimal.RequireFromString("0")},
	}
	tests := []struct {
		name    string
		start   string
		end     string
		sqlErr  error
		want    int
		wantErr error
	}{
		{"should return range", "2024-03-01", "2024-03-04", nil, 2, nil},
		{"should throw ErrNoSummaries", "2025-01-01", "2025-12-31", nil, 0, ErrNoSummaries},
		{"should propagate query error", "2024-03-01", "2024-03-04", errors.New("connection refused"), 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				summaries: mockSummariesRepository{
					sqlError: tt.sqlErr,
					rows:     stored,
				},
			}
			got, err := db.GetDailySummaries(tt.start, tt.end, context.Background())
			if tt.sqlErr != nil {
				if err == nil {
					t.Fatalf("GetDailySummaries() expected error")
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetDailySummaries() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDailySummaries() error = %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("GetDailySummaries() len = %v, want %v", len(got), tt.want)
			}
			if !got[0].Realized.Equal(decimal.RequireFromString("-12.5")) {
				t.Errorf("GetDailySummaries() realized got = %v", got[0].Realized)
			}
		})
	}
}
