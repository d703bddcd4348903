package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/types"
)

type mockTradesRepository struct {
	sqlError error
	rows     []tradeRow
	inserted *[]tradeRow
}

func (m mockTradesRepository) SelectTrades(_ context.Context) ([]tradeRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.rows, nil
}

func (m mockTradesRepository) InsertTrade(_ context.Context, row tradeRow) (int64, error) {
	if m.sqlError != nil {
		return 0, m.sqlError
	}
	// Simulate the unique constraint on stored trades.
	for _, existing := range *m.inserted {
		if existing == row {
			return 0, nil
		}
	}
	*m.inserted = append(*m.inserted, row)
	return int64(len(*m.inserted)), nil
}

func TestDatabase_ListTrades(t *testing.T) {
	storedRows := []tradeRow{
		{ID: 1, Date: "2024-03-01", Symbol: "AAPL", Action: "BOT", Qty: decimal.RequireFromString("100"), Price: decimal.RequireFromString("10.5"), Fee: decimal.RequireFromString("1"), Sequence: 1},
		{ID: 2, Date: "2024-03-01", Time: "09:31:00", Symbol: "AAPL", Action: "SLD", Qty: decimal.RequireFromString("100"), Price: decimal.RequireFromString("11"), Fee: decimal.Zero, Sequence: 2},
	}
	tests := []struct {
		name    string
		rows    []tradeRow
		sqlErr  error
		want    int
		wantErr bool
	}{
		{"should return stored trades", storedRows, nil, 2, false},
		{"should return empty on empty table", nil, nil, 0, false},
		{"should propagate query error", nil, errors.New("connection refused"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				trades: mockTradesRepository{
					sqlError: tt.sqlErr,
					rows:     tt.rows,
				},
			}
			got, err := db.ListTrades(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListTrades() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != tt.want {
				t.Fatalf("ListTrades() len = %v, want %v", len(got), tt.want)
			}
			if tt.want == 0 {
				return
			}
			if got[0].Qty != "100" || got[0].Price != "10.5" || got[0].Fee != "1" {
				t.Errorf("ListTrades() numeric fields got = %v/%v/%v", got[0].Qty, got[0].Price, got[0].Fee)
			}
			if got[1].Time != "09:31:00" {
				t.Errorf("ListTrades() time got = %v, want 09:31:00", got[1].Time)
			}
		})
	}
}

func TestDatabase_InsertTrades(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 31, 0, 0, time.UTC)
	trade := types.Trade{
		Date:      "2024-03-01",
		Symbol:    "AAPL",
		Side:      types.SideTypeBuy,
		Quantity:  decimal.RequireFromString("100"),
		Price:     decimal.RequireFromString("10.5"),
		Fee:       decimal.RequireFromString("1"),
		Sequence:  1,
		Timestamp: ts,
	}
	tests := []struct {
		name    string
		trades  []types.Trade
		sqlErr  error
		want    int
		wantErr bool
	}{
		{"should insert trades", []types.Trade{trade}, nil, 1, false},
		{"should skip duplicates", []types.Trade{trade, trade}, nil, 1, false},
		{"should propagate insert error", []types.Trade{trade}, errors.New("connection refused"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured []tradeRow
			db := &Database{
				trades: mockTradesRepository{
					sqlError: tt.sqlErr,
					inserted: &captured,
				},
			}
			got, err := db.InsertTrades(tt.trades, context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("InsertTrades() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("InsertTrades() = %v, want %v", got, tt.want)
			}
			if err == nil && tt.want > 0 {
				if captured[0].Time != "09:31:00" {
					t.Errorf("InsertTrades() stored time = %v, want 09:31:00", captured[0].Time)
				}
				if captured[0].Action != string(types.SideTypeBuy) {
					t.Errorf("InsertTrades() stored action = %v, want %v", captured[0].Action, types.SideTypeBuy)
				}
			}
		})
	}
}
