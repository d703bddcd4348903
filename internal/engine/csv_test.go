package engine

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tradejournal/types"
)

func TestReadTradesCSV(t *testing.T) {
	input := strings.Join([]string{
		"date,time,symbol,action,qty,price,fee,sequence",
		"2024-03-01,09:31:00,AAPL,BOT,100,10.50,1.00,1",
		`03/04/2024,,TSLA,SLD,"1,250",$180.00,,`,
		"2024-03-05,09:32:00,AAPL,DIVIDEND,0,1.25,,3",
	}, "\n")

	records, err := ReadTradesCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTradesCSV() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadTradesCSV() rows = %d, want 3", len(records))
	}

	first := records[0]
	if first.Date != "2024-03-01" || first.Symbol != "AAPL" || first.Action != "BOT" {
		t.Errorf("ReadTradesCSV() first row = %+v", first)
	}
	if first.Qty != "100" || first.Price != "10.50" || first.Fee != "1.00" {
		t.Errorf("ReadTradesCSV() first row numerics = %s/%s/%s", first.Qty, first.Price, first.Fee)
	}
	if first.Sequence != 1 {
		t.Errorf("ReadTradesCSV() first row sequence = %d, want 1", first.Sequence)
	}
	// Missing sequence falls back to the line number.
	if records[1].Sequence != 2 {
		t.Errorf("ReadTradesCSV() fallback sequence = %d, want 2", records[1].Sequence)
	}

	// Validation happens downstream: the dividend row survives reading but
	// not normalization.
	trades := Normalize(records)
	if len(trades) != 2 {
		t.Fatalf("Normalize() trades = %d, want 2", len(trades))
	}
	if !trades[1].Quantity.Equal(decimal.RequireFromString("1250")) {
		t.Errorf("Normalize() quantity = %v, want 1250", trades[1].Quantity)
	}
}

func TestReadTradesCSVMissingHeader(t *testing.T) {
	_, err := ReadTradesCSV(strings.NewReader(""))
	if err == nil {
		t.Errorf("ReadTradesCSV() expected error on empty input")
	}
}

func TestWriteDailySummariesCSV(t *testing.T) {
	daily := map[string]types.DailySummary{
		"2024-03-04": summaryDay("2024-03-04", "-40", "500"),
		"2024-03-01": summaryDay("2024-03-01", "100", "1000"),
	}

	var sb strings.Builder
	if err := writeDailySummariesCSV(&sb, daily); err != nil {
		t.Fatalf("writeDailySummariesCSV() error = %v", err)
	}

	want := strings.Join([]string{
		"date,realized,total_invested,cumulative",
		"2024-03-01,100,1000,100",
		"2024-03-04,-40,500,60",
		"",
	}, "\n")
	if sb.String() != want {
		t.Errorf("writeDailySummariesCSV() = %q, want %q", sb.String(), want)
	}
}
