package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// ReadTradesCSV parses the canonical trade export format. The header row
// names the columns (date, time, symbol, action or side, qty or quantity,
// price, fee, sequence) in any order; unknown columns are ignored and rows
// that are too short are skipped. Returned records are raw: validation
// happens in Normalize.
func ReadTradesCSV(r io.Reader) ([]types.RawTrade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, label := range header {
		index[strings.ToLower(strings.TrimSpace(label))] = i
	}

	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := index[name]; ok && i < len(row) {
				return row[i]
			}
		}
		return ""
	}

	var records []types.RawTrade
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		sequence := line
		if text := strings.TrimSpace(field(row, "sequence")); text != "" {
			if parsed, err := strconv.Atoi(text); err == nil {
				sequence = parsed
			}
		}

		records = append(records, types.RawTrade{
			ID:       int64(line),
			Date:     field(row, "date"),
			Time:     field(row, "time"),
			Symbol:   field(row, "symbol"),
			Side:     field(row, "side"),
			Action:   field(row, "action"),
			Quantity: field(row, "quantity"),
			Qty:      field(row, "qty"),
			Price:    field(row, "price"),
			Fee:      field(row, "fee"),
			Sequence: sequence,
		})
	}
	return records, nil
}

// WriteDailySummariesCSVFile writes daily summaries to a CSV file at the
// given path.
func WriteDailySummariesCSVFile(path string, daily map[string]types.DailySummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()

	return writeDailySummariesCSV(f, daily)
}

// writeDailySummariesCSV writes daily summaries to any io.Writer as CSV,
// oldest day first, with a running cumulative P/L column.
func writeDailySummariesCSV(w io.Writer, daily map[string]types.DailySummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"realized",
		"total_invested",
		"cumulative",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cumulative := decimal.Zero
	for _, day := range sortedDays(daily) {
		summary := daily[day]
		cumulative = cumulative.Add(summary.Realized)

		record := []string{
			day,
			summary.Realized.String(),
			summary.TotalInvested.String(),
			cumulative.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
