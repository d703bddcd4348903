package engine

import (
	"sort"
	"strings"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// sideAliases maps the side/action spellings seen in brokerage exports to a
// canonical side. Rows whose side resolves to nothing here are dropped:
// dividends, transfers and other noise must not abort a bulk import.
var sideAliases = map[string]types.Side{
	"BUY":           types.SideTypeBuy,
	"BOT":           types.SideTypeBuy,
	"B":             types.SideTypeBuy,
	"BTO":           types.SideTypeBuy,
	"BUY_TO_OPEN":   types.SideTypeBuy,
	"BUY_TO_CLOSE":  types.SideTypeBuy,
	"BUY_TO_COVER":  types.SideTypeBuy,
	"SELL":          types.SideTypeSell,
	"SLD":           types.SideTypeSell,
	"S":             types.SideTypeSell,
	"STC":           types.SideTypeSell,
	"SOLD":          types.SideTypeSell,
	"SELL_TO_CLOSE": types.SideTypeSell,
	"SELL_TO_OPEN":  types.SideTypeSell,
	"SELL_SHORT":    types.SideTypeSell,
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
}

var timeFormats = []string{
	"15:04:05",
	"15:04",
}

// Normalize converts raw trade-like records into validated canonical trades.
// Records that cannot be interpreted are skipped silently; the result simply
// reflects the valid subset.
func Normalize(records []types.RawTrade) []types.Trade {
	trades := make([]types.Trade, 0, len(records))
	for _, r := range records {
		if t, ok := normalizeRecord(r); ok {
			trades = append(trades, t)
		}
	}
	return trades
}

func normalizeRecord(r types.RawTrade) (types.Trade, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.Symbol))
	if symbol == "" {
		return types.Trade{}, false
	}

	side, ok := sideAliases[strings.ToUpper(strings.TrimSpace(firstNonEmpty(r.Side, r.Action)))]
	if !ok {
		return types.Trade{}, false
	}

	day, ok := parseDay(r.Date)
	if !ok {
		return types.Trade{}, false
	}

	quantity, ok := parsePositiveNumber(firstNonEmpty(r.Quantity, r.Qty))
	if !ok {
		return types.Trade{}, false
	}
	price, ok := parsePositiveNumber(r.Price)
	if !ok {
		return types.Trade{}, false
	}

	return types.Trade{
		ID:        r.ID,
		Date:      day,
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       parseFee(r.Fee),
		Sequence:  r.Sequence,
		Timestamp: parseTimestamp(day, r.Time),
	}, true
}

// sortTrades establishes the deterministic processing order: all symbols
// interleaved, globally sorted by day, then caller-assigned sequence, then
// intraday timestamp, then numeric id.
func sortTrades(trades []types.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		a, b := trades[i], trades[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseDay canonicalizes a date string to YYYY-MM-DD.
func parseDay(value string) (string, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", false
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, text); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}

func parseTimestamp(day, value string) time.Time {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}
	}
	for _, format := range timeFormats {
		if parsed, err := time.Parse("2006-01-02 "+format, day+" "+text); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// parsePositiveNumber coerces export-flavored numerics ("1,250", "$12.50",
// "(3.20)") to a decimal and requires the result to be strictly positive.
func parsePositiveNumber(value string) (decimal.Decimal, bool) {
	number, err := decimal.NewFromString(cleanNumber(value))
	if err != nil || !number.IsPositive() {
		return decimal.Decimal{}, false
	}
	return number, true
}

// parseFee defaults to zero and takes the absolute value defensively; some
// exports report fees as negative cash flow.
func parseFee(value string) decimal.Decimal {
	number, err := decimal.NewFromString(cleanNumber(value))
	if err != nil {
		return decimal.Zero
	}
	return number.Abs()
}

func cleanNumber(value string) string {
	text := strings.TrimSpace(value)
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "$", "")
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		text = "-" + text[1:len(text)-1]
	}
	return text
}
