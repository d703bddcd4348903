package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// Report summarizes a journal's daily results.
type Report struct {
	// Meta / period info
	StartDay    string
	EndDay      string
	TradingDays int

	// Absolute performance
	TotalRealized decimal.Decimal
	TotalInvested decimal.Decimal

	// Day-level distribution metrics
	WinDays    int
	LossDays   int
	FlatDays   int
	AvgWinDay  decimal.Decimal
	AvgLossDay decimal.Decimal
	BestDay    DayResult
	WorstDay   DayResult

	// Streak & risk metrics
	MaxConsecutiveLossDays int
	ProfitFactor           decimal.Decimal
}

// DayResult pairs a day with its net realized P/L.
type DayResult struct {
	Date     string
	Realized decimal.Decimal
}

// PeriodKey identifies an ISO week or a calendar month.
type PeriodKey struct {
	Year   int
	Period int
}

// PeriodSummary aggregates daily totals over a week or month.
type PeriodSummary struct {
	Realized      decimal.Decimal
	TotalInvested decimal.Decimal
}

// BuildReport computes the journal report from a day-keyed summary map.
func BuildReport(daily map[string]types.DailySummary) *Report {
	days := sortedDays(daily)

	report := &Report{TradingDays: len(days)}
	if len(days) == 0 {
		return report
	}
	report.StartDay = days[0]
	report.EndDay = days[len(days)-1]

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		report.TotalRealized, report.TotalInvested = calcTotals(daily, days, &wg)
	}()
	go func() {
		report.WinDays, report.LossDays, report.FlatDays, report.AvgWinDay, report.AvgLossDay = calcDayDistribution(daily, days, &wg)
	}()
	go func() {
		report.BestDay, report.WorstDay = calcBestWorstDays(daily, days, &wg)
	}()
	go func() {
		report.MaxConsecutiveLossDays, report.ProfitFactor = calcStreakMetrics(daily, days, &wg)
	}()
	wg.Wait()

	return report
}

func (r *Report) Print() {
	fmt.Println("===== Journal Report =====")
	fmt.Printf("First Trading Day:     %s\n", r.StartDay)
	fmt.Printf("Last Trading Day:      %s\n", r.EndDay)
	fmt.Printf("Trading Days:          %d\n", r.TradingDays)

	fmt.Println("\n-- Absolute Performance --")
	fmt.Printf("Total Realized:        %s\n", r.TotalRealized)
	fmt.Printf("Total Traded Value:    %s\n", r.TotalInvested)

	fmt.Println("\n-- Day-Level Metrics --")
	fmt.Printf("Win Days:              %d\n", r.WinDays)
	fmt.Printf("Loss Days:             %d\n", r.LossDays)
	fmt.Printf("Flat Days:             %d\n", r.FlatDays)
	fmt.Printf("Avg Win Day:           %s\n", r.AvgWinDay)
	fmt.Printf("Avg Loss Day:          %s\n", r.AvgLossDay)
	fmt.Printf("Best Day:              %s (%s)\n", r.BestDay.Date, r.BestDay.Realized)
	fmt.Printf("Worst Day:             %s (%s)\n", r.WorstDay.Date, r.WorstDay.Realized)

	fmt.Println("\n-- Streak & Risk Metrics --")
	fmt.Printf("Max Consecutive Losses:%d days\n", r.MaxConsecutiveLossDays)
	fmt.Printf("Profit Factor:         %s\n", r.ProfitFactor)

	fmt.Println("==========================")
}

func calcTotals(daily map[string]types.DailySummary, days []string, wg *sync.WaitGroup) (decimal.Decimal, decimal.Decimal) {
	defer wg.Done()

	realized := decimal.Zero
	invested := decimal.Zero
	for _, day := range days {
		realized = realized.Add(daily[day].Realized)
		invested = invested.Add(daily[day].TotalInvested)
	}
	return realized, invested
}

func calcDayDistribution(daily map[string]types.DailySummary, days []string, wg *sync.WaitGroup) (wins, losses, flats int, avgWin, avgLoss decimal.Decimal) {
	defer wg.Done()

	sumWins := decimal.Zero
	sumLosses := decimal.Zero // absolute loss amounts

	for _, day := range days {
		net := daily[day].Realized
		switch {
		case net.GreaterThan(winLossTolerance):
			sumWins = sumWins.Add(net)
			wins++
		case net.LessThan(winLossTolerance.Neg()):
			sumLosses = sumLosses.Add(net.Abs())
			losses++
		default:
			flats++
		}
	}

	avgWin = decimal.Zero
	avgLoss = decimal.Zero
	if wins > 0 {
		avgWin = sumWins.Div(decimal.NewFromInt(int64(wins)))
	}
	if losses > 0 {
		avgLoss = sumLosses.Div(decimal.NewFromInt(int64(losses)))
	}
	return wins, losses, flats, avgWin, avgLoss
}

func calcBestWorstDays(daily map[string]types.DailySummary, days []string, wg *sync.WaitGroup) (best, worst DayResult) {
	defer wg.Done()

	for i, day := range days {
		net := daily[day].Realized
		if i == 0 || net.GreaterThan(best.Realized) {
			best = DayResult{Date: day, Realized: net}
		}
		if i == 0 || net.LessThan(worst.Realized) {
			worst = DayResult{Date: day, Realized: net}
		}
	}
	return best, worst
}

func calcStreakMetrics(daily map[string]types.DailySummary, days []string, wg *sync.WaitGroup) (int, decimal.Decimal) {
	defer wg.Done()

	maxStreak := 0
	curStreak := 0
	grossWin := decimal.Zero
	grossLoss := decimal.Zero

	for _, day := range days {
		net := daily[day].Realized
		if net.LessThan(winLossTolerance.Neg()) {
			curStreak++
			if curStreak > maxStreak {
				maxStreak = curStreak
			}
			grossLoss = grossLoss.Add(net.Abs())
		} else {
			curStreak = 0
			if net.GreaterThan(winLossTolerance) {
				grossWin = grossWin.Add(net)
			}
		}
	}

	profitFactor := decimal.Zero
	if grossLoss.IsPositive() {
		profitFactor = grossWin.Div(grossLoss)
	}
	return maxStreak, profitFactor
}

// GroupByWeek aggregates daily totals by ISO week.
func GroupByWeek(daily map[string]types.DailySummary) map[PeriodKey]PeriodSummary {
	return groupByPeriod(daily, func(t time.Time) PeriodKey {
		year, week := t.ISOWeek()
		return PeriodKey{Year: year, Period: week}
	})
}

// GroupByMonth aggregates daily totals by calendar month.
func GroupByMonth(daily map[string]types.DailySummary) map[PeriodKey]PeriodSummary {
	return groupByPeriod(daily, func(t time.Time) PeriodKey {
		return PeriodKey{Year: t.Year(), Period: int(t.Month())}
	})
}

func groupByPeriod(daily map[string]types.DailySummary, keyOf func(time.Time) PeriodKey) map[PeriodKey]PeriodSummary {
	grouped := make(map[PeriodKey]PeriodSummary)
	for day, summary := range daily {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		key := keyOf(parsed)
		cur := grouped[key]
		cur.Realized = cur.Realized.Add(summary.Realized)
		cur.TotalInvested = cur.TotalInvested.Add(summary.TotalInvested)
		grouped[key] = cur
	}
	return grouped
}

func sortedDays(daily map[string]types.DailySummary) []string {
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
