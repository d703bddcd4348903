package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"tradejournal/internal/engine"
	"tradejournal/internal/logger"
	"tradejournal/internal/repository"
	"tradejournal/internal/store"
	"tradejournal/types"
)

const insertChunkSize = 100

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration file")
	importPath := flag.String("import", "", "path to a trades csv file to import before recomputing")
	flag.Parse()

	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	defer logger.Shutdown(ctx)

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := repository.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

	if *importPath != "" {
		if err := importTrades(ctx, &db, *importPath); err != nil {
			log.Fatal(err)
		}
	}

	eng := engine.NewEngine(&db, cfg.Matching.Method)

	timer := logger.StartOperation(ctx, "recompute", "method", cfg.Matching.Method)
	daily, err := eng.Recompute(ctx)
	if err != nil {
		timer.EndWithError(err)
		log.Fatal(err)
	}
	timer.End()
	logger.Info(ctx, "recompute finished", "days", len(daily))

	report := engine.BuildReport(daily)
	report.Print()

	if cfg.Report.Start != "" || cfg.Report.End != "" {
		wins, losses, err := eng.WinLossDays(cfg.Report.Start, cfg.Report.End, ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Win/loss days (%s .. %s): %d / %d\n", cfg.Report.Start, cfg.Report.End, wins, losses)

		if err := printRollups(ctx, &db, cfg.Report.Start, cfg.Report.End); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.Export.CSVPath != "" {
		if err := engine.WriteDailySummariesCSVFile(cfg.Export.CSVPath, daily); err != nil {
			log.Fatal(err)
		}
		logger.Info(ctx, "daily summaries exported", "path", cfg.Export.CSVPath)
	}
}

// printRollups reads the stored summaries back for the report window and
// prints weekly and monthly totals.
func printRollups(ctx context.Context, db *repository.Database, start, end string) error {
	// An omitted bound means an open-ended window.
	if end == "" {
		end = "9999-12-31"
	}
	summaries, err := db.GetDailySummaries(start, end, ctx)
	if errors.Is(err, repository.ErrNoSummaries) {
		return nil
	}
	if err != nil {
		return err
	}

	daily := make(map[string]types.DailySummary, len(summaries))
	for _, s := range summaries {
		daily[s.Date] = s
	}

	fmt.Println("\n-- Weekly Realized --")
	printPeriods(engine.GroupByWeek(daily), "week")
	fmt.Println("\n-- Monthly Realized --")
	printPeriods(engine.GroupByMonth(daily), "month")
	return nil
}

func printPeriods(grouped map[engine.PeriodKey]engine.PeriodSummary, label string) {
	keys := make([]engine.PeriodKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Period < keys[j].Period
	})
	for _, key := range keys {
		fmt.Printf("%d %s %02d: %s (traded %s)\n",
			key.Year, label, key.Period, grouped[key].Realized, grouped[key].TotalInvested)
	}
}

// importTrades reads a broker csv, normalizes it and stores the trades,
// skipping rows that are already present.
func importTrades(ctx context.Context, db *repository.Database, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := engine.ReadTradesCSV(f)
	if err != nil {
		return err
	}
	trades := engine.Normalize(records)
	logger.Info(ctx, "csv parsed", "rows", len(records), "trades", len(trades))

	bar := initProgressBar(len(trades))
	inserted := 0
	for start := 0; start < len(trades); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(trades) {
			end = len(trades)
		}
		n, err := db.InsertTrades(trades[start:end], ctx)
		if err != nil {
			return err
		}
		inserted += n
		bar.Add(end - start)
	}
	fmt.Println()
	logger.Info(ctx, "trades imported", "inserted", inserted, "skipped", len(trades)-inserted)
	return nil
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Importing trades..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
