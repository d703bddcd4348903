package repository

import (
	"context"
	"errors"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrNoSummaries = errors.New("no daily summaries found in datasource")
)

type tradesRepository interface {
	SelectTrades(ctx context.Context) ([]tradeRow, error)
	InsertTrade(ctx context.Context, row tradeRow) (int64, error)
}

type summariesRepository interface {
	UpsertDailySummary(ctx context.Context, row summaryRow) error
	SelectDailySummaries(ctx context.Context, start, end string) ([]summaryRow, error)
}

// Database holds the connection pool and the query implementations.
type Database struct {
	trades    tradesRepository
	summaries summariesRepository
	conn      *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	q := &queries{pool: conn}
	return Database{
		trades:    q,
		summaries: q,
		conn:      conn,
	}, nil
}

// EnsureSchema creates the journal tables when they do not exist yet.
func (db *Database) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS trades (
	id        BIGSERIAL PRIMARY KEY,
	date      TEXT NOT NULL,
	time      TEXT NOT NULL DEFAULT '',
	symbol    TEXT NOT NULL,
	action    TEXT NOT NULL,
	qty       NUMERIC NOT NULL,
	price     NUMERIC NOT NULL,
	fee       NUMERIC NOT NULL DEFAULT 0,
	sequence  INTEGER NOT NULL DEFAULT 0,
	UNIQUE (date, time, symbol, action, qty, price, sequence)
);
CREATE INDEX IF NOT EXISTS idx_trades_date ON trades (date);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades (symbol);

CREATE TABLE IF NOT EXISTS daily_summary (
	date           TEXT PRIMARY KEY,
	realized       NUMERIC NOT NULL DEFAULT 0,
	total_invested NUMERIC NOT NULL DEFAULT 0,
	updated_at     TIMESTAMPTZ NOT NULL
);
`
