// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	oerrors "optionscout/internal/errors"
	"optionscout/internal/models"
)

// SQLiteStore persists the F&O symbol cache and the analysis journal.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Cached F&O symbol list with its fetch time for TTL checks
	CREATE TABLE IF NOT EXISTS fno_symbols (
		symbol TEXT PRIMARY KEY,
		fetched_at DATETIME NOT NULL
	);

	-- Analysis journal: one row per analysis run
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL,
		current_price REAL NOT NULL,
		bias TEXT NOT NULL,
		confidence REAL NOT NULL,
		trade_type TEXT NOT NULL,
		trade_strike REAL,
		trade_score REAL,
		recommendation TEXT,
		result_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol, analyzed_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSymbols replaces the cached symbol list.
func (s *SQLiteStore) SaveSymbols(ctx context.Context, symbols []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return oerrors.Wrap(err, "beginning symbol cache transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fno_symbols`); err != nil {
		return oerrors.Wrap(err, "clearing symbol cache")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fno_symbols (symbol, fetched_at) VALUES (?, ?)`)
	if err != nil {
		return oerrors.Wrap(err, "preparing symbol insert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, symbol := range symbols {
		if _, err := stmt.ExecContext(ctx, symbol, now); err != nil {
			return oerrors.Wrap(err, "inserting symbol")
		}
	}
	return tx.Commit()
}

// LoadSymbols returns the cached symbol list if it is younger than ttl.
// A stale or empty cache yields ErrNoData so callers refetch.
func (s *SQLiteStore) LoadSymbols(ctx context.Context, ttl time.Duration) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, fetched_at FROM fno_symbols ORDER BY symbol`)
	if err != nil {
		return nil, oerrors.Wrap(err, "querying symbol cache")
	}
	defer rows.Close()

	cutoff := time.Now().UTC().Add(-ttl)
	var symbols []string
	for rows.Next() {
		var symbol string
		var fetchedAt time.Time
		if err := rows.Scan(&symbol, &fetchedAt); err != nil {
			return nil, oerrors.Wrap(err, "scanning symbol row")
		}
		if fetchedAt.Before(cutoff) {
			return nil, oerrors.ErrNoData
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, oerrors.Wrap(err, "iterating symbol cache")
	}
	if len(symbols) == 0 {
		return nil, oerrors.ErrNoData
	}
	return symbols, nil
}

// JournalEntry is one recorded analysis run.
type JournalEntry struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
	CurrentPrice   float64   `json:"current_price"`
	Bias           string    `json:"bias"`
	Confidence     float64   `json:"confidence"`
	TradeType      string    `json:"trade_type"`
	TradeStrike    float64   `json:"trade_strike,omitempty"`
	TradeScore     float64   `json:"trade_score,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// SaveAnalysis records one analysis result in the journal. The full
// result is kept as JSON alongside the queryable columns.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, result models.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return oerrors.Wrap(err, "encoding analysis result")
	}

	var strike, score float64
	if result.BestTrade.Trade != nil {
		strike = result.BestTrade.Trade.Strike
		score = result.BestTrade.Trade.Score
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses
			(symbol, analyzed_at, current_price, bias, confidence,
			 trade_type, trade_strike, trade_score, recommendation, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.Symbol,
		time.Now().UTC(),
		result.CurrentPrice,
		string(result.MarketDirection.Bias),
		result.MarketDirection.Confidence,
		string(result.BestTrade.Type),
		strike,
		score,
		result.BestTrade.Text,
		string(payload),
	)
	if err != nil {
		return oerrors.Wrap(err, "inserting analysis")
	}
	return nil
}

// ListAnalyses returns the most recent journal entries, newest first.
// An empty symbol matches all symbols.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, symbol string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, symbol, analyzed_at, current_price, bias, confidence,
		       trade_type, trade_strike, trade_score, recommendation
		FROM analyses`
	args := []interface{}{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY analyzed_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, oerrors.Wrap(err, "querying journal")
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Symbol, &e.AnalyzedAt, &e.CurrentPrice,
			&e.Bias, &e.Confidence, &e.TradeType, &e.TradeStrike,
			&e.TradeScore, &e.Recommendation); err != nil {
			return nil, oerrors.Wrap(err, "scanning journal row")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
