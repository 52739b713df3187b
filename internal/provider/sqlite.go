package provider

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/ankurmani/stock-mvp/internal/model"
)

// SQLiteStore serves price history and news from the locally ingested
// end-of-day market database. It implements both provider contracts; the
// ingestion jobs that populate the tables live outside this repository.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the market database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so EOD ingestion can write while scoring requests read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("market store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_prices (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			close  REAL NOT NULL,
			volume INTEGER,
			UNIQUE(ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_ticker_date ON daily_prices(ticker, date)`,

		`CREATE TABLE IF NOT EXISTS news_articles (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker       TEXT NOT NULL,
			published_at TEXT,
			source       TEXT,
			title        TEXT NOT NULL,
			description  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_ticker_published ON news_articles(ticker, published_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// PriceSeries returns up to windowDays of EOD history, oldest first.
func (s *SQLiteStore) PriceSeries(ctx context.Context, ticker string, windowDays int) (*model.PriceSeries, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, close, volume FROM daily_prices
		 WHERE ticker = ? ORDER BY date DESC LIMIT ?`,
		ticker, windowDays)
	if err != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: err}
	}
	defer rows.Close()

	var pts []model.PricePoint
	for rows.Next() {
		var dateStr string
		var closePrice float64
		var volume sql.NullInt64
		if err := rows.Scan(&dateStr, &closePrice, &volume); err != nil {
			return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: err}
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: fmt.Errorf("bad date %q: %w", dateStr, err)}
		}
		pts = append(pts, model.PricePoint{Date: date, Close: closePrice, Volume: volume.Int64})
	}
	if err := rows.Err(); err != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: err}
	}
	if len(pts) == 0 {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "prices", Err: fmt.Errorf("no price data ingested")}
	}

	// Query returned newest first; flip to ascending.
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}

	return &model.PriceSeries{Ticker: ticker, Points: pts, FetchedAt: time.Now()}, nil
}

// RecentNews returns articles published within the lookback window, newest
// first. An empty batch is a valid result.
func (s *SQLiteStore) RecentNews(ctx context.Context, ticker string, lookbackDays int) (*model.NewsBatch, error) {
	since := time.Now().UTC().AddDate(0, 0, -lookbackDays).Format(time.RFC3339)
	rows, err := s.db.QueryContext(ctx,
		`SELECT published_at, source, title, COALESCE(description, '')
		 FROM news_articles
		 WHERE ticker = ? AND published_at IS NOT NULL AND published_at >= ?
		 ORDER BY published_at DESC`,
		ticker, since)
	if err != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "news", Err: err}
	}
	defer rows.Close()

	batch := &model.NewsBatch{Ticker: ticker}
	for rows.Next() {
		var publishedStr string
		var source sql.NullString
		var title, description string
		if err := rows.Scan(&publishedStr, &source, &title, &description); err != nil {
			return nil, &DataUnavailableError{Ticker: ticker, Resource: "news", Err: err}
		}
		published, err := time.Parse(time.RFC3339, publishedStr)
		if err != nil {
			log.Warn().Str("ticker", ticker).Str("published_at", publishedStr).Msg("skipping article with bad timestamp")
			continue
		}
		batch.Articles = append(batch.Articles, model.NewsArticle{
			Title:       title,
			Description: description,
			PublishedAt: published,
			Source:      source.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &DataUnavailableError{Ticker: ticker, Resource: "news", Err: err}
	}
	return batch, nil
}

// InsertPrice upserts one EOD bar. Used by ingestion tooling and tests.
func (s *SQLiteStore) InsertPrice(ticker string, date time.Time, close float64, volume int64) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_prices (ticker, date, close, volume) VALUES (?,?,?,?)
		 ON CONFLICT(ticker, date) DO UPDATE SET close=excluded.close, volume=excluded.volume`,
		ticker, date.Format("2006-01-02"), close, volume)
	return err
}

// InsertArticle stores one news article.
func (s *SQLiteStore) InsertArticle(ticker string, a model.NewsArticle) error {
	_, err := s.db.Exec(
		`INSERT INTO news_articles (ticker, published_at, source, title, description) VALUES (?,?,?,?,?)`,
		ticker, a.PublishedAt.UTC().Format(time.RFC3339), a.Source, a.Title, a.Description)
	return err
}

func (s *SQLiteStore) Close() error {
	log.Info().Msg("closing market store")
	return s.db.Close()
}
