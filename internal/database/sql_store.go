package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// SQLStore persists topics in a single table through sqlx, with sqlite3
// or postgres as the driver. Save is a transactional full replace, so
// the atomicity contract matches the file store's temp-and-rename.
// Writer exclusion is left to the database itself: sqlite serializes
// writers (bounded by busy_timeout) and postgres serializes the replace
// transaction, so Lock is a no-op here.
type SQLStore struct {
	db        *sqlx.DB
	intervals []int
	log       *zap.Logger
}

const sqlSchema = `
	CREATE TABLE IF NOT EXISTS topics (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		last_review_at TEXT NOT NULL,
		next_review_at TEXT NOT NULL,
		interval_index INTEGER NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		success_streak INTEGER NOT NULL DEFAULT 0,
		total_successes INTEGER NOT NULL DEFAULT 0,
		total_reviews INTEGER NOT NULL DEFAULT 0
	)
`

// topicRow mirrors the topics table; timestamps are RFC3339 UTC strings
// so they stay sortable and timezone-unambiguous in either database.
type topicRow struct {
	Name           string `db:"name"`
	Description    string `db:"description"`
	CreatedAt      string `db:"created_at"`
	LastReviewAt   string `db:"last_review_at"`
	NextReviewAt   string `db:"next_review_at"`
	IntervalIndex  int    `db:"interval_index"`
	ReviewCount    int    `db:"review_count"`
	SuccessStreak  int    `db:"success_streak"`
	TotalSuccesses int    `db:"total_successes"`
	TotalReviews   int    `db:"total_reviews"`
}

// NewSQLStore opens the database and creates the schema. Driver must be
// "sqlite3" or "postgres".
func NewSQLStore(driver, dsn string, intervals []int, log *zap.Logger) (*SQLStore, error) {
	if driver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, &PersistenceError{Op: "create data directory", Err: err}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "connect to database", Err: err}
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, &PersistenceError{Op: "set busy timeout", Err: err}
		}
	}

	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "create topics table", Err: err}
	}

	return &SQLStore{db: db, intervals: intervals, log: log}, nil
}

// Lock is a no-op: the transactional replace in Save is already
// serialized by the database engine.
func (s *SQLStore) Lock(ctx context.Context) (func(), error) {
	return func() {}, nil
}

// Load reads every row and coerces it into a valid topic.
func (s *SQLStore) Load() (map[string]*models.Topic, error) {
	var rows []topicRow
	if err := s.db.Select(&rows, "SELECT * FROM topics"); err != nil {
		return nil, &PersistenceError{Op: "load topics", Err: err}
	}

	topics := make(map[string]*models.Topic, len(rows))
	for _, row := range rows {
		t, err := row.toTopic()
		if err != nil {
			s.log.Warn("skipping unparsable topic row",
				zap.String("topic", row.Name),
				zap.Error(err))
			continue
		}
		if coerceTopic(row.Name, t, s.intervals, s.log) {
			topics[row.Name] = t
		}
	}
	return topics, nil
}

// Save replaces the whole table inside one transaction.
func (s *SQLStore) Save(topics map[string]*models.Topic) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return &PersistenceError{Op: "begin save transaction", Err: err}
	}

	if _, err := tx.Exec("DELETE FROM topics"); err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "clear topics", Err: err}
	}

	insert := s.db.Rebind(`
		INSERT INTO topics (
			name, description, created_at, last_review_at, next_review_at,
			interval_index, review_count, success_streak, total_successes, total_reviews
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for _, t := range topics {
		_, err := tx.Exec(insert,
			t.Name,
			t.Description,
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			t.LastReviewAt.UTC().Format(time.RFC3339Nano),
			t.NextReviewAt.UTC().Format(time.RFC3339Nano),
			t.IntervalIndex,
			t.ReviewCount,
			t.SuccessStreak,
			t.TotalSuccesses,
			t.TotalReviews,
		)
		if err != nil {
			tx.Rollback()
			return &PersistenceError{Op: fmt.Sprintf("insert topic %q", t.Name), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit save transaction", Err: err}
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (r topicRow) toTopic() (*models.Topic, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	lastReview, err := time.Parse(time.RFC3339Nano, r.LastReviewAt)
	if err != nil {
		return nil, fmt.Errorf("parse last_review_at: %w", err)
	}
	nextReview, err := time.Parse(time.RFC3339Nano, r.NextReviewAt)
	if err != nil {
		return nil, fmt.Errorf("parse next_review_at: %w", err)
	}
	return &models.Topic{
		Name:           r.Name,
		Description:    r.Description,
		CreatedAt:      createdAt,
		LastReviewAt:   lastReview,
		NextReviewAt:   nextReview,
		IntervalIndex:  r.IntervalIndex,
		ReviewCount:    r.ReviewCount,
		SuccessStreak:  r.SuccessStreak,
		TotalSuccesses: r.TotalSuccesses,
		TotalReviews:   r.TotalReviews,
	}, nil
}
