package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
)

// Store reads the review dataset from a SQLite database.
type Store struct {
	db *sql.DB
}

var _ store.Source = (*Store)(nil)

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the review
// schema if it is missing.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	score INTEGER NOT NULL,
	sentiment_label TEXT,
	sentiment_type TEXT,
	sentiment_raw REAL,
	review TEXT,
	review_date TEXT,
	platform TEXT,
	year INTEGER
);

CREATE INDEX IF NOT EXISTS reviews_date ON reviews(review_date);

CREATE TABLE IF NOT EXISTS platforms (
	name TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// InsertReviews seeds the database. Records are normalized and given IDs first;
// existing rows with the same ID are replaced.
func (s *Store) InsertReviews(ctx context.Context, reviews []review.Review) error {
	ds := store.NewDataset(reviews, []string{})

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO reviews (id, score, sentiment_label, sentiment_type, sentiment_raw, review, review_date, platform, year)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	score=excluded.score,
	sentiment_label=excluded.sentiment_label,
	sentiment_type=excluded.sentiment_type,
	sentiment_raw=excluded.sentiment_raw,
	review=excluded.review,
	review_date=excluded.review_date,
	platform=excluded.platform,
	year=excluded.year`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range ds.Reviews {
		var rawScore sql.NullFloat64
		if r.SentimentRaw != nil {
			rawScore = sql.NullFloat64{Float64: *r.SentimentRaw, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Score, r.SentimentLabel, string(r.SentimentType), rawScore,
			r.Text, r.Date, r.Platform, r.Year,
		); err != nil {
			return fmt.Errorf("insert review %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// SetPlatforms replaces the platform tab list.
func (s *Store) SetPlatforms(ctx context.Context, platforms []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM platforms`); err != nil {
		return err
	}
	for i, p := range platforms {
		if _, err := tx.ExecContext(ctx, `INSERT INTO platforms (name, position) VALUES (?, ?)`, p, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load implements store.Source: every review, newest first, plus the configured
// platforms (derived from the reviews when none are stored).
func (s *Store) Load(ctx context.Context) (store.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, score, sentiment_label, sentiment_type, sentiment_raw, review, review_date, platform, year
FROM reviews
ORDER BY review_date DESC, id`)
	if err != nil {
		return store.Dataset{}, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		var (
			r                     review.Review
			label, sentType, text sql.NullString
			date, platform        sql.NullString
			rawScore              sql.NullFloat64
			year                  sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Score, &label, &sentType, &rawScore, &text, &date, &platform, &year); err != nil {
			return store.Dataset{}, fmt.Errorf("scan review: %w", err)
		}
		r.SentimentLabel = label.String
		r.SentimentType = review.Sentiment(sentType.String)
		if rawScore.Valid {
			v := rawScore.Float64
			r.SentimentRaw = &v
		}
		r.Text = text.String
		r.Date = date.String
		r.Platform = platform.String
		r.Year = int(year.Int64)
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return store.Dataset{}, err
	}

	platforms, err := s.platforms(ctx)
	if err != nil {
		return store.Dataset{}, err
	}
	return store.NewDataset(reviews, platforms), nil
}

func (s *Store) platforms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM platforms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query platforms: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
