// Package postgres loads reviews from the PostgreSQL table the review scraper
// writes to.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
)

// Options names the table and columns to read.
type Options struct {
	Table           string
	TextColumn      string
	SentimentColumn string // optional raw polarity column; empty scores the text on load
}

// DefaultOptions matches the scraper schema, which stores no polarity.
func DefaultOptions() Options {
	return Options{
		Table:      "reviews",
		TextColumn: "translated_content",
	}
}

// Source reads reviews over a single pgx connection.
type Source struct {
	conn *pgx.Conn
	opts Options
}

var _ store.Source = (*Source)(nil)

// Open connects to the database at dsn.
func Open(ctx context.Context, dsn string, opts Options) (*Source, error) {
	if strings.TrimSpace(opts.Table) == "" || strings.TrimSpace(opts.TextColumn) == "" {
		return nil, fmt.Errorf("postgres source needs a table and text column: %w", internalerr.ErrInvalidConfig)
	}
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	return &Source{conn: conn, opts: opts}, nil
}

// Close closes the connection.
func (s *Source) Close() error {
	return s.conn.Close(context.Background())
}

// Query builds the select statement for opts. Identifiers are quoted.
func Query(opts Options) string {
	text := pgx.Identifier{opts.TextColumn}.Sanitize()
	rawCol := "NULL::float8"
	if opts.SentimentColumn != "" {
		rawCol = pgx.Identifier{opts.SentimentColumn}.Sanitize() + "::float8"
	}
	return fmt.Sprintf(`SELECT score::int4, %[1]s, %[2]s, review_date::date, platform
FROM %[3]s
WHERE %[1]s IS NOT NULL AND %[1]s != ''
ORDER BY review_date DESC`, text, rawCol, tableIdentifier(opts.Table).Sanitize())
}

// tableIdentifier splits an optional schema prefix ("public.reviews").
func tableIdentifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(table, "."))
}

// Load implements store.Source. Rows without a raw score get a neutral bucket and
// an empty label; the platform set is derived from the rows.
func (s *Source) Load(ctx context.Context) (store.Dataset, error) {
	rows, err := s.conn.Query(ctx, Query(s.opts))
	if err != nil {
		return store.Dataset{}, fmt.Errorf("query reviews: %w", err)
	}

	var (
		score    pgtype.Int4
		text     string
		rawScore pgtype.Float8
		date     pgtype.Date
		platform pgtype.Text
		reviews  []review.Review
	)
	_, err = pgx.ForEachRow(rows, []any{&score, &text, &rawScore, &date, &platform}, func() error {
		reviews = append(reviews, fromRow(score, text, rawScore, date, platform))
		return nil
	})
	if err != nil {
		return store.Dataset{}, fmt.Errorf("scan reviews: %w", err)
	}

	return store.NewDataset(reviews, nil), nil
}

func fromRow(score pgtype.Int4, text string, rawScore pgtype.Float8, date pgtype.Date, platform pgtype.Text) review.Review {
	r := review.Review{
		Score:    int(score.Int32),
		Text:     text,
		Platform: "unknown",
	}
	if platform.Valid {
		r.Platform = platform.String
	}
	if rawScore.Valid {
		v := rawScore.Float64
		r.SentimentRaw = &v
	}
	if date.Valid {
		r.Date = date.Time.Format("2006-01-02")
		r.Year = date.Time.Year()
	}
	return r
}
