package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cognicore/reviewlens/internal/jsonl"
	"github.com/cognicore/reviewlens/pkg/reviewlens"
	"github.com/cognicore/reviewlens/pkg/reviewlens/analytics"
	"github.com/cognicore/reviewlens/pkg/reviewlens/cards"
	"github.com/cognicore/reviewlens/pkg/reviewlens/config"
	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/internalerr"
	"github.com/cognicore/reviewlens/pkg/reviewlens/query"
	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store/postgres"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store/sqlite"
)

type sourceFlags struct {
	input       string
	sqlitePath  string
	pgDSN       string
	pgTable     string
	pgText      string
	pgSentiment string
}

// options holds the parsed command line.
type options struct {
	source       sourceFlags
	dashboardCfg string
	stoplistCfg  string
	from, to     int
	platform     string
	word         string
	sentiment    string
	format       string
}

func main() {
	var (
		opts    options
		verbose bool
	)
	flag.StringVar(&opts.dashboardCfg, "config", "", "Dashboard options file (optional)")
	flag.StringVar(&opts.stoplistCfg, "stoplist", "", "Stoplist file (optional, built-in list otherwise)")
	flag.StringVar(&opts.source.input, "input", "", "Path to JSONL review export")
	flag.StringVar(&opts.source.sqlitePath, "sqlite", "", "Path to SQLite review database")
	flag.StringVar(&opts.source.pgDSN, "pg-dsn", "", "PostgreSQL connection string")
	flag.StringVar(&opts.source.pgTable, "pg-table", postgres.DefaultOptions().Table, "PostgreSQL review table")
	flag.StringVar(&opts.source.pgText, "pg-text-column", postgres.DefaultOptions().TextColumn, "PostgreSQL review text column")
	flag.StringVar(&opts.source.pgSentiment, "pg-sentiment-column", postgres.DefaultOptions().SentimentColumn, "PostgreSQL raw sentiment column (empty scores the review text)")
	flag.IntVar(&opts.from, "from", 0, "First year shown (default: earliest in data)")
	flag.IntVar(&opts.to, "to", 0, "Last year shown (default: latest in data)")
	flag.StringVar(&opts.platform, "platform", "all", "Platform tab")
	flag.StringVar(&opts.word, "word", "", "Leaderboard key to drill into")
	flag.StringVar(&opts.sentiment, "sentiment", string(review.Negative), "Sentiment bucket for -word")
	flag.StringVar(&opts.format, "format", "text", "Output format: text or json")
	flag.BoolVar(&verbose, "verbose", false, "Debug logging")
	flag.Parse()

	logger := newLogger(verbose)
	err := run(context.Background(), opts, os.Stdout, logger)
	if err != nil {
		logger.Error("reviewlens failed", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run renders one dashboard snapshot to w. Sources opened here are always
// closed before it returns.
func run(ctx context.Context, opts options, w io.Writer, logger *zap.Logger) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("--format must be text or json, got %q: %w", opts.format, internalerr.ErrInvalidConfig)
	}

	var drill *query.DrillDown
	if opts.word != "" {
		sent, err := review.ParseSentiment(opts.sentiment)
		if err != nil {
			return fmt.Errorf("invalid sentiment: %w", err)
		}
		drill = &query.DrillDown{Key: strings.ToLower(strings.TrimSpace(opts.word)), Sentiment: sent}
	}

	src, err := openSource(ctx, opts.source, logger)
	if err != nil {
		return fmt.Errorf("open review source: %w", err)
	}
	defer src.Close()

	loader := config.Loader{
		StoplistPath:  opts.stoplistCfg,
		DashboardPath: opts.dashboardCfg,
	}
	dash, err := buildDashboard(ctx, src, loader, logger)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	state := dash.InitialState()
	if opts.platform != "" {
		state = state.WithPlatform(opts.platform)
	}
	lo, hi := dash.YearBounds()
	if opts.from != 0 {
		lo = opts.from
	}
	if opts.to != 0 {
		hi = opts.to
	}
	state = state.WithYears(lo, hi)
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	snap := dash.Render(state, drill)

	if opts.format == "json" {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	writeText(w, snap, dash.Platforms())
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openSource picks the review source named by exactly one of the source flags.
func openSource(ctx context.Context, f sourceFlags, logger *zap.Logger) (store.Source, error) {
	set := 0
	for _, v := range []string{f.input, f.sqlitePath, f.pgDSN} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of --input, --sqlite or --pg-dsn is required: %w", internalerr.ErrInvalidConfig)
	}

	switch {
	case f.input != "":
		return &jsonl.Source{Path: f.input, Logger: logger}, nil
	case f.sqlitePath != "":
		st, err := sqlite.OpenSQLite(ctx, f.sqlitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		src, err := postgres.Open(ctx, f.pgDSN, postgres.Options{
			Table:           f.pgTable,
			TextColumn:      f.pgText,
			SentimentColumn: f.pgSentiment,
		})
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// buildDashboard loads configuration and the review set.
func buildDashboard(ctx context.Context, src store.Source, loader config.Loader, logger *zap.Logger) (*reviewlens.Dashboard, error) {
	components, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load configs: %w", err)
	}

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	if ds.Len() == 0 {
		logger.Warn("review source is empty")
	}
	logger.Info("loaded reviews",
		zap.Int("reviews", ds.Len()),
		zap.Strings("platforms", ds.Platforms),
		zap.Stringer("count_mode", components.Options.CountMode),
	)

	return reviewlens.New(reviewlens.Options{
		Dataset:     ds,
		Tokenizer:   components.Tokenizer,
		Analytics:   components.Options,
		StripMarkup: components.StripMarkup,
		Logger:      logger,
	})
}

const histogramWidth = 40

// writeText prints the snapshot as a plain report with grouped thousands.
func writeText(w io.Writer, snap reviewlens.Snapshot, platforms []string) {
	p := message.NewPrinter(language.English)
	s := snap.Summary

	p.Fprintf(w, "Reviews %d-%d, platform %s (tabs: %s)\n",
		snap.Filter.YearStart, snap.Filter.YearEnd, snap.Filter.Platform, strings.Join(platforms, ", "))
	p.Fprintf(w, "Total: %d   Average sentiment: %.2f\n", s.Total, s.AverageSentiment)
	p.Fprintf(w, "Positive %.1f%%   Neutral %.1f%%   Negative %.1f%%\n\n", s.PositivePct, s.NeutralPct, s.NegativePct)

	p.Fprintf(w, "%-6s %10s", "Stars", "Reviews")
	for _, sent := range snap.CrossTab.Sentiments {
		p.Fprintf(w, " %10s", sent)
	}
	fmt.Fprintln(w)
	for i, row := range snap.Stars {
		p.Fprintf(w, "%-6d %10d", row.Stars, row.Count)
		for _, n := range snap.CrossTab.Rows[i].Counts {
			p.Fprintf(w, " %10d", n)
		}
		fmt.Fprintln(w)
	}

	if len(snap.Histogram) > 0 {
		fmt.Fprintln(w, "\nSentiment distribution")
		highest := analytics.MaxCount(snap.Histogram)
		for _, bin := range snap.Histogram {
			bar := 0
			if highest > 0 {
				bar = bin.Count * histogramWidth / highest
			}
			fmt.Fprintf(w, "%+.1f..%+.1f %-8s %-40s %s\n", bin.Min, bin.Max, bin.Band, strings.Repeat("#", bar), p.Sprintf("%d", bin.Count))
		}
	}

	for _, board := range append(append([]cards.Leaderboard{}, snap.Words...), snap.Phrases...) {
		fmt.Fprintf(w, "\n%s\n", board.Title)
		if len(board.Entries) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		for i, e := range board.Entries {
			p.Fprintf(w, "  %2d. %-30s %d\n", i+1, e.Key, e.Count)
		}
	}

	if c := snap.Comments; c != nil {
		fmt.Fprintf(w, "\n%s\n", c.Title)
		for _, row := range c.Rows {
			fmt.Fprintf(w, "  [%s %s %d* %s] %s\n", row.Date, row.Platform, row.Score, row.SentimentLabel, ingest.StripMarkup(row.HTML))
		}
	}
}
