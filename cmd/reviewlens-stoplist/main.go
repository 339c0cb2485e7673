package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/reviewlens/internal/jsonl"
	"github.com/cognicore/reviewlens/pkg/reviewlens/analytics"
	"github.com/cognicore/reviewlens/pkg/reviewlens/config"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store/sqlite"
)

type report struct {
	TotalReviews int64                `json:"total_reviews"`
	Candidates   []stoplist.Candidate `json:"candidates"`
}

func main() {
	defaults := stoplist.DefaultThresholds()
	var (
		input       = flag.String("input", "", "Path to JSONL review export")
		sqlitePath  = flag.String("sqlite", "", "Path to SQLite review database")
		stoplistCfg = flag.String("stoplist", "", "Current stoplist file (optional, built-in list otherwise)")
		minDF       = flag.Int64("min-df", defaults.MinDF, "Minimum number of reviews containing a candidate")
		dfPercent   = flag.Float64("df-percent", defaults.DFPercent, "Minimum share of reviews containing a candidate")
		spread      = flag.Float64("spread", defaults.Spread, "Minimum evenness across sentiment buckets (0..1)")
		limit       = flag.Int("limit", 25, "Maximum candidates to print")
		format      = flag.String("format", "json", "Output format: json, or yaml to paste into a stoplist")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	if (*input == "") == (*sqlitePath == "") {
		logger.Fatal("exactly one of --input or --sqlite required")
	}

	ctx := context.Background()

	var src store.Source
	if *input != "" {
		src = &jsonl.Source{Path: *input, Logger: logger}
	} else {
		st, err := sqlite.OpenSQLite(ctx, *sqlitePath)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		src = st
	}
	defer src.Close()

	components, err := (&config.Loader{StoplistPath: *stoplistCfg}).Load()
	if err != nil {
		logger.Fatal("load configs", zap.Error(err))
	}

	ds, err := src.Load(ctx)
	if err != nil {
		logger.Fatal("load reviews", zap.Error(err))
	}

	rep := suggest(ds, components, stoplist.Thresholds{MinDF: *minDF, DFPercent: *dfPercent, Spread: *spread}, *limit)
	if err := writeReport(os.Stdout, rep, *format); err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
}

// suggest ranks stopword candidates over the whole dataset.
func suggest(ds store.Dataset, components *config.Components, th stoplist.Thresholds, limit int) report {
	corpus := analytics.NewAggregator(components.Tokenizer, components.Options).Corpus(ds.Reviews)
	cands := components.Stoplist.Suggest(corpus.TokenStats(), th)
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return report{TotalReviews: corpus.Docs(), Candidates: cands}
}

func writeReport(w io.Writer, rep report, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(config.Stoplist{Terms: stoplist.Tokens(rep.Candidates)}); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
