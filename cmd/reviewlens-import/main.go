package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/reviewlens/internal/jsonl"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store/sqlite"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Database path (required)")
		dataPath  = flag.String("data", "", "Input JSONL file to import")
		platforms = flag.String("platforms", "", "Comma-separated platform tabs, in display order (optional)")
		export    = flag.String("export", "", "Write the database back out as JSONL to this path (- for stdout)")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	if *dbPath == "" {
		logger.Fatal("--db required")
	}
	if *dataPath == "" && *export == "" {
		logger.Fatal("--data or --export required")
	}

	ctx := context.Background()

	if *dataPath != "" {
		n, err := importReviews(ctx, *dbPath, *dataPath, splitList(*platforms), logger)
		if err != nil {
			logger.Fatal("import failed", zap.Error(err))
		}
		logger.Info("imported reviews", zap.Int("reviews", n), zap.String("db", *dbPath))
	}

	if *export != "" {
		out := io.Writer(os.Stdout)
		if *export != "-" {
			f, err := os.Create(*export)
			if err != nil {
				logger.Fatal("create export file", zap.Error(err))
			}
			defer f.Close()
			out = f
		}
		n, err := exportReviews(ctx, *dbPath, out)
		if err != nil {
			logger.Fatal("export failed", zap.Error(err))
		}
		logger.Info("exported reviews", zap.Int("reviews", n), zap.String("path", *export))
	}
}

// importReviews seeds the database at dbPath from a JSONL export.
func importReviews(ctx context.Context, dbPath, dataPath string, platforms []string, logger *zap.Logger) (int, error) {
	reviews, err := jsonl.LoadReviews(dataPath, logger)
	if err != nil {
		return 0, err
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	if err := st.InsertReviews(ctx, reviews); err != nil {
		return 0, fmt.Errorf("insert reviews: %w", err)
	}
	if len(platforms) > 0 {
		if err := st.SetPlatforms(ctx, platforms); err != nil {
			return 0, fmt.Errorf("set platforms: %w", err)
		}
	}
	return len(reviews), nil
}

// exportReviews writes every stored review to w as JSONL, newest first.
func exportReviews(ctx context.Context, dbPath string, w io.Writer) (int, error) {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	ds, err := st.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := jsonl.Write(w, ds.Reviews); err != nil {
		return 0, fmt.Errorf("write reviews: %w", err)
	}
	return ds.Len(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
