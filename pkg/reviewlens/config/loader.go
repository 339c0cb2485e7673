package config

import (
	"fmt"

	"github.com/cognicore/reviewlens/pkg/reviewlens/analytics"
	"github.com/cognicore/reviewlens/pkg/reviewlens/ingest"
	"github.com/cognicore/reviewlens/pkg/reviewlens/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath  string
	DashboardPath string
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer   *ingest.Tokenizer
	Stoplist    *stoplist.Manager
	Options     analytics.Options
	StripMarkup bool
}

// Load reads all configuration files and returns initialized components.
// Without a stoplist path the built-in report stoplist is used.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Options: analytics.DefaultOptions()}

	// Load stoplist
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.Default()
	}

	// Load dashboard options
	if l.DashboardPath != "" {
		d, err := LoadDashboard(l.DashboardPath)
		if err != nil {
			return nil, fmt.Errorf("load dashboard: %w", err)
		}
		if err := d.apply(&comp.Options); err != nil {
			return nil, err
		}
		comp.Stoplist.Merge(d.ExtraStopwords)
		comp.StripMarkup = d.StripMarkup
	}

	if err := comp.Options.Validate(); err != nil {
		return nil, fmt.Errorf("dashboard options: %w", err)
	}

	comp.Tokenizer = ingest.NewTokenizer(comp.Stoplist.All())
	return comp, nil
}

func (d *Dashboard) apply(opts *analytics.Options) error {
	if d.Limit != nil {
		opts.Limit = *d.Limit
	}
	if d.MinSupport != nil {
		opts.MinSupport = *d.MinSupport
	}
	if d.PhraseSize != nil {
		opts.PhraseSize = *d.PhraseSize
	}
	if d.CountMode != "" {
		mode, err := analytics.ParseCountMode(d.CountMode)
		if err != nil {
			return err
		}
		opts.CountMode = mode
	}
	if d.EnableBigrams != nil {
		opts.EnableBigrams = *d.EnableBigrams
	}
	if d.EnableHistogram != nil {
		opts.EnableHistogram = *d.EnableHistogram
	}
	if d.HistogramBins != nil {
		opts.HistogramBins = *d.HistogramBins
	}
	return nil
}
