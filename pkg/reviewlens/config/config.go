package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Dashboard represents the dashboard options file. Unset fields keep their
// defaults, so pointers distinguish "false" and "0" from absent.
type Dashboard struct {
	Limit           *int     `yaml:"limit"`
	MinSupport      *int64   `yaml:"min_support"`
	PhraseSize      *int     `yaml:"phrase_size"`
	CountMode       string   `yaml:"count_mode"`
	EnableBigrams   *bool    `yaml:"enable_bigrams"`
	EnableHistogram *bool    `yaml:"enable_histogram"`
	HistogramBins   *int     `yaml:"histogram_bins"`
	StripMarkup     bool     `yaml:"strip_markup"`
	ExtraStopwords  []string `yaml:"extra_stopwords"`
}

// LoadDashboard loads dashboard options from a YAML file
func LoadDashboard(path string) (*Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Dashboard
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return &d, nil
}
