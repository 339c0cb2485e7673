package stoplist

import "sort"

// TokenStats describes how a token is spread over the review corpus. Spread is
// the normalized entropy of the token's per-bucket rates, 0..1: a token used at
// the same rate in every sentiment bucket scores 1.
type TokenStats struct {
	Token     string
	DF        int64   // reviews containing the token
	DFPercent float64 // DF as a share of all reviews
	Spread    float64
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	MinDF     int64
	DFPercent float64
	Spread    float64
}

// DefaultThresholds flags tokens in at least 10% of reviews (and 5 reviews) that
// carry almost no sentiment signal.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinDF:     5,
		DFPercent: 10,
		Spread:    0.9,
	}
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token     string  `json:"token" yaml:"token"`
	DFPercent float64 `json:"df_percent" yaml:"df_percent"`
	Spread    float64 `json:"spread" yaml:"spread"`
	Score     float64 `json:"score" yaml:"score"` // confidence score
}

// Suggest returns tokens that appear in many reviews at the same rate in every
// sentiment bucket, best first. Tokens already on the stoplist are skipped.
func (m *Manager) Suggest(stats []TokenStats, th Thresholds) []Candidate {
	var out []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue
		}
		if s.DF < th.MinDF || s.DFPercent < th.DFPercent || s.Spread < th.Spread {
			continue
		}
		out = append(out, Candidate{
			Token:     s.Token,
			DFPercent: s.DFPercent,
			Spread:    s.Spread,
			Score:     (s.DFPercent/100 + s.Spread) / 2,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Tokens returns the candidate tokens in rank order.
func Tokens(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Token
	}
	return out
}
