package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/reviewlens/pkg/reviewlens/review"
	"github.com/cognicore/reviewlens/pkg/reviewlens/store"
)

// Store is an in-memory review source for tests and embedding.
type Store struct {
	mu        sync.RWMutex
	reviews   []review.Review
	platforms []string
}

// New creates an in-memory source holding reviews.
func New(reviews ...review.Review) *Store {
	return &Store{reviews: append([]review.Review(nil), reviews...)}
}

// Close implements store.Source.
func (s *Store) Close() error { return nil }

// Add appends reviews to the source.
func (s *Store) Add(reviews ...review.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, reviews...)
}

// SetPlatforms fixes the platform tabs. Without it the platforms are derived from
// the reviews.
func (s *Store) SetPlatforms(platforms []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platforms = append([]string{}, platforms...)
}

// Load implements store.Source. The returned dataset does not share memory with
// the store.
func (s *Store) Load(ctx context.Context) (store.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return store.Dataset{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.NewDataset(s.reviews, s.platforms), nil
}
