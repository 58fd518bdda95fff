// Package resolve maps free-text category labels onto catalog rows for the
// active ceremony year: cache, exact match, synonym table, then creation.
package resolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// DefaultMaxNominees is applied to categories the resolver creates when no
// override is configured.
const DefaultMaxNominees = 10

// Resolver resolves labels for one import run. The cache lives on the
// resolver, so concurrent runs each get their own; construct one per run.
type Resolver struct {
	store       awards.Store
	synonyms    SynonymTable
	cache       map[string]awards.Category
	defaultMax  int
	createdKeys []string
	logger      *zap.Logger
}

// Option tweaks resolver construction.
type Option func(*Resolver)

// WithDefaultMaxNominees overrides the max_nominees applied to created
// categories.
func WithDefaultMaxNominees(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.defaultMax = n
		}
	}
}

// New builds a per-run Resolver.
func New(store awards.Store, synonyms SynonymTable, logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		store:      store,
		synonyms:   synonyms,
		cache:      make(map[string]awards.Category),
		defaultMax: DefaultMaxNominees,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreatedCount reports how many categories this run created.
func (r *Resolver) CreatedCount() int { return len(r.createdKeys) }

// Resolve maps a label to a category for the given ceremony year. It only
// fails on store errors; an unknown label creates a new active category
// with the default nominee cap.
func (r *Resolver) Resolve(ctx context.Context, label string, year int) (awards.Category, error) {
	key := awards.NormalizeName(label)
	if key == "" {
		return awards.Category{}, fmt.Errorf("empty category label")
	}

	// Cache hits are revalidated against the store so an entry cached for
	// a prior ceremony year is never silently reused.
	if cached, ok := r.cache[key]; ok {
		fresh, err := r.store.GetCategory(ctx, cached.ID)
		if err == nil && fresh.CeremonyYear == year {
			r.cache[key] = fresh
			return fresh, nil
		}
		delete(r.cache, key)
	}

	cats, err := r.store.ListCategories(ctx, year)
	if err != nil {
		return awards.Category{}, fmt.Errorf("list categories for %d: %w", year, err)
	}

	// Exact case-insensitive name match for the active year.
	for _, cat := range cats {
		if awards.NormalizeName(cat.Name) == key {
			r.cache[key] = cat
			return cat, nil
		}
	}

	// Synonym fallback: the incoming label and a stored category name map
	// to the same canonical key.
	for _, cat := range cats {
		if r.synonyms.Matches(key, awards.NormalizeName(cat.Name)) {
			r.logger.Debug("category resolved via synonym",
				zap.String("label", label),
				zap.String("category", cat.Name),
				zap.Int("year", year))
			r.cache[key] = cat
			return cat, nil
		}
	}

	created, err := r.store.InsertCategory(ctx, awards.Category{
		Name:         label,
		CeremonyYear: year,
		IsActive:     true,
		MaxNominees:  r.defaultMax,
	})
	if err != nil {
		return awards.Category{}, fmt.Errorf("create category %q for %d: %w", label, year, err)
	}
	r.logger.Info("created category",
		zap.String("name", created.Name),
		zap.Int("year", year),
		zap.Int64("id", created.ID))
	r.cache[key] = created
	r.createdKeys = append(r.createdKeys, key)
	return created, nil
}
