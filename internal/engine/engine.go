// Package engine orchestrates a nominee import run: fetch each configured
// source, extract candidates, resolve categories, deduplicate against the
// store, insert, and fold every failure into the returned summary.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
	"github.com/gavital/oscar-betting-app-sub000/internal/extract"
	"github.com/gavital/oscar-betting-app-sub000/internal/metrics"
	"github.com/gavital/oscar-betting-app-sub000/internal/resolve"
)

// CeremonyYearKey is the settings row holding the active ceremony year.
const CeremonyYearKey = "ceremony_year"

// Config tunes engine behavior.
type Config struct {
	DefaultMaxNominees int
}

// Engine runs imports. Sources are processed sequentially: ordering decides
// which source's spelling wins on duplicate names, and it keeps the
// outbound request rate predictable.
type Engine struct {
	store    awards.Store
	fetcher  awards.Fetcher
	html     *extract.HTMLExtractor
	feeds    *extract.FeedExtractor
	synonyms resolve.SynonymTable
	metrics  *metrics.Metrics
	logger   *zap.Logger
	cfg      Config
}

// New wires an Engine. A nil metrics or logger falls back to no-ops.
func New(
	store awards.Store,
	fetcher awards.Fetcher,
	html *extract.HTMLExtractor,
	feeds *extract.FeedExtractor,
	synonyms resolve.SynonymTable,
	m *metrics.Metrics,
	logger *zap.Logger,
	cfg Config,
) *Engine {
	if m == nil {
		m = metrics.NewNop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:    store,
		fetcher:  fetcher,
		html:     html,
		feeds:    feeds,
		synonyms: synonyms,
		metrics:  m,
		logger:   logger,
		cfg:      cfg,
	}
}

// categoryBatch accumulates the inserts for one resolved category. The seen
// set is pre-seeded with stored nominees so re-runs import nothing.
type categoryBatch struct {
	cat  awards.Category
	seen map[string]struct{}
	adds []awards.Nominee
}

// Run imports nominees from the given sources. target, when non-nil,
// overrides category resolution for every candidate; feed sources require
// it. The returned error is non-nil only when the run could not start at
// all — every per-source and per-category failure lands in the summary
// instead.
func (e *Engine) Run(ctx context.Context, sources []awards.Source, target *awards.Category) (awards.ImportSummary, error) {
	start := time.Now()
	summary := awards.ImportSummary{
		RunID:            uuid.NewString(),
		ProcessedSources: []string{},
		SkippedSources:   []awards.SkippedSource{},
		PerCategory:      []awards.CategoryImport{},
	}

	year, err := e.activeYear(ctx)
	if err != nil {
		return summary, err
	}
	summary.CeremonyYear = year

	log := e.logger.With(zap.String("run_id", summary.RunID), zap.Int("year", year))
	log.Info("import run started", zap.Int("sources", len(sources)))

	resolver := resolve.New(e.store, e.synonyms, log,
		resolve.WithDefaultMaxNominees(e.cfg.DefaultMaxNominees))

	var candidates []awards.Candidate
	for _, src := range sources {
		// Cooperative cancellation between source iterations; the
		// remaining sources are implicitly skipped.
		if ctx.Err() != nil {
			log.Warn("run canceled, returning partial summary", zap.Error(ctx.Err()))
			break
		}

		doc, failure := e.fetcher.Fetch(ctx, src)
		if failure != nil {
			e.skip(&summary, log, src.URL, failure.Reason)
			continue
		}

		cands, reason := e.extractSource(doc, src, target)
		if reason != "" {
			e.skip(&summary, log, src.URL, reason)
			continue
		}

		summary.ProcessedSources = append(summary.ProcessedSources, src.URL)
		e.metrics.SourcesProcessed.Inc()
		candidates = append(candidates, cands...)
		log.Debug("source processed", zap.String("url", src.URL), zap.Int("candidates", len(cands)))
	}

	candidates = cleanupCandidates(candidates)

	batches := make(map[string]*categoryBatch)
	failedLabels := make(map[string]struct{})
	var order []string

	for _, c := range candidates {
		label := c.CategoryLabel
		if target != nil {
			label = target.Name
		}
		key := awards.NormalizeName(label)
		if key == "" {
			continue
		}
		if _, failed := failedLabels[key]; failed {
			continue
		}

		b, ok := batches[key]
		if !ok {
			var cat awards.Category
			if target != nil {
				cat = *target
			} else {
				cat, err = resolver.Resolve(ctx, label, year)
				if err != nil {
					e.failCategory(&summary, failedLabels, log, key, label, 0, err)
					continue
				}
			}
			existing, listErr := e.store.ListNominees(ctx, cat.ID, year)
			if listErr != nil {
				e.failCategory(&summary, failedLabels, log, key, cat.Name, cat.ID, listErr)
				continue
			}
			b = &categoryBatch{cat: cat, seen: make(map[string]struct{}, len(existing))}
			for _, n := range existing {
				b.seen[awards.NormalizeName(n.Name)] = struct{}{}
			}
			batches[key] = b
			order = append(order, key)
		}

		nameKey := awards.NormalizeName(c.Name)
		if _, dup := b.seen[nameKey]; dup {
			// First source wins on spelling ties.
			continue
		}
		b.seen[nameKey] = struct{}{}
		b.adds = append(b.adds, awards.Nominee{
			CategoryID:   b.cat.ID,
			Name:         c.Name,
			Meta:         c.SecondaryTitle,
			CeremonyYear: year,
		})
	}

	for _, key := range order {
		b := batches[key]
		if err := e.store.InsertNominees(ctx, b.adds); err != nil {
			log.Error("nominee insert failed",
				zap.String("category", b.cat.Name),
				zap.Int("batch", len(b.adds)),
				zap.Error(err))
			summary.PerCategory = append(summary.PerCategory, awards.CategoryImport{
				Category:   b.cat.Name,
				CategoryID: b.cat.ID,
				Error:      err.Error(),
			})
			continue
		}
		summary.PerCategory = append(summary.PerCategory, awards.CategoryImport{
			Category:      b.cat.Name,
			CategoryID:    b.cat.ID,
			ImportedCount: len(b.adds),
		})
		summary.TotalImported += len(b.adds)
		e.metrics.NomineesImported.Add(float64(len(b.adds)))
	}

	e.metrics.CategoriesCreated.Add(float64(resolver.CreatedCount()))
	summary.Duration = time.Since(start)
	e.metrics.RunDuration.Observe(summary.Duration.Seconds())

	log.Info("import run finished",
		zap.Int("imported", summary.TotalImported),
		zap.Int("processed", len(summary.ProcessedSources)),
		zap.Int("skipped", len(summary.SkippedSources)),
		zap.Duration("took", summary.Duration))
	return summary, nil
}

// activeYear reads the ceremony year from the settings store. Its failure
// is the one fatal error of a run.
func (e *Engine) activeYear(ctx context.Context) (int, error) {
	raw, err := e.store.GetSetting(ctx, CeremonyYearKey)
	if err != nil {
		return 0, fmt.Errorf("read %s setting: %w", CeremonyYearKey, err)
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 {
		return 0, fmt.Errorf("invalid %s setting %q", CeremonyYearKey, raw)
	}
	return year, nil
}

// extractSource parses and extracts one fetched document. A non-empty
// reason means the source must be skipped. Extractor panics are downgraded
// to parse_error so one document never aborts the batch.
func (e *Engine) extractSource(doc awards.RawDocument, src awards.Source, target *awards.Category) (cands []awards.Candidate, reason awards.FailureReason) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extractor panic downgraded to parse_error",
				zap.String("url", src.URL), zap.Any("panic", r))
			cands, reason = nil, awards.ReasonParseError
		}
	}()

	switch src.Kind {
	case awards.SourceFeed:
		if target == nil {
			return nil, awards.ReasonNoTargetCategory
		}
		feed, err := gofeed.NewParser().ParseString(string(doc.Body))
		if err != nil {
			return nil, awards.ReasonParseError
		}
		return e.feeds.Extract(feed, src), ""
	default:
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
		if err != nil {
			return nil, awards.ReasonParseError
		}
		return e.html.Extract(parsed, src.URL), ""
	}
}

func (e *Engine) skip(summary *awards.ImportSummary, log *zap.Logger, url string, reason awards.FailureReason) {
	summary.SkippedSources = append(summary.SkippedSources, awards.SkippedSource{
		URL:    url,
		Reason: reason,
	})
	e.metrics.SourcesSkipped.WithLabelValues(string(reason)).Inc()
	log.Warn("source skipped", zap.String("url", url), zap.String("reason", string(reason)))
}

func (e *Engine) failCategory(
	summary *awards.ImportSummary,
	failed map[string]struct{},
	log *zap.Logger,
	key, label string,
	id int64,
	err error,
) {
	failed[key] = struct{}{}
	summary.PerCategory = append(summary.PerCategory, awards.CategoryImport{
		Category:   label,
		CategoryID: id,
		Error:      err.Error(),
	})
	log.Error("category failed to import", zap.String("category", label), zap.Error(err))
}

// cleanupCandidates is the global noise pass applied after all sources are
// extracted: fragments are re-cleaned and anything still matching a noise
// pattern is dropped.
func cleanupCandidates(in []awards.Candidate) []awards.Candidate {
	out := make([]awards.Candidate, 0, len(in))
	for _, c := range in {
		c.Name = extract.CleanFragment(c.Name)
		if !extract.ValidName(c.Name) {
			continue
		}
		c.SecondaryTitle = extract.CleanFragment(c.SecondaryTitle)
		if extract.IsNoise(c.SecondaryTitle) {
			c.SecondaryTitle = ""
		}
		out = append(out, c)
	}
	return out
}
