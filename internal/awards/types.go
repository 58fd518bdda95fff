// Package awards defines the core types shared across the nominee import
// pipeline: configured sources, extracted candidates, catalog rows, and the
// summary returned to callers.
package awards

import (
	"strconv"
	"time"
)

// SourceKind distinguishes how a configured source is fetched and parsed.
type SourceKind string

// Source kinds accepted in configuration.
const (
	SourceHTML SourceKind = "html-article"
	SourceFeed SourceKind = "feed"
)

// Source is one administrator-configured location to import nominees from.
// The pipeline treats sources as read-only input.
type Source struct {
	URL      string     `json:"url" mapstructure:"url"`
	Kind     SourceKind `json:"kind" mapstructure:"kind"`
	Name     string     `json:"name,omitempty" mapstructure:"name"`
	Language string     `json:"language,omitempty" mapstructure:"language"`
	Keywords []string   `json:"keywords,omitempty" mapstructure:"keywords"`
}

// Candidate is an extracted, not-yet-persisted nominee guess. Feed-sourced
// candidates carry an empty CategoryLabel; the target category comes from
// the caller in that case.
type Candidate struct {
	CategoryLabel  string
	Name           string
	SecondaryTitle string
	SourceURL      string
}

// Category is one row of the category catalog. At most one category exists
// per (normalized name, ceremony year).
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CeremonyYear int    `json:"ceremony_year"`
	IsActive     bool   `json:"is_active"`
	MaxNominees  int    `json:"max_nominees"`
}

// Nominee is one persisted nominee row. Uniqueness per
// (category, normalized name, ceremony year) is enforced by the import
// engine's dedup set, not by the store.
type Nominee struct {
	ID           int64  `json:"id"`
	CategoryID   int64  `json:"category_id"`
	Name         string `json:"name"`
	Meta         string `json:"meta,omitempty"`
	CeremonyYear int    `json:"ceremony_year"`
	IsWinner     bool   `json:"is_winner"`
}

// FailureReason classifies why a source could not contribute nominees.
type FailureReason string

// Failure reasons recorded in the import summary.
const (
	ReasonUnreachable      FailureReason = "unreachable"
	ReasonTimeout          FailureReason = "timeout"
	ReasonParseError       FailureReason = "parse_error"
	ReasonNoTargetCategory FailureReason = "no_target_category"
)

// HTTPStatusReason builds the classified reason for a non-2xx response.
func HTTPStatusReason(code int) FailureReason {
	return FailureReason("http_status:" + strconv.Itoa(code))
}

// FetchFailure is the tagged result returned when a source could not be
// retrieved. It is recorded in the summary, never raised.
type FetchFailure struct {
	URL    string
	Reason FailureReason
	Err    error
}

func (f *FetchFailure) Error() string {
	msg := string(f.Reason) + ": " + f.URL
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

// RawDocument is the undecoded body of a fetched source.
type RawDocument struct {
	URL         string
	Kind        SourceKind
	Body        []byte
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// SkippedSource records one source excluded from an import run.
type SkippedSource struct {
	URL    string        `json:"url"`
	Reason FailureReason `json:"reason"`
}

// CategoryImport is the per-category slice of an import summary.
type CategoryImport struct {
	Category      string `json:"category"`
	CategoryID    int64  `json:"category_id"`
	ImportedCount int    `json:"imported_count"`
	Error         string `json:"error,omitempty"`
}

// ImportSummary is assembled fresh per run and returned to the caller.
// Callers display its fields verbatim.
type ImportSummary struct {
	RunID            string           `json:"run_id"`
	CeremonyYear     int              `json:"ceremony_year"`
	TotalImported    int              `json:"total_imported"`
	PerCategory      []CategoryImport `json:"per_category"`
	ProcessedSources []string         `json:"processed_sources"`
	SkippedSources   []SkippedSource  `json:"skipped_sources"`
	Duration         time.Duration    `json:"duration_ms"`
}
