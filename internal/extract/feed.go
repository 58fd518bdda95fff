package extract

import (
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// FeedExtractor pulls nominee name candidates out of RSS/Atom entries.
// Feed candidates carry no category label; feed sources are configured for
// one category ahead of time and the engine supplies the target.
type FeedExtractor struct {
	triggers []string
	logger   *zap.Logger
}

// NewFeedExtractor builds a feed extractor. Extra triggers supplement the
// default English ones for local-language feeds ("nominerade", "nominiert").
func NewFeedExtractor(logger *zap.Logger, extraTriggers ...string) *FeedExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	triggers := make([]string, 0, len(defaultTriggers)+len(extraTriggers))
	triggers = append(triggers, defaultTriggers...)
	for _, t := range extraTriggers {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			triggers = append(triggers, t)
		}
	}
	return &FeedExtractor{triggers: triggers, logger: logger}
}

// Extract filters entries by the source's keywords and splits names out of
// matching entry titles. Candidates are deduplicated by normalized name
// within the batch.
func (e *FeedExtractor) Extract(feed *gofeed.Feed, src awards.Source) []awards.Candidate {
	var out []awards.Candidate
	seen := make(map[string]struct{})

	for _, item := range feed.Items {
		if item == nil || !e.relevant(item, src.Keywords) {
			continue
		}
		for _, name := range e.namesFromTitle(item.Title) {
			key := awards.NormalizeName(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, awards.Candidate{
				Name:      name,
				SourceURL: src.URL,
			})
		}
	}

	e.logger.Debug("feed extraction finished",
		zap.String("source", src.URL),
		zap.Int("entries", len(feed.Items)),
		zap.Int("candidates", len(out)))
	return out
}

// relevant applies the case-insensitive keyword filter over title and
// summary. No configured keywords means every entry passes.
func (e *FeedExtractor) relevant(item *gofeed.Item, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	combined := strings.ToLower(item.Title + " " + item.Description)
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw == "" {
			continue
		}
		if strings.Contains(combined, kw) {
			return true
		}
	}
	return false
}

// namesFromTitle locates the text after a trigger word and splits it into
// individual validated names.
func (e *FeedExtractor) namesFromTitle(title string) []string {
	title = dashVariants.Replace(title)
	lower := strings.ToLower(title)

	idx, trigger := -1, ""
	for _, t := range e.triggers {
		if i := strings.Index(lower, t); i >= 0 && (idx < 0 || i < idx) {
			idx, trigger = i, t
		}
	}
	if idx < 0 {
		return nil
	}

	rest := title[idx+len(trigger):]
	rest = strings.TrimLeft(rest, " \t:;-")
	rest = strings.TrimPrefix(rest, "are ")

	var names []string
	for _, frag := range splitList(rest) {
		name := CleanFragment(frag)
		if ValidName(name) {
			names = append(names, name)
		}
	}
	return names
}
