package extract

import (
	"regexp"
	"strings"
)

// CategoryClass drives how a list item is split into name and secondary
// title.
type CategoryClass int

// Category classes. Acting categories split "person - film"; work
// categories keep the whole phrase; generic splits only when a separator is
// present.
const (
	ClassGeneric CategoryClass = iota
	ClassActing
	ClassWork
)

// CategoryPattern is one row of the ordered heading-matching table. Label
// is the canonical category label emitted on matches.
type CategoryPattern struct {
	Label   string
	Pattern *regexp.Regexp
	Class   CategoryClass
}

// PatternTable matches heading text against an ordered pattern list. Order
// is the contract: more specific labels come first so "Best Supporting
// Actress" never falls through to "Best Actress".
type PatternTable struct {
	patterns []CategoryPattern
}

// NewPatternTable wraps an ordered pattern slice.
func NewPatternTable(patterns []CategoryPattern) PatternTable {
	return PatternTable{patterns: patterns}
}

// Match returns the first pattern whose expression matches the text.
func (t PatternTable) Match(text string) (CategoryPattern, bool) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 200 {
		return CategoryPattern{}, false
	}
	for _, p := range t.patterns {
		if p.Pattern.MatchString(text) {
			return p, true
		}
	}
	return CategoryPattern{}, false
}

// Len reports the number of configured patterns.
func (t PatternTable) Len() int { return len(t.patterns) }

var actingKeywords = []string{"actor", "actress", "performance"}

// ClassForLabel classifies an arbitrary resolved label, used when the
// category came from a caller override rather than the pattern table.
func ClassForLabel(label string) CategoryClass {
	lower := strings.ToLower(label)
	for _, kw := range actingKeywords {
		if strings.Contains(lower, kw) {
			return ClassActing
		}
	}
	for _, kw := range []string{"picture", "film", "feature", "screenplay", "cinematography",
		"editing", "design", "score", "song", "effects", "sound", "makeup", "documentary", "short"} {
		if strings.Contains(lower, kw) {
			return ClassWork
		}
	}
	return ClassGeneric
}

// DefaultPatterns is the standard ceremony category table, ordered most
// specific first.
func DefaultPatterns() []CategoryPattern {
	mk := func(label, expr string, class CategoryClass) CategoryPattern {
		return CategoryPattern{
			Label:   label,
			Pattern: regexp.MustCompile(`(?i)` + expr),
			Class:   class,
		}
	}
	return []CategoryPattern{
		mk("Best Supporting Actress", `best\s+(performance\s+by\s+an?\s+)?(supporting\s+actress|actress\s+in\s+a\s+supporting)`, ClassActing),
		mk("Best Supporting Actor", `best\s+(performance\s+by\s+an?\s+)?(supporting\s+actor|actor\s+in\s+a\s+supporting)`, ClassActing),
		mk("Best Actress", `best\s+(performance\s+by\s+an?\s+)?actress`, ClassActing),
		mk("Best Actor", `best\s+(performance\s+by\s+an?\s+)?actor`, ClassActing),
		mk("Best Adapted Screenplay", `best\s+adapted\s+screenplay|adapted\s+screenplay`, ClassWork),
		mk("Best Original Screenplay", `best\s+original\s+screenplay|original\s+screenplay`, ClassWork),
		mk("Best Animated Feature", `best\s+animated\s+(feature|film)`, ClassWork),
		mk("Best Documentary Feature", `best\s+documentary\s+(feature|film)?`, ClassWork),
		mk("Best International Film", `best\s+(international|foreign\s+language)\s+(feature|film)`, ClassWork),
		mk("Best Original Song", `best\s+(original\s+)?song`, ClassWork),
		mk("Best Original Score", `best\s+(original\s+)?score`, ClassWork),
		mk("Best Film Editing", `best\s+(film\s+)?editing`, ClassWork),
		mk("Best Cinematography", `best\s+cinematography`, ClassWork),
		mk("Best Production Design", `best\s+production\s+design`, ClassWork),
		mk("Best Costume Design", `best\s+costume\s+design`, ClassWork),
		mk("Best Makeup and Hairstyling", `best\s+makeup(\s+and\s+hairstyling)?`, ClassWork),
		mk("Best Visual Effects", `best\s+visual\s+effects`, ClassWork),
		mk("Best Sound", `best\s+sound(\s+(mixing|editing))?`, ClassWork),
		mk("Best Director", `best\s+direct(or|ing)`, ClassGeneric),
		mk("Best Picture", `best\s+(picture|motion\s+picture|film)`, ClassWork),
	}
}
