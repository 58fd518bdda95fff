package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// dashVariants maps typographic dash/space characters onto plain ASCII so
// the separator heuristics see one shape.
var dashVariants = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"‐", "-",
	"‑", "-",
	" ", " ", // no-break space
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// noisePatterns match editorial fragments that are never nominee names.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)read\s+(our|the)\s+review`),
	regexp.MustCompile(`(?i)^\(?\s*review\s*\)?$`),
	regexp.MustCompile(`(?i)watch\s+the\s+trailer`),
	regexp.MustCompile(`(?i)see\s+the\s+(full|complete)\s+list`),
	regexp.MustCompile(`(?i)full\s+list\s+of`),
	regexp.MustCompile(`(?i)click\s+here`),
	regexp.MustCompile(`(?i)^(advertisement|sponsored|related)[:\s]*`),
	regexp.MustCompile(`(?i)photo\s*(credit|:)`),
	regexp.MustCompile(`(?i)getty\s+images`),
}

var (
	bulletPrefix = regexp.MustCompile(`^[\s]*(?:[•·▪‣◦*>]+|\d{1,2}[.)])\s*`)
	parenGroup   = regexp.MustCompile(`\(([^()]*)\)`)
)

// IsNoise reports whether a fragment matches an editorial-noise pattern.
func IsNoise(s string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// CleanFragment normalizes one extracted text fragment: dash and quote
// variants folded, bullet markers stripped, noise parentheticals removed,
// whitespace collapsed.
func CleanFragment(s string) string {
	s = dashVariants.Replace(s)
	s = bulletPrefix.ReplaceAllString(s, "")
	s = parenGroup.ReplaceAllStringFunc(s, func(g string) string {
		inner := strings.Trim(g, "()")
		if IsNoise(inner) {
			return ""
		}
		return g
	})
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " -–—:;,\"'")
	return s
}

// ValidName applies the candidate validity filter: sensible length, at
// least two letters, not noise, not excessively punctuated.
func ValidName(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 || len(runes) > 120 {
		return false
	}
	if IsNoise(s) {
		return false
	}
	letters, punct := 0, 0
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			punct++
		}
	}
	return letters >= 2 && punct <= 8
}

var trailingParen = regexp.MustCompile(`^(.*\S)\s*\(([^()]+)\)\s*$`)

// SplitNameTitle splits one cleaned list item into the nominee name and an
// optional secondary title, according to the category class.
func SplitNameTitle(item string, class CategoryClass) (name, secondary string) {
	item = strings.TrimSpace(item)
	if class == ClassWork {
		return item, ""
	}

	for _, sep := range []string{" - ", ": ", " | "} {
		if idx := strings.Index(item, sep); idx > 0 {
			name = strings.TrimSpace(item[:idx])
			secondary = strings.TrimSpace(item[idx+len(sep):])
			if IsNoise(secondary) {
				secondary = ""
			}
			return name, secondary
		}
	}

	if m := trailingParen.FindStringSubmatch(item); m != nil {
		sec := strings.TrimSpace(m[2])
		if IsNoise(sec) {
			sec = ""
		}
		return strings.TrimSpace(m[1]), sec
	}

	return item, ""
}
