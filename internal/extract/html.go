// Package extract turns fetched documents into nominee candidates. The HTML
// extractor walks category headings and their sibling lists with layered
// strategies; the feed extractor pulls names out of keyword-matched entry
// titles.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

// defaultTriggers are the words that mark a text block as nominee-bearing
// for the whole-document fallback and the feed title heuristic.
var defaultTriggers = []string{"nominees", "nominations", "nominee"}

// HTMLExtractor emits candidates from a parsed announcement article.
type HTMLExtractor struct {
	table    PatternTable
	triggers []string
	logger   *zap.Logger
}

// NewHTMLExtractor builds an extractor over an ordered category pattern
// table. The table is supplied at construction so matching order stays an
// explicit contract.
func NewHTMLExtractor(patterns []CategoryPattern, logger *zap.Logger) *HTMLExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLExtractor{
		table:    NewPatternTable(patterns),
		triggers: defaultTriggers,
		logger:   logger,
	}
}

type headingMatch struct {
	anchor  *goquery.Selection
	pattern CategoryPattern
}

// regionStrategy extracts raw item strings from the sibling region that
// follows a matched heading. Strategies run in order; the first one that
// yields items wins for that heading.
type regionStrategy func(region []*goquery.Selection) []string

// Extract walks the document and returns deduplicated candidates. A
// document that defeats every layered strategy yields an empty list, never
// an error.
func (e *HTMLExtractor) Extract(doc *goquery.Document, sourceURL string) []awards.Candidate {
	var out []awards.Candidate
	seen := make(map[string]struct{})

	strategies := []regionStrategy{listItems, paragraphItems, emphasisItems}

	for _, h := range e.findHeadings(doc) {
		region := e.regionAfter(h.anchor)
		var items []string
		for _, strat := range strategies {
			if items = strat(region); len(items) > 0 {
				break
			}
		}
		for _, raw := range items {
			e.accept(&out, seen, h.pattern, raw, sourceURL)
		}
	}

	if len(out) == 0 {
		e.documentFallback(doc, sourceURL, seen, &out)
	}

	e.logger.Debug("html extraction finished",
		zap.String("source", sourceURL),
		zap.Int("candidates", len(out)))
	return out
}

// findHeadings locates heading-level elements whose text matches the
// category table. Bolded lead-ins anchor at their enclosing block so the
// sibling walk starts from the right node.
func (e *HTMLExtractor) findHeadings(doc *goquery.Document) []headingMatch {
	var matches []headingMatch
	visited := make(map[*html.Node]struct{})

	doc.Find("h1, h2, h3, h4, h5, h6, strong, b").Each(func(_ int, sel *goquery.Selection) {
		text := CleanFragment(sel.Text())
		pat, ok := e.table.Match(text)
		if !ok {
			return
		}
		anchor := sel
		if name := goquery.NodeName(sel); name == "strong" || name == "b" {
			if block := sel.Closest("p, div, li"); block.Length() > 0 {
				anchor = block
			}
		}
		node := anchor.Get(0)
		if _, dup := visited[node]; dup {
			return
		}
		visited[node] = struct{}{}
		matches = append(matches, headingMatch{anchor: anchor, pattern: pat})
	})
	return matches
}

// regionAfter collects the anchor's following siblings up to the next
// heading-like element.
func (e *HTMLExtractor) regionAfter(anchor *goquery.Selection) []*goquery.Selection {
	var region []*goquery.Selection
	for sib := anchor.Next(); sib.Length() > 0; sib = sib.Next() {
		if e.isHeading(sib) {
			break
		}
		region = append(region, sib)
	}
	return region
}

func (e *HTMLExtractor) isHeading(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	// A block whose bolded lead-in matches the table starts the next
	// category region.
	lead := sel.ChildrenFiltered("strong, b")
	if lead.Length() > 0 {
		if _, ok := e.table.Match(CleanFragment(lead.First().Text())); ok {
			return true
		}
	}
	return false
}

// accept cleans, splits, validates and dedups one raw item.
func (e *HTMLExtractor) accept(out *[]awards.Candidate, seen map[string]struct{}, pat CategoryPattern, raw, sourceURL string) {
	cleaned := CleanFragment(raw)
	if cleaned == "" || IsNoise(cleaned) {
		return
	}
	name, secondary := SplitNameTitle(cleaned, pat.Class)
	name = CleanFragment(name)
	if !ValidName(name) {
		return
	}
	key := awards.NormalizeName(pat.Label) + "|" + awards.NormalizeName(name)
	if _, dup := seen[key]; dup {
		return
	}
	seen[key] = struct{}{}
	*out = append(*out, awards.Candidate{
		CategoryLabel:  pat.Label,
		Name:           name,
		SecondaryTitle: secondary,
		SourceURL:      sourceURL,
	})
}

// listItems parses structured lists in the region.
func listItems(region []*goquery.Selection) []string {
	var items []string
	for _, el := range region {
		if name := goquery.NodeName(el); name != "ul" && name != "ol" {
			continue
		}
		el.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				items = append(items, text)
			}
		})
	}
	return items
}

// paragraphItems splits paragraph text on line breaks and bullet marks,
// the fallback for articles that list nominees inside prose blocks.
func paragraphItems(region []*goquery.Selection) []string {
	var items []string
	for _, el := range region {
		if name := goquery.NodeName(el); name != "p" && name != "div" {
			continue
		}
		lines := splitLines(dashVariants.Replace(textWithBreaks(el)))
		// A single long line without a separator is prose, not a nominee
		// item; leave it to a later strategy.
		if len(lines) == 1 && len([]rune(lines[0])) > 80 &&
			!strings.Contains(lines[0], " - ") && !strings.Contains(lines[0], ": ") {
			continue
		}
		items = append(items, lines...)
	}
	return items
}

// emphasisItems takes emphasized or linked phrases when neither lists nor
// paragraph bullets produced anything.
func emphasisItems(region []*goquery.Selection) []string {
	var items []string
	for _, el := range region {
		el.Find("em, i, a").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				items = append(items, text)
			}
		})
	}
	return items
}

// textWithBreaks renders element text with <br> turned into newlines so
// bullet-per-line paragraphs keep their item boundaries.
func textWithBreaks(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

func splitLines(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '•' || r == '·'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// documentFallback is the last layer: it runs only when the heading walk
// produced nothing anywhere in the document. Blocks containing a nominee
// trigger word are split on commas and line breaks, with the category
// inferred from the block itself or its nearest preceding blocks.
func (e *HTMLExtractor) documentFallback(doc *goquery.Document, sourceURL string, seen map[string]struct{}, out *[]awards.Candidate) {
	doc.Find("p, li, blockquote").Each(func(_ int, sel *goquery.Selection) {
		text := dashVariants.Replace(sel.Text())
		lower := strings.ToLower(text)

		trigger := ""
		idx := -1
		for _, t := range e.triggers {
			if i := strings.Index(lower, t); i >= 0 && (idx < 0 || i < idx) {
				idx, trigger = i, t
			}
		}
		if idx < 0 {
			return
		}

		pat, ok := e.table.Match(text)
		if !ok {
			pat, ok = e.nearbyCategory(sel)
		}
		if !ok {
			return
		}

		rest := text[idx+len(trigger):]
		rest = strings.TrimLeft(rest, " \t:;-")
		rest = strings.TrimPrefix(rest, "are ")
		rest = strings.TrimPrefix(rest, "include ")
		for _, frag := range splitList(rest) {
			e.accept(out, seen, pat, frag, sourceURL)
		}
	})
}

// nearbyCategory infers a category from up to three preceding sibling
// blocks.
func (e *HTMLExtractor) nearbyCategory(sel *goquery.Selection) (CategoryPattern, bool) {
	prev := sel.Prev()
	for i := 0; i < 3 && prev.Length() > 0; i++ {
		if pat, ok := e.table.Match(CleanFragment(prev.Text())); ok {
			return pat, true
		}
		prev = prev.Prev()
	}
	return CategoryPattern{}, false
}

// splitList breaks free text into name fragments on commas, line breaks,
// bullets and the word "and".
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';' || r == '•' || r == '·'
	})
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "and ")
		p = strings.TrimSuffix(p, ".")
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
