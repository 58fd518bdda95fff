package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

func candidateSet(cands []awards.Candidate) map[string]awards.Candidate {
	out := make(map[string]awards.Candidate, len(cands))
	for _, c := range cands {
		out[c.CategoryLabel+"|"+c.Name] = c
	}
	return out
}

func TestExtractListItemsActingSplit(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<h2>Best Actor</h2>
<ul>
  <li>Cillian Murphy &#8211; Oppenheimer</li>
  <li>Paul Giamatti - The Holdovers</li>
  <li>Bradley Cooper (Maestro)</li>
</ul>
<h2>Best Picture</h2>
<ul>
  <li>Oppenheimer</li>
  <li>Poor Things</li>
</ul>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "https://example.com/a"))

	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d: %v", len(got), got)
	}
	c, ok := got["Best Actor|Cillian Murphy"]
	if !ok {
		t.Fatalf("missing Cillian Murphy candidate: %v", got)
	}
	if c.SecondaryTitle != "Oppenheimer" {
		t.Fatalf("secondary title = %q, want Oppenheimer", c.SecondaryTitle)
	}
	if c.SourceURL != "https://example.com/a" {
		t.Fatalf("source url = %q", c.SourceURL)
	}
	if c, ok = got["Best Actor|Bradley Cooper"]; !ok || c.SecondaryTitle != "Maestro" {
		t.Fatalf("parenthetical split failed: %+v", c)
	}
	if c, ok = got["Best Picture|Oppenheimer"]; !ok || c.SecondaryTitle != "" {
		t.Fatalf("work category must keep whole phrase: %+v", c)
	}
}

func TestExtractRegionStopsAtNextHeading(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<h3>Best Actress</h3>
<ul><li>Emma Stone - Poor Things</li></ul>
<h3>Best Supporting Actress</h3>
<ul><li>Da'Vine Joy Randolph - The Holdovers</li></ul>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "u"))

	if _, ok := got["Best Actress|Emma Stone"]; !ok {
		t.Fatalf("lead actress missing: %v", got)
	}
	if _, ok := got["Best Supporting Actress|Da'Vine Joy Randolph"]; !ok {
		t.Fatalf("supporting actress miscategorized: %v", got)
	}
	if _, ok := got["Best Actress|Da'Vine Joy Randolph"]; ok {
		t.Fatalf("supporting nominee leaked into the lead category")
	}
}

func TestExtractParagraphBulletFallback(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<p><strong>Best Actress</strong></p>
<p>Emma Stone &#8211; Poor Things<br>Lily Gladstone &#8211; Killers of the Flower Moon</p>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "u"))

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %v", got)
	}
	c := got["Best Actress|Lily Gladstone"]
	if c.SecondaryTitle != "Killers of the Flower Moon" {
		t.Fatalf("secondary title = %q", c.SecondaryTitle)
	}
}

func TestExtractNoiseRejected(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<h2>Best Picture</h2>
<ul>
  <li>Oppenheimer (Read our review)</li>
  <li>Watch the trailer</li>
  <li>Poor Things</li>
</ul>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "u"))

	if len(got) != 2 {
		t.Fatalf("expected noise to be discarded, got %v", got)
	}
	if _, ok := got["Best Picture|Oppenheimer"]; !ok {
		t.Fatalf("cleaned name missing: %v", got)
	}
	if _, ok := got["Best Picture|Watch the trailer"]; ok {
		t.Fatalf("editorial noise accepted as nominee")
	}
}

func TestExtractWholeDocumentFallback(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<p>Awards season is upon us.</p>
<p>Best Picture</p>
<p>The nominees are Oppenheimer, Barbie, Poor Things.</p>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "u"))

	for _, want := range []string{"Best Picture|Oppenheimer", "Best Picture|Barbie", "Best Picture|Poor Things"} {
		if _, ok := got[want]; !ok {
			t.Fatalf("fallback missing %q: %v", want, got)
		}
	}
}

func TestExtractFallbackSkippedWhenHeadingsProduced(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<h2>Best Picture</h2>
<ul><li>Oppenheimer</li></ul>
<p>Best Actor</p>
<p>The nominees are Somebody Else.</p>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := candidateSet(e.Extract(doc, "u"))

	if _, ok := got["Best Actor|Somebody Else"]; ok {
		t.Fatalf("fallback must not run when the heading walk found candidates")
	}
	if len(got) != 1 {
		t.Fatalf("expected only the list candidate, got %v", got)
	}
}

func TestExtractDedupWithinDocument(t *testing.T) {
	doc := parseHTML(t, `
<html><body>
<h2>Best Picture</h2>
<ul>
  <li>Oppenheimer</li>
  <li>OPPENHEIMER</li>
  <li>Oppenheimer</li>
</ul>
</body></html>`)

	e := NewHTMLExtractor(DefaultPatterns(), nil)
	got := e.Extract(doc, "u")

	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated candidate, got %d", len(got))
	}
	if got[0].Name != "Oppenheimer" {
		t.Fatalf("first-seen spelling must win, got %q", got[0].Name)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	doc := parseHTML(t, `<html><body><p>Nothing to see.</p></body></html>`)
	e := NewHTMLExtractor(DefaultPatterns(), nil)
	if got := e.Extract(doc, "u"); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}
