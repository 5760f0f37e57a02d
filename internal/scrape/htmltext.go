// Package scrape - htmltext.go provides shared DOM text helpers for the
// extraction strategies.
package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector removes chrome common to every job board page before any
// text extraction.
const noiseSelector = "script, style, noscript, nav, header, footer, aside, form, .cookie-banner, .cookie-consent, .social-share, .sidebar, .ad, .ads"

var whitespaceRe = regexp.MustCompile(`[ \t]+`)
var blankLinesRe = regexp.MustCompile(`\n\s*\n+`)

// firstText returns the trimmed text of the first selector in order that
// matches an element with at least minLen characters of text.
func firstText(doc *goquery.Document, selectors []string, minLen int) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.First().Text())
		text = collapseInline(text)
		if len(text) >= minLen {
			return text
		}
	}
	return ""
}

// blockText extracts multi-line text from the first matching selector,
// preserving line structure.
func blockText(doc *goquery.Document, selectors []string, minLen int) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := cleanBlock(sel.First().Text())
		if len(text) >= minLen {
			return text
		}
	}
	return ""
}

// collapseInline flattens a short field value to a single line.
func collapseInline(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// cleanBlock trims each line and caps consecutive blank lines.
func cleanBlock(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " ")))
	}
	out := strings.Join(cleaned, "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// parseDocument parses HTML with common noise elements removed. Returns nil
// when the HTML cannot be parsed at all; strategies must tolerate that.
func parseDocument(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	doc.Find(noiseSelector).Remove()
	return doc
}
