package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mangasrc"
)

// Ensure Detector implements mangasrc.ThemeDetector.
var _ mangasrc.ThemeDetector = (*Detector)(nil)

// Detector identifies site themes from HTML content.
// It checks theme stylesheet paths, theme-specific CSS classes and IDs,
// and framework script markers.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified theme.
// Returns ThemeUnknown if the theme cannot be determined.
func (d *Detector) Detect(html string) mangasrc.Theme {
	doc, ok := parse(html)
	if !ok {
		return mangasrc.ThemeUnknown
	}

	// Theme stylesheet paths are the most reliable signal when present
	if theme := d.detectFromStylesheets(doc); theme != mangasrc.ThemeUnknown {
		return theme
	}

	// Mangareader markers
	// #readerarea and .bsx tiles are specific to the theme's templates
	if d.hasSelector(doc, "#readerarea") ||
		d.hasSelector(doc, ".listupd .bsx") ||
		d.hasSelector(doc, "#chapterlist") ||
		d.hasScript(doc, "ts_reader.run") {
		return mangasrc.ThemeMangareader
	}

	// Madara markers
	if d.hasSelector(doc, ".wp-manga-chapter") ||
		d.hasSelector(doc, ".page-item-detail") ||
		d.hasSelector(doc, ".c-page-content") ||
		d.hasSelector(doc, ".reading-content") {
		return mangasrc.ThemeMadara
	}

	// Next.js markers
	if d.hasSelector(doc, "#__next") ||
		d.hasSelector(doc, `script[src*="/_next/"]`) ||
		d.hasScript(doc, "self.__next_f") {
		return mangasrc.ThemeNextJS
	}

	return mangasrc.ThemeUnknown
}

// detectFromStylesheets checks WordPress theme stylesheet paths.
func (d *Detector) detectFromStylesheets(doc *goquery.Document) mangasrc.Theme {
	theme := mangasrc.ThemeUnknown
	doc.Find("link[rel='stylesheet']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.ToLower(s.AttrOr("href", ""))
		switch {
		case strings.Contains(href, "/themes/mangareader"):
			theme = mangasrc.ThemeMangareader
		case strings.Contains(href, "/themes/madara"):
			theme = mangasrc.ThemeMadara
		}
		return theme == mangasrc.ThemeUnknown
	})
	return theme
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// hasScript checks if any inline script contains the marker.
func (d *Detector) hasScript(doc *goquery.Document, marker string) bool {
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = strings.Contains(s.Text(), marker)
		return !found
	})
	return found
}
