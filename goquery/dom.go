package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mangasrc"
)

var numberRe = regexp.MustCompile(`(\d+(\.\d+)?)`)

// parse loads html into a document. Empty or unparseable input reports false.
func parse(html string) (*goquery.Document, bool) {
	if strings.TrimSpace(html) == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// cleanText collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText returns the first non-empty text among the selectors.
func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		var text string
		s.Find(sel).EachWithBreak(func(_ int, m *goquery.Selection) bool {
			text = cleanText(m.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// firstMatch returns the first selector's matches that are non-empty.
func firstMatch(s *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if m := s.Find(sel); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// imageSource returns the first usable attribute of img, skipping inline
// data URIs, then the first srcset candidate.
func imageSource(img *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		v := strings.TrimSpace(img.AttrOr(attr, ""))
		if v != "" && !strings.HasPrefix(v, "data:") {
			return v
		}
	}
	return firstSrcset(img.AttrOr("srcset", ""))
}

// firstSrcset returns the URL of the first srcset candidate.
func firstSrcset(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ChapterNumber extracts the first decimal number in a chapter label,
// or 0 when there is none.
func ChapterNumber(label string) float64 {
	m := numberRe.FindString(label)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return n
}
