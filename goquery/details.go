package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mangasrc"
)

var altTitleSep = regexp.MustCompile(`\s*[,;|/]\s*`)

// Details scrapes a series page. Returns false when no title selector
// matches.
func (e *Extractor) Details(html string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool) {
	doc, ok := parse(html)
	if !ok {
		return nil, false
	}
	sel := site.Selectors
	root := doc.Selection

	title := firstText(root, sel.Title)
	if title == "" {
		return nil, false
	}
	titles := []string{title}
	if alt := firstText(root, sel.AltTitles); alt != "" {
		titles = mangasrc.AppendUnique(titles, altTitleSep.Split(alt, -1)...)
	}

	var image string
	if imgs := firstMatch(root, sel.Image); imgs != nil {
		image = imageSource(imgs.First(), tileImageAttrs)
	}

	tags := []string{}
	if m := firstMatch(root, sel.Tags); m != nil {
		m.Each(func(_ int, s *goquery.Selection) {
			tags = mangasrc.AppendUnique(tags, cleanText(s.Text()))
		})
	}

	return &mangasrc.MangaDetails{
		ID:          id,
		Titles:      titles,
		ImageURL:    mangasrc.NormalizeImageURL(image, site),
		Status:      mangasrc.ParseStatus(firstText(root, sel.Status)),
		Description: e.description(root, sel.Description),
		Author:      firstText(root, sel.Author),
		Tags:        tags,
	}, true
}

// description returns the first non-empty description block, converted to
// Markdown when a converter is configured.
func (e *Extractor) description(root *goquery.Selection, selectors []string) string {
	m := firstMatch(root, selectors)
	if m == nil {
		return ""
	}
	text := cleanText(m.Text())
	if e.converter == nil || text == "" {
		return text
	}
	var b strings.Builder
	m.Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			b.WriteString(h)
		}
	})
	md, err := e.converter.Convert(b.String())
	if err != nil || strings.TrimSpace(md) == "" {
		return text
	}
	return strings.TrimSpace(md)
}
