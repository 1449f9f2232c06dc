package goquery

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mangasrc"
)

var tileImageAttrs = []string{"src", "data-src", "data-lazy-src"}

// Entries returns catalog tiles. Item selectors are tried in order and the
// first selector with matches wins. Tiles without a link or a title, and
// tiles whose title is implausibly long, are dropped.
func (e *Extractor) Entries(html string, sel mangasrc.TileSelectors, site *mangasrc.Site) []*mangasrc.CatalogEntry {
	doc, ok := parse(html)
	if !ok {
		return nil
	}

	var entries []*mangasrc.CatalogEntry
	for _, items := range sel.Items {
		matched := doc.Find(items)
		if matched.Length() == 0 {
			continue
		}
		matched.Each(func(_ int, item *goquery.Selection) {
			if entry := tile(item, sel, site); entry != nil {
				entries = append(entries, entry)
			}
		})
		break
	}
	return mangasrc.DedupeEntries(entries)
}

func tile(item *goquery.Selection, sel mangasrc.TileSelectors, site *mangasrc.Site) *mangasrc.CatalogEntry {
	anchor := item
	if sel.Link != "" && !item.Is(sel.Link) {
		anchor = item.Find(sel.Link).First()
	}
	href := strings.TrimSpace(anchor.AttrOr("href", ""))
	if href == "" {
		return nil
	}

	title := tileTitle(item, anchor, sel.Title)
	if title == "" || utf8.RuneCountInString(title) > mangasrc.MaxTileTitleLength {
		return nil
	}

	return &mangasrc.CatalogEntry{
		ID:       TileID(href),
		Title:    title,
		ImageURL: mangasrc.NormalizeImageURL(tileImage(item, anchor, sel.Container), site),
	}
}

// TileID derives a stable id from a tile link: its last path segment, or
// a hash of the link when the path has no segment.
func TileID(href string) string {
	if id := mangasrc.LastPathSegment(href); id != "" {
		return id
	}
	return strconv.FormatUint(xxhash.Sum64String(href), 16)
}

func tileTitle(item, anchor *goquery.Selection, inner []string) string {
	if t := firstText(item, inner); t != "" {
		return t
	}
	if t := cleanText(anchor.Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(anchor.AttrOr("title", "")); t != "" {
		return t
	}
	if t := strings.TrimSpace(item.AttrOr("title", "")); t != "" {
		return t
	}
	return strings.TrimSpace(item.Find("img").First().AttrOr("alt", ""))
}

func tileImage(item, anchor *goquery.Selection, container string) string {
	if src := imageSource(anchor.Find("img").First(), tileImageAttrs); src != "" {
		return src
	}
	if src := imageSource(item.Find("img").First(), tileImageAttrs); src != "" {
		return src
	}
	if container == "" {
		return ""
	}
	return imageSource(anchor.Closest(container).Find("img").First(), tileImageAttrs)
}
