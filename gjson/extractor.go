package gjson

import (
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/mangasrc"
	"github.com/tidwall/gjson"
)

// Ensure Extractor implements mangasrc.StructuredExtractor.
var _ mangasrc.StructuredExtractor = (*Extractor)(nil)

// Extractor normalizes JSON API payloads into catalog values using the
// site's field and list aliases.
type Extractor struct {
	now mangasrc.Clock
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used for missing or unparseable timestamps.
func WithClock(now mangasrc.Clock) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Matches reports whether body is JSON of the expected catalog shape.
func (e *Extractor) Matches(body string, shape mangasrc.Shape, site *mangasrc.Site) bool {
	return IsCatalog(body, shape, site.Lists)
}

// Entries returns the catalog entries of a list payload. Records without
// an id are skipped and duplicates collapse to the first occurrence.
func (e *Extractor) Entries(body string, site *mangasrc.Site) []*mangasrc.CatalogEntry {
	items, ok := List(body, site.Lists)
	if !ok {
		return nil
	}
	entries := make([]*mangasrc.CatalogEntry, 0, len(items))
	for _, item := range items {
		if entry := e.entry(item, site); entry != nil {
			entries = append(entries, entry)
		}
	}
	return mangasrc.DedupeEntries(entries)
}

func (e *Extractor) entry(item gjson.Result, site *mangasrc.Site) *mangasrc.CatalogEntry {
	if !item.IsObject() {
		return nil
	}
	id := str(item, site.Fields.ID)
	if id == "" {
		return nil
	}
	title := str(item, site.Fields.Title)
	if title == "" {
		title = mangasrc.DefaultTitle
	}
	return &mangasrc.CatalogEntry{
		ID:       id,
		Title:    title,
		ImageURL: image(item, id, site),
		Subtitle: str(item, site.Fields.Subtitle),
	}
}

// Details returns the manga described by the "data" object or the root
// object. The payload must carry an id or a title to count as a record.
func (e *Extractor) Details(body string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool) {
	rec, ok := record(body)
	if !ok {
		return nil, false
	}
	recID := str(rec, site.Fields.ID)
	title := str(rec, site.Fields.Title)
	if recID == "" && title == "" {
		return nil, false
	}
	if id == "" {
		id = recID
	}
	if title == "" {
		title = mangasrc.DefaultTitle
	}

	titles := mangasrc.AppendUnique([]string{title}, strs(rec, site.Fields.AltTitles)...)
	return &mangasrc.MangaDetails{
		ID:          id,
		Titles:      titles,
		ImageURL:    image(rec, id, site),
		Status:      mangasrc.ParseStatus(str(rec, site.Fields.Status)),
		Description: str(rec, site.Fields.Description),
		Author:      strings.Join(mangasrc.AppendUnique(nil, strs(rec, site.Fields.Authors)...), ", "),
		Tags:        mangasrc.AppendUnique([]string{}, strs(rec, site.Fields.Tags)...),
	}, true
}

// Chapters returns the chapters of a list payload. A missing number is 0,
// a missing name is derived from the number and a missing or unparseable
// date is the current time.
func (e *Extractor) Chapters(body string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter {
	items, ok := List(body, site.Lists)
	if !ok {
		return nil
	}
	chapters := make([]*mangasrc.Chapter, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		id := str(item, site.Fields.ID)
		if id == "" {
			continue
		}
		num := number(item, site.Fields.ChapterNumber)
		name := str(item, site.Fields.ChapterName)
		if name == "" {
			name = ChapterName(num)
		}
		lang := str(item, site.Fields.Language)
		if lang == "" {
			lang = site.Language
		}
		chapters = append(chapters, &mangasrc.Chapter{
			ID:          id,
			MangaID:     mangaID,
			Name:        name,
			Number:      num,
			Language:    lang,
			PublishedAt: timestamp(item, site.Fields.PublishedAt, e.now),
		})
	}
	return mangasrc.DedupeChapters(chapters)
}

// Pages returns page image URLs in list order. Items may be URL strings,
// objects with a URL field, or file references expanded through the
// site's page template with the payload token.
func (e *Extractor) Pages(body string, mangaID, chapterID string, site *mangasrc.Site) []string {
	items, ok := List(body, site.Lists)
	if !ok {
		return nil
	}
	root := gjson.Parse(body)
	var pages []string
	for _, item := range items {
		switch {
		case item.Type == gjson.String:
			if s := strings.TrimSpace(item.Str); s != "" {
				pages = append(pages, mangasrc.PageURL(s, site))
			}
		case item.IsObject():
			if u := str(item, site.Fields.PageURL); u != "" {
				pages = append(pages, mangasrc.PageURL(u, site))
				continue
			}
			file := str(item, site.Fields.PageFile)
			if file == "" || site.PageTemplate == "" {
				continue
			}
			token := str(item, []string{site.Fields.PageToken})
			if token == "" {
				token = str(root, []string{site.Fields.PageToken})
			}
			pages = append(pages, site.Expand(site.PageTemplate, map[string]string{
				"mangaId":   mangaID,
				"chapterId": chapterID,
				"file":      file,
				"token":     token,
			}))
		}
	}
	return pages
}

// ChapterName derives a display name from a chapter number.
func ChapterName(num float64) string {
	if num <= 0 {
		return "Chapter"
	}
	return "Chapter " + strconv.FormatFloat(num, 'f', -1, 64)
}

func image(rec gjson.Result, id string, site *mangasrc.Site) string {
	raw := str(rec, site.Fields.Image)
	if raw == "" && site.ImageTemplate != "" {
		return site.Expand(site.ImageTemplate, map[string]string{"id": id})
	}
	return mangasrc.NormalizeImageURL(raw, site)
}
