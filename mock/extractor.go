package mock

import "github.com/fwojciec/mangasrc"

var (
	_ mangasrc.StructuredExtractor = (*StructuredExtractor)(nil)
	_ mangasrc.MarkupExtractor     = (*MarkupExtractor)(nil)
	_ mangasrc.EmbeddedExtractor   = (*EmbeddedExtractor)(nil)
)

// StructuredExtractor is a mock implementation of mangasrc.StructuredExtractor.
type StructuredExtractor struct {
	MatchesFn  func(body string, shape mangasrc.Shape, site *mangasrc.Site) bool
	EntriesFn  func(body string, site *mangasrc.Site) []*mangasrc.CatalogEntry
	DetailsFn  func(body string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool)
	ChaptersFn func(body string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter
	PagesFn    func(body string, mangaID, chapterID string, site *mangasrc.Site) []string
}

func (e *StructuredExtractor) Matches(body string, shape mangasrc.Shape, site *mangasrc.Site) bool {
	return e.MatchesFn(body, shape, site)
}

func (e *StructuredExtractor) Entries(body string, site *mangasrc.Site) []*mangasrc.CatalogEntry {
	return e.EntriesFn(body, site)
}

func (e *StructuredExtractor) Details(body string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool) {
	return e.DetailsFn(body, id, site)
}

func (e *StructuredExtractor) Chapters(body string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter {
	return e.ChaptersFn(body, mangaID, site)
}

func (e *StructuredExtractor) Pages(body string, mangaID, chapterID string, site *mangasrc.Site) []string {
	return e.PagesFn(body, mangaID, chapterID, site)
}

// MarkupExtractor is a mock implementation of mangasrc.MarkupExtractor.
type MarkupExtractor struct {
	EntriesFn  func(html string, sel mangasrc.TileSelectors, site *mangasrc.Site) []*mangasrc.CatalogEntry
	DetailsFn  func(html string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool)
	ChaptersFn func(html string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter
	PagesFn    func(html string, site *mangasrc.Site) []string
}

func (e *MarkupExtractor) Entries(html string, sel mangasrc.TileSelectors, site *mangasrc.Site) []*mangasrc.CatalogEntry {
	return e.EntriesFn(html, sel, site)
}

func (e *MarkupExtractor) Details(html string, id string, site *mangasrc.Site) (*mangasrc.MangaDetails, bool) {
	return e.DetailsFn(html, id, site)
}

func (e *MarkupExtractor) Chapters(html string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter {
	return e.ChaptersFn(html, mangaID, site)
}

func (e *MarkupExtractor) Pages(html string, site *mangasrc.Site) []string {
	return e.PagesFn(html, site)
}

// EmbeddedExtractor is a mock implementation of mangasrc.EmbeddedExtractor.
type EmbeddedExtractor struct {
	ExtractFn func(html string, markers []mangasrc.EmbeddedMarker) (string, bool)
}

func (e *EmbeddedExtractor) Extract(html string, markers []mangasrc.EmbeddedMarker) (string, bool) {
	return e.ExtractFn(html, markers)
}
