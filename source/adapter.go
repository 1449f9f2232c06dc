// Package source implements the catalog source adapter: every operation
// fetches an endpoint, classifies the body, extracts and normalizes it,
// and falls back to a secondary endpoint when the primary yields nothing.
package source

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/fwojciec/mangasrc"
)

// Ensure Adapter implements mangasrc.Source.
var _ mangasrc.Source = (*Adapter)(nil)

// Adapter serves the catalog operations of one site.
type Adapter struct {
	Site       *mangasrc.Site
	Fetcher    mangasrc.Fetcher
	Structured mangasrc.StructuredExtractor
	Markup     mangasrc.MarkupExtractor

	// Embedded is optional; without it hydration payloads are ignored and
	// such pages are scraped as plain markup.
	Embedded mangasrc.EmbeddedExtractor

	// Logger receives failures that are degraded to empty sections.
	Logger *slog.Logger
}

// HomeSections emits every configured section empty, then fetches and
// emits each one populated. Section failures are logged and produce an
// empty populated section. Sections sharing a request reuse one fetch.
func (a *Adapter) HomeSections(ctx context.Context, emit mangasrc.SectionFunc) error {
	defs := a.Site.Sections
	for _, def := range defs {
		emit(newSection(def, []*mangasrc.CatalogEntry{}))
	}

	fetch := a.cachedFetch()
	for _, def := range defs {
		tiles := def.Tiles
		if len(tiles.Items) == 0 {
			tiles = a.Site.Tiles
		}
		entries, _, err := runTiers(ctx, def.Operation,
			func(ctx context.Context, ep *mangasrc.Endpoint) ([]*mangasrc.CatalogEntry, error) {
				body, err := fetch(ctx, ep, map[string]string{"page": "1"})
				if err != nil {
					return nil, err
				}
				return a.entries(body, tiles), nil
			},
			isEmpty[*mangasrc.CatalogEntry], false)
		if err != nil {
			a.logger().Warn("home section failed", "site", a.Site.Name, "section", def.ID, "err", err)
		}
		if entries == nil {
			entries = []*mangasrc.CatalogEntry{}
		}
		emit(newSection(def, entries))
	}
	return ctx.Err()
}

// MangaDetails returns the details of one manga. Transport failures are
// returned; a page without a usable record yields placeholder details.
func (a *Adapter) MangaDetails(ctx context.Context, id string) (*mangasrc.MangaDetails, error) {
	if id == "" {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "manga ID required")
	}
	details, _, err := runTiers(ctx, a.Site.Endpoints.Details,
		func(ctx context.Context, ep *mangasrc.Endpoint) (*mangasrc.MangaDetails, error) {
			body, err := a.fetch(ctx, ep, map[string]string{"id": id})
			if err != nil {
				return nil, err
			}
			return a.details(body, id), nil
		},
		func(d *mangasrc.MangaDetails) bool { return d == nil }, true)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = &mangasrc.MangaDetails{
			ID:       id,
			Titles:   []string{mangasrc.DefaultTitle},
			ImageURL: a.Site.FallbackImage,
			Tags:     []string{},
		}
	}
	return details, nil
}

// Chapters returns a manga's chapters. An empty list is not an error.
func (a *Adapter) Chapters(ctx context.Context, mangaID string) ([]*mangasrc.Chapter, error) {
	if mangaID == "" {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "manga ID required")
	}
	chapters, _, err := runTiers(ctx, a.Site.Endpoints.Chapters,
		func(ctx context.Context, ep *mangasrc.Endpoint) ([]*mangasrc.Chapter, error) {
			body, err := a.fetch(ctx, ep, map[string]string{"id": mangaID})
			if err != nil {
				return nil, err
			}
			return a.chapters(body, mangaID), nil
		},
		isEmpty[*mangasrc.Chapter], false)
	if err != nil {
		return nil, err
	}
	if chapters == nil {
		chapters = []*mangasrc.Chapter{}
	}
	return chapters, nil
}

// ChapterPages returns a chapter's pages in reading order together with
// the headers image requests need.
func (a *Adapter) ChapterPages(ctx context.Context, mangaID, chapterID string) (*mangasrc.ChapterPages, error) {
	if chapterID == "" {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "chapter ID required")
	}
	vars := map[string]string{"id": mangaID, "mangaId": mangaID, "chapterId": chapterID}
	pages, _, err := runTiers(ctx, a.Site.Endpoints.Pages,
		func(ctx context.Context, ep *mangasrc.Endpoint) ([]string, error) {
			body, err := a.fetch(ctx, ep, vars)
			if err != nil {
				return nil, err
			}
			return a.pages(body, mangaID, chapterID), nil
		},
		isEmpty[string], true)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []string{}
	}
	return &mangasrc.ChapterPages{
		ChapterID: chapterID,
		MangaID:   mangaID,
		Pages:     pages,
		Headers:   maps.Clone(a.Site.PageHeaders),
	}, nil
}

// Search returns one page of results. The token is the page number; the
// next token is set when the page had results and the endpoint pages.
func (a *Adapter) Search(ctx context.Context, query mangasrc.SearchQuery) (*mangasrc.SearchResult, error) {
	page := 1
	if query.Token != "" {
		n, err := strconv.Atoi(query.Token)
		if err != nil || n < 1 {
			return nil, mangasrc.Errorf(mangasrc.EINVALID, "invalid search token %q", query.Token)
		}
		page = n
	}
	vars := map[string]string{"query": query.Title, "page": strconv.Itoa(page)}

	entries, ep, err := runTiers(ctx, a.Site.Endpoints.Search,
		func(ctx context.Context, ep *mangasrc.Endpoint) ([]*mangasrc.CatalogEntry, error) {
			body, err := a.fetch(ctx, ep, vars)
			if err != nil {
				return nil, err
			}
			return a.entries(body, a.Site.Tiles), nil
		},
		isEmpty[*mangasrc.CatalogEntry], false)
	if err != nil {
		return nil, err
	}

	result := &mangasrc.SearchResult{Entries: entries}
	if result.Entries == nil {
		result.Entries = []*mangasrc.CatalogEntry{}
	}
	if len(entries) > 0 && ep.Paginated() {
		result.NextToken = strconv.Itoa(page + 1)
	}
	return result, nil
}

func (a *Adapter) fetch(ctx context.Context, ep *mangasrc.Endpoint, vars map[string]string) (string, error) {
	return a.Fetcher.Fetch(ctx, a.Site.NewRequest(ep, vars))
}

// cachedFetch returns a fetch function that performs each distinct request
// once. It is not safe for concurrent use.
func (a *Adapter) cachedFetch() func(context.Context, *mangasrc.Endpoint, map[string]string) (string, error) {
	type result struct {
		body string
		err  error
	}
	seen := make(map[string]result)
	return func(ctx context.Context, ep *mangasrc.Endpoint, vars map[string]string) (string, error) {
		req := a.Site.NewRequest(ep, vars)
		key := req.Method + " " + req.URL + "\n" + req.Body
		if r, ok := seen[key]; ok {
			return r.body, r.err
		}
		body, err := a.Fetcher.Fetch(ctx, req)
		seen[key] = result{body: body, err: err}
		return body, err
	}
}

// entries extracts catalog entries from any supported representation and
// drops entries that fail validation.
func (a *Adapter) entries(body string, tiles mangasrc.TileSelectors) []*mangasrc.CatalogEntry {
	return slices.DeleteFunc(a.extractEntries(body, tiles), func(e *mangasrc.CatalogEntry) bool {
		return e == nil || e.Validate() != nil
	})
}

// extractEntries prefers hydration payloads over scraped tiles.
func (a *Adapter) extractEntries(body string, tiles mangasrc.TileSelectors) []*mangasrc.CatalogEntry {
	switch Classify(body, mangasrc.ShapeList, a.Site, a.Structured) {
	case mangasrc.KindStructured:
		return a.Structured.Entries(body, a.Site)
	case mangasrc.KindMarkupEmbedded:
		if payload, ok := a.embedded(body); ok {
			if entries := a.Structured.Entries(payload, a.Site); len(entries) > 0 {
				return entries
			}
		}
		return a.Markup.Entries(body, tiles, a.Site)
	case mangasrc.KindMarkup:
		return a.Markup.Entries(body, tiles, a.Site)
	}
	return nil
}

func (a *Adapter) details(body string, id string) *mangasrc.MangaDetails {
	var (
		d  *mangasrc.MangaDetails
		ok bool
	)
	switch Classify(body, mangasrc.ShapeObject, a.Site, a.Structured) {
	case mangasrc.KindStructured:
		d, ok = a.Structured.Details(body, id, a.Site)
	case mangasrc.KindMarkup, mangasrc.KindMarkupEmbedded:
		d, ok = a.Markup.Details(body, id, a.Site)
	}
	if !ok || d.Validate() != nil {
		return nil
	}
	return d
}

func (a *Adapter) chapters(body string, mangaID string) []*mangasrc.Chapter {
	switch Classify(body, mangasrc.ShapeList, a.Site, a.Structured) {
	case mangasrc.KindStructured:
		return a.Structured.Chapters(body, mangaID, a.Site)
	case mangasrc.KindMarkupEmbedded:
		if payload, ok := a.embedded(body); ok {
			if chapters := a.Structured.Chapters(payload, mangaID, a.Site); len(chapters) > 0 {
				return chapters
			}
		}
		return a.Markup.Chapters(body, mangaID, a.Site)
	case mangasrc.KindMarkup:
		return a.Markup.Chapters(body, mangaID, a.Site)
	}
	return nil
}

func (a *Adapter) pages(body string, mangaID, chapterID string) []string {
	switch Classify(body, mangasrc.ShapeList, a.Site, a.Structured) {
	case mangasrc.KindStructured:
		return a.Structured.Pages(body, mangaID, chapterID, a.Site)
	case mangasrc.KindMarkupEmbedded:
		if payload, ok := a.embedded(body); ok {
			if pages := a.Structured.Pages(payload, mangaID, chapterID, a.Site); len(pages) > 0 {
				return pages
			}
		}
		return a.Markup.Pages(body, a.Site)
	case mangasrc.KindMarkup:
		return a.Markup.Pages(body, a.Site)
	}
	return nil
}

func (a *Adapter) embedded(body string) (string, bool) {
	if a.Embedded == nil {
		return "", false
	}
	return a.Embedded.Extract(body, a.Site.Embedded)
}

func (a *Adapter) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func newSection(def mangasrc.SectionDef, entries []*mangasrc.CatalogEntry) *mangasrc.HomeSection {
	return &mangasrc.HomeSection{
		ID:                def.ID,
		Title:             def.Title,
		Type:              def.Type,
		ContainsMoreItems: def.ContainsMoreItems,
		Entries:           entries,
	}
}

func isEmpty[T any](s []T) bool {
	return len(s) == 0
}
