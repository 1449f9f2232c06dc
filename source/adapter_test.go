package source_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/mangasrc"
	"github.com/fwojciec/mangasrc/gjson"
	"github.com/fwojciec/mangasrc/goquery"
	"github.com/fwojciec/mangasrc/mock"
	"github.com/fwojciec/mangasrc/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

// routeFetcher serves bodies by URL and records requested URLs. Requests
// with a body are routed by "METHOD URL BODY". Unknown routes fail like
// an HTTP 404.
type routeFetcher struct {
	mu     sync.Mutex
	routes map[string]string
	calls  []string
}

func (f *routeFetcher) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, req *mangasrc.Request) (string, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, req.URL)
			key := req.URL
			if req.Body != "" {
				key = req.Method + " " + req.URL + " " + req.Body
			}
			body, ok := f.routes[key]
			if !ok {
				return "", mangasrc.Errorf(mangasrc.ENETWORK, "HTTP 404 for %s", req.URL)
			}
			return body, nil
		},
		CloseFn: func() error { return nil },
	}
}

func apiSite() *mangasrc.Site {
	return &mangasrc.Site{
		Name:        "test",
		BaseURL:     "https://example.com",
		APIURL:      "https://api.example.com",
		ImageProxy:  &mangasrc.ImageProxy{Width: 384, Quality: 75},
		PageHeaders: map[string]string{"Referer": "https://example.com/"},
		Sections: []mangasrc.SectionDef{{
			ID:                "latest",
			Title:             "Latest",
			ContainsMoreItems: true,
			Operation: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{api}/series"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search"},
			},
		}},
		Endpoints: mangasrc.Endpoints{
			Details:  mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/series/{id}"}},
			Chapters: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/series/{id}/chapters"}},
			Pages:    mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/books/{mangaId}/file/{chapterId}"}},
			Search: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{api}/series?search={query}&page={page}"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search?q={query}"},
			},
		},
	}
}

func newAdapter(site *mangasrc.Site, f *routeFetcher) *source.Adapter {
	return &source.Adapter{
		Site:       site.WithDefaults(),
		Fetcher:    f.fetcher(),
		Structured: gjson.NewExtractor(gjson.WithClock(func() time.Time { return fixedNow })),
		Markup:     goquery.NewExtractor(goquery.WithClock(func() time.Time { return fixedNow })),
		Embedded:   goquery.NewEmbeddedExtractor(),
	}
}

func collect(t *testing.T, a *source.Adapter) []*mangasrc.HomeSection {
	t.Helper()
	var emitted []*mangasrc.HomeSection
	err := a.HomeSections(context.Background(), func(s *mangasrc.HomeSection) {
		emitted = append(emitted, s)
	})
	require.NoError(t, err)
	return emitted
}

func TestAdapter_HomeSections(t *testing.T) {
	t.Parallel()

	t.Run("emits empty then populated section", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series": `{"data":[{"id":"7","title":"Foo","thumbnail":"/a.jpg"}]}`,
		}}

		emitted := collect(t, newAdapter(apiSite(), f))

		require.Len(t, emitted, 2)
		assert.Equal(t, "latest", emitted[0].ID)
		assert.Empty(t, emitted[0].Entries)
		assert.Equal(t, "latest", emitted[1].ID)
		assert.True(t, emitted[1].ContainsMoreItems)
		assert.Equal(t, []*mangasrc.CatalogEntry{{
			ID:       "7",
			Title:    "Foo",
			ImageURL: "https://example.com/_next/image?url=%2Fa.jpg&w=384&q=75",
		}}, emitted[1].Entries)
		assert.Equal(t, []string{"https://api.example.com/series"}, f.calls, "fallback must not run")
	})

	t.Run("empty primary falls back to markup once", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series": `{"data":[]}`,
			"https://example.com/search":     `<html><body><a href="/series/9"><h3>Nine</h3></a></body></html>`,
		}}

		emitted := collect(t, newAdapter(apiSite(), f))

		require.Len(t, emitted, 2)
		require.Len(t, emitted[1].Entries, 1)
		assert.Equal(t, "9", emitted[1].Entries[0].ID)
		assert.Equal(t, "Nine", emitted[1].Entries[0].Title)
		assert.Equal(t, "https://example.com/favicon.ico", emitted[1].Entries[0].ImageURL)
		assert.Equal(t, []string{"https://api.example.com/series", "https://example.com/search"}, f.calls)
	})

	t.Run("failure still completes the section", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		f := &routeFetcher{routes: map[string]string{}}
		a := newAdapter(apiSite(), f)
		a.Logger = slog.New(slog.NewTextHandler(&logs, nil))

		emitted := collect(t, a)

		require.Len(t, emitted, 2)
		assert.NotNil(t, emitted[1].Entries)
		assert.Empty(t, emitted[1].Entries)
		assert.Len(t, f.calls, 1, "transport errors are terminal")
		assert.Contains(t, logs.String(), "home section failed")
		assert.Contains(t, logs.String(), "section=latest")
	})

	t.Run("sections sharing a page fetch it once", func(t *testing.T) {
		t.Parallel()

		site := &mangasrc.Site{
			Name:    "wp",
			BaseURL: "https://wp.example.com",
			Sections: []mangasrc.SectionDef{
				{
					ID:        "popular",
					Title:     "Popular",
					Operation: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/"}},
					Tiles:     mangasrc.TileSelectors{Items: []string{".popular .bsx"}, Link: "a", Title: []string{".tt"}},
				},
				{
					ID:        "latest",
					Title:     "Latest",
					Operation: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/"}},
					Tiles:     mangasrc.TileSelectors{Items: []string{".latest .bsx"}, Link: "a", Title: []string{".tt"}},
				},
			},
		}
		f := &routeFetcher{routes: map[string]string{
			"https://wp.example.com/": `<html><body>
				<div class="popular"><div class="bsx"><a href="/manga/a/"><div class="tt">A</div></a></div></div>
				<div class="latest"><div class="bsx"><a href="/manga/b/"><div class="tt">B</div></a></div>
				<div class="bsx"><a href="/manga/c/"><div class="tt">C</div></a></div></div>
			</body></html>`,
		}}

		emitted := collect(t, newAdapter(site, f))

		require.Len(t, emitted, 4)
		assert.Equal(t, []string{"popular", "latest", "popular", "latest"},
			[]string{emitted[0].ID, emitted[1].ID, emitted[2].ID, emitted[3].ID})
		assert.Empty(t, emitted[0].Entries)
		assert.Empty(t, emitted[1].Entries)
		require.Len(t, emitted[2].Entries, 1)
		assert.Equal(t, "a", emitted[2].Entries[0].ID)
		require.Len(t, emitted[3].Entries, 2)
		assert.Equal(t, "b", emitted[3].Entries[0].ID)
		assert.Equal(t, "c", emitted[3].Entries[1].ID)
		assert.Len(t, f.calls, 1)
	})

	t.Run("cancelled context still emits every section", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{}}
		a := newAdapter(apiSite(), f)
		a.Fetcher = &mock.Fetcher{FetchFn: func(ctx context.Context, _ *mangasrc.Request) (string, error) {
			return "", mangasrc.Errorf(mangasrc.ENETWORK, "fetch: %v", ctx.Err())
		}}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var emitted []*mangasrc.HomeSection
		err := a.HomeSections(ctx, func(s *mangasrc.HomeSection) { emitted = append(emitted, s) })

		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, emitted, 2)
	})
}

func TestAdapter_MangaDetails(t *testing.T) {
	t.Parallel()

	t.Run("returns structured details", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series/s1": `{"data":{"id":"s1","name":"Solo","summary":"Hunter.","status":"Completed","thumbnail":"https://cdn.example.com/s1.jpg"}}`,
		}}

		details, err := newAdapter(apiSite(), f).MangaDetails(context.Background(), "s1")

		require.NoError(t, err)
		assert.Equal(t, "s1", details.ID)
		assert.Equal(t, []string{"Solo"}, details.Titles)
		assert.Equal(t, "Hunter.", details.Description)
		assert.Equal(t, mangasrc.StatusCompleted, details.Status)
		assert.Equal(t, "https://cdn.example.com/s1.jpg", details.ImageURL)
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{}}

		_, err := newAdapter(apiSite(), f).MangaDetails(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, mangasrc.ENETWORK, mangasrc.ErrorCode(err))
	})

	t.Run("unusable payload degrades to placeholder", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series/x": `{}`,
		}}

		details, err := newAdapter(apiSite(), f).MangaDetails(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, "x", details.ID)
		assert.Equal(t, []string{"Unknown"}, details.Titles)
		assert.Equal(t, "https://example.com/favicon.ico", details.ImageURL)
	})

	t.Run("requires id", func(t *testing.T) {
		t.Parallel()

		_, err := newAdapter(apiSite(), &routeFetcher{}).MangaDetails(context.Background(), "")

		assert.Equal(t, mangasrc.EINVALID, mangasrc.ErrorCode(err))
	})
}

func TestAdapter_Chapters(t *testing.T) {
	t.Parallel()

	t.Run("empty object yields empty list", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series/m1/chapters": `{}`,
		}}

		chapters, err := newAdapter(apiSite(), f).Chapters(context.Background(), "m1")

		require.NoError(t, err)
		assert.NotNil(t, chapters)
		assert.Empty(t, chapters)
	})

	t.Run("fallback failure keeps the empty primary result", func(t *testing.T) {
		t.Parallel()

		site := apiSite()
		site.Endpoints.Chapters.Fallback = &mangasrc.Endpoint{URL: "{base}/series/{id}"}
		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series/m1/chapters": `{"chapters":[]}`,
		}}

		chapters, err := newAdapter(site, f).Chapters(context.Background(), "m1")

		require.NoError(t, err)
		assert.Empty(t, chapters)
		assert.Equal(t, []string{"https://api.example.com/series/m1/chapters", "https://example.com/series/m1"}, f.calls)
	})

	t.Run("primary transport failure is a network error", func(t *testing.T) {
		t.Parallel()

		site := apiSite()
		site.Endpoints.Chapters.Fallback = &mangasrc.Endpoint{URL: "{base}/series/{id}"}
		f := &routeFetcher{routes: map[string]string{}}

		_, err := newAdapter(site, f).Chapters(context.Background(), "m1")

		assert.Equal(t, mangasrc.ENETWORK, mangasrc.ErrorCode(err))
		assert.Len(t, f.calls, 1)
	})

	t.Run("normalizes chapters", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series/m1/chapters": `{"data":[{"id":"c2","chapterNumber":2},{"id":"c1","title":"Start","number":1}]}`,
		}}

		chapters, err := newAdapter(apiSite(), f).Chapters(context.Background(), "m1")

		require.NoError(t, err)
		require.Len(t, chapters, 2)
		assert.Equal(t, "Chapter 2", chapters[0].Name)
		assert.Equal(t, "m1", chapters[0].MangaID)
		assert.Equal(t, fixedNow, chapters[0].PublishedAt)
		assert.Equal(t, "Start", chapters[1].Name)
	})
}

func TestAdapter_ChapterPages(t *testing.T) {
	t.Parallel()

	t.Run("returns images in order", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/books/m1/file/c1": `{"images":["x.jpg","y.jpg"]}`,
		}}

		pages, err := newAdapter(apiSite(), f).ChapterPages(context.Background(), "m1", "c1")

		require.NoError(t, err)
		assert.Equal(t, &mangasrc.ChapterPages{
			ChapterID: "c1",
			MangaID:   "m1",
			Pages:     []string{"x.jpg", "y.jpg"},
			Headers:   map[string]string{"Referer": "https://example.com/"},
		}, pages)
	})

	t.Run("unrecognized body yields no pages", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/books/m1/file/c1": `not a catalog`,
		}}

		pages, err := newAdapter(apiSite(), f).ChapterPages(context.Background(), "m1", "c1")

		require.NoError(t, err)
		assert.NotNil(t, pages.Pages)
		assert.Empty(t, pages.Pages)
	})

	t.Run("reads embedded reader payload", func(t *testing.T) {
		t.Parallel()

		site := &mangasrc.Site{
			Name:      "wp",
			BaseURL:   "https://wp.example.com",
			Endpoints: mangasrc.Endpoints{Pages: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}{chapterId}"}}},
		}
		mangasrc.MangareaderProfile().Apply(site)
		f := &routeFetcher{routes: map[string]string{
			"https://wp.example.com/solo-chapter-1/": `<html><body><div id="readerarea"></div>
				<script>ts_reader.run({"sources":[{"images":["https:\/\/cdn.example.com\/1.jpg","https:\/\/cdn.example.com\/2.jpg"]}]});</script>
				</body></html>`,
		}}

		pages, err := newAdapter(site, f).ChapterPages(context.Background(), "solo", "/solo-chapter-1/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}, pages.Pages)
	})

	t.Run("resolves root-relative page URLs", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://kagane.org/api/chapters/c1/pages": `{"pages":[{"url":"/img/1.jpg"},{"src":"/img/2.jpg"},{"url":"https://cdn.kagane.org/3.jpg"}]}`,
		}}

		pages, err := newAdapter(source.Presets()["kagane-comic"], f).ChapterPages(context.Background(), "m1", "c1")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://kagane.org/img/1.jpg",
			"https://kagane.org/img/2.jpg",
			"https://cdn.kagane.org/3.jpg",
		}, pages.Pages)
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		t.Parallel()

		_, err := newAdapter(apiSite(), &routeFetcher{}).ChapterPages(context.Background(), "m1", "c1")

		assert.Equal(t, mangasrc.ENETWORK, mangasrc.ErrorCode(err))
	})
}

func TestAdapter_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns entries and next page token", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series?search=solo+leveling&page=1": `{"series":[{"id":"1","title":"Solo Leveling"}]}`,
		}}

		result, err := newAdapter(apiSite(), f).Search(context.Background(), mangasrc.SearchQuery{Title: "solo leveling"})

		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "Solo Leveling", result.Entries[0].Title)
		assert.Equal(t, "2", result.NextToken)
	})

	t.Run("token selects the page", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series?search=solo&page=2": `[{"id":"2","title":"Page Two"}]`,
		}}

		result, err := newAdapter(apiSite(), f).Search(context.Background(), mangasrc.SearchQuery{Title: "solo", Token: "2"})

		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "3", result.NextToken)
	})

	t.Run("empty page ends pagination", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series?search=zzz&page=1": `{"data":[]}`,
			"https://example.com/search?q=zzz":                 `<html><body><p>No results</p></body></html>`,
		}}

		result, err := newAdapter(apiSite(), f).Search(context.Background(), mangasrc.SearchQuery{Title: "zzz"})

		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Empty(t, result.NextToken)
		assert.Len(t, f.calls, 2)
	})

	t.Run("fallback results are not paginated", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"https://api.example.com/series?search=x&page=1": `[]`,
			"https://example.com/search?q=x":                 `<a href="/series/x1"><h3>X One</h3></a>`,
		}}

		result, err := newAdapter(apiSite(), f).Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "x1", result.Entries[0].ID)
		assert.Empty(t, result.NextToken)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		t.Parallel()

		_, err := newAdapter(apiSite(), &routeFetcher{}).Search(context.Background(), mangasrc.SearchQuery{Title: "x", Token: "abc"})

		assert.Equal(t, mangasrc.EINVALID, mangasrc.ErrorCode(err))
	})
}

func TestAdapter_FormEndpoints(t *testing.T) {
	t.Parallel()

	formSite := func() *mangasrc.Site {
		ajax := "{base}/wp-admin/admin-ajax.php"
		return &mangasrc.Site{
			Name:    "wp",
			BaseURL: "https://wp.example.com",
			Sections: []mangasrc.SectionDef{
				{ID: "popular", Operation: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: ajax, Body: "action=list&order=popular"}}},
				{ID: "latest", Operation: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: ajax, Body: "action=list&order=latest"}}},
			},
			Endpoints: mangasrc.Endpoints{
				Search: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: ajax, Body: "action=search&s={query}&page={page}"}},
			},
		}
	}

	t.Run("search posts the expanded body", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"POST https://wp.example.com/wp-admin/admin-ajax.php action=search&s=solo+leveling&page=2": `{"data":[{"id":"solo","title":"Solo Leveling"}]}`,
		}}

		res, err := newAdapter(formSite(), f).Search(context.Background(), mangasrc.SearchQuery{Title: "solo leveling", Token: "2"})

		require.NoError(t, err)
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "solo", res.Entries[0].ID)
		assert.Equal(t, "3", res.NextToken)
	})

	t.Run("home sections with different bodies are fetched separately", func(t *testing.T) {
		t.Parallel()

		f := &routeFetcher{routes: map[string]string{
			"POST https://wp.example.com/wp-admin/admin-ajax.php action=list&order=popular": `{"data":[{"id":"a","title":"A"}]}`,
			"POST https://wp.example.com/wp-admin/admin-ajax.php action=list&order=latest":  `{"data":[{"id":"b","title":"B"}]}`,
		}}

		emitted := collect(t, newAdapter(formSite(), f))

		require.Len(t, emitted, 4)
		require.Len(t, emitted[2].Entries, 1)
		assert.Equal(t, "a", emitted[2].Entries[0].ID)
		require.Len(t, emitted[3].Entries, 1)
		assert.Equal(t, "b", emitted[3].Entries[0].ID)
		assert.Len(t, f.calls, 2)
	})
}

func TestAdapter_Extractors(t *testing.T) {
	t.Parallel()

	routes := map[string]string{
		"https://example.com/api/search?q=x": `{"data":[]}`,
		"https://example.com/search?q=x":     `<html><body><a href="/series/b">B</a></body></html>`,
	}
	site := &mangasrc.Site{
		Name:    "m",
		BaseURL: "https://example.com",
		Endpoints: mangasrc.Endpoints{Search: mangasrc.Operation{
			Primary:  &mangasrc.Endpoint{URL: "{base}/api/search?q={query}"},
			Fallback: &mangasrc.Endpoint{URL: "{base}/search?q={query}"},
		}},
	}

	// adapter serves primary from the structured mock and counts markup
	// extractions of the fallback page.
	adapter := func(t *testing.T, primary []*mangasrc.CatalogEntry) (*source.Adapter, *int) {
		t.Helper()
		var markupCalls int
		return &source.Adapter{
			Site:    site.WithDefaults(),
			Fetcher: (&routeFetcher{routes: routes}).fetcher(),
			Structured: &mock.StructuredExtractor{
				MatchesFn: func(body string, _ mangasrc.Shape, _ *mangasrc.Site) bool {
					return strings.HasPrefix(body, "{")
				},
				EntriesFn: func(string, *mangasrc.Site) []*mangasrc.CatalogEntry {
					return primary
				},
			},
			Markup: &mock.MarkupExtractor{
				EntriesFn: func(string, mangasrc.TileSelectors, *mangasrc.Site) []*mangasrc.CatalogEntry {
					markupCalls++
					return []*mangasrc.CatalogEntry{{ID: "b", Title: "B"}}
				},
			},
		}, &markupCalls
	}

	ids := func(entries []*mangasrc.CatalogEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("non-empty primary never consults markup", func(t *testing.T) {
		t.Parallel()

		a, markupCalls := adapter(t, []*mangasrc.CatalogEntry{{ID: "a", Title: "A"}})

		res, err := a.Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(res.Entries))
		assert.Equal(t, 0, *markupCalls)
	})

	t.Run("empty primary consults markup once", func(t *testing.T) {
		t.Parallel()

		a, markupCalls := adapter(t, nil)

		res, err := a.Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(res.Entries))
		assert.Equal(t, 1, *markupCalls)
		assert.Empty(t, res.NextToken)
	})

	t.Run("entries without id are dropped", func(t *testing.T) {
		t.Parallel()

		a, markupCalls := adapter(t, []*mangasrc.CatalogEntry{{Title: "No ID"}, {ID: "a", Title: "A"}})

		res, err := a.Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(res.Entries))
		assert.Equal(t, 0, *markupCalls)
	})

	t.Run("primary of only invalid entries counts as empty", func(t *testing.T) {
		t.Parallel()

		a, markupCalls := adapter(t, []*mangasrc.CatalogEntry{{Title: "No ID"}})

		res, err := a.Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(res.Entries))
		assert.Equal(t, 1, *markupCalls)
	})

	t.Run("hydration payload is preferred over tiles", func(t *testing.T) {
		t.Parallel()

		const payload = `[{"id":"h","title":"Hydrated"}]`
		hydrated := &mangasrc.Site{
			Name:     "next",
			BaseURL:  "https://next.example.com",
			Embedded: []mangasrc.EmbeddedMarker{{Script: "self.__next_f.push", Pattern: `"series":`}},
			Endpoints: mangasrc.Endpoints{Search: mangasrc.Operation{
				Primary: &mangasrc.Endpoint{URL: "{base}/search?q={query}"},
			}},
		}
		var extracted []mangasrc.EmbeddedMarker
		a := &source.Adapter{
			Site: hydrated.WithDefaults(),
			Fetcher: (&routeFetcher{routes: map[string]string{
				"https://next.example.com/search?q=x": `<html><body><script>self.__next_f.push([1,"{\"series\":[]}"])</script></body></html>`,
			}}).fetcher(),
			Structured: &mock.StructuredExtractor{
				MatchesFn: func(string, mangasrc.Shape, *mangasrc.Site) bool { return false },
				EntriesFn: func(body string, _ *mangasrc.Site) []*mangasrc.CatalogEntry {
					if body != payload {
						return nil
					}
					return []*mangasrc.CatalogEntry{{ID: "h", Title: "Hydrated"}}
				},
			},
			Markup: &mock.MarkupExtractor{
				EntriesFn: func(string, mangasrc.TileSelectors, *mangasrc.Site) []*mangasrc.CatalogEntry {
					t.Error("markup consulted despite hydration payload")
					return nil
				},
			},
			Embedded: &mock.EmbeddedExtractor{
				ExtractFn: func(_ string, markers []mangasrc.EmbeddedMarker) (string, bool) {
					extracted = markers
					return payload, true
				},
			},
		}

		res, err := a.Search(context.Background(), mangasrc.SearchQuery{Title: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"h"}, ids(res.Entries))
		assert.Equal(t, hydrated.Embedded, extracted)
	})
}
