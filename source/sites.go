package source

import "github.com/fwojciec/mangasrc"

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Presets returns the built-in site definitions, keyed by name.
func Presets() map[string]*mangasrc.Site {
	sites := []*mangasrc.Site{
		kagane(),
		kaganeComic(),
		mangareader("athreascans", "https://athreascans.com", "/manga/", []mangasrc.SectionDef{
			htmlSection("featured", "Featured", "singleRowLarge", false, mangasrc.TileSelectors{
				Items: []string{".slidernom3 .swiper-slide"}, Link: "a", Title: []string{".name"},
			}),
			htmlSection("latest", "Latest Updates", "singleRowNormal", true, mangasrc.TileSelectors{
				Items: []string{".postbody .listupd .bsx"}, Link: "a", Title: []string{".tt"},
			}),
			htmlSection("new", "New Series", "singleRowNormal", false, mangasrc.TileSelectors{
				Items: []string{"#sidebar .serieslist ul li"}, Link: "a.series", Title: []string{"h2"},
			}),
		}),
		mangareader("violetscans", "https://violetscans.org", "/comics/", []mangasrc.SectionDef{
			htmlSection("featured", "Featured", "singleRowLarge", false, mangasrc.TileSelectors{
				Items: []string{".slidernew .swiper-slide"}, Link: "a", Title: []string{".name"},
			}),
			htmlSection("popular_today", "Popular Today", "singleRowNormal", false, mangasrc.TileSelectors{
				Items: []string{".hotslid .pop-list .bsx", ".hotslid .bsx"}, Link: "a", Title: []string{".tt"},
			}),
			htmlSection("latest", "Latest Updates", "singleRowNormal", true, mangasrc.TileSelectors{
				Items: []string{".latest-updates .bsx", ".postbody .listupd .bsx"}, Link: "a", Title: []string{".tt"},
			}),
		}),
		mangareader("fairyscans", "https://fairyscans.com", "/manga/", []mangasrc.SectionDef{
			htmlSection("popular_today", "Popular Today", "singleRowLarge", false, mangasrc.TileSelectors{
				Items: []string{".hotslid .bsx"}, Link: "a", Title: []string{".tt"},
			}),
			htmlSection("latest", "Latest Updates", "singleRowNormal", true, mangasrc.TileSelectors{
				Items: []string{".postbody .listupd .bsx"}, Link: "a", Title: []string{".tt"},
			}),
		}),
	}

	m := make(map[string]*mangasrc.Site, len(sites))
	for _, s := range sites {
		m[s.Name] = s
	}
	return m
}

func kagane() *mangasrc.Site {
	s := &mangasrc.Site{
		Name:    "kagane",
		BaseURL: "https://kagane.org",
		APIURL:  "https://api.kagane.org/api/v1",
		Headers: map[string]string{
			"Referer":    "https://kagane.org",
			"Origin":     "https://kagane.org",
			"User-Agent": browserUA,
		},
		PageHeaders:   map[string]string{"Referer": "https://kagane.org/"},
		ImageProxy:    &mangasrc.ImageProxy{Width: 384, Quality: 75},
		ImageTemplate: "{api}/series/{id}/thumbnail",
		PageTemplate:  "https://ayanami.kagane.org/api/v1/books/{mangaId}/file/{chapterId}/{file}?token={token}",
		Sections: []mangasrc.SectionDef{{
			ID:                "latest",
			Title:             "Latest Updates",
			Type:              "singleRowNormal",
			ContainsMoreItems: true,
			Operation: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{api}/series?page=1&take=20&sort=last_modified&order=desc"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search?sort=created_at,desc"},
			},
		}},
		Endpoints: mangasrc.Endpoints{
			Details:  mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/series/{id}"}},
			Chapters: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/series/{id}"}},
			Pages:    mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{api}/books/{mangaId}/file/{chapterId}"}},
			Search: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{api}/series?search={query}&take=20&page={page}"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search?q={query}"},
			},
		},
	}
	mangasrc.NextJSProfile().Apply(s)
	return s
}

func kaganeComic() *mangasrc.Site {
	s := &mangasrc.Site{
		Name:    "kagane-comic",
		BaseURL: "https://kagane.org",
		Headers: map[string]string{
			"Referer":    "https://kagane.org",
			"Origin":     "https://kagane.org",
			"User-Agent": browserUA,
		},
		ImageProxy: &mangasrc.ImageProxy{Width: 384, Quality: 75},
		Sections: []mangasrc.SectionDef{{
			ID:                "latest",
			Title:             "Latest Updates",
			Type:              "singleRowNormal",
			ContainsMoreItems: true,
			Operation: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{base}/api/series/latest"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search?sort=created_at,desc"},
			},
		}},
		Endpoints: mangasrc.Endpoints{
			Details: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/series/{id}"}},
			Chapters: mangasrc.Operation{
				Primary: &mangasrc.Endpoint{URL: "{base}/api/series/{id}/chapters?page=1&perPage=1000"},
			},
			Pages: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/api/chapters/{chapterId}/pages"}},
			Search: mangasrc.Operation{
				Primary:  &mangasrc.Endpoint{URL: "{base}/api/series/search?q={query}&page={page}"},
				Fallback: &mangasrc.Endpoint{URL: "{base}/search?q={query}"},
			},
		},
	}
	mangasrc.NextJSProfile().Apply(s)
	return s
}

// mangareader builds a WordPress Mangareader-theme site. Series live under
// seriesPath; chapter ids are reader page paths.
func mangareader(name, base, seriesPath string, sections []mangasrc.SectionDef) *mangasrc.Site {
	headers := map[string]string{
		"Referer":    base + "/",
		"User-Agent": browserUA,
	}
	s := &mangasrc.Site{
		Name:        name,
		BaseURL:     base,
		Headers:     headers,
		PageHeaders: headers,
		Sections:    sections,
		Endpoints: mangasrc.Endpoints{
			Details:  mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}" + seriesPath + "{id}/"}},
			Chapters: mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}" + seriesPath + "{id}/"}},
			Pages:    mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}{chapterId}"}},
			Search:   mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/page/{page}/?s={query}"}},
		},
	}
	mangasrc.MangareaderProfile().Apply(s)
	return s
}

func htmlSection(id, title, typ string, more bool, tiles mangasrc.TileSelectors) mangasrc.SectionDef {
	return mangasrc.SectionDef{
		ID:                id,
		Title:             title,
		Type:              typ,
		ContainsMoreItems: more,
		Operation:         mangasrc.Operation{Primary: &mangasrc.Endpoint{URL: "{base}/"}},
		Tiles:             tiles,
	}
}
