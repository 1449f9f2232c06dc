package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/mangasrc"
	"github.com/fwojciec/mangasrc/source"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	names := deps.Sites.Names()
	if deps.JSON {
		sites := make([]*mangasrc.Site, 0, len(names))
		for _, name := range names {
			s, err := deps.Sites.Site(name)
			if err != nil {
				return err
			}
			sites = append(sites, s)
		}
		return deps.print(sites, "")
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		s, err := deps.Sites.Site(name)
		if err != nil {
			return err
		}
		lines = append(lines, name+"  "+s.BaseURL)
	}
	return deps.print(nil, strings.Join(lines, "\n"))
}

// Run executes the home command. Only the populated emission of each
// section is printed.
func (c *HomeCmd) Run(deps *Dependencies) error {
	if c.All {
		return c.runAll(deps)
	}
	src, err := deps.source()
	if err != nil {
		return err
	}
	sections, err := collectSections(deps, src)
	if err != nil {
		return err
	}
	return deps.print(sections, formatSections(sections))
}

func (c *HomeCmd) runAll(deps *Dependencies) error {
	names := deps.Sites.Names()
	sources := make(map[string]mangasrc.Source, len(names))
	for _, name := range names {
		src, err := deps.Open(name)
		if err != nil {
			return err
		}
		sources[name] = src
	}

	results, err := source.HomeAll(deps.Ctx, names, sources, deps.Concurrency)
	if err != nil {
		return err
	}
	if deps.JSON {
		return deps.print(results, "")
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		block := "# " + r.Site
		if mangasrc.IsNetwork(r.Err) {
			block += "\nunreachable: " + mangasrc.ErrorMessage(r.Err)
		} else if r.Err != nil {
			block += "\nerror: " + mangasrc.ErrorMessage(r.Err)
		} else if len(r.Sections) > 0 {
			block += "\n\n" + formatSections(r.Sections)
		}
		blocks = append(blocks, block)
	}
	return deps.print(nil, strings.Join(blocks, "\n\n"))
}

func collectSections(deps *Dependencies, src mangasrc.Source) ([]*mangasrc.HomeSection, error) {
	var (
		order []string
		byID  = make(map[string]*mangasrc.HomeSection)
	)
	err := src.HomeSections(deps.Ctx, func(s *mangasrc.HomeSection) {
		if _, ok := byID[s.ID]; !ok {
			order = append(order, s.ID)
		}
		byID[s.ID] = s
	})
	if err != nil {
		return nil, err
	}
	sections := make([]*mangasrc.HomeSection, 0, len(order))
	for _, id := range order {
		sections = append(sections, byID[id])
	}
	return sections, nil
}

func formatSections(sections []*mangasrc.HomeSection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, mangasrc.FormatSection(s))
	}
	return strings.Join(parts, "\n\n")
}

// Run executes the details command.
func (c *DetailsCmd) Run(deps *Dependencies) error {
	src, err := deps.source()
	if err != nil {
		return err
	}
	details, err := src.MangaDetails(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	return deps.print(details, strings.TrimRight(mangasrc.FormatDetails(details), "\n"))
}

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	src, err := deps.source()
	if err != nil {
		return err
	}
	chapters, err := src.Chapters(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	if len(chapters) == 0 && !deps.JSON {
		return deps.print(nil, "No chapters found.")
	}
	return deps.print(chapters, mangasrc.FormatChapters(chapters))
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	src, err := deps.source()
	if err != nil {
		return err
	}
	pages, err := src.ChapterPages(deps.Ctx, c.MangaID, c.ChapterID)
	if err != nil {
		return err
	}
	if len(pages.Pages) == 0 && !deps.JSON {
		return deps.print(nil, "No pages found.")
	}
	return deps.print(pages, mangasrc.FormatPages(pages))
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	src, err := deps.source()
	if err != nil {
		return err
	}
	result, err := src.Search(deps.Ctx, mangasrc.SearchQuery{Title: c.Query, Token: c.Token})
	if err != nil {
		return err
	}
	if deps.JSON {
		return deps.print(result, "")
	}
	text := mangasrc.FormatEntries(result.Entries)
	if text == "" {
		text = "No results."
	}
	if result.NextToken != "" {
		text += fmt.Sprintf("\n\nMore results: --token %s", result.NextToken)
	}
	return deps.print(nil, text)
}

// probeResult is the outcome of the probe command.
type probeResult struct {
	URL   string `json:"url"`
	Theme string `json:"theme"`
	Kind  string `json:"kind"`
	Bytes int    `json:"bytes"`
}

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	body, err := deps.Fetcher.Fetch(deps.Ctx, &mangasrc.Request{URL: c.URL, Method: "GET"})
	if err != nil {
		return err
	}

	site := &mangasrc.Site{Name: "probe", BaseURL: c.URL}
	theme := "unknown"
	if p := deps.Profiles.ForHTML(body); p != nil {
		theme = string(p.Theme)
		p.Apply(site)
	}
	kind := source.Classify(body, mangasrc.ShapeList, site.WithDefaults(), deps.Structured)

	res := probeResult{URL: c.URL, Theme: theme, Kind: kind.String(), Bytes: len(body)}
	return deps.print(res, fmt.Sprintf("URL:   %s\nTheme: %s\nKind:  %s\nBytes: %d", res.URL, res.Theme, res.Kind, res.Bytes))
}
