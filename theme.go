package mangasrc

// Theme identifies the site software a catalog site is built on.
type Theme string

// Recognized site themes.
const (
	ThemeUnknown     Theme = ""
	ThemeMangareader Theme = "mangareader"
	ThemeMadara      Theme = "madara"
	ThemeNextJS      Theme = "nextjs"
)

// ThemeDetector identifies site themes from HTML.
type ThemeDetector interface {
	// Detect analyzes HTML and returns the identified theme.
	// Returns ThemeUnknown if the theme cannot be determined.
	Detect(html string) Theme
}

// Profile bundles the scraping configuration that works for every site of
// one theme.
type Profile struct {
	Theme     Theme            `yaml:"theme"`
	Tiles     TileSelectors    `yaml:"tiles"`
	Selectors Selectors        `yaml:"selectors"`
	Embedded  []EmbeddedMarker `yaml:"embedded"`
}

// Apply copies the profile's selectors into the site wherever the site
// leaves a selector unset.
func (p *Profile) Apply(s *Site) {
	if len(s.Tiles.Items) == 0 {
		s.Tiles = p.Tiles
	}
	sel, def := &s.Selectors, p.Selectors
	for _, f := range []struct{ v, d *[]string }{
		{&sel.Title, &def.Title},
		{&sel.AltTitles, &def.AltTitles},
		{&sel.Image, &def.Image},
		{&sel.Description, &def.Description},
		{&sel.Status, &def.Status},
		{&sel.Author, &def.Author},
		{&sel.Tags, &def.Tags},
		{&sel.ChapterName, &def.ChapterName},
		{&sel.PageAttrs, &def.PageAttrs},
	} {
		if len(*f.v) == 0 {
			*f.v = *f.d
		}
	}
	for _, f := range []struct{ v, d *string }{
		{&sel.ChapterItem, &def.ChapterItem},
		{&sel.ChapterLink, &def.ChapterLink},
		{&sel.ChapterDate, &def.ChapterDate},
		{&sel.PageImage, &def.PageImage},
	} {
		if *f.v == "" {
			*f.v = *f.d
		}
	}
	if len(s.Embedded) == 0 {
		s.Embedded = p.Embedded
	}
}

// MangareaderProfile returns the selectors of the WordPress Mangareader
// theme (.bsx tiles, #chapterlist, #readerarea, ts_reader payloads).
func MangareaderProfile() *Profile {
	return &Profile{
		Theme: ThemeMangareader,
		Tiles: TileSelectors{
			Items: []string{".listupd .bsx", ".bsx"},
			Link:  "a",
			Title: []string{".tt", ".name"},
		},
		Selectors: Selectors{
			Title:       []string{".entry-title", "h1"},
			AltTitles:   []string{".alternative", ".wd-full .alter"},
			Image:       []string{".thumb img", ".thumbook img"},
			Description: []string{".entry-content[itemprop=description]", ".entry-content"},
			Status:      []string{`.imptdt:contains("Status") i`, `.tsinfo .imptdt i`},
			Author:      []string{`.imptdt:contains("Author") i`, `.fmed:contains("Author") span`},
			Tags:        []string{".mgen a", ".seriestugenre a"},
			ChapterItem: "#chapterlist li",
			ChapterLink: "a",
			ChapterName: []string{".chapternum"},
			ChapterDate: ".chapterdate",
			PageImage:   "#readerarea img",
		},
		Embedded: []EmbeddedMarker{
			{Script: "ts_reader.run", Pattern: `"images"\s*:\s*`},
		},
	}
}

// MadaraProfile returns the selectors of the WordPress Madara theme.
func MadaraProfile() *Profile {
	return &Profile{
		Theme: ThemeMadara,
		Tiles: TileSelectors{
			Items: []string{".page-item-detail", ".c-tabs-item__content"},
			Link:  "a",
			Title: []string{".post-title", "h3", "h4"},
		},
		Selectors: Selectors{
			Title:       []string{".post-title h1", "h1"},
			AltTitles:   []string{`.post-content_item:contains("Alternative") .summary-content`},
			Image:       []string{".summary_image img"},
			Description: []string{".description-summary", ".summary__content"},
			Status:      []string{`.post-status .summary-content`},
			Author:      []string{".author-content a"},
			Tags:        []string{".genres-content a"},
			ChapterItem: "li.wp-manga-chapter",
			ChapterLink: "a",
			ChapterDate: ".chapter-release-date",
			PageImage:   ".reading-content img",
		},
	}
}

// NextJSProfile returns the selectors of Next.js storefronts that render
// series links and stream data through self.__next_f.push.
func NextJSProfile() *Profile {
	return &Profile{
		Theme: ThemeNextJS,
		Tiles: TileSelectors{
			Items: []string{`a[href*="/series/"]`, `a[href*="/comic/"]`},
			Title: []string{"h3", "h4", ".title", "span.font-bold"},
		},
		Selectors: Selectors{
			Title:       []string{"h1"},
			Image:       []string{"main img"},
			Description: []string{"p.description", ".summary"},
			PageImage:   "main img",
		},
		Embedded: []EmbeddedMarker{
			{Script: "self.__next_f.push", Pattern: `"data"\s*:\s*`},
		},
	}
}

// ProfileRegistry maps themes to scraping profiles.
type ProfileRegistry interface {
	// Get returns the profile for a theme, or nil if none is registered.
	Get(theme Theme) *Profile

	// ForHTML detects the theme of a page and returns its profile.
	// Returns nil when the theme is unknown or has no profile.
	ForHTML(html string) *Profile
}
