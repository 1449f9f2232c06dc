package goquery

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/mangasrc"
)

// Chapters scrapes the chapter list of a series page. Chapter ids are the
// link paths, which the reader page is fetched by.
func (e *Extractor) Chapters(html string, mangaID string, site *mangasrc.Site) []*mangasrc.Chapter {
	sel := site.Selectors
	if sel.ChapterItem == "" {
		return nil
	}
	doc, ok := parse(html)
	if !ok {
		return nil
	}

	link := sel.ChapterLink
	if link == "" {
		link = "a"
	}

	var chapters []*mangasrc.Chapter
	doc.Find(sel.ChapterItem).Each(func(_ int, item *goquery.Selection) {
		a := item
		if !item.Is(link) {
			a = item.Find(link).First()
		}
		href, _ := a.Attr("href")
		id := mangasrc.PathOf(href)
		if id == "" {
			return
		}

		name := firstText(item, sel.ChapterName)
		if name == "" {
			name = cleanText(a.Text())
		}
		if name == "" {
			name = "Chapter"
		}

		var date string
		if sel.ChapterDate != "" {
			date = cleanText(item.Find(sel.ChapterDate).First().Text())
		}

		chapters = append(chapters, &mangasrc.Chapter{
			ID:          id,
			MangaID:     mangaID,
			Name:        name,
			Number:      ChapterNumber(name),
			Language:    site.Language,
			PublishedAt: e.parseDate(date),
		})
	})
	return mangasrc.DedupeChapters(chapters)
}

func (e *Extractor) parseDate(s string) time.Time {
	if s == "" {
		return e.now()
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return e.now()
	}
	return t
}
