package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mangasrc"
)

// Pages returns reader images in document order. Lazy-loading attributes
// are tried in the site's order and inline data URIs are skipped.
func (e *Extractor) Pages(html string, site *mangasrc.Site) []string {
	sel := site.Selectors
	if sel.PageImage == "" {
		return nil
	}
	doc, ok := parse(html)
	if !ok {
		return nil
	}

	var pages []string
	doc.Find(sel.PageImage).Each(func(_ int, img *goquery.Selection) {
		if src := imageSource(img, sel.PageAttrs); src != "" {
			pages = append(pages, mangasrc.PageURL(src, site))
		}
	})
	return pages
}
