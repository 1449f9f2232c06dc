package source

import (
	"strings"

	"github.com/fwojciec/mangasrc"
	"golang.org/x/net/html"
)

// Classify sniffs a response body. Structured JSON of the expected shape
// wins; otherwise any HTML markup is Markup, upgraded to MarkupEmbedded
// when a script carries one of the site's hydration markers. Content-Type
// headers are not consulted.
func Classify(body string, shape mangasrc.Shape, site *mangasrc.Site, structured mangasrc.StructuredExtractor) mangasrc.Kind {
	body = strings.TrimSpace(body)
	if body == "" {
		return mangasrc.KindUnrecognized
	}
	if structured != nil && structured.Matches(body, shape, site) {
		return mangasrc.KindStructured
	}

	markup, embedded := scanMarkup(body, site.Embedded)
	switch {
	case embedded:
		return mangasrc.KindMarkupEmbedded
	case markup:
		return mangasrc.KindMarkup
	}
	return mangasrc.KindUnrecognized
}

// scanMarkup tokenizes body and reports whether it contains any element
// and whether a script block contains an embedded-data marker.
func scanMarkup(body string, markers []mangasrc.EmbeddedMarker) (markup, embedded bool) {
	z := html.NewTokenizer(strings.NewReader(body))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return markup, embedded
		case html.StartTagToken:
			markup = true
			name, _ := z.TagName()
			inScript = string(name) == "script"
			if len(markers) == 0 {
				return true, false
			}
		case html.SelfClosingTagToken:
			markup = true
			if len(markers) == 0 {
				return true, false
			}
		case html.EndTagToken:
			markup = true
			inScript = false
		case html.DoctypeToken:
			markup = true
		case html.TextToken:
			if !inScript {
				continue
			}
			text := string(z.Text())
			for _, m := range markers {
				if strings.Contains(text, m.Script) {
					return true, true
				}
			}
		}
	}
}
