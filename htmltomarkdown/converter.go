package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/mangasrc"
)

// Ensure Converter implements mangasrc.Converter at compile time.
var _ mangasrc.Converter = (*Converter)(nil)

var (
	imageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	blankLineRe = regexp.MustCompile(`\n{3,}`)
)

// Converter turns series description markup into Markdown. Inline images
// are dropped and blank line runs collapsed, since descriptions are shown
// as text next to the cover.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms description HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", mangasrc.Errorf(mangasrc.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.EPARSE, "convert description: %v", err)
	}

	result = imageRe.ReplaceAllString(result, "")
	result = blankLineRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
