package mangasrc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a scraped synopsis,
	// into Markdown text.
	Convert(html string) (string, error)
}
