package mangasrc

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntries formats catalog entries one per line as "id  title".
// The subtitle, when present, follows in parentheses.
func FormatEntries(entries []*CatalogEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := e.ID + "  " + e.Title
		if e.Subtitle != "" {
			line += " (" + e.Subtitle + ")"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// FormatSection formats a home section as a markdown heading followed by
// its entries. Empty sections print a placeholder line.
func FormatSection(s *HomeSection) string {
	header := "## " + s.Title
	if s.Title == "" {
		header = "## " + s.ID
	}
	if len(s.Entries) == 0 {
		return header + "\n(no entries)"
	}
	return header + "\n" + FormatEntries(s.Entries)
}

// FormatDetails formats manga details as a block of labeled lines.
func FormatDetails(d *MangaDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", d.Title())
	if len(d.Titles) > 1 {
		fmt.Fprintf(&b, "Also known as: %s\n", strings.Join(d.Titles[1:], "; "))
	}
	fmt.Fprintf(&b, "ID: %s\n", d.ID)
	fmt.Fprintf(&b, "Status: %s\n", d.Status)
	if d.Author != "" {
		fmt.Fprintf(&b, "Author: %s\n", d.Author)
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintf(&b, "Image: %s\n", d.ImageURL)
	if d.Description != "" {
		b.WriteString("\n")
		b.WriteString(d.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatChapters formats chapters one per line as "number  name  id".
// Unknown numbers print as "?".
func FormatChapters(chapters []*Chapter) string {
	if len(chapters) == 0 {
		return ""
	}

	lines := make([]string, 0, len(chapters))
	for _, c := range chapters {
		num := "?"
		if c.Number > 0 {
			num = strconv.FormatFloat(c.Number, 'f', -1, 64)
		}
		lines = append(lines, num+"  "+c.Name+"  "+c.ID)
	}

	return strings.Join(lines, "\n")
}

// FormatPages formats page URLs one per line.
func FormatPages(p *ChapterPages) string {
	return strings.Join(p.Pages, "\n")
}
