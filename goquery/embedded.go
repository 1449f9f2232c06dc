package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mangasrc"
	"github.com/tidwall/gjson"
)

// Ensure EmbeddedExtractor implements mangasrc.EmbeddedExtractor.
var _ mangasrc.EmbeddedExtractor = (*EmbeddedExtractor)(nil)

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// EmbeddedExtractor pulls JSON arrays out of hydration scripts such as
// self.__next_f.push chunks and ts_reader.run calls.
type EmbeddedExtractor struct{}

// NewEmbeddedExtractor creates a new EmbeddedExtractor.
func NewEmbeddedExtractor() *EmbeddedExtractor {
	return &EmbeddedExtractor{}
}

// Extract returns the first valid JSON array found after a marker pattern
// inside a script containing the marker's script text. Script text is
// searched as-is first and then with one level of string escaping removed.
func (x *EmbeddedExtractor) Extract(html string, markers []mangasrc.EmbeddedMarker) (string, bool) {
	if len(markers) == 0 {
		return "", false
	}
	doc, ok := parse(html)
	if !ok {
		return "", false
	}
	scripts := doc.Find("script")

	for _, m := range markers {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			continue
		}
		var found string
		scripts.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if !strings.Contains(text, m.Script) {
				return true
			}
			if v, ok := locateArray(text, re); ok {
				found = v
				return false
			}
			if v, ok := locateArray(unescaper.Replace(text), re); ok {
				found = v
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

// locateArray returns the first bracket-balanced, valid JSON array that
// starts right after a match of re.
func locateArray(text string, re *regexp.Regexp) (string, bool) {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		start := loc[1]
		for start < len(text) && isSpace(text[start]) {
			start++
		}
		if start > 0 && text[start-1] == '[' && (start >= len(text) || text[start] != '[') {
			start--
		}
		if start >= len(text) || text[start] != '[' {
			continue
		}
		candidate, ok := balanced(text, start)
		if ok && gjson.Valid(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// balanced returns the bracketed literal opening at text[start], honoring
// JSON string quoting.
func balanced(text string, start int) (string, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
