package gjson

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"
)

// str returns the first non-empty string or number among aliases.
func str(rec gjson.Result, aliases []string) string {
	for _, alias := range aliases {
		v := rec.Get(alias)
		switch v.Type {
		case gjson.String, gjson.Number:
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// number returns the first parseable non-negative number among aliases,
// or 0.
func number(rec gjson.Result, aliases []string) float64 {
	for _, alias := range aliases {
		v := rec.Get(alias)
		switch v.Type {
		case gjson.Number:
			if v.Num >= 0 {
				return v.Num
			}
		case gjson.String:
			n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if err == nil && n >= 0 {
				return n
			}
		}
	}
	return 0
}

// timestamp returns the first parseable time among aliases, or now().
// Numbers are Unix seconds, or milliseconds when too large for seconds.
func timestamp(rec gjson.Result, aliases []string, now func() time.Time) time.Time {
	for _, alias := range aliases {
		v := rec.Get(alias)
		switch v.Type {
		case gjson.String:
			s := strings.TrimSpace(v.Str)
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t
			}
			if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
				return t
			}
		case gjson.Number:
			n := v.Int()
			if n <= 0 {
				continue
			}
			if n > 1e12 {
				return time.UnixMilli(n).UTC()
			}
			return time.Unix(n, 0).UTC()
		}
	}
	return now()
}

// strs collects strings from the first alias present. Arrays may hold
// strings or objects with a name or title; a plain string is split on commas.
func strs(rec gjson.Result, aliases []string) []string {
	for _, alias := range aliases {
		v := rec.Get(alias)
		if !v.Exists() {
			continue
		}
		var out []string
		switch {
		case v.IsArray():
			for _, item := range v.Array() {
				switch {
				case item.IsObject():
					if s := str(item, []string{"name", "title"}); s != "" {
						out = append(out, s)
					}
				case item.Type == gjson.String:
					out = append(out, item.Str)
				}
			}
		case v.IsObject():
			if s := str(v, []string{"name", "title"}); s != "" {
				out = append(out, s)
			}
		case v.Type == gjson.String:
			out = append(out, strings.Split(v.Str, ",")...)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
