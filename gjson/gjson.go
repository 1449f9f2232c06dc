// Package gjson implements the structured extractor over JSON API bodies
// using github.com/tidwall/gjson.
package gjson

import (
	"github.com/fwojciec/mangasrc"
	"github.com/tidwall/gjson"
)

// List returns the first array among the list candidates of body:
// the "data" field, then each alias in order, then the value itself.
// Returns false when body is not valid JSON or no candidate is an array.
func List(body string, aliases []string) ([]gjson.Result, bool) {
	if !gjson.Valid(body) {
		return nil, false
	}
	root := gjson.Parse(body)
	if root.IsObject() {
		if v := root.Get("data"); v.IsArray() {
			return v.Array(), true
		}
		for _, alias := range aliases {
			if v := root.Get(alias); v.IsArray() {
				return v.Array(), true
			}
		}
		return nil, false
	}
	if root.IsArray() {
		return root.Array(), true
	}
	return nil, false
}

// IsCatalog reports whether body is JSON of the expected catalog shape.
func IsCatalog(body string, shape mangasrc.Shape, aliases []string) bool {
	switch shape {
	case mangasrc.ShapeObject:
		return gjson.Valid(body) && gjson.Parse(body).IsObject()
	default:
		_, ok := List(body, aliases)
		return ok
	}
}

// record returns the details object of body: the "data" object when
// present, otherwise the root object.
func record(body string) (gjson.Result, bool) {
	if !gjson.Valid(body) {
		return gjson.Result{}, false
	}
	root := gjson.Parse(body)
	if !root.IsObject() {
		return gjson.Result{}, false
	}
	if d := root.Get("data"); d.IsObject() {
		return d, true
	}
	return root, true
}
