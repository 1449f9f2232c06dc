package mock

import "github.com/fwojciec/mangasrc"

var _ mangasrc.Converter = (*Converter)(nil)

// Converter is a mock implementation of mangasrc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
