package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/mangasrc"
	"github.com/fwojciec/mangasrc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements mangasrc.Converter at compile time.
var _ mangasrc.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts description paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<div class="entry-content"><p>Ten years ago, the Gate appeared.</p><p>Sung Jinwoo is the weakest hunter.</p></div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Ten years ago, the Gate appeared.\n\nSung Jinwoo is the weakest hunter.", md)
	})

	t.Run("keeps emphasis", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Warning:</strong> contains <em>violence</em>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Warning:**")
		assert.Contains(t, md, "*violence*")
	})

	t.Run("keeps links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Read the <a href="https://example.com/novel">novel</a> too.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[novel](https://example.com/novel)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Action</li><li>Fantasy</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Action")
		assert.Contains(t, md, "- Fantasy")
	})

	t.Run("drops inline images", func(t *testing.T) {
		t.Parallel()

		html := `<p>Synopsis.</p><p><img src="/banner.jpg" alt="banner"></p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Synopsis.", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, mangasrc.EINVALID, mangasrc.ErrorCode(err))
	})
}
