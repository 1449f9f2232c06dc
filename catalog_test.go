package mangasrc_test

import (
	"testing"

	"github.com/fwojciec/mangasrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want mangasrc.Status
	}{
		{"ONGOING", mangasrc.StatusOngoing},
		{"Status: Completed", mangasrc.StatusCompleted},
		{"Ended", mangasrc.StatusCompleted},
		{"On Hiatus", mangasrc.StatusHiatus},
		{"", mangasrc.StatusUnknown},
		{"dropped", mangasrc.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mangasrc.ParseStatus(tt.text))
		})
	}
}

func TestStatus_MarshalText(t *testing.T) {
	t.Parallel()

	b, err := mangasrc.StatusHiatus.MarshalText()

	require.NoError(t, err)
	assert.Equal(t, "Hiatus", string(b))
}

func TestCatalogEntry_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires ID", func(t *testing.T) {
		t.Parallel()

		e := &mangasrc.CatalogEntry{Title: "Foo"}

		err := e.Validate()

		assert.Equal(t, mangasrc.EINVALID, mangasrc.ErrorCode(err))
	})

	t.Run("accepts entry with ID", func(t *testing.T) {
		t.Parallel()

		e := &mangasrc.CatalogEntry{ID: "7"}

		assert.NoError(t, e.Validate())
	})
}

func TestMangaDetails_Validate(t *testing.T) {
	t.Parallel()

	d := &mangasrc.MangaDetails{ID: "7"}
	assert.Equal(t, mangasrc.EINVALID, mangasrc.ErrorCode(d.Validate()))

	d.Titles = []string{"Foo"}
	assert.NoError(t, d.Validate())
	assert.Equal(t, "Foo", d.Title())
}

func TestDedupeEntries(t *testing.T) {
	t.Parallel()

	entries := []*mangasrc.CatalogEntry{
		{ID: "a", Title: "First A"},
		{ID: "b", Title: "B"},
		{ID: "a", Title: "Second A"},
		{ID: "", Title: "No ID"},
		{ID: "c", Title: "C"},
	}

	got := mangasrc.DedupeEntries(entries)

	require.Len(t, got, 3)
	assert.Equal(t, "First A", got[0].Title)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestDedupeChapters(t *testing.T) {
	t.Parallel()

	chapters := []*mangasrc.Chapter{
		{ID: "1", Name: "one"},
		{ID: "1", Name: "one again"},
		{ID: "2", Name: "two"},
	}

	got := mangasrc.DedupeChapters(chapters)

	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Name)
}

func TestAppendUnique(t *testing.T) {
	t.Parallel()

	got := mangasrc.AppendUnique([]string{"Action"}, "Drama", " ", "Action", "Drama ")

	assert.Equal(t, []string{"Action", "Drama"}, got)
}
