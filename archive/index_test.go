package archive

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
		ok   bool
	}{
		{"", Flat, true},
		{"flat", Flat, true},
		{" Categorized ", Categorized, true},
		{"monthly", "", false},
	}
	for _, tc := range tests {
		got, err := ParseStrategy(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestBuildFlat(t *testing.T) {
	items := []Item{
		{Path: "/a", Date: day(2021, 3, 1), Category: "en"},
		{Path: "/b", Date: day(2022, 7, 4), Category: "fr"},
	}
	idx, err := Build(items, Options{})
	require.NoError(t, err)
	assert.Equal(t, Flat, idx.Strategy)
	assert.Nil(t, idx.Categories)
	assert.Equal(t, []int{2022, 2021}, idx.YearList())
	assert.Equal(t, 2, idx.Total())
}

func TestBuildCategorized(t *testing.T) {
	items := []Item{
		{Path: "/fr/a", Date: day(2020, 6, 1), Category: "fr"},
		{Path: "/en/a", Date: day(2020, 1, 1), Category: "en"},
		{Path: "/fr/b", Date: day(2021, 1, 1), Category: "fr"},
	}
	idx, err := Build(items, Options{Strategy: Categorized, Categories: []string{"en", "fr"}})
	require.NoError(t, err)
	assert.Nil(t, idx.Years)
	assert.Equal(t, []string{"en", "fr"}, idx.CategoryList())
	assert.Len(t, idx.Categories["fr"], 2)
	assert.Equal(t, 3, idx.Total())
}

func TestBuildUnknownCategory(t *testing.T) {
	items := []Item{
		{Path: "/en/a", Date: day(2020, 1, 1), Category: "en"},
		{Path: "/xx/a", Date: day(2020, 1, 1), Category: "xx"},
	}
	idx, err := Build(items, Options{Strategy: Categorized, Categories: []string{"en"}})
	assert.Nil(t, idx)
	var uce *UnknownCategoryError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "xx", uce.Category)
	assert.Equal(t, "/xx/a", uce.Path)

	idx, err = Build([]Item{{Path: "/a", Date: day(2020, 1, 1)}}, Options{Strategy: Categorized})
	assert.Nil(t, idx)
	require.True(t, errors.As(err, &uce))
	assert.Empty(t, uce.Category)
}

func TestBuildMissingDateAllOrNothing(t *testing.T) {
	items := []Item{
		{Path: "/a", Date: day(2020, 1, 1), Category: "en"},
		{Path: "/b", Category: "en"},
	}
	for _, s := range []Strategy{Flat, Categorized} {
		idx, err := Build(items, Options{Strategy: s})
		assert.Nil(t, idx, s)
		var mde *MissingDateError
		assert.True(t, errors.As(err, &mde), s)
	}
}

func TestBuildUnknownStrategy(t *testing.T) {
	_, err := Build(nil, Options{Strategy: "weekly"})
	assert.Error(t, err)
}

func TestStrategyUnmarshalText(t *testing.T) {
	var s Strategy
	require.NoError(t, s.UnmarshalText([]byte("categorized")))
	assert.Equal(t, Categorized, s)
	assert.Error(t, s.UnmarshalText([]byte("nope")))
}

func TestItemYear(t *testing.T) {
	i := Item{Date: time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, 1999, i.Year())
	assert.True(t, i.HasDate())
	assert.False(t, Item{}.HasDate())
}
