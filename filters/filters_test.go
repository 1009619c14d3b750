package filters

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/ancientlore/yearbook/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLang(t *testing.T) {
	tests := []struct {
		path, lang, want string
	}{
		{"/en/docs/page", "fr", "/fr/docs/page"},
		{"/en/", "de", "/de/"},
		{"/xy/a", "en", "/en/a"},
		{"/docs/page", "fr", "/docs/page"},
		{"en/docs", "fr", "en/docs"},
		{"", "fr", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SetLang(tc.path, tc.lang), tc.path)
	}
}

func TestLang(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/en/docs/page", "en", true},
		{"/fr/", "fr", true},
		{"/docs/page", "", false},
		{"/1a/page", "", false},
		{"/en", "", false},
	}
	for _, tc := range tests {
		got, ok := Lang(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestUniDate(t *testing.T) {
	assert.Equal(t, "2023-05-09", UniDate(time.Date(2023, 5, 9, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "0001-01-01", UniDate(time.Time{}))
}

func TestFuncMap(t *testing.T) {
	tpl, err := template.New("t").Funcs(FuncMap()).Parse(
		`{{setlang .Path "fr"}} {{unidate .Date}}{{range years .Groups}} {{.}}{{end}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tpl.Execute(&buf, map[string]any{
		"Path": "/en/blog/post.html",
		"Date": time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		"Groups": map[int]archive.YearGroup{
			2020: {Year: 2020, Count: 1},
			2021: {Year: 2021, Count: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/fr/blog/post.html 2021-12-31 2021 2020", buf.String())
}
