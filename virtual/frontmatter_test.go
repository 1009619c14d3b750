package virtual

import (
	"bytes"
	"testing"
	"time"
)

func TestExtractFrontMatter(t *testing.T) {
	var (
		tests = []string{
			``,
			`
		+++
		x = 2
		+++`,
			` ++++++ `,
			`  +++
		 x = "+++"
		 +++
		 hello`,
			`---
x: 2
---
body

---

more`,
			`# Heading
---
not front matter
---`,
		}
		expect = []struct {
			fm, r  string
			format fmFormat
		}{
			{``, ``, fmNone},
			{`x = 2`, ``, fmTOML},
			{``, `++++++`, fmNone},
			{`x = "+++"`, `hello`, fmTOML},
			{`x: 2`, "body\n\n---\n\nmore", fmYAML},
			{``, "# Heading\n---\nnot front matter\n---", fmNone},
		}
	)
	for i := range tests {
		fm, r, format := extractFrontMatter([]byte(tests[i]))
		fm = bytes.TrimSpace(fm)
		r = bytes.TrimSpace(r)
		if string(fm) != expect[i].fm || string(r) != expect[i].r || format != expect[i].format {
			t.Errorf("Expected %#v but got %#v", expect[i], []any{string(fm), string(r), format})
		}
	}
}

func TestParseFrontMatter(t *testing.T) {
	var (
		tests = []string{
			"+++\ntitle = \"T\"\ndate = 2023-05-09T10:00:00Z\nexpires = \"1h\"\ndraft = true\n+++\nbody",
			"---\ntitle: T\ndate: 2023-05-09T10:00:00Z\nexpires: 1h\ndraft: true\n---\nbody",
		}
		date = time.Date(2023, 5, 9, 10, 0, 0, 0, time.UTC)
	)
	for _, s := range tests {
		var fm FrontMatter
		r, err := parseFrontMatter([]byte(s), &fm)
		if err != nil {
			t.Errorf("parseFrontMatter(%q): %v", s, err)
			continue
		}
		if string(r) != "body" {
			t.Errorf("Expected body, got %q", r)
		}
		if fm.Title != "T" || !fm.Date.Equal(date) || time.Duration(fm.Expires) != time.Hour || !fm.Draft {
			t.Errorf("Unexpected front matter %+v", fm)
		}
	}

	var fm FrontMatter
	if _, err := parseFrontMatter([]byte("+++\ntitle = \n+++\n"), &fm); err == nil {
		t.Error("Expected error for bad front matter")
	}
}
