// Package filters holds small text helpers used from page templates.
package filters

import (
	"html/template"
	"regexp"
	"time"

	"github.com/ancientlore/yearbook/archive"
	"golang.org/x/text/language"
)

// langRegexp matches the two character language segment at the start of a path.
var langRegexp = regexp.MustCompile(`^/../`)

// SetLang replaces the leading language segment of p with lang, so that
// "/en/docs/page" becomes "/fr/docs/page". Paths without such a segment are
// returned unchanged.
func SetLang(p, lang string) string {
	loc := langRegexp.FindStringIndex(p)
	if loc == nil {
		return p
	}
	return "/" + lang + "/" + p[loc[1]:]
}

// Lang returns the language code at the start of p, if the leading segment
// is a two letter ISO 639 language.
func Lang(p string) (string, bool) {
	if !langRegexp.MatchString(p) {
		return "", false
	}
	code := p[1:3]
	b, err := language.ParseBase(code)
	if err != nil {
		return "", false
	}
	// ParseBase canonicalizes, so "iw" would come back as "he"
	if b.String() != code {
		return "", false
	}
	return code, true
}

// UniDate formats t as YYYY-MM-DD.
func UniDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FuncMap returns the filters for use with html/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"setlang": SetLang,
		"unidate": UniDate,
		"years":   archive.Years,
	}
}
