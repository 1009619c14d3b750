package virtual

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds data scraped from a Markdown page.
type FrontMatter struct {
	Title      string    `toml:"title" yaml:"title"`           // Title of this page
	Date       time.Time `toml:"date" yaml:"date"`             // Date the article appears
	Template   string    `toml:"template" yaml:"template"`     // The name of the template to use
	Tags       []string  `toml:"tags" yaml:"tags"`             // Tags to assign to this article
	Expires    Duration  `toml:"expires" yaml:"expires"`       // Expires header for this page
	Redirect   string    `toml:"redirect" yaml:"redirect"`     // Issue a redirect to another location
	Draft      bool      `toml:"draft" yaml:"draft"`           // Leave out of the archive
	Lang       string    `toml:"lang" yaml:"lang"`             // Language or category of the page
	Categories []string  `toml:"categories" yaml:"categories"` // Categories; the first one wins

	OriginalFile string `toml:"-" yaml:"-"` // Underlying image of a virtual image page
}

// fmFormat tells which syntax a block of front matter uses.
type fmFormat int

const (
	fmNone fmFormat = iota
	fmTOML
	fmYAML
)

var (
	tomlRegexp = regexp.MustCompile(`(?m)^\s*\+\+\+\s*$`)
	yamlRegexp = regexp.MustCompile(`(?m)^\s*---\s*$`)
)

// extractFrontMatter splits the front matter and Markdown content. Front matter
// must be the first thing in the file.
func extractFrontMatter(x []byte) (fm, r []byte, format fmFormat) {
	for _, d := range []struct {
		re     *regexp.Regexp
		format fmFormat
	}{{tomlRegexp, fmTOML}, {yamlRegexp, fmYAML}} {
		subs := d.re.Split(string(x), 3)
		if len(subs) != 3 || len(strings.TrimSpace(subs[0])) > 0 {
			continue
		}
		return []byte(strings.TrimSpace(subs[1])), []byte(strings.TrimSpace(subs[2])), d.format
	}
	return nil, x, fmNone
}

// parseFrontMatter unmarshals the front matter of a page into fm and returns the
// remaining Markdown.
func parseFrontMatter(b []byte, fm *FrontMatter) ([]byte, error) {
	raw, r, format := extractFrontMatter(b)
	if len(raw) == 0 {
		return r, nil
	}
	var err error
	switch format {
	case fmTOML:
		err = toml.Unmarshal(raw, fm)
	case fmYAML:
		err = yaml.Unmarshal(raw, fm)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// readFrontMatter extracts and unmarshals front matter from the given file.
func (vfs *FS) readFrontMatter(name string, fm *FrontMatter) error {
	b, err := fs.ReadFile(vfs.fs, name)
	if err != nil {
		return fmt.Errorf("readFrontMatter: %w", err)
	}
	_, err = parseFrontMatter(b, fm)
	if err != nil {
		return fmt.Errorf("readFrontMatter: %s: %w", name, err)
	}
	return nil
}
