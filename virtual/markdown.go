package virtual

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// pathToMarkdown takes a URL path and converts it into the path to the associated Markdown file.
func pathToMarkdown(filename string) string {
	if strings.HasSuffix(filename, "/") {
		filename += "index.md"
	}
	filename = path.Clean(filename)
	filename = strings.TrimPrefix(filename, "/")
	switch path.Ext(filename) {
	case "":
		filename += ".md"
	case ".html":
		filename = strings.TrimSuffix(filename, ".html") + ".md"
	}
	return filename
}

// renderMarkdown renders the markdown for the given file and returns the front matter.
func (vfs *FS) renderMarkdown(filename string) (*FrontMatter, template.HTML, error) {
	var fmData FrontMatter
	filename = pathToMarkdown(filename)
	b, err := fs.ReadFile(vfs.fs, filename)
	if err != nil {
		return nil, "", fmt.Errorf("renderMarkdown: %w", err)
	}
	r, err := parseFrontMatter(b, &fmData)
	if err != nil {
		return nil, "", fmt.Errorf("renderMarkdown: %s: %w", filename, err)
	}
	md := template.HTML(blackfriday.Run(r, blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.Footnotes)))
	return &fmData, md, nil
}

// md converts the given markdown file to HTML and is used in templates.
func (vfs *FS) md(filename string) template.HTML {
	_, md, err := vfs.renderMarkdown(filename)
	if err != nil {
		log.Printf("md: %s", err)
		return ""
	}
	return md
}

// fm returns front matter for the given file and is used in templates.
func (vfs *FS) fm(filename string) *FrontMatter {
	fm, _, err := vfs.renderMarkdown(filename)
	if err != nil {
		log.Printf("fm: %s", err)
		return nil
	}
	return fm
}
