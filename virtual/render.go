package virtual

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"path"
	texttemplate "text/template"
	"time"

	"github.com/russross/blackfriday/v2"
)

// renderFile is an in-memory file holding rendered output. The underlying file
// is only read while rendering, so Close has nothing to release.
type renderFile struct {
	reader *bytes.Reader
	info   renderFileInfo
}

// Stat returns a FileInfo describing the rendered file.
func (f *renderFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Read reads up to len(b) bytes of rendered output.
func (f *renderFile) Read(b []byte) (int, error) {
	return f.reader.Read(b)
}

// Seek sets the offset for the next Read, as described by io.Seeker.
func (f *renderFile) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

// Close does nothing.
func (f *renderFile) Close() error {
	return nil
}

// renderFileInfo reports the virtual name and the rendered size of a file
// while keeping the mode and modification time of the source.
type renderFileInfo struct {
	fs.FileInfo

	name string
	size int64
}

// Name returns the virtual name of the file.
func (rfi renderFileInfo) Name() string {
	return rfi.name
}

// Size reports the length of the rendered data.
func (rfi renderFileInfo) Size() int64 {
	return rfi.size
}

// newRenderFile captures rendered output along with the source's metadata.
func newRenderFile(src fs.File, name string, b []byte) (fs.File, error) {
	fi, err := src.Stat()
	if err != nil {
		return nil, err
	}
	return &renderFile{
		reader: bytes.NewReader(b),
		info:   renderFileInfo{FileInfo: fi, name: name, size: int64(len(b))},
	}, nil
}

// newMarkdownFile reads the underlying markdown file, extracts the front matter,
// renders the markdown, and executes the specified template.
func (vfs *FS) newMarkdownFile(f fs.File, pathname string) (fs.File, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("newMarkdownFile: %w", err)
	}
	var front FrontMatter
	r, err := parseFrontMatter(b, &front)
	if err != nil {
		return nil, fmt.Errorf("newMarkdownFile: %s: %w", pathname, err)
	}

	p, bn := path.Split(pathname)
	if front.Redirect != "" {
		var wtr bytes.Buffer
		err = redirectTemplate.Execute(&wtr, front.Redirect)
		if err != nil {
			return nil, fmt.Errorf("newMarkdownFile: %w", err)
		}
		return newRenderFile(f, bn, wtr.Bytes())
	}

	md := template.HTML(blackfriday.Run(r, blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.Footnotes)))
	var data = data{
		FrontMatter: front,
		Page: PageInfo{
			Path:     p,
			Filename: bn,
		},
		Content: md,
		Site:    vfs.Site(),
	}

	templateName := "default"
	if data.FrontMatter.Template != "" {
		templateName = data.FrontMatter.Template
	}
	var wtr bytes.Buffer
	err = vfs.getTemplates().ExecuteTemplate(&wtr, templateName, data)
	if err != nil {
		log.Printf("Error executing template: %s", err)
	}
	return newRenderFile(f, bn, wtr.Bytes())
}

// newImageFile creates front matter for the underlying image file and executes
// the "image" template.
func (vfs *FS) newImageFile(f fs.File, pathname string) (fs.File, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	p, bn := path.Split(pathname)
	var data = data{
		FrontMatter: FrontMatter{
			Title:        bn,
			Date:         fi.ModTime(),
			OriginalFile: fi.Name(),
		},
		Page: PageInfo{
			Path:     p,
			Filename: fi.Name(),
		},
		Site: vfs.Site(),
	}

	var wtr bytes.Buffer
	err = vfs.getTemplates().ExecuteTemplate(&wtr, "image", data)
	if err != nil {
		log.Printf("Error executing template: %s", err)
	}
	return newRenderFile(f, bn, wtr.Bytes())
}

// newSitemapFile parses the underlying text file as a template and executes it
// with the page paths of the current build.
func (vfs *FS) newSitemapFile(f fs.File, pathname string) (fs.File, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("newSitemapFile: %w", err)
	}
	tpl, err := texttemplate.New("sitemap").Funcs(texttemplate.FuncMap{"now": time.Now}).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("newSitemapFile: %w", err)
	}
	var files []string
	if s := vfs.Site(); s != nil {
		files = s.Files
	}
	var wtr bytes.Buffer
	err = tpl.Execute(&wtr, files)
	if err != nil {
		return nil, fmt.Errorf("newSitemapFile: %w", err)
	}
	_, bn := path.Split(pathname)
	return newRenderFile(f, bn, wtr.Bytes())
}

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<meta http-equiv="refresh" content="0; url={{.}}">
		<link rel="canonical" href="{{.}}">
	</head>
	<body><a href="{{.}}">Moved</a></body>
</html>
`))
