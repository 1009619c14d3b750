/*
virtual implements a "virtual" view over a fs.FS that makes it suitable for serving Markdown
and other files in a web format. It includes a template system, a yearly archive of the
site's dated pages, and helpers for presenting a static web view in an easy-to-maintain
format.

A special file "site.cfg" at the root exposes settings you can use via the Config() function.
This file is hidden from view.

A special folder "template" at the root holds HTML templates should you want to customize. At
minimum, a template called "default" is required for handling Markdown files, a template
called "image" is required for handling image files, and a template called "archive" is
used by pages that list the yearly archive.

Hidden files and folders (those starting with ".") are ignored.

Special File Handling

When an endpoint like "/foo/bar.html" is called and it does not exist, the virtual file system first looks for
a Markdown file named "/foo/bar.md". If present, a "virtual" file "/foo/bar.html" is presented that will
render the underlying Markdown file into HTML. The Markdown file itself is hidden from directory listings.
By default, a template called "default" is used to render the Markdown, unless the front matter of the
file specifies a different template.

If a Markdown file is not found, the system will look for an image file (PNG, JPG, GIF, WEBP). If an image
file is found, a virtual file "/foo/bar.html" is created that will render an HTML file using the "image" template.
This only happens when the top-level folder is one of the following:

	"photos", "images", "pictures", "cartoons", "toons", "sketches", "artwork", "drawings"

Site Builds

New runs a site build: every Markdown page is read, drafts are dropped, and the dated pages
are grouped by year into an archive.Index held in a Site. Templates reach it through
".Site" or the "site" function. Rebuild runs a new build and replaces the Site only when
the build succeeds, so a page without a date never leaves a half built archive behind.

The [archive] section of site.cfg controls the build:

	[archive]
	strategy = "categorized"     # "flat" (default) or "categorized"
	source = "posts"             # "posts" (default) or "pages"
	folders = ["articles"]       # folders holding posts
	categories = ["en", "fr"]    # allowed categories; empty allows any
	defaultcategory = "en"       # category for pages that do not name one

With source "posts" and folders set, every page in the post folders must have a date. With
source "pages", or without folders, all Markdown pages are considered and pages without a
date are skipped. Drafts and redirect pages are never part of the archive.

A page's category is its "lang" front matter, else the first of its "categories", else a
leading two letter language folder such as "/fr/", else the default category.

Site Map

If a file in the root named "sitemap.txt" is present, it is run as a text template that receives
the list of page paths of the current build as a slice of strings.

Front Matter

Markdown files may contain front matter in TOML format delimited by "+++", or in YAML
format delimited by "---". For example:

    +++
    # This is my front matter
    title = "My glorious page"
    date = 2021-03-01T10:00:00Z
    +++
    # This is my Heading
    This is my [Markdown](https://en.wikipedia.org/wiki/Markdown).

Front matter may include:

	Name          Type                  Description
	-----------   -----------------     -----------------------------------------
	title         string                Title of page
	date          time                  Publish date
	tags          array of strings      Tags for the articles
	template      string                Override the template to render this file
	redirect      string                Issue an HTML meta-tag redirect
	expires       duration              Expires header for this page, instead of the site setting
	draft         bool                  Leave the page out of the archive
	lang          string                Category (language) of the page
	categories    array of strings      Categories; the first one is used

Templates

The system uses standard Go templates from the `html/template` package. Templates are stored
in the "template" top-level folder with the extension ".html". They are passed the front matter,
page information, rendered HTML, and the current Site, and can use the following functions:

	dir(path string) []virtual.File
		Return the contents of the given folder, excluding special files and subfolders
	sortbyname([]virtual.File) []virtual.File
		Sort by name (reverse)
	sortbytime([]virtual.File) []virtual.File
		Sort by time (reverse)
	match(string, ...string) bool
		Match string against file patterns
	filter([]virtual.File, ...string) []virtual.File
		Filter list against file patterns
	join(parts ...string) string
		The same as path.Join
	ext(path string) string
		The same as path.Ext
	prev([]virtual.File, string) *virtual.File
		Find the previous file based on Filename
	next([]virtual.File, string) *virtual.File
		Find the next file based on Filename
	reverse([]virtual.File) []virtual.File
		Reverse the list
	trimsuffix, trimprefix, trimspace
		The same as the strings package functions
	markdown(string) template.HTML
		Render Markdown file into HTML
	frontmatter(string) *virtual.FrontMatter
		Read front matter from file
	now() time.Time
		Current time
	site() *virtual.Site
		The current site build
	setlang(path, lang string) string
		Replace the leading language folder of a path
	unidate(time.Time) string
		Format a date as YYYY-MM-DD
	years(map[int]archive.YearGroup) []int
		Years of a flat archive, newest first

Errors

To assist web implementations that want to serve a custom file for 404 or 500 errors, you can create
404.md and 500.md files in the root of the file system. The sitemap and "dir" template function will
not show them.
*/
package virtual

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// FS provides a virtual view of the file system suitable for serving Markdown
// and other files in a web format.
type FS struct {
	fs        fs.FS
	tpl       *template.Template
	tplMutex  sync.RWMutex
	site      *Site
	siteMutex sync.RWMutex
}

// New returns a new FS that presents a virtual view of innerFS. It fails if
// the templates cannot be parsed or the initial site build fails.
func New(innerFS fs.FS) (*FS, error) {
	var vfs = FS{
		fs: innerFS,
	}
	_, err := vfs.loadTemplates()
	if err != nil {
		return nil, err
	}
	_, err = vfs.Rebuild()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return &vfs, nil
}

// Open opens the named file.
//
// When Open returns an error, it should be of type *fs.PathError
// with the Op field set to "open", the Path field set to name,
// and the Err field describing the problem.
func (vfs *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if isHiddenFile(name) || (name != "." && containsSpecialFile(name)) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	f, err := vfs.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path.Ext(name) == ".html" {
			return vfs.openRendered(name, err)
		}
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	// Directories need to be virtual so that listings show rendered names.
	if fi.IsDir() {
		return &virtualDir{File: f, path: name}, nil
	}
	if name == "sitemap.txt" {
		defer f.Close()
		return vfs.newSitemapFile(f, name)
	}
	return f, nil
}

// openRendered looks for a Markdown or image file behind a missing HTML name.
// notFound is returned when neither exists.
func (vfs *FS) openRendered(name string, notFound error) (fs.File, error) {
	base := strings.TrimSuffix(name, path.Ext(name))
	f, err := vfs.fs.Open(base + ".md")
	if err == nil {
		defer f.Close()
		return vfs.newMarkdownFile(f, name)
	}
	if !hasImageFolderPrefix(name) {
		return nil, notFound
	}
	for _, ext := range imageExtensions {
		f, err := vfs.fs.Open(base + ext)
		if err == nil {
			defer f.Close()
			return vfs.newImageFile(f, name)
		}
	}
	return nil, notFound
}
