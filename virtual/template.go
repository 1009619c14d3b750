package virtual

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/ancientlore/yearbook/filters"
)

//go:embed default.html
var defaultTemplate string

// PageInfo has information about the current page.
type PageInfo struct {
	Path     string // path from URL
	Filename string // end portion (file) from URL
}

// Pathname joins the path and filename.
func (p PageInfo) Pathname() string {
	return path.Join(p.Path, p.Filename)
}

// data is what is passed to templates.
type data struct {
	FrontMatter FrontMatter   // front matter from Markdown file or defaults
	Page        PageInfo      // information about current page
	Content     template.HTML // rendered Markdown
	Site        *Site         // current site build
}

// getTemplates returns the current templates.
func (vfs *FS) getTemplates() *template.Template {
	vfs.tplMutex.RLock()
	defer vfs.tplMutex.RUnlock()
	return vfs.tpl
}

// loadTemplates loads and parses the HTML templates, returning true if custom templates were found.
func (vfs *FS) loadTemplates() (bool, error) {
	funcMap := template.FuncMap{
		"dir":         vfs.dir,
		"sortbyname":  sortByName,
		"sortbytime":  sortByTime,
		"match":       match,
		"filter":      filter,
		"join":        path.Join,
		"ext":         path.Ext,
		"prev":        prev,
		"next":        next,
		"reverse":     reverse,
		"trimsuffix":  strings.TrimSuffix,
		"trimprefix":  strings.TrimPrefix,
		"trimspace":   strings.TrimSpace,
		"markdown":    vfs.md,
		"frontmatter": vfs.fm,
		"now":         time.Now,
		"site":        vfs.Site,
	}
	for k, v := range filters.FuncMap() {
		funcMap[k] = v
	}
	vfs.tplMutex.Lock()
	defer vfs.tplMutex.Unlock()
	fi, err := fs.Stat(vfs.fs, "template")
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		tpl, err := template.New("yearbook").Funcs(funcMap).Parse(defaultTemplate)
		if err != nil {
			return false, fmt.Errorf("loadTemplates: %w", err)
		}
		vfs.tpl = tpl
		return false, nil
	}
	// custom templates may leave out some of the defaults
	tpl, err := template.New("yearbook").Funcs(funcMap).Parse(defaultTemplate)
	if err != nil {
		return false, fmt.Errorf("loadTemplates: %w", err)
	}
	tpl, err = tpl.ParseFS(vfs.fs, "template/*.html")
	if err != nil {
		return true, fmt.Errorf("loadTemplates: %w", err)
	}
	vfs.tpl = tpl
	return true, nil
}

// ReloadTemplates parses the templates again, keeping the old ones on failure.
func (vfs *FS) ReloadTemplates() error {
	_, err := vfs.loadTemplates()
	return err
}
