package virtual

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
	"time"

	"github.com/ancientlore/yearbook/archive"
	"github.com/ancientlore/yearbook/filters"
)

// Site is the result of one site build. It is never modified after the build;
// Rebuild replaces it as a whole.
type Site struct {
	Yearly *archive.Index // Archive of dated pages
	Pages  []archive.Item // Pages in the archive, in path order
	Files  []string       // Paths of every page and file, for the sitemap
	Built  time.Time      // When the build finished

	expires map[string]time.Duration // Front matter expires by URL path
}

// Site returns the current site build.
func (vfs *FS) Site() *Site {
	vfs.siteMutex.RLock()
	defer vfs.siteMutex.RUnlock()
	return vfs.site
}

// Rebuild reads the site configuration and content and builds a new yearly
// archive. The new Site is published only if the build succeeds; otherwise the
// previous one stays in place and the error is returned.
func (vfs *FS) Rebuild() (*Site, error) {
	cfg, err := vfs.Config()
	if err != nil {
		return nil, fmt.Errorf("Rebuild: %w", err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	c, err := vfs.loadContent(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("Rebuild: %w", err)
	}
	idx, err := archive.Build(c.items, archive.Options{
		Strategy:   cfg.Archive.Strategy,
		Categories: cfg.Archive.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("Rebuild: %w", err)
	}
	s := &Site{
		Yearly:  idx,
		Pages:   c.items,
		Files:   c.files,
		Built:   time.Now(),
		expires: c.expires,
	}
	vfs.siteMutex.Lock()
	vfs.site = s
	vfs.siteMutex.Unlock()
	log.Printf("Built site: %d pages in %s archive", idx.Total(), idx.Strategy)
	return s, nil
}

// Expires returns the expiry set in the front matter of the page served at
// urlPath, if any.
func (vfs *FS) Expires(urlPath string) (time.Duration, bool) {
	s := vfs.Site()
	if s == nil {
		return 0, false
	}
	d, ok := s.expires[urlPath]
	return d, ok
}

// content is what loadContent finds in the site folder.
type content struct {
	items   []archive.Item
	files   []string
	expires map[string]time.Duration
}

// loadContent walks the underlying file system and returns the archive items of
// the configured source collection along with the served path of every file.
//
// Drafts and redirect pages never enter the archive. Undated pages are left out
// unless they are posts, and only pages under the configured folders are posts.
func (vfs *FS) loadContent(cfg ArchiveConfig) (*content, error) {
	source, err := cfg.source()
	if err != nil {
		return nil, fmt.Errorf("loadContent: %w", err)
	}
	c := &content{expires: make(map[string]time.Duration)}
	err = fs.WalkDir(vfs.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if containsSpecialFile(p) || isHiddenFile(p) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if path.Ext(p) != ".md" {
			if p != "sitemap.txt" {
				c.files = append(c.files, p)
			}
			if hasImageFolderPrefix(p) && hasImageExtension(p) {
				c.files = append(c.files, strings.TrimSuffix(p, path.Ext(p))+".html")
			}
			return nil
		}
		urlPath := strings.TrimSuffix(p, ".md") + ".html"
		base := path.Base(p)
		switch {
		case base == "index.md":
			c.files = append(c.files, strings.TrimSuffix(p, base))
		case !isErrorPage(base):
			c.files = append(c.files, urlPath)
		}
		var fm FrontMatter
		err = vfs.readFrontMatter(p, &fm)
		if err != nil {
			return err
		}
		if fm.Expires != 0 {
			c.expires["/"+urlPath] = time.Duration(fm.Expires)
			if base == "index.md" {
				c.expires["/"+strings.TrimSuffix(p, base)] = time.Duration(fm.Expires)
			}
		}
		if isErrorPage(base) || fm.Draft || fm.Redirect != "" {
			return nil
		}
		if source == sourcePosts && len(cfg.Folders) > 0 {
			if !inFolders(p, cfg.Folders) {
				return nil
			}
		} else if fm.Date.IsZero() {
			return nil
		}
		itm := archive.Item{
			Title: fm.Title,
			Path:  "/" + urlPath,
			Date:  fm.Date,
			Tags:  fm.Tags,
		}
		if itm.Title == "" {
			itm.Title = strings.TrimSuffix(path.Base(p), ".md")
		}
		itm.Category = cfg.category(&fm, itm.Path)
		c.items = append(c.items, itm)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loadContent: %w", err)
	}
	return c, nil
}

// category picks the category of a page.
func (a ArchiveConfig) category(fm *FrontMatter, urlPath string) string {
	if fm.Lang != "" {
		return fm.Lang
	}
	if len(fm.Categories) > 0 {
		return fm.Categories[0]
	}
	if l, ok := filters.Lang(urlPath); ok {
		return l
	}
	return a.DefaultCategory
}

// inFolders reports whether p lies in one of the folders.
func inFolders(p string, folders []string) bool {
	for _, f := range folders {
		f = strings.Trim(f, "/")
		if strings.HasPrefix(p, f+"/") {
			return true
		}
	}
	return false
}
