package virtual

import (
	"errors"
	"io/fs"
	"log"
	"path"
	"slices"
	"sort"
	"strings"
)

// File holds data about a page endpoint.
type File struct {
	FrontMatter FrontMatter
	Filename    string
}

// dir returns the files of a folder and is used in templates.
func (vfs *FS) dir(folderpath string) []File {
	folderpath = path.Clean("./" + strings.TrimPrefix(folderpath, "/"))
	entries, err := fs.ReadDir(vfs, folderpath)
	if err != nil {
		log.Printf("dir: %s", err)
		return nil
	}
	f := make([]File, 0, len(entries))
	for _, entry := range entries {
		if isErrorPage(entry.Name()) {
			continue
		}
		fm := FrontMatter{
			Title: strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())),
		}
		if fi, err := entry.Info(); err == nil {
			fm.Date = fi.ModTime().Local()
		}
		if !entry.IsDir() && path.Ext(entry.Name()) == ".html" {
			vfs.fileFrontMatter(folderpath, entry.Name(), &fm)
		}
		f = append(f, File{FrontMatter: fm, Filename: entry.Name()})
	}
	return f
}

// fileFrontMatter fills fm for a virtual HTML page from its Markdown source, or
// records the original image of an image page.
func (vfs *FS) fileFrontMatter(folderpath, name string, fm *FrontMatter) {
	base := strings.TrimSuffix(name, path.Ext(name))
	err := vfs.readFrontMatter(path.Join(folderpath, base+".md"), fm)
	if err == nil {
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("dir: %s", err)
		return
	}
	if !hasImageFolderPrefix(folderpath) {
		return
	}
	for _, ext := range imageExtensions {
		if _, err := fs.Stat(vfs.fs, path.Join(folderpath, base+ext)); err == nil {
			fm.OriginalFile = base + ext
			return
		}
	}
}

// sortByTime sorts the files by time, newest first.
func sortByTime(f []File) []File {
	sort.SliceStable(f, func(i, j int) bool { return f[j].FrontMatter.Date.Before(f[i].FrontMatter.Date) })
	return f
}

// sortByName sorts the files by name in reverse order.
func sortByName(f []File) []File {
	sort.SliceStable(f, func(i, j int) bool { return f[j].Filename < f[i].Filename })
	return f
}

// reverse reverses the order of the file list.
func reverse(f []File) []File {
	slices.Reverse(f)
	return f
}

// filter trims out non-matching files based on name.
func filter(f []File, pat ...string) []File {
	var r []File
	for i := range f {
		if match(f[i].Filename, pat...) {
			r = append(r, f[i])
		}
	}
	return r
}

// match uses path.Match to test for a match.
func match(s string, pat ...string) bool {
	for i := range pat {
		b, err := path.Match(pat[i], s)
		if err != nil {
			log.Printf("match: %s", err)
		}
		if b {
			return true
		}
	}
	return false
}

// next returns the file before current in the list, which is the newer one
// for lists sorted newest first.
func next(f []File, current string) *File {
	i := slices.IndexFunc(f, func(x File) bool { return x.Filename == current })
	if i <= 0 {
		return nil
	}
	return &f[i-1]
}

// prev returns the file after current in the list.
func prev(f []File, current string) *File {
	i := slices.IndexFunc(f, func(x File) bool { return x.Filename == current })
	if i < 0 || i >= len(f)-1 {
		return nil
	}
	return &f[i+1]
}
