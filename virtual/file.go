package virtual

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
)

// virtualDir is a directory whose listing shows rendered names: Markdown files
// appear as ".html" and images in image folders gain an ".html" page.
type virtualDir struct {
	fs.File

	path    string        // Path of the directory
	entries []fs.DirEntry // Translated entries, read on first use
	read    bool          // Whether entries has been filled
	offset  int           // Next entry to return
}

// ReadDir reads the contents of the directory and returns a slice of up to n
// DirEntry values in directory order. With n > 0 it returns io.EOF at the end
// of the directory.
func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.read {
		if err := d.load(); err != nil {
			return nil, err
		}
	}
	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if n > len(rest) {
		n = len(rest)
	}
	d.offset += n
	return rest[:n], nil
}

func (d *virtualDir) load() error {
	rdf, ok := d.File.(fs.ReadDirFile)
	if !ok {
		return &fs.PathError{Op: "readdir", Path: d.path, Err: errors.New("not implemented")}
	}
	inner, err := rdf.ReadDir(-1)
	if err != nil {
		return err
	}
	d.read = true
	for _, entry := range inner {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || (d.path == "." && isHiddenFile(name)) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case !entry.IsDir() && path.Ext(name) == ".md":
			d.entries = append(d.entries, virtualDirEntry{virtualFileInfo{FileInfo: info, name: strings.TrimSuffix(name, ".md") + ".html"}})
		case !entry.IsDir() && hasImageExtension(name) && hasImageFolderPrefix(path.Join(d.path, name)):
			d.entries = append(d.entries,
				entry,
				virtualDirEntry{virtualFileInfo{FileInfo: info, name: strings.TrimSuffix(name, path.Ext(name)) + ".html"}})
		default:
			d.entries = append(d.entries, entry)
		}
	}
	return nil
}

// virtualFileInfo holds the metadata of an underlying file under a virtual name.
type virtualFileInfo struct {
	fs.FileInfo
	name string
}

// Name returns the base name of the file.
func (fi virtualFileInfo) Name() string {
	return fi.name
}

// virtualDirEntry is a directory entry for a virtual file.
type virtualDirEntry struct {
	virtualFileInfo
}

// Type returns the type bits for the entry.
func (di virtualDirEntry) Type() fs.FileMode {
	return di.virtualFileInfo.Mode().Type()
}

// Info returns the FileInfo for the file described by the entry.
func (di virtualDirEntry) Info() (fs.FileInfo, error) {
	return di.virtualFileInfo, nil
}
