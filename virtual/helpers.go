package virtual

import (
	"path"
	"strings"
)

const configFile = "site.cfg"

var hiddenFiles = []string{
	"template",
	configFile,
}

var imageFolders = []string{"photos", "images", "pictures", "cartoons", "toons", "sketches", "artwork", "drawings"}

var imageExtensions = []string{".png", ".jpg", ".gif", ".webp", ".jpeg"}

// isHiddenFile returns true if the given file is considered
// hidden from outside view.
func isHiddenFile(name string) bool {
	for _, s := range hiddenFiles {
		if name == s {
			return true
		}
	}
	return false
}

// containsSpecialFile reports whether name contains a path element starting with a period.
// The name is assumed to be a delimited by forward slashes, as guaranteed by the fs.FS interface.
func containsSpecialFile(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// isErrorPage reports whether the base name is one of the error or index pages
// that listings leave out.
func isErrorPage(name string) bool {
	switch strings.TrimSuffix(name, path.Ext(name)) {
	case "index", "404", "500":
		return true
	}
	return false
}

// hasImageFolderPrefix checks if the entry is in an image folder.
func hasImageFolderPrefix(s string) bool {
	for _, f := range imageFolders {
		if strings.HasPrefix(s, f) {
			return true
		}
	}
	return false
}

// hasImageExtension checks if the path ends in an image type.
func hasImageExtension(s string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
