package virtual

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ancientlore/yearbook/archive"
	"github.com/pelletier/go-toml/v2"
)

// Config contains configuration data from the site.cfg file.
type Config struct {
	Expires       Duration          `toml:"expires"`
	StaticExpires Duration          `toml:"staticexpires"`
	Headers       map[string]string `toml:"headers"`
	Archive       ArchiveConfig     `toml:"archive"`
}

// ArchiveConfig controls how the yearly archive is built.
type ArchiveConfig struct {
	Strategy        archive.Strategy `toml:"strategy"`        // "flat" or "categorized"
	Source          string           `toml:"source"`          // "posts" or "pages"
	Folders         []string         `toml:"folders"`         // Folders holding posts; none means undated pages are skipped
	Categories      []string         `toml:"categories"`      // Allowed categories
	DefaultCategory string           `toml:"defaultcategory"` // Category of pages that name none
}

const (
	sourcePosts = "posts"
	sourcePages = "pages"
)

// Config returns configuration from the site.cfg file.
// It is not an error if the file does not exist.
func (vfs *FS) Config() (*Config, error) {
	var cfg Config
	cfgBytes, err := fs.ReadFile(vfs.fs, configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	err = toml.Unmarshal(cfgBytes, &cfg)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	return &cfg, nil
}

// source returns the configured source collection, defaulting to posts.
func (a ArchiveConfig) source() (string, error) {
	switch a.Source {
	case "", sourcePosts:
		return sourcePosts, nil
	case sourcePages:
		return sourcePages, nil
	}
	return "", fmt.Errorf("unknown archive source %q", a.Source)
}
