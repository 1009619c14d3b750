package archive

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy names a way of grouping the archive.
type Strategy string

const (
	Flat        Strategy = "flat"        // One map from year to group
	Categorized Strategy = "categorized" // Groups per category, then per year
)

// ParseStrategy converts a configuration value into a Strategy.
// The empty string selects Flat.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Flat:
		return Flat, nil
	case Categorized:
		return Categorized, nil
	}
	return "", fmt.Errorf("ParseStrategy: unknown strategy %q", s)
}

// UnmarshalText lets a Strategy be read directly from configuration files.
func (s *Strategy) UnmarshalText(text []byte) error {
	p, err := ParseStrategy(string(text))
	*s = p
	return err
}

// Options controls Build.
type Options struct {
	Strategy   Strategy // Grouping to use
	Categories []string // Allowed categories; empty allows any non-empty label
}

// Index is the archive of one site build. Only one of Years and Categories is
// populated, depending on Strategy.
type Index struct {
	Strategy   Strategy
	Years      map[int]YearGroup
	Categories map[string][]YearGroup
}

// Build groups items with the configured strategy. It returns nil and an error
// if grouping fails for any item.
func Build(items []Item, opts Options) (*Index, error) {
	idx := Index{Strategy: opts.Strategy}
	switch opts.Strategy {
	case Flat, "":
		idx.Strategy = Flat
		years, err := GroupByYear(items)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		idx.Years = years
	case Categorized:
		if err := checkCategories(items, opts.Categories); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		cats, err := GroupByYearPerCategory(Partition(items))
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		idx.Categories = cats
	default:
		return nil, fmt.Errorf("Build: unknown strategy %q", opts.Strategy)
	}
	return &idx, nil
}

// YearList returns the years of a flat index, newest first.
func (idx *Index) YearList() []int {
	return Years(idx.Years)
}

// CategoryList returns the categories of a categorized index in sorted order.
func (idx *Index) CategoryList() []string {
	r := make([]string, 0, len(idx.Categories))
	for c := range idx.Categories {
		r = append(r, c)
	}
	sort.Strings(r)
	return r
}

// Total returns the number of items in the index.
func (idx *Index) Total() int {
	n := 0
	for _, g := range idx.Years {
		n += g.Count
	}
	for _, groups := range idx.Categories {
		for _, g := range groups {
			n += g.Count
		}
	}
	return n
}

func checkCategories(items []Item, allowed []string) error {
	for _, itm := range items {
		if itm.Category == "" {
			return &UnknownCategoryError{Path: itm.Path}
		}
		if len(allowed) > 0 && !contains(allowed, itm.Category) {
			return &UnknownCategoryError{Category: itm.Category, Path: itm.Path}
		}
	}
	return nil
}

func contains(arr []string, s string) bool {
	for _, a := range arr {
		if a == s {
			return true
		}
	}
	return false
}
