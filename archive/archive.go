/*
Package archive groups dated site content by publication year so templates can render
archive pages.

Two groupings are available. GroupByYear produces a flat map from year to YearGroup.
GroupByYearPerCategory groups each category (usually a language code) independently
and keeps the years of a category in the order they were first seen. Build selects one
of them from a Strategy, which is normally read from the site configuration.

Grouping is all-or-nothing: when any item lacks a date the whole call fails with a
*MissingDateError and no result is returned.
*/
package archive

import (
	"fmt"
	"sort"
	"time"
)

// Item is a single dated page as seen by the archive.
type Item struct {
	Title    string    // Title of the page
	Path     string    // URL path of the page
	Date     time.Time // Publish date; the zero time means no date
	Category string    // Category or language label, may be empty
	Tags     []string  // Tags from the front matter
}

// Year returns the calendar year of the item's date.
func (i Item) Year() int {
	return i.Date.Year()
}

// HasDate reports whether the item carries a usable date.
func (i Item) HasDate() bool {
	return !i.Date.IsZero()
}

// YearGroup holds all items published in one year.
type YearGroup struct {
	Year  int
	Count int
	Items []Item
}

// GroupByYear partitions items by the year of their date. Items keep their
// relative input order within each year. The input is not modified.
func GroupByYear(items []Item) (map[int]YearGroup, error) {
	if err := checkDates(items, ""); err != nil {
		return nil, fmt.Errorf("GroupByYear: %w", err)
	}
	r := make(map[int]YearGroup)
	for _, itm := range items {
		g := r[itm.Year()]
		g.Year = itm.Year()
		g.Items = append(g.Items, itm)
		g.Count = len(g.Items)
		r[g.Year] = g
	}
	return r, nil
}

// GroupByYearPerCategory groups the items of each category by year. The groups
// of a category are ordered by the first appearance of their year in that
// category's items.
func GroupByYearPerCategory(categorized map[string][]Item) (map[string][]YearGroup, error) {
	r := make(map[string][]YearGroup, len(categorized))
	// sorted so the same input always reports the same failing category
	for _, cat := range sortedKeys(categorized) {
		items := categorized[cat]
		if err := checkDates(items, cat); err != nil {
			return nil, fmt.Errorf("GroupByYearPerCategory: %w", err)
		}
		pos := make(map[int]int)
		groups := []YearGroup{}
		for _, itm := range items {
			i, ok := pos[itm.Year()]
			if !ok {
				i = len(groups)
				pos[itm.Year()] = i
				groups = append(groups, YearGroup{Year: itm.Year()})
			}
			groups[i].Items = append(groups[i].Items, itm)
			groups[i].Count = len(groups[i].Items)
		}
		r[cat] = groups
	}
	return r, nil
}

// Partition splits items by their Category, keeping input order within each category.
func Partition(items []Item) map[string][]Item {
	r := make(map[string][]Item)
	for _, itm := range items {
		r[itm.Category] = append(r[itm.Category], itm)
	}
	return r
}

// Years returns the years present in a flat grouping, newest first.
func Years(groups map[int]YearGroup) []int {
	r := make([]int, 0, len(groups))
	for y := range groups {
		r = append(r, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(r)))
	return r
}

// checkDates returns a *MissingDateError for the first undated item.
func checkDates(items []Item, category string) error {
	for i := range items {
		if !items[i].HasDate() {
			return &MissingDateError{Index: i, Path: items[i].Path, Category: category}
		}
	}
	return nil
}

func sortedKeys(m map[string][]Item) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
