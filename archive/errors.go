package archive

import "fmt"

// MissingDateError is returned when an item has no usable date.
type MissingDateError struct {
	Index    int    // Position of the item in its input sequence
	Path     string // Path of the item, if known
	Category string // Category being grouped, empty for the flat grouping
}

func (e *MissingDateError) Error() string {
	where := fmt.Sprintf("item %d", e.Index)
	if e.Path != "" {
		where = fmt.Sprintf("%s (%s)", where, e.Path)
	}
	if e.Category != "" {
		return fmt.Sprintf("missing date: %s in category %q", where, e.Category)
	}
	return "missing date: " + where
}

// UnknownCategoryError is returned by the categorized build for an empty
// category label or one that is not in the configured list.
type UnknownCategoryError struct {
	Category string // The offending label
	Path     string // First item carrying the label
}

func (e *UnknownCategoryError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("unknown category: %s has no category", e.Path)
	}
	return fmt.Sprintf("unknown category %q (%s)", e.Category, e.Path)
}
