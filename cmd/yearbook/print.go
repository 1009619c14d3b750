package main

import (
	"fmt"
	"io"

	"github.com/ancientlore/yearbook/archive"
	"github.com/ancientlore/yearbook/filters"
	"github.com/pelletier/go-toml/v2"
)

// printed is the TOML layout of an archive.
type printed struct {
	Strategy   archive.Strategy  `toml:"strategy"`
	Total      int               `toml:"total"`
	Categories []printedCategory `toml:"category"`
}

type printedCategory struct {
	Name  string        `toml:"name,omitempty"`
	Years []printedYear `toml:"year"`
}

type printedYear struct {
	Year  int           `toml:"year"`
	Count int           `toml:"count"`
	Pages []printedPage `toml:"page"`
}

type printedPage struct {
	Title string `toml:"title"`
	Path  string `toml:"path"`
	Date  string `toml:"date"`
}

// printArchive writes idx to w as TOML. Flat archives are printed as a
// single unnamed category with the newest year first.
func printArchive(w io.Writer, idx *archive.Index) error {
	if idx == nil {
		return fmt.Errorf("printArchive: no archive")
	}
	p := printed{Strategy: idx.Strategy, Total: idx.Total()}
	switch idx.Strategy {
	case archive.Categorized:
		for _, name := range idx.CategoryList() {
			p.Categories = append(p.Categories, printedCategory{Name: name, Years: yearsOf(idx.Categories[name])})
		}
	default:
		groups := make([]archive.YearGroup, 0, len(idx.Years))
		for _, y := range idx.YearList() {
			groups = append(groups, idx.Years[y])
		}
		p.Categories = append(p.Categories, printedCategory{Years: yearsOf(groups)})
	}
	b, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("printArchive: %w", err)
	}
	_, err = w.Write(b)
	if err != nil {
		return fmt.Errorf("printArchive: %w", err)
	}
	return nil
}

func yearsOf(groups []archive.YearGroup) []printedYear {
	r := make([]printedYear, 0, len(groups))
	for _, g := range groups {
		y := printedYear{Year: g.Year, Count: g.Count}
		for _, itm := range g.Items {
			y.Pages = append(y.Pages, printedPage{Title: itm.Title, Path: itm.Path, Date: filters.UniDate(itm.Date)})
		}
		r = append(r, y)
	}
	return r
}
