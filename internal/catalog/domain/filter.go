package domain

import (
	"sort"
	"strings"
)

// Sentinel value that disables the category and note filters.
const FilterAll = "all"

// DefaultMaxPrice is the upper bound of the price slider when no explicit
// range is given.
const DefaultMaxPrice = 50000

// FilterState holds the active catalog filters. The zero value of Category
// and Note is normalized to FilterAll.
type FilterState struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Note     string
}

// DefaultFilter returns a filter state that matches every product
func DefaultFilter() FilterState {
	return FilterState{
		Category: FilterAll,
		MinPrice: 0,
		MaxPrice: DefaultMaxPrice,
		Note:     FilterAll,
	}
}

func (f FilterState) normalized() FilterState {
	if f.Category == "" {
		f.Category = FilterAll
	}
	if f.Note == "" {
		f.Note = FilterAll
	}
	if f.MaxPrice == 0 {
		f.MaxPrice = DefaultMaxPrice
	}
	return f
}

// Match reports whether a single product passes every active filter.
// All four filters are conjunctive.
func (f FilterState) Match(p Product) bool {
	f = f.normalized()

	search := strings.ToLower(f.Search)
	matchesSearch := search == "" ||
		strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.TopNotes), search) ||
		strings.Contains(strings.ToLower(p.HeartNotes), search) ||
		strings.Contains(strings.ToLower(p.BaseNotes), search)

	matchesCategory := f.Category == FilterAll ||
		strings.EqualFold(p.Category, f.Category)

	matchesPrice := p.Price >= f.MinPrice && p.Price <= f.MaxPrice

	note := strings.ToLower(f.Note)
	matchesNote := f.Note == FilterAll ||
		strings.Contains(strings.ToLower(p.TopNotes), note) ||
		strings.Contains(strings.ToLower(p.HeartNotes), note) ||
		strings.Contains(strings.ToLower(p.BaseNotes), note)

	return matchesSearch && matchesCategory && matchesPrice && matchesNote
}

// Filter returns the products passing the filter, preserving source order.
// The input slice is never mutated.
func Filter(products []Product, f FilterState) []Product {
	visible := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			visible = append(visible, p)
		}
	}
	return visible
}

// NoteVocabulary derives the distinct set of fragrance notes across all
// three note fields of every product: split on commas, trim, dedupe, sort.
func NoteVocabulary(products []Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, field := range []string{p.TopNotes, p.HeartNotes, p.BaseNotes} {
			for _, note := range strings.Split(field, ",") {
				note = strings.TrimSpace(note)
				if note != "" {
					seen[note] = struct{}{}
				}
			}
		}
	}

	notes := make([]string, 0, len(seen))
	for note := range seen {
		notes = append(notes, note)
	}
	sort.Strings(notes)
	return notes
}
