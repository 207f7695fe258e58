package main

import (
	"net/url"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy orders the pages collected from one argument
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(locators []*url.URL) []*url.URL
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

type lessFunc func(a, b string) bool

// keyedSort sorts a copy of locators by their display path
func keyedSort(locators []*url.URL, less lessFunc) []*url.URL {
	result := make([]*url.URL, len(locators))
	copy(result, locators)

	sort.SliceStable(result, func(i, j int) bool {
		return less(displayPath(result[i]), displayPath(result[j]))
	})
	return result
}

// NaturalSortStrategy orders "page2" before "page10"
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(locators []*url.URL) []*url.URL {
	return keyedSort(locators, natural.Less)
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy orders by byte-wise string comparison
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(locators []*url.URL) []*url.URL {
	return keyedSort(locators, func(a, b string) bool { return a < b })
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy keeps directory/archive order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(locators []*url.URL) []*url.URL {
	result := make([]*url.URL, len(locators))
	copy(result, locators)
	return result
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for a config sort method
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// parseSortMethod maps a --sort flag value to a sort method
func parseSortMethod(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "natural":
		return SortNatural, true
	case "simple":
		return SortSimple, true
	case "entry", "entry-order":
		return SortEntryOrder, true
	default:
		return 0, false
	}
}
