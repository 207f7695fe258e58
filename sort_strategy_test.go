package main

import (
	"net/url"
	"reflect"
	"testing"
)

// Test data for sorting strategies
func getTestLocators() []*url.URL {
	return []*url.URL{
		{Scheme: "file", Path: "/test/01.png"},
		{Scheme: "zip", Path: "/test/04.zip", Fragment: "a.png"},
		{Scheme: "file", Path: "/test/08.png"},
		{Scheme: "file", Path: "/test/09.png"},
		{Scheme: "file", Path: "/test/2.png"},
		{Scheme: "file", Path: "/test/３.png"},
	}
}

func locatorStrings(locators []*url.URL) []string {
	var s []string
	for _, u := range locators {
		s = append(s, displayName(u))
	}
	return s
}

func TestSortStrategies(t *testing.T) {
	tests := []struct {
		strategy SortStrategy
		name     string
		id       int
		expected []string
	}{
		{&NaturalSortStrategy{}, "Natural", SortNatural,
			[]string{"01.png", "2.png", "04.zip:a.png", "08.png", "09.png", "３.png"}},
		{&SimpleSortStrategy{}, "Simple", SortSimple,
			[]string{"01.png", "04.zip:a.png", "08.png", "09.png", "2.png", "３.png"}},
		{&EntryOrderSortStrategy{}, "Entry Order", SortEntryOrder,
			[]string{"01.png", "04.zip:a.png", "08.png", "09.png", "2.png", "３.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.strategy.Name() != tt.name {
				t.Errorf("Expected '%s', got '%s'", tt.name, tt.strategy.Name())
			}
			if tt.strategy.ID() != tt.id {
				t.Errorf("Expected %d, got %d", tt.id, tt.strategy.ID())
			}

			input := getTestLocators()
			original := getTestLocators()
			result := tt.strategy.Sort(input)

			if got := locatorStrings(result); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Sort failed\nExpected: %v\nGot:      %v", tt.expected, got)
			}
			if !reflect.DeepEqual(input, original) {
				t.Error("Input slice was modified - should be immutable")
			}
			if len(tt.strategy.Sort(nil)) != 0 {
				t.Error("Expected empty result for nil input")
			}
		})
	}
}

func TestGetSortStrategy(t *testing.T) {
	tests := []struct {
		sortMethod   int
		expectedName string
	}{
		{SortNatural, "Natural"},
		{SortSimple, "Simple"},
		{SortEntryOrder, "Entry Order"},
		{999, "Natural"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedName, func(t *testing.T) {
			if got := GetSortStrategy(tt.sortMethod).Name(); got != tt.expectedName {
				t.Errorf("Expected '%s', got '%s'", tt.expectedName, got)
			}
		})
	}
}

func TestParseSortMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"natural", SortNatural, true},
		{" Simple ", SortSimple, true},
		{"entry", SortEntryOrder, true},
		{"entry-order", SortEntryOrder, true},
		{"random", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseSortMethod(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("parseSortMethod(%q) = %d,%t want %d,%t", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}
