package viewer

import (
	"errors"
	"image"
	"net/url"
	"testing"
)

func TestPagesRemoveAt(t *testing.T) {
	surface := &fakeSurface{}
	contents := locators(4)
	pages, err := NewPages(contents, fakeFactory{}, surface)
	if err != nil {
		t.Fatalf("NewPages failed: %v", err)
	}

	entry, ok := pages.RemoveAt(1)
	if !ok {
		t.Fatal("RemoveAt(1) failed")
	}
	if entry.Content.Locator() != contents[1].Locator() {
		t.Errorf("Removed the wrong entry: %v", entry.Content.Locator())
	}
	if pages.Len() != 3 {
		t.Errorf("Expected 3 pages, got %d", pages.Len())
	}
	if len(surface.attached) != 3 {
		t.Errorf("Expected removed view to be detached, %d attached", len(surface.attached))
	}

	// later entries shifted down
	e, _ := pages.At(1)
	if e.Content.Locator() != contents[2].Locator() {
		t.Errorf("Expected entry 2 at index 1, got %v", e.Content.Locator())
	}

	if _, ok := pages.RemoveAt(3); ok {
		t.Error("RemoveAt out of range succeeded")
	}
	if _, ok := pages.RemoveAt(-1); ok {
		t.Error("RemoveAt(-1) succeeded")
	}
}

func TestPagesClear(t *testing.T) {
	surface := &fakeSurface{}
	pages, err := NewPages(locators(2), fakeFactory{}, surface)
	if err != nil {
		t.Fatalf("NewPages failed: %v", err)
	}

	pages.Clear()

	if pages.Len() != 0 || len(surface.attached) != 0 {
		t.Errorf("Expected empty collection and surface, got %d/%d", pages.Len(), len(surface.attached))
	}
}

func TestContentValidation(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	u := &url.URL{Path: "a.png"}

	tests := []struct {
		name    string
		content Content
		valid   bool
	}{
		{"Image", ImageContent(img), true},
		{"Locator", LocatorContent(u), true},
		{"Empty", Content{}, false},
		{"Both", Content{image: img, locator: u}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPages([]Content{tt.content}, fakeFactory{}, &fakeSurface{})
			if tt.valid && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidContent) {
				t.Errorf("Expected ErrInvalidContent, got %v", err)
			}
		})
	}
}

func TestPagerClamps(t *testing.T) {
	n := 3
	var texts []string
	var changes []int
	p := NewPager(func() int { return n }, func(s string) { texts = append(texts, s) }, func(i int) { changes = append(changes, i) })

	p.SetCurrentPage(10)
	if p.CurrentPage() != 2 || !p.SeenLastPage() {
		t.Errorf("Expected clamp to 2 and seen, got %d seen=%t", p.CurrentPage(), p.SeenLastPage())
	}

	p.SetCurrentPage(-4)
	if p.CurrentPage() != 0 {
		t.Errorf("Expected clamp to 0, got %d", p.CurrentPage())
	}

	p.SetCurrentPage(0)
	if len(changes) != 3 || len(texts) != 3 {
		t.Errorf("Expected side effects on every assignment, got %d changes %d texts", len(changes), len(texts))
	}
	if texts[0] != "3/3" || texts[2] != "1/3" {
		t.Errorf("Unexpected indicator texts %v", texts)
	}

	n = 0
	p.SetCurrentPage(1)
	if len(changes) != 3 {
		t.Errorf("Assignment with no pages fired side effects")
	}
}
