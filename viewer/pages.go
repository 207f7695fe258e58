package viewer

import (
	"errors"
	"fmt"
	"image"
	"net/url"
)

var (
	// ErrInvalidContent is returned for a content item that carries neither or
	// both of an image and a locator.
	ErrInvalidContent = errors.New("content must hold exactly one of image or locator")
)

// Content is one page's source: a decoded image or a resource locator
type Content struct {
	image   image.Image
	locator *url.URL
}

// ImageContent wraps an already decoded image
func ImageContent(img image.Image) Content {
	return Content{image: img}
}

// LocatorContent wraps a resource locator to be loaded by the page view
func LocatorContent(u *url.URL) Content {
	return Content{locator: u}
}

// Image returns the wrapped image, or nil
func (c Content) Image() image.Image { return c.image }

// Locator returns the wrapped locator, or nil
func (c Content) Locator() *url.URL { return c.locator }

func (c Content) validate() error {
	if (c.image == nil) == (c.locator == nil) {
		return ErrInvalidContent
	}
	return nil
}

// PageEntry is one page owned by Pages
type PageEntry struct {
	Content Content
	View    PageView
}

// Pages is the ordered collection of page entries. Every entry's view is
// attached to the surface for as long as the entry exists.
type Pages struct {
	entries []PageEntry
	surface Surface
}

// NewPages builds one entry per content item, in order
func NewPages(contents []Content, factory PageFactory, surface Surface) (*Pages, error) {
	for i, c := range contents {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
	}

	p := &Pages{
		entries: make([]PageEntry, 0, len(contents)),
		surface: surface,
	}
	for _, c := range contents {
		view := factory.NewPage(c)
		surface.Attach(view)
		p.entries = append(p.entries, PageEntry{Content: c, View: view})
	}
	return p, nil
}

// Len returns the number of pages
func (p *Pages) Len() int {
	return len(p.entries)
}

// At returns the entry at index i
func (p *Pages) At(i int) (PageEntry, bool) {
	if i < 0 || i >= len(p.entries) {
		return PageEntry{}, false
	}
	return p.entries[i], true
}

// RemoveAt detaches and discards the entry at i. Later entries shift down by one.
func (p *Pages) RemoveAt(i int) (PageEntry, bool) {
	if i < 0 || i >= len(p.entries) {
		return PageEntry{}, false
	}
	entry := p.entries[i]
	p.surface.Detach(entry.View)
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	return entry, true
}

// Clear drops every entry
func (p *Pages) Clear() {
	for _, e := range p.entries {
		p.surface.Detach(e.View)
	}
	p.entries = nil
}

// Images returns the images of pages that were loaded in place
func (p *Pages) Images() []image.Image {
	var images []image.Image
	for _, e := range p.entries {
		if e.Content.image != nil {
			images = append(images, e.Content.image)
		}
	}
	return images
}

// Locators returns the locators of locator-backed pages
func (p *Pages) Locators() []*url.URL {
	var locators []*url.URL
	for _, e := range p.entries {
		if e.Content.locator != nil {
			locators = append(locators, e.Content.locator)
		}
	}
	return locators
}

// Views returns the page views in order
func (p *Pages) Views() []PageView {
	views := make([]PageView, len(p.entries))
	for i, e := range p.entries {
		views[i] = e.View
	}
	return views
}
