package viewer

import (
	"fmt"
	"math"
)

// Pager owns the authoritative current page index.
//
// Every SetCurrentPage runs the full side-effect chain (indicator text, seen
// flag, page-changed notification) even when the clamped value is unchanged.
type Pager struct {
	count     func() int
	current   int
	seen      bool
	indicator string

	onIndicator func(text string)
	onChange    func(page int)
}

// NewPager creates a Pager that reads the page count from count
func NewPager(count func() int, onIndicator func(string), onChange func(int)) *Pager {
	return &Pager{
		count:       count,
		onIndicator: onIndicator,
		onChange:    onChange,
	}
}

// SetCurrentPage clamps page into range, stores it and fires the side effects.
// With no pages it does nothing.
func (p *Pager) SetCurrentPage(page int) {
	n := p.count()
	if n == 0 {
		debugLog("SetCurrentPage(%d) ignored: no pages", page)
		return
	}

	p.current = clampPage(page, n)
	p.indicator = fmt.Sprintf("%d/%d", p.current+1, n)
	if p.onIndicator != nil {
		p.onIndicator(p.indicator)
	}

	if p.current == n-1 {
		p.seen = true
	}

	if p.onChange != nil {
		p.onChange(p.current)
	}
}

// CurrentPage returns the current page index
func (p *Pager) CurrentPage() int {
	return p.current
}

// SeenLastPage reports whether the last page has ever been current
func (p *Pager) SeenLastPage() bool {
	return p.seen
}

// IndicatorText returns the last rendered "current/total" text
func (p *Pager) IndicatorText() string {
	return p.indicator
}

func clampPage(page, n int) int {
	if page < 0 {
		return 0
	}
	if page > n-1 {
		return n - 1
	}
	return page
}

// PageForOffset converts a horizontal surface offset to a page index.
// A page becomes current once the surface reaches its leading edge.
func PageForOffset(offsetX, viewportWidth float64) int {
	return int(math.Floor(offsetX / viewportWidth))
}
