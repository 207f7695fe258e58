package viewer

import (
	"image"
	"net/url"
	"time"
)

type fakeSurface struct {
	offset      Point
	animated    bool
	viewport    Size
	contentSize Size
	attached    []PageView
}

func (s *fakeSurface) Offset() Point { return s.offset }

func (s *fakeSurface) SetOffset(offset Point, animated bool) {
	s.offset = offset
	s.animated = animated
}

func (s *fakeSurface) Viewport() Size           { return s.viewport }
func (s *fakeSurface) SetViewport(size Size)    { s.viewport = size }
func (s *fakeSurface) SetContentSize(size Size) { s.contentSize = size }
func (s *fakeSurface) Attach(view PageView)     { s.attached = append(s.attached, view) }

func (s *fakeSurface) Detach(view PageView) {
	for i, v := range s.attached {
		if v == view {
			s.attached = append(s.attached[:i], s.attached[i+1:]...)
			return
		}
	}
}

type fakeView struct {
	frame   Frame
	img     image.Image
	locator *url.URL
}

func (v *fakeView) SetFrame(frame Frame) { v.frame = frame }
func (v *fakeView) Frame() Frame         { return v.frame }
func (v *fakeView) Image() image.Image   { return v.img }
func (v *fakeView) Locator() *url.URL    { return v.locator }

type fakeFactory struct{}

func (fakeFactory) NewPage(content Content) PageView {
	return &fakeView{img: content.Image(), locator: content.Locator()}
}

type fakeHost struct {
	dismissed       int
	statusBarHidden bool
}

func (h *fakeHost) Dismiss()                       { h.dismissed++ }
func (h *fakeHost) StatusBarHidden() bool          { return h.statusBarHidden }
func (h *fakeHost) SetStatusBarHidden(hidden bool) { h.statusBarHidden = hidden }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// harness wires a controller to fakes and records delegate calls
type harness struct {
	c          *Controller
	surface    *fakeSurface
	host       *fakeHost
	clock      *fakeClock
	loop       *LoopScheduler
	pageEvents []int
	dismissals int
}

func locators(n int) []Content {
	contents := make([]Content, n)
	for i := range contents {
		contents[i] = LocatorContent(&url.URL{Scheme: "file", Path: "/img/" + string(rune('a'+i)) + ".png"})
	}
	return contents
}

func newHarness(contents []Content, viewport Size, opts ...Option) (*harness, error) {
	h := &harness{
		surface: &fakeSurface{viewport: viewport},
		host:    &fakeHost{},
		clock:   &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	h.loop = NewLoopScheduler(h.clock.Now)

	all := []Option{
		WithScheduler(h.loop),
		WithPageDelegate(PageChangedFunc(func(_ *Controller, page int) {
			h.pageEvents = append(h.pageEvents, page)
		})),
		WithDismissalDelegate(WillDismissFunc(func(*Controller) {
			h.dismissals++
		})),
	}
	all = append(all, opts...)

	c, err := New(contents, h.surface, fakeFactory{}, h.host, all...)
	if err != nil {
		return nil, err
	}
	h.c = c
	return h, nil
}

func (h *harness) settle() {
	h.clock.Advance(SettleDelay)
	h.loop.RunDue()
}

func (h *harness) lastPageEvent() int {
	if len(h.pageEvents) == 0 {
		return -1
	}
	return h.pageEvents[len(h.pageEvents)-1]
}

// snappingSurface is a fakeSurface with a drag snap that can be left running
type snappingSurface struct {
	*fakeSurface
	snapTo *Point
}

func (s *snappingSurface) FinishSnap() bool {
	if s.snapTo == nil {
		return false
	}
	s.offset = *s.snapTo
	s.snapTo = nil
	return true
}
