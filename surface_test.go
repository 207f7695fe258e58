package main

import (
	"image"
	"net/url"
	"testing"
	"time"

	"lightbox/viewer"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type staticView struct {
	frame viewer.Frame
}

func (v *staticView) SetFrame(f viewer.Frame) { v.frame = f }

func (v *staticView) Frame() viewer.Frame { return v.frame }

func (v *staticView) Image() image.Image { return nil }

func (v *staticView) Locator() *url.URL { return nil }

// newTestSurface returns a surface over pages views of a 100x100 viewport
func newTestSurface(pages int) (*pagingSurface, *testClock, *int) {
	clock := &testClock{t: time.Unix(1000, 0)}
	s := newPagingSurface(viewer.Size{W: 100, H: 100}, clock.now)
	s.SetContentSize(viewer.Size{W: float64(pages) * 100, H: 100})
	for i := 0; i < pages; i++ {
		s.Attach(&staticView{frame: viewer.Frame{X: float64(i) * 100, W: 100, H: 100}})
	}
	settles := 0
	s.onSettle = func() { settles++ }
	return s, clock, &settles
}

func TestSurfaceDragSnap(t *testing.T) {
	tests := []struct {
		name        string
		startOffset float64
		from, to    float64
		expected    float64
		settles     int
	}{
		{"Past half", 0, 80, 20, 100, 1},
		{"Flick forward", 0, 50, 20, 100, 1},
		{"Small drag snaps back", 0, 50, 40, 0, 1},
		{"Flick backward", 100, 20, 50, 0, 1},
		{"Clamped at end", 200, 80, 10, 200, 1},
		{"Below threshold", 100, 50, 48, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clock, settles := newTestSurface(3)
			s.SetOffset(viewer.Point{X: tt.startOffset}, false)

			s.BeginDrag(tt.from)
			s.DragTo(tt.to)
			s.EndDrag(tt.to)
			if s.Dragging() {
				t.Error("Still dragging after release")
			}

			clock.advance(snapDuration)
			s.Update()

			if got := s.Offset().X; got != tt.expected {
				t.Errorf("Expected offset %v, got %v", tt.expected, got)
			}
			if *settles != tt.settles {
				t.Errorf("Expected %d settles, got %d", tt.settles, *settles)
			}
			if s.Animating() {
				t.Error("Animation still running")
			}
		})
	}
}

func TestSurfaceDragThreshold(t *testing.T) {
	s, _, _ := newTestSurface(3)
	s.BeginDrag(50)
	s.DragTo(47)
	if s.Scrolling() || s.Offset().X != 0 {
		t.Fatalf("Moved before threshold: offset %v", s.Offset().X)
	}
	s.DragTo(40)
	if !s.Scrolling() {
		t.Fatal("Expected scrolling past threshold")
	}
	if got := s.Offset().X; got != 10 {
		t.Errorf("Expected offset 10, got %v", got)
	}
	// once moving, small motions still scroll
	s.DragTo(38)
	if got := s.Offset().X; got != 12 {
		t.Errorf("Expected offset 12, got %v", got)
	}
}

func TestSurfaceProgrammaticAnimation(t *testing.T) {
	s, clock, settles := newTestSurface(3)

	s.SetOffset(viewer.Point{X: 200}, true)
	if !s.Animating() {
		t.Fatal("Expected animation")
	}

	clock.advance(snapDuration / 2)
	s.Update()
	if x := s.Offset().X; x <= 0 || x >= 200 {
		t.Errorf("Expected intermediate offset, got %v", x)
	}

	clock.advance(snapDuration)
	s.Update()
	if got := s.Offset().X; got != 200 {
		t.Errorf("Expected offset 200, got %v", got)
	}
	if *settles != 0 {
		t.Errorf("Programmatic scroll reported %d settles", *settles)
	}

	s.SetOffset(viewer.Point{X: 0}, true)
	s.SetOffset(viewer.Point{X: 100}, false)
	if s.Animating() || s.Offset().X != 100 {
		t.Errorf("Plain move should cancel animation, offset %v", s.Offset().X)
	}
}

func TestSurfaceVisibleViews(t *testing.T) {
	s, _, _ := newTestSurface(4)

	if got := len(s.VisibleViews()); got != 1 {
		t.Errorf("Expected 1 visible view at rest, got %d", got)
	}

	s.SetOffset(viewer.Point{X: 150}, false)
	visible := s.VisibleViews()
	if len(visible) != 2 {
		t.Fatalf("Expected 2 visible views mid-scroll, got %d", len(visible))
	}
	if visible[0].Frame().X != 100 || visible[1].Frame().X != 200 {
		t.Errorf("Unexpected visible frames %v, %v", visible[0].Frame(), visible[1].Frame())
	}

	s.Detach(visible[0])
	if got := len(s.VisibleViews()); got != 1 {
		t.Errorf("Expected 1 visible view after detach, got %d", got)
	}
}

func TestFadeTransition(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	fade := newFadeTransition(200*time.Millisecond, clock.now)
	fade.start = clock.now()

	if a := fade.Alpha(); a != 0 {
		t.Errorf("Expected alpha 0 at start, got %v", a)
	}
	clock.advance(100 * time.Millisecond)
	if a := fade.Alpha(); a != 0.5 {
		t.Errorf("Expected alpha 0.5, got %v", a)
	}
	clock.advance(time.Second)
	if a := fade.Alpha(); a != 1 {
		t.Errorf("Expected alpha 1, got %v", a)
	}

	done := 0
	fade.FadeOut(func() { done++ })
	fade.FadeOut(func() { done += 10 })
	clock.advance(100 * time.Millisecond)
	fade.Update()
	if done != 0 {
		t.Fatal("Dismiss ran before the fade finished")
	}
	if a := fade.Alpha(); a != 0.5 {
		t.Errorf("Expected alpha 0.5 fading out, got %v", a)
	}
	clock.advance(100 * time.Millisecond)
	fade.Update()
	fade.Update()
	if done != 1 {
		t.Errorf("Expected dismiss callback once, got %d", done)
	}
}

func TestFadeTransitionZeroDuration(t *testing.T) {
	fade := newFadeTransition(0, nil)
	if a := fade.Alpha(); a != 1 {
		t.Errorf("Expected alpha 1, got %v", a)
	}
	done := false
	fade.FadeOut(func() { done = true })
	fade.Update()
	if !done {
		t.Error("Expected immediate dismiss")
	}
}

type testHost struct {
	dismissed int
	barHidden bool
}

func (h *testHost) Dismiss() { h.dismissed++ }

func (h *testHost) StatusBarHidden() bool { return h.barHidden }

func (h *testHost) SetStatusBarHidden(hidden bool) { h.barHidden = hidden }

// TestSurfaceDrivesController checks that a drag on the real surface moves the
// controller's current page once the snap settles
func TestSurfaceDrivesController(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	surface := newPagingSurface(viewer.Size{W: 100, H: 100}, clock.now)

	contents := make([]viewer.Content, 3)
	for i := range contents {
		contents[i] = viewer.ImageContent(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	}

	var changes []int
	c, err := viewer.New(contents, surface, pageFactory{}, &testHost{},
		viewer.WithPageDelegate(viewer.PageChangedFunc(func(_ *viewer.Controller, page int) {
			changes = append(changes, page)
		})),
	)
	if err != nil {
		t.Fatalf("viewer.New failed: %v", err)
	}
	surface.onSettle = c.GestureSettled

	surface.BeginDrag(90)
	surface.DragTo(20)
	surface.EndDrag(20)

	if c.CurrentPage() != 0 {
		t.Fatalf("Page changed before the snap settled: %d", c.CurrentPage())
	}

	clock.advance(snapDuration)
	surface.Update()

	if c.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", c.CurrentPage())
	}
	if c.IndicatorText() != "2/3" {
		t.Errorf("Expected indicator 2/3, got %q", c.IndicatorText())
	}
	if len(changes) != 2 || changes[1] != 1 {
		t.Errorf("Expected page changes [0 1], got %v", changes)
	}

	c.Next(true)
	clock.advance(snapDuration)
	surface.Update()
	if got := surface.Offset().X; got != 200 {
		t.Errorf("Expected offset 200 after Next, got %v", got)
	}
	if !c.SeenLastPage() {
		t.Error("Expected last page seen")
	}
}

func TestResizeDuringSnapKeepsTarget(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	surface := newPagingSurface(viewer.Size{W: 100, H: 100}, clock.now)

	contents := make([]viewer.Content, 3)
	for i := range contents {
		contents[i] = viewer.ImageContent(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	}

	var changes []int
	c, err := viewer.New(contents, surface, pageFactory{}, &testHost{},
		viewer.WithPageDelegate(viewer.PageChangedFunc(func(_ *viewer.Controller, page int) {
			changes = append(changes, page)
		})),
	)
	if err != nil {
		t.Fatalf("viewer.New failed: %v", err)
	}
	surface.onSettle = c.GestureSettled

	surface.BeginDrag(90)
	surface.DragTo(20)
	surface.EndDrag(20)
	clock.advance(snapDuration / 2)
	surface.Update()

	c.Resize(viewer.Size{W: 200, H: 100})

	if c.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", c.CurrentPage())
	}
	if got := surface.Offset().X; got != 200 {
		t.Errorf("Expected offset 200, got %v", got)
	}
	if surface.Animating() {
		t.Error("Snap still running after resize")
	}

	clock.advance(snapDuration)
	surface.Update()
	if len(changes) != 2 {
		t.Errorf("Expected page changes [0 1], got %v", changes)
	}
	if surface.FinishSnap() {
		t.Error("FinishSnap reported a snap after it finished")
	}
}
