package main

import (
	"math"
	"time"

	"lightbox/viewer"
)

const (
	// snapDuration is the length of an animated offset change
	snapDuration = 350 * time.Millisecond

	// flickFraction of a page width dragged past the start page turns the page
	flickFraction = 0.2
)

// offsetTween animates the horizontal offset between two values
type offsetTween struct {
	from, to float64
	start    time.Time
	user     bool // started by a drag release
}

func (t *offsetTween) at(now time.Time) (float64, bool) {
	elapsed := now.Sub(t.start)
	if elapsed >= snapDuration {
		return t.to, true
	}
	p := float64(elapsed) / float64(snapDuration)
	// ease-out cubic
	p = 1 - math.Pow(1-p, 3)
	return t.from + (t.to-t.from)*p, false
}

// pagingSurface is a horizontal scroll container that snaps to whole pages.
// It only holds state; the game feeds it pointer input and the clock.
type pagingSurface struct {
	offset   viewer.Point
	viewport viewer.Size
	content  viewer.Size
	views    []viewer.PageView

	now   func() time.Time
	tween *offsetTween

	dragging        bool
	dragMoved       bool
	dragStartX      float64
	dragStartOffset float64
	dragThreshold   float64
	dragScale       float64

	// onSettle is called when a drag's snap animation comes to rest
	onSettle func()
}

func newPagingSurface(viewport viewer.Size, now func() time.Time) *pagingSurface {
	if now == nil {
		now = time.Now
	}
	return &pagingSurface{
		viewport:      viewport,
		now:           now,
		dragThreshold: 5,
		dragScale:     1,
	}
}

func (s *pagingSurface) Offset() viewer.Point { return s.offset }

// SetOffset moves the surface. An animated move replaces any running animation;
// a plain move also cancels it.
func (s *pagingSurface) SetOffset(offset viewer.Point, animated bool) {
	if !animated {
		s.tween = nil
		s.offset = offset
		return
	}
	s.offset.Y = offset.Y
	s.tween = &offsetTween{from: s.offset.X, to: offset.X, start: s.now()}
}

func (s *pagingSurface) Viewport() viewer.Size { return s.viewport }

func (s *pagingSurface) SetViewport(size viewer.Size) { s.viewport = size }

func (s *pagingSurface) SetContentSize(size viewer.Size) { s.content = size }

func (s *pagingSurface) Attach(view viewer.PageView) {
	s.views = append(s.views, view)
}

func (s *pagingSurface) Detach(view viewer.PageView) {
	for i, v := range s.views {
		if v == view {
			s.views = append(s.views[:i], s.views[i+1:]...)
			return
		}
	}
}

// Animating reports whether an offset animation is running
func (s *pagingSurface) Animating() bool { return s.tween != nil }

// Update advances the running animation
func (s *pagingSurface) Update() {
	if s.tween == nil {
		return
	}
	x, done := s.tween.at(s.now())
	s.offset.X = x
	if !done {
		return
	}

	user := s.tween.user
	s.tween = nil
	if user && s.onSettle != nil {
		s.onSettle()
	}
}

// FinishSnap ends a running drag snap at its target. onSettle is not called;
// the caller settles.
func (s *pagingSurface) FinishSnap() bool {
	if s.tween == nil || !s.tween.user {
		return false
	}
	s.offset.X = s.tween.to
	s.tween = nil
	return true
}

// VisibleViews returns the attached views that intersect the viewport
func (s *pagingSurface) VisibleViews() []viewer.PageView {
	var visible []viewer.PageView
	left, right := s.offset.X, s.offset.X+s.viewport.W
	for _, v := range s.views {
		f := v.Frame()
		if f.X+f.W > left && f.X < right {
			visible = append(visible, v)
		}
	}
	return visible
}

func (s *pagingSurface) maxOffset() float64 {
	return math.Max(0, s.content.W-s.viewport.W)
}

// BeginDrag starts tracking a pointer drag at x. A running animation stops where it is.
func (s *pagingSurface) BeginDrag(x float64) {
	s.tween = nil
	s.dragging = true
	s.dragMoved = false
	s.dragStartX = x
	s.dragStartOffset = s.offset.X
}

// DragTo scrolls with the pointer once it has moved past the drag threshold
func (s *pagingSurface) DragTo(x float64) {
	if !s.dragging {
		return
	}
	dx := x - s.dragStartX
	if !s.dragMoved && math.Abs(dx) < s.dragThreshold {
		return
	}
	s.dragMoved = true
	s.offset.X = clampFloat(s.dragStartOffset-dx*s.dragScale, 0, s.maxOffset())
}

// EndDrag releases the pointer. A drag that moved snaps to a page and reports
// the settle when the snap finishes; a press that never moved does nothing.
func (s *pagingSurface) EndDrag(x float64) {
	if !s.dragging {
		return
	}
	s.DragTo(x)
	s.dragging = false
	if !s.dragMoved {
		return
	}
	s.tween = &offsetTween{from: s.offset.X, to: s.snapTarget(), start: s.now(), user: true}
}

// Dragging reports whether a pointer is held on the surface
func (s *pagingSurface) Dragging() bool { return s.dragging }

// Scrolling reports whether a held pointer has moved the surface
func (s *pagingSurface) Scrolling() bool { return s.dragging && s.dragMoved }

// snapTarget picks the page offset a released drag should come to rest on
func (s *pagingSurface) snapTarget() float64 {
	width := s.viewport.W
	if width <= 0 {
		return s.offset.X
	}

	startPage := math.Round(s.dragStartOffset / width)
	page := math.Round(s.offset.X / width)

	if page == startPage {
		moved := (s.offset.X - s.dragStartOffset) / width
		switch {
		case moved > flickFraction:
			page++
		case moved < -flickFraction:
			page--
		}
	}

	return clampFloat(page*width, 0, s.maxOffset())
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
