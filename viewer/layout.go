package viewer

// Chrome insets measured from the viewport edges
const (
	controlInsetX   = 17
	controlInsetY   = 16
	indicatorBottom = 20
)

// Size is a width/height pair in surface units
type Size struct {
	W, H float64
}

// Point is a position in surface units
type Point struct {
	X, Y float64
}

// Frame is the advisory geometry of a page or chrome element
type Frame struct {
	X, Y, W, H float64
}

// Center returns the frame's center point
func (f Frame) Center() Point {
	return Point{X: f.X + f.W/2, Y: f.Y + f.H/2}
}

// Contains reports whether p lies inside the frame
func (f Frame) Contains(p Point) bool {
	return p.X >= f.X && p.X < f.X+f.W && p.Y >= f.Y && p.Y < f.Y+f.H
}

// IsPortrait reports whether the size is taller than it is wide
func (s Size) IsPortrait() bool {
	return s.W < s.H
}

// LayoutInput is everything the layout depends on
type LayoutInput struct {
	Viewport      Size
	PageCount     int
	CurrentPage   int
	Chrome        ChromeConfig
	IndicatorSize Size // measured size of the indicator text
}

// Layout holds the computed frames for one viewport
type Layout struct {
	PageFrames     []Frame
	CloseFrame     Frame
	DeleteFrame    Frame
	IndicatorFrame Frame
	ContentSize    Size
	ScrollOffset   Point
}

// ComputeLayout maps a viewport, page count and current page to frames.
// It keeps no state and must be re-run on every viewport or page-count change.
func ComputeLayout(in LayoutInput) Layout {
	vw, vh := in.Viewport.W, in.Viewport.H

	l := Layout{
		PageFrames:   make([]Frame, in.PageCount),
		ContentSize:  Size{W: vw * float64(in.PageCount), H: vh},
		ScrollOffset: Point{X: float64(in.CurrentPage) * vw, Y: 0},
	}

	for i := range l.PageFrames {
		l.PageFrames[i] = Frame{X: float64(i) * vw, Y: 0, W: vw, H: vh}
	}

	closeSize := in.Chrome.Close.Size
	l.CloseFrame = Frame{
		X: vw - closeSize.W - controlInsetX,
		Y: controlInsetY,
		W: closeSize.W,
		H: closeSize.H,
	}

	deleteSize := in.Chrome.Delete.Size
	l.DeleteFrame = Frame{
		X: controlInsetX,
		Y: controlInsetY,
		W: deleteSize.W,
		H: deleteSize.H,
	}

	ind := in.IndicatorSize
	indicatorX := l.DeleteFrame.Center().X
	if in.Viewport.IsPortrait() {
		indicatorX = (vw - ind.W) / 2
	}
	l.IndicatorFrame = Frame{
		X: indicatorX,
		Y: vh - ind.H - indicatorBottom,
		W: ind.W,
		H: ind.H,
	}

	return l
}
