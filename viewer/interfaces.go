package viewer

import (
	"image"
	"net/url"
)

// Surface is the horizontally paging container. Its offset is the ground truth
// for which page the user is looking at.
type Surface interface {
	Offset() Point
	SetOffset(offset Point, animated bool)
	Viewport() Size
	SetViewport(size Size)
	SetContentSize(size Size)
	Attach(view PageView)
	Detach(view PageView)
}

// Snapper is implemented by surfaces that animate a released drag to a page.
// FinishSnap jumps such an animation to its target without reporting the settle
// and returns whether one was running.
type Snapper interface {
	FinishSnap() bool
}

// PageView is a rendered page produced by a PageFactory
type PageView interface {
	SetFrame(frame Frame)
	Frame() Frame
	Image() image.Image // nil for locator-backed pages that have not loaded
	Locator() *url.URL  // nil for image-backed pages
}

// PageFactory builds the view for one content item
type PageFactory interface {
	NewPage(content Content) PageView
}

// Transition supplies the present/dismiss animation. The controller only hands
// it references; it never calls into the animation.
type Transition interface {
	Bind(c *Controller, surface Surface)
}

// Host is the environment presenting the viewer
type Host interface {
	Dismiss()
	StatusBarHidden() bool
	SetStatusBarHidden(hidden bool)
}

// PageDelegate is told about every current-page assignment
type PageDelegate interface {
	PageChanged(c *Controller, page int)
}

// DismissalDelegate is told once when the viewer is about to be dismissed
type DismissalDelegate interface {
	WillDismiss(c *Controller)
}

// PageChangedFunc adapts a function to PageDelegate
type PageChangedFunc func(c *Controller, page int)

func (f PageChangedFunc) PageChanged(c *Controller, page int) { f(c, page) }

// WillDismissFunc adapts a function to DismissalDelegate
type WillDismissFunc func(c *Controller)

func (f WillDismissFunc) WillDismiss(c *Controller) { f(c) }

// TextMeasurer returns the rendered size of the indicator text
type TextMeasurer func(text string, style TextStyle) Size
