package viewer

import (
	"errors"
	"image"
	"net/url"
)

// ErrArchiveDecode is returned when a Controller is asked to restore itself
// from a persisted archive. Only New builds a Controller.
var ErrArchiveDecode = errors.New("viewer: decoding a controller from an archive is not supported")

// Controller coordinates the pages, the current index, layout and the
// delete/close protocols. All methods must be called from the event loop.
type Controller struct {
	surface    Surface
	host       Host
	transition Transition
	scheduler  Scheduler
	loop       *LoopScheduler // set when the controller owns its scheduler
	measure    TextMeasurer

	chrome            ChromeConfig
	pageDelegate      PageDelegate
	dismissalDelegate DismissalDelegate

	pages *Pages
	pager *Pager

	layout       Layout
	closeCtl     Control
	deleteCtl    Control
	indicatorCtl Control

	presented          bool
	statusBarWasHidden bool
	disposed           bool

	deletion deletionState
	settle   Task
}

// Option configures a Controller
type Option func(*Controller)

// WithChrome sets the chrome configuration
func WithChrome(chrome ChromeConfig) Option {
	return func(c *Controller) { c.chrome = chrome }
}

// WithPageDelegate sets the page-changed delegate
func WithPageDelegate(d PageDelegate) Option {
	return func(c *Controller) { c.pageDelegate = d }
}

// WithDismissalDelegate sets the dismissal delegate
func WithDismissalDelegate(d DismissalDelegate) Option {
	return func(c *Controller) { c.dismissalDelegate = d }
}

// WithScheduler replaces the controller's own loop scheduler
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithTransition sets the presentation transition
func WithTransition(t Transition) Option {
	return func(c *Controller) { c.transition = t }
}

// WithTextMeasurer sets how the indicator text is sized
func WithTextMeasurer(m TextMeasurer) Option {
	return func(c *Controller) { c.measure = m }
}

// New builds the pages, seeds page 0 and lays out the surface's current viewport
func New(contents []Content, surface Surface, factory PageFactory, host Host, opts ...Option) (*Controller, error) {
	c := &Controller{
		surface:   surface,
		host:      host,
		chrome:    DefaultChrome(),
		presented: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.scheduler == nil {
		c.loop = NewLoopScheduler(nil)
		c.scheduler = c.loop
	}
	if c.measure == nil {
		c.measure = approximateTextSize
	}

	pages, err := NewPages(contents, factory, surface)
	if err != nil {
		return nil, err
	}
	c.pages = pages
	c.pager = NewPager(c.pages.Len, c.indicatorChanged, c.pageChanged)

	c.closeCtl = Control{Hidden: !c.chrome.Close.Enabled, Enabled: true}
	c.deleteCtl = Control{Hidden: !c.chrome.Delete.Enabled, Enabled: true}
	c.indicatorCtl = Control{Hidden: !c.chrome.Indicator.Enabled, Enabled: true}

	if c.transition != nil {
		c.transition.Bind(c, surface)
	}

	c.pager.SetCurrentPage(0)
	c.configureLayout(surface.Viewport())

	return c, nil
}

func (c *Controller) indicatorChanged(text string) {
	// size to fit, keeping the origin from the last layout
	size := c.measure(text, c.chrome.Indicator.TextStyle)
	c.layout.IndicatorFrame.W = size.W
	c.layout.IndicatorFrame.H = size.H
}

func (c *Controller) pageChanged(page int) {
	if c.pageDelegate != nil {
		c.pageDelegate.PageChanged(c, page)
	}
}

// Appear records the host's status bar state and hides it if configured
func (c *Controller) Appear() {
	c.statusBarWasHidden = c.host.StatusBarHidden()
	if c.chrome.HideStatusBar {
		c.host.SetStatusBarHidden(true)
	}
}

// Disappear restores the status bar state recorded by Appear
func (c *Controller) Disappear() {
	if c.chrome.HideStatusBar {
		c.host.SetStatusBarHidden(c.statusBarWasHidden)
	}
}

// Resize recomputes all geometry for a new viewport, keeping the current page visible
func (c *Controller) Resize(viewport Size) {
	c.configureLayout(viewport)
}

func (c *Controller) configureLayout(viewport Size) {
	// a drag still snapping lands on its page before the geometry changes
	if s, ok := c.surface.(Snapper); ok && s.FinishSnap() {
		c.GestureSettled()
	}
	c.surface.SetViewport(viewport)

	c.layout = ComputeLayout(LayoutInput{
		Viewport:      viewport,
		PageCount:     c.pages.Len(),
		CurrentPage:   c.pager.CurrentPage(),
		Chrome:        c.chrome,
		IndicatorSize: c.measure(c.pager.IndicatorText(), c.chrome.Indicator.TextStyle),
	})

	c.surface.SetContentSize(c.layout.ContentSize)
	c.surface.SetOffset(c.layout.ScrollOffset, false)

	for i, view := range c.pages.Views() {
		view.SetFrame(c.layout.PageFrames[i])
	}

	debugLog("layout %.0fx%.0f pages=%d current=%d", viewport.W, viewport.H, c.pages.Len(), c.pager.CurrentPage())
}

// GoTo makes page current and moves the surface to it. Out-of-range pages are ignored.
func (c *Controller) GoTo(page int, animated bool) {
	if page < 0 || page >= c.pages.Len() {
		return
	}

	c.pager.SetCurrentPage(page)

	offset := c.surface.Offset()
	offset.X = float64(page) * c.surface.Viewport().W
	c.surface.SetOffset(offset, animated)
}

// Next goes to the following page
func (c *Controller) Next(animated bool) {
	c.GoTo(c.pager.CurrentPage()+1, animated)
}

// Previous goes to the preceding page
func (c *Controller) Previous(animated bool) {
	c.GoTo(c.pager.CurrentPage()-1, animated)
}

// GestureSettled derives the current page from where a user scroll came to rest.
// Each call reassigns the page, so the page delegate hears about every settle.
func (c *Controller) GestureSettled() {
	width := c.surface.Viewport().W
	if width <= 0 {
		return
	}
	c.pager.SetCurrentPage(PageForOffset(c.surface.Offset().X, width))
}

// RequestClose disables the close control, marks the viewer dismissed, tells the
// dismissal delegate and asks the host to dismiss. Only the first call has effect.
func (c *Controller) RequestClose() {
	if !c.presented {
		return
	}

	c.closeCtl.Enabled = false
	c.presented = false

	if c.dismissalDelegate != nil {
		c.dismissalDelegate.WillDismiss(c)
	}
	c.host.Dismiss()
}

// Tick runs deferred work that has come due on the controller's own scheduler
func (c *Controller) Tick() {
	if c.loop != nil {
		c.loop.RunDue()
	}
}

// Dispose cancels deferred work. The controller must not be used afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.settle != nil {
		c.settle.Cancel()
		c.settle = nil
	}
	if c.loop != nil {
		c.loop.Close()
	}
}

// UnmarshalBinary always fails; see ErrArchiveDecode
func (c *Controller) UnmarshalBinary(data []byte) error {
	return ErrArchiveDecode
}

// PageCount returns the number of pages
func (c *Controller) PageCount() int { return c.pages.Len() }

// CurrentPage returns the current page index
func (c *Controller) CurrentPage() int { return c.pager.CurrentPage() }

// SeenLastPage reports whether the last page has ever been shown
func (c *Controller) SeenLastPage() bool { return c.pager.SeenLastPage() }

// IsPresented is false once the close protocol has started
func (c *Controller) IsPresented() bool { return c.presented }

// IndicatorText returns the "current/total" text
func (c *Controller) IndicatorText() string { return c.pager.IndicatorText() }

// Images returns the images of pages built from decoded images
func (c *Controller) Images() []image.Image { return c.pages.Images() }

// ImageLocators returns the locators of pages built from locators
func (c *Controller) ImageLocators() []*url.URL { return c.pages.Locators() }

// Chrome returns the chrome configuration
func (c *Controller) Chrome() ChromeConfig { return c.chrome }

// CloseControl returns the close button state
func (c *Controller) CloseControl() Control { return c.closeCtl }

// DeleteControl returns the delete button state
func (c *Controller) DeleteControl() Control { return c.deleteCtl }

// PageIndicator returns the indicator label state
func (c *Controller) PageIndicator() Control { return c.indicatorCtl }

// Layout returns the most recently computed frames
func (c *Controller) Layout() Layout {
	l := c.layout
	l.PageFrames = append([]Frame(nil), c.layout.PageFrames...)
	return l
}

// Page returns the view at index i
func (c *Controller) Page(i int) (PageView, bool) {
	e, ok := c.pages.At(i)
	return e.View, ok
}

// approximateTextSize is used when no measurer is supplied: a fixed advance per rune
func approximateTextSize(text string, style TextStyle) Size {
	size := style.Size
	if size <= 0 {
		size = 12
	}
	return Size{W: float64(len([]rune(text))) * size * 0.6, H: size * 1.2}
}
