package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderPage is one page the renderer should draw this frame
type RenderPage struct {
	Frame viewer.Frame
	Image *ebiten.Image // nil while a remote page is still loading
	Name  string
}

// PageInfo describes the current page for the info overlay
type PageInfo struct {
	Name      string
	Path      string
	Bytes     int64 // -1 when unknown
	Width     int
	Height    int
	CacheLen  int
	Stats     PreloadStats
	SeenLast  bool
	Remaining int
}

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Pages and chrome
	VisiblePages() []RenderPage
	GetOffset() viewer.Point
	GetLayout() viewer.Layout
	GetChrome() viewer.ChromeConfig
	GetCloseControl() viewer.Control
	GetDeleteControl() viewer.Control
	GetPageIndicator() viewer.Control
	GetIndicatorText() string
	GetAlpha() float64

	// UI state
	IsFullscreen() bool
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentPageInfo() PageInfo
	GetTotalPagesCount() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Chrome
	Close()
	DeleteCurrent()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToPage(page int)

	// Pointer
	PressAt(x, y float64) bool // true when a chrome control took the press

	// Common data access
	GetTotalPagesCount() int
}
