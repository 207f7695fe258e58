package viewer

import (
	"image"
	"image/color"
)

// TextStyle describes how a chrome label is drawn
type TextStyle struct {
	Color color.RGBA
	Size  float64
}

// CloseControl configures the close button
type CloseControl struct {
	Enabled   bool
	Text      string
	TextStyle TextStyle
	Image     image.Image // optional background image
	Size      Size
}

// DeleteControl configures the delete button
type DeleteControl struct {
	Enabled   bool
	Text      string
	TextStyle TextStyle
	Image     image.Image // optional background image
	Size      Size
	Opacity   float64
}

// PageIndicator configures the "current/total" label
type PageIndicator struct {
	Enabled   bool
	TextStyle TextStyle
}

// ChromeConfig is the immutable appearance of the controls overlaid on the pages
type ChromeConfig struct {
	Close         CloseControl
	Delete        DeleteControl
	Indicator     PageIndicator
	HideStatusBar bool
}

// DefaultChrome returns the stock chrome configuration
func DefaultChrome() ChromeConfig {
	white := color.RGBA{255, 255, 255, 255}
	return ChromeConfig{
		Close: CloseControl{
			Enabled:   true,
			Text:      "Close",
			TextStyle: TextStyle{Color: white, Size: 16},
			Size:      Size{W: 60, H: 25},
		},
		Delete: DeleteControl{
			Enabled:   true,
			Text:      "Delete",
			TextStyle: TextStyle{Color: color.RGBA{208, 2, 27, 255}, Size: 16},
			Size:      Size{W: 70, H: 25},
			Opacity:   0.5,
		},
		Indicator: PageIndicator{
			Enabled:   true,
			TextStyle: TextStyle{Color: white, Size: 12},
		},
		HideStatusBar: true,
	}
}

// Control is the runtime state of one chrome element
type Control struct {
	Hidden  bool
	Enabled bool
}
