package main

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"lightbox/viewer"
)

// Global font source shared by the renderer, the text measurer and error images
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

func newFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

// MeasureText sizes a chrome label. It is the viewer's text measurer.
func MeasureText(s string, style viewer.TextStyle) viewer.Size {
	if globalFontSource == nil {
		return viewer.Size{}
	}
	face := newFace(style.Size)
	w, h := text.Measure(s, face, style.Size*1.2)
	return viewer.Size{W: w, H: h}
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawCenteredText draws text centered in a frame, scaled by alpha
func DrawCenteredText(screen *ebiten.Image, s string, style viewer.TextStyle, frame viewer.Frame, alpha float32) {
	face := newFace(style.Size)
	w, h := text.Measure(s, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(frame.X+(frame.W-w)/2, frame.Y+(frame.H-h)/2)
	op.ColorScale.ScaleWithColor(style.Color)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, s, face, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

func drawBorder(img *ebiten.Image, width, height int) {
	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(img, 0, 0, float64(width), 3, white)
	DrawFilledRect(img, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(img, 0, 0, 3, float64(height), white)
	DrawFilledRect(img, float64(width-3), 0, 3, float64(height), white)
}

// CreateErrorImage creates an error placeholder image with page name and error message
func CreateErrorImage(width, height int, name, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background
	drawBorder(errorImg, width, height)

	if globalFontSource == nil {
		return errorImg
	}

	fileText := "Page: " + name
	reasonText := "Reason: " + errorMsg

	// Truncate long text to fit within image bounds
	maxChars := (width - 20) / 10 // Rough estimate: 10px per character
	fileText = truncateRunes(fileText, maxChars)
	reasonText = truncateRunes(reasonText, maxChars)

	errorFont := newFace(20)
	white := color.RGBA{255, 255, 255, 255}
	DrawText(errorImg, "ERROR", errorFont, 10, 30, white)
	DrawText(errorImg, fileText, errorFont, 10, 60, white)
	DrawText(errorImg, reasonText, errorFont, 10, 90, white)

	return errorImg
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
