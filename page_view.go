package main

import (
	"image"
	"net/url"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// pageView is the desktop view of one page. Image-backed pages are uploaded to
// the GPU on first draw; locator-backed pages go through the ImageManager.
type pageView struct {
	content viewer.Content
	frame   viewer.Frame
	images  *ImageManager

	uploaded *ebiten.Image
}

func (v *pageView) SetFrame(frame viewer.Frame) { v.frame = frame }

func (v *pageView) Frame() viewer.Frame { return v.frame }

func (v *pageView) Image() image.Image {
	if img := v.content.Image(); img != nil {
		return img
	}
	if u := v.content.Locator(); u != nil && v.images != nil {
		if img, ok := v.images.Cached(u); ok && img != nil {
			return img
		}
	}
	return nil
}

func (v *pageView) Locator() *url.URL { return v.content.Locator() }

// Name is the label shown in the info overlay and on error placeholders
func (v *pageView) Name() string {
	if u := v.content.Locator(); u != nil {
		return displayName(u)
	}
	return "(in memory)"
}

// EbitenImage returns the drawable image, or nil while it is still loading
func (v *pageView) EbitenImage() *ebiten.Image {
	if img := v.content.Image(); img != nil {
		if v.uploaded == nil {
			if e, ok := img.(*ebiten.Image); ok {
				v.uploaded = e
			} else {
				v.uploaded = ebiten.NewImageFromImage(img)
			}
		}
		return v.uploaded
	}

	img, _ := v.images.GetImage(v.content.Locator())
	return img
}

// pageFactory builds pageViews that share one ImageManager
type pageFactory struct {
	images *ImageManager
}

func (f pageFactory) NewPage(content viewer.Content) viewer.PageView {
	return &pageView{content: content, images: f.images}
}
