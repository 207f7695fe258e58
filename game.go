package main

import (
	"image"
	"net/url"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// Game is the ebiten game hosting one lightbox controller. It is also the
// viewer.Host, the RenderState and the InputActions.
type Game struct {
	config       Config
	configStatus ConfigLoadResult

	controller *viewer.Controller
	surface    *pagingSurface
	images     *ImageManager
	transition *fadeTransition

	renderer     *Renderer
	inputHandler *InputHandler

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager

	fullscreen         bool
	showHelp           bool
	showInfo           bool
	overlayMessage     string
	overlayMessageTime time.Time

	appeared  bool
	dismissed bool
	finished  bool
	lastPage  int

	viewportW, viewportH int
	savedWinW, savedWinH int

	// decoded names the pages that were decoded before the viewer started
	decoded map[image.Image]string
	// kept is filled when the viewer is dismissed
	kept []string
}

func (g *Game) Update() error {
	if !g.appeared {
		g.appeared = true
		g.controller.Appear()
	}

	g.surface.Update()
	g.controller.Tick()
	g.transition.Update()

	if g.finished {
		g.controller.Disappear()
		g.controller.Dispose()
		g.images.Stop()
		return ebiten.Termination
	}

	if !g.dismissed {
		g.inputHandler.HandleInput()
	}

	if !g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewportW || outsideHeight != g.viewportH {
		g.viewportW, g.viewportH = outsideWidth, outsideHeight
		g.controller.Resize(viewer.Size{W: float64(outsideWidth), H: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Host

func (g *Game) Dismiss() {
	g.dismissed = true
	g.transition.FadeOut(func() { g.finished = true })
}

func (g *Game) StatusBarHidden() bool {
	return !ebiten.IsWindowDecorated()
}

func (g *Game) SetStatusBarHidden(hidden bool) {
	ebiten.SetWindowDecorated(!hidden)
}

// Delegates

func (g *Game) pageChanged(c *viewer.Controller, page int) {
	direction := NavigationJump
	switch page - g.lastPage {
	case 1:
		direction = NavigationForward
	case -1:
		direction = NavigationBackward
	}
	g.lastPage = page

	g.images.StartPreload(pageLocators(c), page, direction)
	debugLog("Page %s", c.IndicatorText())
}

// pageLocators returns the locator of every page by index, nil for image-backed pages
func pageLocators(c *viewer.Controller) []*url.URL {
	locators := make([]*url.URL, c.PageCount())
	for i := range locators {
		if v, ok := c.Page(i); ok {
			locators[i] = v.Locator()
		}
	}
	return locators
}

// keptPages lists the pages still in the viewer, in order
func (g *Game) keptPages(c *viewer.Controller) []string {
	var kept []string
	for i := 0; i < c.PageCount(); i++ {
		v, _ := c.Page(i)
		if u := v.Locator(); u != nil {
			kept = append(kept, displayPath(u))
		} else if name, ok := g.decoded[v.Image()]; ok {
			kept = append(kept, name)
		}
	}
	return kept
}

func (g *Game) willDismiss(c *viewer.Controller) {
	g.kept = g.keptPages(c)
	g.saveCurrentWindowSize()
}

func (g *Game) saveCurrentWindowSize() {
	w, h := g.savedWinW, g.savedWinH
	if w < minWidth || h < minHeight {
		return
	}
	g.config.WindowWidth = w
	g.config.WindowHeight = h
	saveConfig(g.config)
}

// InputActions

func (g *Game) Close() {
	g.controller.RequestClose()
}

// DeleteCurrent removes the current page. Bindings obey the chrome: with the
// delete button configured off, nothing is deleted.
func (g *Game) DeleteCurrent() {
	if g.controller.DeleteControl().Hidden || g.controller.Deleting() {
		return
	}
	before := g.controller.PageCount()
	g.controller.RequestDelete()
	if g.controller.PageCount() < before {
		g.ShowOverlayMessage("Page removed")
	}
}

func (g *Game) NavigateNext() {
	g.controller.Next(true)
}

func (g *Game) NavigatePrevious() {
	g.controller.Previous(true)
}

// JumpToPage goes to a 1-based page number
func (g *Game) JumpToPage(page int) {
	g.controller.GoTo(page-1, true)
}

func (g *Game) ToggleFullscreen() {
	if !g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
	}
	g.fullscreen = !g.fullscreen
	ebiten.SetFullscreen(g.fullscreen)
	if !g.fullscreen && g.savedWinW > 0 && g.savedWinH > 0 {
		ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
	}
}

func (g *Game) ToggleInfo() { g.showInfo = !g.showInfo }

func (g *Game) ToggleHelp() { g.showHelp = !g.showHelp }

// PressAt runs the chrome control under (x, y), if any
func (g *Game) PressAt(x, y float64) bool {
	p := viewer.Point{X: x, Y: y}
	layout := g.controller.Layout()

	if ctl := g.controller.CloseControl(); !ctl.Hidden && layout.CloseFrame.Contains(p) {
		if ctl.Enabled {
			g.Close()
		}
		return true
	}
	if ctl := g.controller.DeleteControl(); !ctl.Hidden && layout.DeleteFrame.Contains(p) {
		if ctl.Enabled {
			g.DeleteCurrent()
		}
		return true
	}
	return false
}

func (g *Game) GetTotalPagesCount() int { return g.controller.PageCount() }

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

// RenderState

func (g *Game) VisiblePages() []RenderPage {
	var pages []RenderPage
	for _, v := range g.surface.VisibleViews() {
		pv, ok := v.(*pageView)
		if !ok {
			continue
		}
		pages = append(pages, RenderPage{
			Frame: pv.Frame(),
			Image: pv.EbitenImage(),
			Name:  pv.Name(),
		})
	}
	return pages
}

func (g *Game) GetOffset() viewer.Point { return g.surface.Offset() }

func (g *Game) GetLayout() viewer.Layout { return g.controller.Layout() }

func (g *Game) GetChrome() viewer.ChromeConfig { return g.controller.Chrome() }

func (g *Game) GetCloseControl() viewer.Control { return g.controller.CloseControl() }

func (g *Game) GetDeleteControl() viewer.Control { return g.controller.DeleteControl() }

func (g *Game) GetPageIndicator() viewer.Control { return g.controller.PageIndicator() }

func (g *Game) GetIndicatorText() string { return g.controller.IndicatorText() }

func (g *Game) GetAlpha() float64 { return g.transition.Alpha() }

func (g *Game) IsFullscreen() bool { return g.fullscreen }

func (g *Game) IsShowingHelp() bool { return g.showHelp }

func (g *Game) IsShowingInfo() bool { return g.showInfo }

func (g *Game) GetOverlayMessage() string { return g.overlayMessage }

func (g *Game) GetOverlayMessageTime() time.Time { return g.overlayMessageTime }

func (g *Game) GetCurrentPageInfo() PageInfo {
	info := PageInfo{
		Bytes:     -1,
		CacheLen:  g.images.CacheLen(),
		Stats:     g.images.GetStats(),
		SeenLast:  g.controller.SeenLastPage(),
		Remaining: g.controller.PageCount(),
	}

	v, ok := g.controller.Page(g.controller.CurrentPage())
	if !ok {
		return info
	}
	if pv, ok := v.(*pageView); ok {
		info.Name = pv.Name()
	}
	if u := v.Locator(); u != nil {
		info.Path = displayPath(u)
		info.Bytes = g.images.Size(u)
	}
	if img := v.Image(); img != nil {
		b := img.Bounds()
		info.Width, info.Height = b.Dx(), b.Dy()
	}
	return info
}

func (g *Game) GetFontSize() float64 { return g.config.HelpFontSize }

func (g *Game) GetConfigStatus() ConfigLoadResult { return g.configStatus }

func (g *Game) GetKeybindings() map[string][]string { return g.keybindingManager.GetKeybindings() }

func (g *Game) GetMousebindings() map[string][]string { return g.mousebindingManager.GetMousebindings() }
