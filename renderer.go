package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"lightbox/viewer"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
	bgColorButton = color.RGBA{40, 40, 40, 200}
)

const (
	helpPadding    = 40.0
	minHelpFont    = 12.0
	maxWarningRows = 2
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer. InitGraphics must have been called.
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	offset := r.renderState.GetOffset()
	for _, page := range r.renderState.VisiblePages() {
		frame := page.Frame
		frame.X -= offset.X
		frame.Y -= offset.Y
		if page.Image == nil {
			r.drawLoading(screen, frame, page.Name)
			continue
		}
		r.drawPage(screen, page.Image, frame)
	}

	r.drawChrome(screen)

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}
	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}
	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}

	// Fade is drawn as a black veil over everything
	if a := r.renderState.GetAlpha(); a < 1 {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		DrawFilledRect(screen, 0, 0, float64(w), float64(h), color.RGBA{0, 0, 0, uint8((1 - a) * 255)})
	}
}

// drawPage draws img fit into frame, centered. Small images are not scaled up
// unless the viewer is fullscreen.
func (r *Renderer) drawPage(screen, img *ebiten.Image, frame viewer.Frame) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 || frame.W <= 0 || frame.H <= 0 {
		return
	}

	scale := calculateFitScale(iw, ih, frame.W, frame.H, r.renderState.IsFullscreen())

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(frame.X+(frame.W-iw*scale)/2, frame.Y+(frame.H-ih*scale)/2)
	screen.DrawImage(img, op)
}

// calculateFitScale returns the scale that fits an image into a region
func calculateFitScale(iw, ih, maxW, maxH float64, upscale bool) float64 {
	scale := math.Min(maxW/iw, maxH/ih)
	if !upscale && scale > 1 {
		return 1
	}
	return scale
}

func (r *Renderer) drawLoading(screen *ebiten.Image, frame viewer.Frame, name string) {
	style := viewer.TextStyle{Color: colorGray, Size: r.renderState.GetFontSize()}
	DrawCenteredText(screen, "Loading "+name+"...", style, frame, 1)
}

func (r *Renderer) drawChrome(screen *ebiten.Image) {
	chrome := r.renderState.GetChrome()
	layout := r.renderState.GetLayout()

	if ctl := r.renderState.GetCloseControl(); !ctl.Hidden {
		c := chrome.Close
		r.drawButton(screen, layout.CloseFrame, c.Text, c.TextStyle, c.Image, 1, ctl.Enabled)
	}
	if ctl := r.renderState.GetDeleteControl(); !ctl.Hidden {
		d := chrome.Delete
		r.drawButton(screen, layout.DeleteFrame, d.Text, d.TextStyle, d.Image, d.Opacity, ctl.Enabled)
	}
	if ctl := r.renderState.GetPageIndicator(); !ctl.Hidden && r.renderState.GetTotalPagesCount() > 0 {
		f := layout.IndicatorFrame
		style := chrome.Indicator.TextStyle
		DrawText(screen, r.renderState.GetIndicatorText(), newFace(style.Size), f.X, f.Y, style.Color)
	}
}

func (r *Renderer) drawButton(screen *ebiten.Image, frame viewer.Frame, label string, style viewer.TextStyle, img image.Image, opacity float64, enabled bool) {
	alpha := float32(opacity)
	if !enabled {
		alpha *= 0.4
	}

	if bg, ok := img.(*ebiten.Image); ok && bg != nil {
		op := &ebiten.DrawImageOptions{}
		b := bg.Bounds()
		op.GeoM.Scale(frame.W/float64(b.Dx()), frame.H/float64(b.Dy()))
		op.GeoM.Translate(frame.X, frame.Y)
		op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(bg, op)
	} else {
		bgc := bgColorButton
		bgc.A = uint8(float32(bgc.A) * alpha)
		DrawFilledRect(screen, frame.X, frame.Y, frame.W, frame.H, bgc)
	}

	if label != "" {
		DrawCenteredText(screen, label, style, frame, alpha)
	}
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	infoFont := newFace(r.renderState.GetFontSize() * 0.75)
	lines := r.buildInfoLines()

	lineHeight := r.renderState.GetFontSize() * 0.75 * 1.4
	maxWidth := 0.0
	for _, line := range lines {
		w, _ := text.Measure(line, infoFont, 0)
		maxWidth = math.Max(maxWidth, w)
	}

	// Bottom right corner
	padding := 10.0
	boxW := maxWidth + padding*2
	boxH := float64(len(lines))*lineHeight + padding*2
	boxX := float64(screen.Bounds().Dx()) - boxW - padding
	boxY := float64(screen.Bounds().Dy()) - boxH - padding

	DrawFilledRect(screen, boxX, boxY, boxW, boxH, bgColorLight)
	for i, line := range lines {
		DrawText(screen, line, infoFont, boxX+padding, boxY+padding+float64(i)*lineHeight, colorWhite)
	}
}

func (r *Renderer) buildInfoLines() []string {
	info := r.renderState.GetCurrentPageInfo()

	lines := []string{fmt.Sprintf("%s  %s", r.renderState.GetIndicatorText(), info.Name)}
	if info.Path != "" {
		lines = append(lines, info.Path)
	}

	var details []string
	if info.Width > 0 {
		details = append(details, fmt.Sprintf("%dx%d", info.Width, info.Height))
	}
	if info.Bytes >= 0 {
		details = append(details, humanize.Bytes(uint64(info.Bytes)))
	}
	if len(details) > 0 {
		lines = append(lines, strings.Join(details, "  "))
	}

	lines = append(lines, fmt.Sprintf("%d pages  cache %d  loaded %s  failed %s",
		info.Remaining, info.CacheLen, humanize.Comma(int64(info.Stats.LoadedCount)), humanize.Comma(int64(info.Stats.FailedCount))))
	if info.SeenLast {
		lines = append(lines, "last page seen")
	}
	return lines
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := newFace(r.renderState.GetFontSize())
	message := r.renderState.GetOverlayMessage()
	textWidth, textHeight := text.Measure(message, messageFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}

// helpRow is one line of the bindings table
type helpRow struct {
	action, keys, mouse, description string
}

func (r *Renderer) helpRows() []helpRow {
	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	actionSet := make(map[string]bool)
	for action := range keybindings {
		actionSet[action] = true
	}
	for action := range mousebindings {
		actionSet[action] = true
	}
	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	var rows []helpRow
	for _, action := range actions {
		keys, mouse := keybindings[action], mousebindings[action]
		if len(keys) == 0 && len(mouse) == 0 {
			continue
		}
		desc := descriptions[action]
		if desc == "" {
			desc = "No description available"
		}
		rows = append(rows, helpRow{action, strings.Join(keys, ", "), strings.Join(mouse, ", "), desc})
	}
	return rows
}

func (r *Renderer) helpWarnings() []string {
	var warnings []string
	for i, warning := range r.renderState.GetConfigStatus().Warnings {
		if i >= maxWarningRows {
			break
		}
		warnings = append(warnings, "• "+truncateRunes(warning, 50))
	}
	return warnings
}

// helpColumns measures the table columns at one font size
type helpColumns struct {
	action, input, description float64
}

func measureHelpColumns(rows []helpRow, face *text.GoTextFace) helpColumns {
	var cols helpColumns
	for _, row := range rows {
		w, _ := text.Measure(row.action, face, 0)
		cols.action = math.Max(cols.action, w)

		w, _ = text.Measure(joinInputs(row), face, 0)
		cols.input = math.Max(cols.input, w)

		w, _ = text.Measure(row.description, face, 0)
		cols.description = math.Max(cols.description, w)
	}
	return cols
}

func joinInputs(row helpRow) string {
	var parts []string
	if row.keys != "" {
		parts = append(parts, row.keys)
	}
	if row.mouse != "" {
		parts = append(parts, row.mouse)
	}
	return strings.Join(parts, " | ")
}

// helpSize returns the width and height the help overlay needs at fontSize
func (r *Renderer) helpSize(rows []helpRow, warnings []string, fontSize float64) (float64, float64) {
	face := newFace(fontSize)
	lineHeight := fontSize * 1.5

	height := helpPadding*2 + fontSize*2 + lineHeight*1.5
	height += float64(len(rows)) * lineHeight
	height += lineHeight * 3 // spacing, "System:", status
	height += float64(len(warnings)) * lineHeight

	cols := measureHelpColumns(rows, face)
	width := 40 + cols.action + 20 + 30 + 20 + cols.input + 20 + cols.description + helpPadding

	for _, s := range append([]string{"Controls (Keyboard | Mouse):", r.statusText()}, warnings...) {
		w, _ := text.Measure(s, face, 0)
		width = math.Max(width, w+helpPadding*2+80)
	}
	return width, height
}

func (r *Renderer) statusText() string {
	return fmt.Sprintf("Config Status: %s", r.renderState.GetConfigStatus().Status)
}

// calculateOptimalFontSize finds the largest font size that fits within the given dimensions
func (r *Renderer) calculateOptimalFontSize(rows []helpRow, warnings []string, availableWidth, availableHeight float64) (float64, bool) {
	fits := func(size float64) bool {
		w, h := r.helpSize(rows, warnings, size)
		return w <= availableWidth && h <= availableHeight
	}

	maxFontSize := r.renderState.GetFontSize()
	if !fits(minHelpFont) {
		return minHelpFont, false
	}
	if fits(maxFontSize) {
		return maxFontSize, true
	}

	low, high := minHelpFont, maxFontSize
	for high-low > 0.5 {
		mid := (low + high) / 2
		if fits(mid) {
			low = mid
		} else {
			high = mid
		}
	}
	return low, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	rows := r.helpRows()
	warnings := r.helpWarnings()

	fontSize, canFit := r.calculateOptimalFontSize(rows, warnings, w-helpPadding*2, h-helpPadding*2)
	if !canFit {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, helpPadding, helpPadding, w-helpPadding*2, h-helpPadding*2, bgColorMedium)

	face := newFace(fontSize)
	lineHeight := fontSize * 1.5
	left := helpPadding + 20

	y := helpPadding + 30
	DrawText(screen, "HELP:", face, left, y, colorWhite)
	y += fontSize * 2
	DrawText(screen, "Controls (Keyboard | Mouse):", face, left, y, colorWhite)
	y += lineHeight * 1.5

	cols := measureHelpColumns(rows, face)
	actionX := helpPadding + 40
	arrowX := actionX + cols.action + 20
	inputX := arrowX + 30
	descX := inputX + cols.input + 20

	for _, row := range rows {
		DrawText(screen, row.action, face, actionX, y, colorLightBlue)
		DrawText(screen, "→", face, arrowX, y, colorWhite)

		x := inputX
		if row.keys != "" {
			DrawText(screen, row.keys, face, x, y, colorYellow)
			kw, _ := text.Measure(row.keys, face, 0)
			x += kw
		}
		if row.keys != "" && row.mouse != "" {
			DrawText(screen, " | ", face, x, y, colorWhite)
			sw, _ := text.Measure(" | ", face, 0)
			x += sw
		}
		if row.mouse != "" {
			DrawText(screen, row.mouse, face, x, y, colorCyan)
		}

		DrawText(screen, row.description, face, descX, y, colorGray)
		y += lineHeight
	}

	y += lineHeight
	DrawText(screen, "System:", face, left, y, colorWhite)
	y += lineHeight

	status := r.renderState.GetConfigStatus().Status
	statusColor := colorGreen
	if status == "Warning" || status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, r.statusText(), face, helpPadding+40, y, statusColor)
	y += lineHeight

	for _, warning := range warnings {
		DrawText(screen, warning, face, helpPadding+40, y, colorLightRed)
		y += lineHeight
	}
}

// drawMarginTooSmallMessage is shown when help cannot fit the window
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	face := newFace(16)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	mw, mh := text.Measure(message, face, 0)
	sw, _ := text.Measure(subtitle, face, 0)

	DrawText(screen, message, face, w/2-mw/2, h/2-mh/2, colorWhite)
	DrawText(screen, subtitle, face, w/2-sw/2, h/2+mh/2+10, colorGray)
}
