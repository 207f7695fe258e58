package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns keyboard, mouse and touch input into viewer actions
type InputHandler struct {
	inputActions        InputActions
	surface             *pagingSurface
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager

	touchID   ebiten.TouchID
	touching  bool
	touchLast int
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, surface *pagingSurface, km *KeybindingManager, mm *MousebindingManager) *InputHandler {
	settings := mm.GetSettings()
	surface.dragThreshold = float64(settings.DragThreshold)
	surface.dragScale = settings.DragSensitivity

	return &InputHandler{
		inputActions:        inputActions,
		surface:             surface,
		keybindingManager:   km,
		mousebindingManager: mm,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	inputProcessed := false

	// Chrome and drag first so a press on a button never starts a drag
	pointerUsed, pointerChrome := h.handlePointer()
	touchUsed, touchChrome := h.handleTouch()
	inputProcessed = pointerUsed || touchUsed
	chromeHit := pointerChrome || touchChrome

	for _, action := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(action.Name, h.inputActions) {
			inputProcessed = true
			continue
		}
		// A drag in progress owns the wheel and buttons, and a press taken
		// by a chrome control is not a click
		if h.surface.Scrolling() || chromeHit {
			continue
		}
		if h.mousebindingManager.ExecuteAction(action.Name, h.inputActions) {
			inputProcessed = true
		}
	}

	return inputProcessed
}

// pressChrome offers a press to the chrome controls. A press they take also
// clears any half-finished double-click.
func (h *InputHandler) pressChrome(x, y float64) bool {
	if !h.inputActions.PressAt(x, y) {
		return false
	}
	h.mousebindingManager.resetClicks()
	return true
}

// handlePointer reports whether the mouse did anything this frame and whether
// a chrome control took the press
func (h *InputHandler) handlePointer() (bool, bool) {
	settings := h.mousebindingManager.GetSettings()
	if !settings.EnableMouse {
		return false, false
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if h.pressChrome(fx, fy) {
			return true, true
		}
		if settings.EnableDragPage {
			h.surface.BeginDrag(fx)
		}
		return false, false
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if h.surface.Dragging() {
			h.surface.EndDrag(fx)
			return true, false
		}
	case h.surface.Dragging():
		h.surface.DragTo(fx)
		return true, false
	}
	return false, false
}

func (h *InputHandler) handleTouch() (bool, bool) {
	if !h.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return false, false
		}
		h.touchID = ids[0]
		x, y := ebiten.TouchPosition(h.touchID)
		if h.pressChrome(float64(x), float64(y)) {
			return true, true
		}
		h.touching = true
		h.touchLast = x
		h.surface.BeginDrag(float64(x))
		return true, false
	}

	if inpututil.IsTouchJustReleased(h.touchID) {
		h.touching = false
		h.surface.EndDrag(float64(h.touchLast))
		return true, false
	}

	x, _ := ebiten.TouchPosition(h.touchID)
	h.touchLast = x
	h.surface.DragTo(float64(x))
	return true, false
}
