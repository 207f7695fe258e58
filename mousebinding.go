package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	DragThreshold    int     `json:"drag_threshold"`    // pixels
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
	EnableDragPage   bool    `json:"enable_drag_page"` // drag to scroll between pages
	DragSensitivity  float64 `json:"drag_sensitivity"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		DragThreshold:    5,
		EnableMouse:      true,
		WheelInverted:    false,
		EnableDragPage:   true,
		DragSensitivity:  1.0,
	}
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaX   float64
	WheelDeltaY   float64
	IsDoubleClick bool
	modifiers
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings      map[string][]string
	parsed             map[string][]MouseCombination
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
	now                func() time.Time
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		mousebindings: mousebindings,
		parsed:        make(map[string][]MouseCombination),
		settings:      settings,
		now:           time.Now,
	}
	for action, mouseStrs := range mousebindings {
		for _, mouseStr := range mouseStrs {
			if combination, ok := parseMouseString(mouseStr); ok {
				mm.parsed[action] = append(mm.parsed[action], combination)
			}
		}
	}
	return mm
}

// getMouseMapping returns a mapping from string mouse actions to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"LeftClick":   ebiten.MouseButtonLeft,
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3, // Back button (side button)
		"Forward":     ebiten.MouseButton4, // Forward button (side button)
	}
}

// parseMouseString parses a mouse string like "Shift+LeftClick" or "WheelUp" into a MouseCombination
func parseMouseString(mouseStr string) (MouseCombination, bool) {
	if mouseStr == "" {
		return MouseCombination{}, false
	}
	parts := strings.Split(mouseStr, "+")
	for _, p := range parts[:len(parts)-1] {
		if !isModifier(p) {
			return MouseCombination{}, false
		}
	}

	combination := MouseCombination{modifiers: parseModifiers(parts[:len(parts)-1])}
	actionName := parts[len(parts)-1]

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		case "WheelLeft":
			combination.WheelDeltaX = -1.0
		case "WheelRight":
			combination.WheelDeltaX = 1.0
		default:
			return MouseCombination{}, false
		}
	case strings.HasPrefix(actionName, "Double"):
		combination.IsDoubleClick = true
		button, exists := getMouseMapping()[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return MouseCombination{}, false
		}
		combination.Button = button
	default:
		button, exists := getMouseMapping()[actionName]
		if !exists {
			return MouseCombination{}, false
		}
		combination.Button = button
	}

	return combination, true
}

// isMouseActionTriggered checks if a mouse combination is currently being triggered
func (mm *MousebindingManager) isMouseActionTriggered(combination MouseCombination) bool {
	if !mm.settings.EnableMouse || !combination.matches() {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		return wheelMatches(combination, wheelX*mm.settings.WheelSensitivity, wheelY*mm.settings.WheelSensitivity)
	}

	if combination.IsDoubleClick {
		if !inpututil.IsMouseButtonJustPressed(combination.Button) {
			return false
		}
		return mm.registerClick(combination.Button)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

func wheelMatches(combination MouseCombination, wheelX, wheelY float64) bool {
	if combination.WheelDeltaX != 0 {
		return (combination.WheelDeltaX > 0 && wheelX > 0) || (combination.WheelDeltaX < 0 && wheelX < 0)
	}
	if combination.WheelDeltaY != 0 {
		return (combination.WheelDeltaY > 0 && wheelY > 0) || (combination.WheelDeltaY < 0 && wheelY < 0)
	}
	return false
}

// registerClick records a press of button and reports whether it completes a double-click
func (mm *MousebindingManager) registerClick(button ebiten.MouseButton) bool {
	now := mm.now()
	t := &mm.doubleClickTracker
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond

	if t.clickCount > 0 && t.lastClickButton == button && now.Sub(t.lastClickTime) <= window {
		t.clickCount = 0
		t.lastClickTime = now
		return true
	}

	t.clickCount = 1
	t.lastClickButton = button
	t.lastClickTime = now
	return false
}

// resetClicks forgets the last click so the next one cannot complete a double-click
func (mm *MousebindingManager) resetClicks() {
	mm.doubleClickTracker = DoubleClickTracker{}
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, combination := range mm.parsed[action] {
		if mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !mm.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
