package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// recordingActions is an InputActions with a single chrome hit box
type recordingActions struct {
	chrome  viewer.Frame
	presses int
	closes  int
	toggles int
}

func (a *recordingActions) Close()            { a.closes++ }
func (a *recordingActions) DeleteCurrent()    {}
func (a *recordingActions) ToggleHelp()       {}
func (a *recordingActions) ToggleInfo()       {}
func (a *recordingActions) ToggleFullscreen() { a.toggles++ }
func (a *recordingActions) NavigateNext()     {}
func (a *recordingActions) NavigatePrevious() {}
func (a *recordingActions) JumpToPage(int)    {}

func (a *recordingActions) PressAt(x, y float64) bool {
	if !a.chrome.Contains(viewer.Point{X: x, Y: y}) {
		return false
	}
	a.presses++
	a.Close()
	return true
}

func (a *recordingActions) GetTotalPagesCount() int { return 3 }

func TestChromePressIsNotAClick(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		wantChrome bool
		wantDouble bool
	}{
		{"Press on chrome", 20, 20, true, false},
		{"Press on page", 300, 300, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Unix(0, 0)
			mm := NewMousebindingManager(GetDefaultMousebindings(), GetDefaultMouseSettings())
			mm.now = func() time.Time { return now }
			actions := &recordingActions{chrome: viewer.Frame{X: 10, Y: 10, W: 60, H: 25}}
			surface := newPagingSurface(viewer.Size{W: 800, H: 600}, nil)
			h := NewInputHandler(actions, surface, NewKeybindingManager(GetDefaultKeybindings()), mm)

			// a click on the page, then a quick second press
			mm.registerClick(ebiten.MouseButtonLeft)
			now = now.Add(100 * time.Millisecond)

			if got := h.pressChrome(tt.x, tt.y); got != tt.wantChrome {
				t.Fatalf("pressChrome = %t, want %t", got, tt.wantChrome)
			}
			if tt.wantChrome && actions.closes != 1 {
				t.Errorf("Expected the chrome control to run once, got %d", actions.closes)
			}

			now = now.Add(100 * time.Millisecond)
			if got := mm.registerClick(ebiten.MouseButtonLeft); got != tt.wantDouble {
				t.Errorf("registerClick after press = %t, want %t", got, tt.wantDouble)
			}
		})
	}
}

func TestRepeatedChromePressesNeverDoubleClick(t *testing.T) {
	now := time.Unix(0, 0)
	mm := NewMousebindingManager(GetDefaultMousebindings(), GetDefaultMouseSettings())
	mm.now = func() time.Time { return now }
	actions := &recordingActions{chrome: viewer.Frame{X: 10, Y: 10, W: 70, H: 25}}
	h := NewInputHandler(actions, newPagingSurface(viewer.Size{W: 800, H: 600}, nil),
		NewKeybindingManager(GetDefaultKeybindings()), mm)

	for i := 0; i < 3; i++ {
		if !h.pressChrome(30, 20) {
			t.Fatalf("Press %d missed the chrome", i)
		}
		now = now.Add(50 * time.Millisecond)
	}
	if actions.presses != 3 {
		t.Errorf("Expected 3 chrome presses, got %d", actions.presses)
	}
	if mm.registerClick(ebiten.MouseButtonLeft) {
		t.Error("First page click after chrome presses completed a double-click")
	}
	if actions.toggles != 0 {
		t.Errorf("Fullscreen toggled %d times", actions.toggles)
	}
}
