package main

import (
	"time"

	"lightbox/viewer"
)

// fadeTransition fades the viewer in when it is presented and out when it is
// dismissed. The controller binds it; the game asks it for the current alpha.
type fadeTransition struct {
	duration time.Duration
	now      func() time.Time

	controller *viewer.Controller
	surface    viewer.Surface

	start  time.Time
	out    bool
	onDone func()
}

func newFadeTransition(duration time.Duration, now func() time.Time) *fadeTransition {
	if now == nil {
		now = time.Now
	}
	return &fadeTransition{duration: duration, now: now}
}

// Bind records the controller and surface and starts the fade-in
func (t *fadeTransition) Bind(c *viewer.Controller, surface viewer.Surface) {
	t.controller = c
	t.surface = surface
	t.start = t.now()
	debugLog("Fade in over %v for %d pages", t.duration, c.PageCount())
}

// FadeOut starts the dismiss fade; done runs from Update once it completes
func (t *fadeTransition) FadeOut(done func()) {
	if t.out {
		return
	}
	t.out = true
	t.start = t.now()
	t.onDone = done
}

// Alpha is the current opacity of the whole viewer
func (t *fadeTransition) Alpha() float64 {
	p := t.progress()
	if t.out {
		return 1 - p
	}
	return p
}

func (t *fadeTransition) progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.now().Sub(t.start)) / float64(t.duration)
	return clampFloat(p, 0, 1)
}

// Update runs the dismiss callback once the fade-out has finished
func (t *fadeTransition) Update() {
	if t.out && t.onDone != nil && t.progress() >= 1 {
		done := t.onDone
		t.onDone = nil
		done()
	}
}
