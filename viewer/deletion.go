package viewer

import "time"

// SettleDelay matches the page-change animation so the surface finishes moving
// before geometry is rebuilt around one fewer page.
const SettleDelay = 500 * time.Millisecond

type deletionState int

const (
	deletionIdle deletionState = iota
	deletionNavigating
	deletionRemoving
	deletionSettling
	deletionClosing
)

func (s deletionState) String() string {
	switch s {
	case deletionIdle:
		return "idle"
	case deletionNavigating:
		return "navigating"
	case deletionRemoving:
		return "removing"
	case deletionSettling:
		return "settling"
	case deletionClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Deleting reports whether a delete request is still in progress
func (c *Controller) Deleting() bool {
	return c.deletion != deletionIdle
}

// RequestDelete removes the current page.
//
// The surface first animates away from the page, the index is then stepped
// back by one, the entry is removed, and after SettleDelay the layout is
// rebuilt and the index resynchronised from the surface offset. The delete
// control stays disabled until then. Deleting the only page closes the viewer.
func (c *Controller) RequestDelete() {
	if c.disposed || c.deletion != deletionIdle || !c.deleteCtl.Enabled {
		return
	}
	c.deleteCtl.Enabled = false

	n := c.pages.Len()
	if n == 0 {
		c.deleteCtl.Enabled = true
		return
	}

	if n == 1 {
		c.setDeletion(deletionClosing)
		c.pages.Clear()
		c.RequestClose()
		return
	}

	c.setDeletion(deletionNavigating)
	removed := c.pager.CurrentPage()
	if removed == n-1 {
		c.Previous(true)
	} else {
		c.Next(true)
	}

	// Stepped back on top of the navigation above. For a last-page delete this
	// lands one page behind the surface; finishDelete relays out from the index
	// and resyncs, so both end up on the same page.
	c.pager.SetCurrentPage(c.pager.CurrentPage() - 1)

	c.setDeletion(deletionRemoving)
	c.pages.RemoveAt(removed)

	c.setDeletion(deletionSettling)
	c.settle = c.scheduler.After(SettleDelay, c.finishDelete)
}

func (c *Controller) finishDelete() {
	c.settle = nil
	if c.disposed {
		return
	}

	c.configureLayout(c.surface.Viewport())
	c.GestureSettled()
	c.deleteCtl.Enabled = true
	c.setDeletion(deletionIdle)
}

func (c *Controller) setDeletion(s deletionState) {
	debugLog("delete: %s -> %s", c.deletion, s)
	c.deletion = s
}
