package viewer

import (
	"log"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebug turns debug logging of state transitions on or off
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled.Load() {
		log.Printf("[viewer] "+format, args...)
	}
}
