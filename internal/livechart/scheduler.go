package livechart

import "time"

// Scheduler runs fn every d on the caller's event loop until the handle is cancelled.
// Implementations must never run fn concurrently with other component calls.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

type Handle interface {
	Cancel()
}

const (
	MinSpeed = 1
	MaxSpeed = 100
)

// CadenceFromSlider maps a speed slider value to a tick interval, 10ms per step.
func CadenceFromSlider(v int) time.Duration {
	v = min(MaxSpeed, max(MinSpeed, v))
	return time.Duration(v) * 10 * time.Millisecond
}
