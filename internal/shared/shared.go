// Package shared exposes the process-wide facade through which unrelated
// reporting code pushes display text and queries overlay state without
// holding a component reference. A single Instance is bound for the
// lifetime of a flight session; every accessor degrades to a neutral value
// when no instance is active or initialization has not yet succeeded.
package shared

import (
	"math"
	"sync"

	"github.com/apsidal/burnbar/internal/overlay"
	"github.com/apsidal/burnbar/internal/vessel"
)

// Instance bundles the live overlay and vessel tracker for one flight
// session.
type Instance struct {
	Overlay *overlay.Overlay
	Tracker *vessel.Tracker
}

// mu guards the active instance pointer. The overlay itself runs on the
// host's update loop; the mutex only makes the bind/unbind swap safe.
//
//nolint:gochecknoglobals // The facade is deliberately a single shared handle.
var mu sync.RWMutex

//nolint:gochecknoglobals // See mu.
var active *Instance

// Activate binds inst as the process-wide instance, replacing any previous
// binding.
func Activate(inst *Instance) {
	mu.Lock()
	defer mu.Unlock()
	active = inst
}

// Deactivate unbinds the current instance, tearing down its overlay.
// Idempotent.
func Deactivate() {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return
	}
	if active.Overlay != nil {
		active.Overlay.Teardown()
	}
	active = nil
}

// ready returns the bound instance when its overlay gate has passed,
// lazily driving initialization when asked to. Returns nil otherwise.
func ready(lazyInit bool) *Instance {
	mu.RLock()
	inst := active
	mu.RUnlock()

	if inst == nil || inst.Overlay == nil {
		return nil
	}
	if lazyInit {
		if !inst.Overlay.AttemptInitialize() {
			return nil
		}
	} else if !inst.Overlay.Ready() {
		return nil
	}
	return inst
}

// SetDuration pushes the formatted burn duration text. First use triggers
// initialization; a no-op until the gate passes.
func SetDuration(text string) {
	if inst := ready(true); inst != nil {
		inst.Overlay.SetDuration(text)
	}
}

// SetTimeUntil pushes the formatted time-until-burn text.
func SetTimeUntil(text string) {
	if inst := ready(true); inst != nil {
		inst.Overlay.SetTimeUntil(text)
	}
}

// SetCountdown pushes the countdown text; an empty string hides the
// countdown element.
func SetCountdown(text string) {
	if inst := ready(true); inst != nil {
		inst.Overlay.SetCountdown(text)
	}
}

// IsInitialized reports whether the overlay has passed its gate. It never
// triggers initialization itself.
func IsInitialized() bool {
	return ready(false) != nil
}

// DvRemaining returns the velocity change required by the active vessel's
// next maneuver, or NaN when the overlay is uninitialized, no instance is
// bound, or the vessel has no usable maneuver node.
func DvRemaining() float64 {
	inst := ready(false)
	if inst == nil || inst.Tracker == nil {
		return math.NaN()
	}
	return inst.Tracker.DvRemaining()
}

// OriginalDisplayEnabled reports whether the host currently shows its own
// burn display pair.
func OriginalDisplayEnabled() bool {
	inst := ready(false)
	return inst != nil && inst.Overlay.OriginalDisplayEnabled()
}

// AlternateDisplayEnabled reports whether the module's clone pair is
// shown.
func AlternateDisplayEnabled() bool {
	inst := ready(false)
	return inst != nil && inst.Overlay.AlternateDisplayEnabled()
}

// SetAlternateDisplayEnabled shows or hides the module's clone pair as a
// unit. A no-op until the gate passes.
func SetAlternateDisplayEnabled(enabled bool) {
	if inst := ready(false); inst != nil {
		inst.Overlay.SetAlternateDisplayEnabled(enabled)
	}
}
