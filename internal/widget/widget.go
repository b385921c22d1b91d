// Package widget models the host UI elements the overlay works with: a
// minimal text-widget interface, the host's burn display singleton, and the
// two handle types that make ownership explicit: Borrowed for host-owned
// elements the module must never destroy, Owned for clones it must.
package widget

import (
	"errors"

	"github.com/apsidal/burnbar/internal/geom"
)

// ErrCloneUnsupported is returned by widgets that cannot duplicate
// themselves.
var ErrCloneUnsupported = errors.New("widget: clone unsupported")

// Widget is a single text-bearing UI element in the host scene.
//
// Implementations are not required to be safe for concurrent use; all
// access happens on the host's update loop.
type Widget interface {
	// Valid reports whether the underlying element still exists. Every
	// other method is undefined once Valid returns false.
	Valid() bool

	Text() string
	SetText(text string)

	Enabled() bool
	SetEnabled(enabled bool)

	Position() geom.Vec3
	SetPosition(pos geom.Vec3)

	// Clone produces an independent duplicate with identical visual
	// styling. The duplicate's enabled state and position are unspecified;
	// callers are expected to set both.
	Clone() (Widget, error)

	// Destroy releases the underlying element. Calling Destroy more than
	// once is allowed and has no effect after the first call.
	Destroy()
}

// BurnDisplay is the host-owned burn readout singleton. The host creates it
// asynchronously; either sub-element accessor may return nil while
// construction is still in progress.
type BurnDisplay interface {
	// Duration returns the "burn duration" text element, or nil.
	Duration() Widget

	// TimeUntil returns the "time until burn" text element, or nil.
	TimeUntil() Widget

	// APIVersion reports the host UI API version as a semver string.
	APIVersion() string
}

// Locator finds the host's burn display singleton. The surrounding platform
// layer injects an implementation; the overlay never touches engine APIs
// directly.
type Locator interface {
	// LocateBurnDisplay returns the singleton and true, or (nil, false)
	// when the host has not created it yet.
	LocateBurnDisplay() (BurnDisplay, bool)
}

// LocatorFunc adapts a plain function to the Locator interface.
type LocatorFunc func() (BurnDisplay, bool)

// LocateBurnDisplay calls f.
func (f LocatorFunc) LocateBurnDisplay() (BurnDisplay, bool) {
	return f()
}
