// Package overlay implements the burn timer overlay: it discovers the
// host's burn display widget with rate-limited retries, clones its text
// elements exactly once into module-owned copies, and on every update
// routes text to whichever surface is currently authoritative, the host's
// original or the module's clone.
package overlay

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/apsidal/burnbar/internal/config"
	"github.com/apsidal/burnbar/internal/geom"
	"github.com/apsidal/burnbar/internal/widget"
)

// Sentinel errors for the two failure modes of a discovery attempt. Both
// are recoverable: the gate retries on the next eligible attempt and never
// surfaces either to callers.
var (
	// ErrPrerequisiteUnavailable means the host widget or one of its
	// sub-elements is not present yet.
	ErrPrerequisiteUnavailable = errors.New("overlay: prerequisite unavailable")

	// ErrCloneConstructionFailed means duplicating a UI element failed.
	ErrCloneConstructionFailed = errors.New("overlay: clone construction failed")
)

// countdownLerpFactor extrapolates the countdown clone to twice the
// time-until→duration offset, so it sits next to the duration element
// rather than on top of either original.
const countdownLerpFactor = 2.0

// initState tracks the discovery gate.
type initState int

const (
	stateNotStarted initState = iota
	statePending
	stateReady
)

// Options configures an Overlay. The zero value selects the defaults from
// the config package.
type Options struct {
	// Cooldown is the minimum gap between discovery attempts. Defaults to
	// config.DefaultCooldownMS milliseconds.
	Cooldown time.Duration

	// CountdownStyleSource picks which original element the countdown
	// clone copies its styling from. Defaults to the duration element.
	CountdownStyleSource config.CountdownStyleSource

	// APIConstraint is the semver range the host UI API must satisfy.
	// Defaults to config.DefaultAPIConstraint. An unparsable value also
	// falls back to the default.
	APIConstraint string

	// Clock supplies the current time for cooldown bookkeeping. Defaults
	// to time.Now; tests inject a fixed clock.
	Clock func() time.Time

	Logger zerolog.Logger
}

// Overlay is the burn timer display component. All methods must be called
// from the host's update loop; the type performs no locking.
type Overlay struct {
	locator    widget.Locator
	clock      func() time.Time
	cooldown   time.Duration
	cdSource   config.CountdownStyleSource
	constraint *semver.Constraints
	log        zerolog.Logger

	state       initState
	lastAttempt time.Time

	// Logged-once bookkeeping for host version mismatches.
	warnedVersion string

	display       widget.BurnDisplay
	origDuration  *widget.Borrowed
	origTimeUntil *widget.Borrowed
	altDuration   *widget.Owned
	altTimeUntil  *widget.Owned
	countdown     *widget.Owned
}

// New creates an Overlay that will discover the host's burn display through
// loc. The overlay starts uninitialized; callers drive it via
// AttemptInitialize, typically once per frame.
func New(loc widget.Locator, opts Options) *Overlay {
	if opts.Cooldown <= 0 {
		opts.Cooldown = config.DefaultCooldownMS * time.Millisecond
	}
	if opts.CountdownStyleSource == "" {
		opts.CountdownStyleSource = config.CountdownFromDuration
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	constraint, err := semver.NewConstraint(opts.APIConstraint)
	if err != nil {
		constraint, _ = semver.NewConstraint(config.DefaultAPIConstraint)
	}

	return &Overlay{
		locator:    loc,
		clock:      opts.Clock,
		cooldown:   opts.Cooldown,
		cdSource:   opts.CountdownStyleSource,
		constraint: constraint,
		log:        opts.Logger.With().Str("component", "overlay").Logger(),
	}
}

// Ready reports whether the overlay has acquired the host widget and its
// clones. Once true it stays true for the lifetime of the session.
func (o *Overlay) Ready() bool {
	return o.state == stateReady
}

// AttemptInitialize runs the discovery gate. It returns true immediately
// when already ready. Otherwise it performs at most one discovery attempt
// per cooldown window and returns false both while rate-limited and when
// the attempt fails. Safe to call every frame.
func (o *Overlay) AttemptInitialize() bool {
	if o.state == stateReady {
		return true
	}

	now := o.clock()
	if o.state == statePending && now.Sub(o.lastAttempt) < o.cooldown {
		return false
	}
	o.state = statePending
	o.lastAttempt = now

	if err := o.initialize(); err != nil {
		o.log.Debug().Err(err).Msg("burn display discovery attempt failed")
		return false
	}

	o.state = stateReady
	o.log.Info().Msg("burn display acquired, overlay ready")
	return true
}

// initialize performs a single discovery attempt. On success all five
// handles are populated; on failure no clone created during the attempt
// survives.
func (o *Overlay) initialize() error {
	display, ok := o.locator.LocateBurnDisplay()
	if !ok {
		return fmt.Errorf("%w: burn display not present", ErrPrerequisiteUnavailable)
	}

	if err := o.checkHostVersion(display.APIVersion()); err != nil {
		return err
	}

	dur := display.Duration()
	tu := display.TimeUntil()
	if dur == nil || !dur.Valid() {
		return fmt.Errorf("%w: duration element missing", ErrPrerequisiteUnavailable)
	}
	if tu == nil || !tu.Valid() {
		return fmt.Errorf("%w: time-until element missing", ErrPrerequisiteUnavailable)
	}

	altDur, altTU, countdown, err := o.acquireClones(dur, tu)
	if err != nil {
		return err
	}

	o.display = display
	o.origDuration = widget.Borrow(dur)
	o.origTimeUntil = widget.Borrow(tu)
	o.altDuration = altDur
	o.altTimeUntil = altTU
	o.countdown = countdown
	return nil
}

// checkHostVersion validates the host UI API version against the
// configured constraint. A mismatch counts as a missing prerequisite so the
// gate keeps retrying; the warning is logged once per observed version.
func (o *Overlay) checkHostVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: host UI API version %q is not semver", ErrPrerequisiteUnavailable, version)
	}
	if !o.constraint.Check(v) {
		if o.warnedVersion != version {
			o.warnedVersion = version
			o.log.Warn().
				Str("host_version", version).
				Str("constraint", o.constraint.String()).
				Msg("host UI API version outside supported range")
		}
		return fmt.Errorf("%w: host UI API %s outside %s", ErrPrerequisiteUnavailable, version, o.constraint)
	}
	return nil
}

// acquireClones duplicates the duration and time-until elements plus a
// third countdown clone. Every clone starts disabled at its source's
// position; the countdown clone is then extrapolated past the duration
// element. Any failure destroys all clones created so far in this attempt.
func (o *Overlay) acquireClones(dur, tu widget.Widget) (altDur, altTU, countdown *widget.Owned, err error) {
	var created []*widget.Owned
	defer func() {
		if err == nil {
			return
		}
		for _, c := range created {
			c.Release()
		}
	}()

	cloneOf := func(src widget.Widget) (*widget.Owned, error) {
		w, cloneErr := src.Clone()
		if cloneErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCloneConstructionFailed, cloneErr)
		}
		h := widget.Own(w)
		h.SetEnabled(false)
		h.SetPosition(src.Position())
		created = append(created, h)
		return h, nil
	}

	if altDur, err = cloneOf(dur); err != nil {
		return nil, nil, nil, err
	}
	if altTU, err = cloneOf(tu); err != nil {
		return nil, nil, nil, err
	}

	cdSrc := dur
	if o.cdSource == config.CountdownFromTimeUntil {
		cdSrc = tu
	}
	if countdown, err = cloneOf(cdSrc); err != nil {
		return nil, nil, nil, err
	}
	countdown.SetPosition(geom.Lerp(dur.Position(), tu.Position(), countdownLerpFactor))

	return altDur, altTU, countdown, nil
}

// SetDuration routes the pre-formatted burn duration text: into the host's
// original element when the host currently shows it, otherwise into the
// module's clone. No-op before the gate has passed.
func (o *Overlay) SetDuration(text string) {
	if o.state != stateReady {
		return
	}
	if o.origDuration.Enabled() {
		o.origDuration.SetText(text)
		return
	}
	o.altDuration.SetText(text)
}

// SetTimeUntil routes the pre-formatted time-until-burn text, with the same
// arbitration as SetDuration.
func (o *Overlay) SetTimeUntil(text string) {
	if o.state != stateReady {
		return
	}
	if o.origTimeUntil.Enabled() {
		o.origTimeUntil.SetText(text)
		return
	}
	o.altTimeUntil.SetText(text)
}

// SetCountdown writes the countdown indicator. It bypasses arbitration:
// the countdown handle is always the target, and its visibility follows
// whether the text is non-empty.
func (o *Overlay) SetCountdown(text string) {
	if o.state != stateReady {
		return
	}
	o.countdown.SetText(text)
	o.countdown.SetEnabled(text != "")
}

// OriginalDisplayEnabled reports whether the host currently shows both of
// its own elements. False before the gate has passed.
func (o *Overlay) OriginalDisplayEnabled() bool {
	if o.state != stateReady {
		return false
	}
	return o.origDuration.Enabled() && o.origTimeUntil.Enabled()
}

// AlternateDisplayEnabled reports whether the module's clone pair is
// shown. The pair toggles as a unit, so both elements agree.
func (o *Overlay) AlternateDisplayEnabled() bool {
	if o.state != stateReady {
		return false
	}
	return o.altDuration.Enabled() && o.altTimeUntil.Enabled()
}

// SetAlternateDisplayEnabled shows or hides the module's clone pair as a
// unit. No-op before the gate has passed.
func (o *Overlay) SetAlternateDisplayEnabled(enabled bool) {
	if o.state != stateReady {
		return
	}
	o.altDuration.SetEnabled(enabled)
	o.altTimeUntil.SetEnabled(enabled)
}

// Teardown releases the module-owned clones and resets the overlay to its
// uninitialized state. Host-owned elements are left untouched. Idempotent;
// safe to call on an overlay that never initialized.
func (o *Overlay) Teardown() {
	o.altDuration.Release()
	o.altTimeUntil.Release()
	o.countdown.Release()

	o.display = nil
	o.origDuration = nil
	o.origTimeUntil = nil
	o.altDuration = nil
	o.altTimeUntil = nil
	o.countdown = nil

	if o.state == stateReady {
		o.log.Debug().Msg("overlay torn down")
	}
	o.state = stateNotStarted
	o.lastAttempt = time.Time{}
}
