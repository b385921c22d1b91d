// Package vessel tracks the active vessel's maneuver plan. The tracker
// rebinds to a new solver whenever the host announces a vessel change and
// answers "how much velocity change is left for the next burn".
package vessel

import (
	"math"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/apsidal/burnbar/internal/geom"
)

// Patch is the trajectory segment a maneuver node is evaluated against.
// The zero value is a usable placeholder; the overlay never inspects patch
// internals, it only needs the node to evaluate its burn vector in the
// patch's reference frame.
type Patch struct {
	// Epoch is the universal time at which the patch begins.
	Epoch float64
}

// Node is a planned trajectory-change point.
type Node interface {
	// Patch returns the trajectory patch the node's burn is evaluated
	// against, or false when the patch is unavailable (for example the
	// plan extends past the computed trajectory).
	Patch() (Patch, bool)

	// BurnVector returns the velocity-change vector required by the node,
	// evaluated against the given patch.
	BurnVector(p Patch) geom.Vec3
}

// Solver is a vessel's maneuver-node solver: the queue of planned burns in
// execution order.
type Solver interface {
	Nodes() []Node
}

// Vessel is the identity the host hands over on a vessel-change event. The
// solver may be nil when the vessel has no maneuver plan.
type Vessel struct {
	ID     ulid.ULID
	Name   string
	Solver Solver
}

// Tracker holds the active vessel's solver reference. Not safe for
// concurrent use; the host delivers vessel-change events on its update
// loop.
type Tracker struct {
	log    zerolog.Logger
	solver Solver
}

// NewTracker creates a Tracker with no vessel bound.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{log: logger.With().Str("component", "vessel").Logger()}
}

// OnVesselChanged rebinds the tracker to the new active vessel's solver.
// A nil vessel (no active vessel) unbinds.
func (t *Tracker) OnVesselChanged(v *Vessel) {
	if v == nil {
		t.solver = nil
		t.log.Debug().Msg("active vessel cleared")
		return
	}
	t.solver = v.Solver
	t.log.Debug().
		Stringer("vessel_id", v.ID).
		Str("vessel", v.Name).
		Bool("has_solver", v.Solver != nil).
		Msg("active vessel changed")
}

// Bound reports whether a solver is currently bound.
func (t *Tracker) Bound() bool {
	return t.solver != nil
}

// DvRemaining returns the magnitude of the velocity change required by the
// first queued maneuver node. It returns NaN when no solver is bound, the
// solver has no nodes queued, or the first node's patch is unavailable.
func (t *Tracker) DvRemaining() float64 {
	if t.solver == nil {
		return math.NaN()
	}
	nodes := t.solver.Nodes()
	if len(nodes) == 0 {
		return math.NaN()
	}
	patch, ok := nodes[0].Patch()
	if !ok {
		return math.NaN()
	}
	return nodes[0].BurnVector(patch).Magnitude()
}
