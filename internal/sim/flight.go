package sim

import (
	"math"
	"math/rand"

	"github.com/oklog/ulid/v2"

	"github.com/apsidal/burnbar/internal/geom"
	"github.com/apsidal/burnbar/internal/vessel"
)

// vesselNames is the pool the demo draws from when the player switches
// vessels.
var vesselNames = []string{
	"Aurora Station", "Kestrel II", "Meridian Probe", "Tern Lander",
	"Halcyon Tug", "Vector Relay",
}

// flightState is one vessel's maneuver situation: a single planned burn
// that counts down, executes, and is then replaced by a fresh plan.
type flightState struct {
	vesselID   ulid.ULID
	vesselName string

	dvTotal      float64 // m/s planned for the current node
	dvRemaining  float64
	timeUntil    float64 // seconds to ignition
	burnDuration float64 // seconds of thrust at the demo's fixed accel
	hasPlan      bool

	rng *rand.Rand
}

// demoAccel is the demo vessel's constant acceleration in m/s².
const demoAccel = 12.0

func newFlightState(rng *rand.Rand) *flightState {
	f := &flightState{
		vesselID:   ulid.Make(),
		vesselName: vesselNames[rng.Intn(len(vesselNames))],
		rng:        rng,
	}
	f.newPlan()
	return f
}

// newPlan queues a fresh maneuver node.
func (f *flightState) newPlan() {
	f.dvTotal = 150 + f.rng.Float64()*2200
	f.dvRemaining = f.dvTotal
	f.timeUntil = 20 + f.rng.Float64()*40
	f.burnDuration = f.dvTotal / demoAccel
	f.hasPlan = true
}

// advance moves the flight forward by dt seconds.
func (f *flightState) advance(dt float64) {
	if !f.hasPlan {
		return
	}
	if f.timeUntil > 0 {
		f.timeUntil = math.Max(0, f.timeUntil-dt)
		return
	}
	f.dvRemaining = math.Max(0, f.dvRemaining-demoAccel*dt)
	f.burnDuration = f.dvRemaining / demoAccel
	if f.dvRemaining == 0 {
		f.newPlan()
	}
}

// vessel wraps the flight state in the event payload the tracker expects.
func (f *flightState) vessel() *vessel.Vessel {
	return &vessel.Vessel{
		ID:     f.vesselID,
		Name:   f.vesselName,
		Solver: planSolver{flight: f},
	}
}

// planSolver exposes the flight's single queued node as a maneuver solver.
type planSolver struct {
	flight *flightState
}

// Nodes returns the queued maneuver nodes, oldest first.
func (s planSolver) Nodes() []vessel.Node {
	if !s.flight.hasPlan {
		return nil
	}
	return []vessel.Node{planNode{flight: s.flight}}
}

type planNode struct {
	flight *flightState
}

// Patch is always available in the demo; real hosts drop it when the plan
// runs past the computed trajectory.
func (n planNode) Patch() (vessel.Patch, bool) {
	return vessel.Patch{}, true
}

// BurnVector reports the remaining velocity change along the demo's fixed
// burn axis.
func (n planNode) BurnVector(vessel.Patch) geom.Vec3 {
	return geom.Vec3{X: n.flight.dvRemaining}
}
