package vessel

import (
	"math"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/apsidal/burnbar/internal/geom"
)

type fakeNode struct {
	burn     geom.Vec3
	hasPatch bool
}

func (n fakeNode) Patch() (Patch, bool) {
	if !n.hasPatch {
		return Patch{}, false
	}
	return Patch{Epoch: 100}, true
}

func (n fakeNode) BurnVector(Patch) geom.Vec3 { return n.burn }

type fakeSolver struct {
	nodes []Node
}

func (s fakeSolver) Nodes() []Node { return s.nodes }

func TestDvRemaining(t *testing.T) {
	tests := []struct {
		name   string
		vessel *Vessel
		want   float64
	}{
		{
			name:   "no vessel bound",
			vessel: nil,
			want:   math.NaN(),
		},
		{
			name:   "vessel without solver",
			vessel: &Vessel{Name: "Probe"},
			want:   math.NaN(),
		},
		{
			name:   "empty maneuver queue",
			vessel: &Vessel{Name: "Lander", Solver: fakeSolver{}},
			want:   math.NaN(),
		},
		{
			name: "first node patch unavailable",
			vessel: &Vessel{Name: "Station", Solver: fakeSolver{nodes: []Node{
				fakeNode{burn: geom.Vec3{X: 100}},
			}}},
			want: math.NaN(),
		},
		{
			name: "first node burn magnitude",
			vessel: &Vessel{Name: "Tug", Solver: fakeSolver{nodes: []Node{
				fakeNode{burn: geom.Vec3{X: 3, Y: 4}, hasPatch: true},
				fakeNode{burn: geom.Vec3{X: 999}, hasPatch: true},
			}}},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(zerolog.Nop())
			tr.OnVesselChanged(tt.vessel)

			got := tr.DvRemaining()
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestOnVesselChangedRebinds(t *testing.T) {
	tr := NewTracker(zerolog.Nop())

	first := &Vessel{
		ID:   ulid.Make(),
		Name: "Kite",
		Solver: fakeSolver{nodes: []Node{
			fakeNode{burn: geom.Vec3{X: 10}, hasPatch: true},
		}},
	}
	tr.OnVesselChanged(first)
	assert.True(t, tr.Bound())
	assert.InDelta(t, 10, tr.DvRemaining(), 1e-12)

	// Switching to a vessel with no plan drops the old binding.
	tr.OnVesselChanged(&Vessel{ID: ulid.Make(), Name: "Glider"})
	assert.False(t, tr.Bound())
	assert.True(t, math.IsNaN(tr.DvRemaining()))

	// Losing the active vessel entirely unbinds too.
	tr.OnVesselChanged(first)
	tr.OnVesselChanged(nil)
	assert.False(t, tr.Bound())
}
