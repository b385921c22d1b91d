package sim

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apsidal/burnbar/internal/overlay"
	"github.com/apsidal/burnbar/internal/shared"
	"github.com/apsidal/burnbar/internal/vessel"
)

// newTestModel wires a model, overlay, and facade exactly like cmd/burnbar
// does, with a fast-forward clock so the gate's cooldown never blocks a
// test tick.
func newTestModel(t *testing.T) Model {
	t.Helper()

	tracker := vessel.NewTracker(zerolog.Nop())
	m := NewModel(zerolog.Nop(), tracker, 42)

	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	shared.Activate(&shared.Instance{
		Overlay: overlay.New(m.Scene(), overlay.Options{Clock: clock, Logger: zerolog.Nop()}),
		Tracker: tracker,
	})
	t.Cleanup(shared.Deactivate)
	return m
}

// advance delivers n tick messages.
func advance(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		updated, _ := m.Update(TickMsg(time.Now()))
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModelStartsWithoutReadout(t *testing.T) {
	m := newTestModel(t)

	m = advance(t, m, readoutBuildDelay-1)

	_, found := m.Scene().LocateBurnDisplay()
	assert.False(t, found)
	assert.False(t, shared.IsInitialized())
	assert.Contains(t, m.View(), "constructing")
}

func TestModelInitializesAfterHostBuildsReadout(t *testing.T) {
	m := newTestModel(t)

	m = advance(t, m, readoutBuildDelay+1)

	require.True(t, shared.IsInitialized())
	assert.True(t, shared.OriginalDisplayEnabled())
	assert.False(t, shared.AlternateDisplayEnabled())

	// The facade routed the tick's text into the host's own elements.
	readout := m.Scene().readout
	require.NotNil(t, readout)
	assert.Contains(t, readout.duration.Text(), "Est. Burn:")
	assert.Contains(t, readout.timeUntil.Text(), "T-")
}

func TestHostDisplayToggleHandsOffToOverlay(t *testing.T) {
	m := newTestModel(t)
	m = advance(t, m, readoutBuildDelay+1)
	require.True(t, shared.IsInitialized())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = updated.(Model)
	m = advance(t, m, 1)

	assert.False(t, shared.OriginalDisplayEnabled())
	assert.True(t, shared.AlternateDisplayEnabled())

	// Toggling back hands the surface to the host again.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = updated.(Model)
	m = advance(t, m, 1)
	assert.True(t, shared.OriginalDisplayEnabled())
	assert.False(t, shared.AlternateDisplayEnabled())
}

func TestSwitchVesselRebindsSolver(t *testing.T) {
	m := newTestModel(t)
	m = advance(t, m, readoutBuildDelay+1)
	before := m.flight.vesselID

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = updated.(Model)

	assert.NotEqual(t, before, m.flight.vesselID)
	assert.True(t, m.flight.dvRemaining > 0)
	assert.InDelta(t, m.flight.dvRemaining, shared.DvRemaining(), 1e-9)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		until   string
		dots    string
	}{
		{name: "far from ignition", seconds: 95, until: "T-01:35", dots: ""},
		{name: "inside countdown window", seconds: 3.2, until: "T-00:04", dots: "• • • • "},
		{name: "ignition", seconds: 0, until: "Burning", dots: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.until, formatTimeUntil(tt.seconds))
			assert.Equal(t, tt.dots, countdownDots(tt.seconds))
		})
	}
}

func TestTelemetryHeartbeatRunsOnUpdateLoop(t *testing.T) {
	// The heartbeat samples the facade from the same loop that mutates the
	// tracker and overlay, so interleaving vessel switches with heartbeat
	// frames is strictly sequential.
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	tracker := vessel.NewTracker(zerolog.Nop())
	m := NewModel(logger, tracker, 7)

	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	shared.Activate(&shared.Instance{
		Overlay: overlay.New(m.Scene(), overlay.Options{Clock: clock, Logger: zerolog.Nop()}),
		Tracker: tracker,
	})
	t.Cleanup(shared.Deactivate)

	m = advance(t, m, readoutBuildDelay+1)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = updated.(Model)
	m = advance(t, m, heartbeatEveryTicks)

	out := buf.String()
	assert.Contains(t, out, "telemetry heartbeat")
	assert.Contains(t, out, "dv_remaining")
	assert.Contains(t, out, `"initialized":true`)
}

func TestFlightAdvances(t *testing.T) {
	m := newTestModel(t)
	start := m.flight.timeUntil

	m = advance(t, m, 5)
	assert.Less(t, m.flight.timeUntil, start)
}
