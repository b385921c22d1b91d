// Package sim is a demonstration host: a terminal flight HUD that plays
// the role of the simulator the overlay embeds into. It owns the burn
// display widget, constructs it asynchronously, flips display modes, and
// pushes caller-formatted strings through the shared facade.
package sim

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apsidal/burnbar/internal/geom"
	"github.com/apsidal/burnbar/internal/widget"
)

// Scene is the host's widget registry. Every text element in the HUD,
// host-built originals and overlay-built clones alike, lives here so the
// view can draw whatever is currently enabled.
type Scene struct {
	labels  []*sceneLabel
	readout *BurnReadout
}

// NewScene creates an empty scene with no burn readout yet.
func NewScene() *Scene {
	return &Scene{}
}

// LocateBurnDisplay implements widget.Locator: the readout exists only
// after the host has gotten around to building it.
func (s *Scene) LocateBurnDisplay() (widget.BurnDisplay, bool) {
	if s.readout == nil {
		return nil, false
	}
	return s.readout, true
}

// add registers a label for rendering.
func (s *Scene) add(l *sceneLabel) {
	s.labels = append(s.labels, l)
}

// Render draws every live, enabled label at its scene position. Labels
// share a row when their Y positions match; X is a column offset.
func (s *Scene) Render() string {
	byRow := make(map[int][]*sceneLabel)
	var ys []int
	for _, l := range s.labels {
		if !l.Valid() || !l.Enabled() {
			continue
		}
		y := int(l.Position().Y)
		if _, seen := byRow[y]; !seen {
			ys = append(ys, y)
		}
		byRow[y] = append(byRow[y], l)
	}
	sort.Ints(ys)

	var lines []string
	for _, y := range ys {
		row := byRow[y]
		sort.Slice(row, func(i, j int) bool {
			return row[i].Position().X < row[j].Position().X
		})

		var b strings.Builder
		for _, l := range row {
			col := int(l.Position().X)
			if pad := col - lipgloss.Width(b.String()); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(l.Render())
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// sceneLabel wraps a Label so clones the overlay creates register
// themselves into the scene and show up in the render.
type sceneLabel struct {
	*widget.Label
	scene *Scene
}

func (s *Scene) newLabel(style lipgloss.Style, pos geom.Vec3) *sceneLabel {
	l := &sceneLabel{Label: widget.NewLabel(style), scene: s}
	l.SetPosition(pos)
	s.add(l)
	return l
}

// Clone duplicates the label and registers the duplicate in the scene.
func (l *sceneLabel) Clone() (widget.Widget, error) {
	w, err := l.Label.Clone()
	if err != nil {
		return nil, err
	}
	c := &sceneLabel{Label: w.(*widget.Label), scene: l.scene}
	l.scene.add(c)
	return c, nil
}

// BurnReadout is the host-native burn display: the widget the overlay
// discovers, reads, and clones.
type BurnReadout struct {
	duration  *sceneLabel
	timeUntil *sceneLabel
}

// hudAPIVersion is the version the demo host reports for its UI API.
const hudAPIVersion = "1.1.0"

// Duration returns the burn duration element.
func (r *BurnReadout) Duration() widget.Widget { return r.duration }

// TimeUntil returns the time-until-burn element.
func (r *BurnReadout) TimeUntil() widget.Widget { return r.timeUntil }

// APIVersion reports the host UI API version.
func (r *BurnReadout) APIVersion() string { return hudAPIVersion }

// Layout of the host readout row.
const (
	readoutRow      = 1
	timeUntilColumn = 4
	durationColumn  = 28
)

// BuildReadout constructs the host's burn display widgets. The demo model
// calls this a few ticks into the session to exercise the overlay's
// discovery retries.
func (s *Scene) BuildReadout() *BurnReadout {
	if s.readout != nil {
		return s.readout
	}

	durStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	tuStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	s.readout = &BurnReadout{
		timeUntil: s.newLabel(tuStyle, geom.Vec3{X: timeUntilColumn, Y: readoutRow}),
		duration:  s.newLabel(durStyle, geom.Vec3{X: durationColumn, Y: readoutRow}),
	}
	return s.readout
}

// SetReadoutEnabled toggles the host's native display mode. The overlay
// observes this and hands the surface over to its clones when disabled.
func (s *Scene) SetReadoutEnabled(enabled bool) {
	if s.readout == nil {
		return
	}
	s.readout.duration.SetEnabled(enabled)
	s.readout.timeUntil.SetEnabled(enabled)
}

// ReadoutEnabled reports the host display mode, false before construction.
func (s *Scene) ReadoutEnabled() bool {
	return s.readout != nil && s.readout.duration.Enabled() && s.readout.timeUntil.Enabled()
}
