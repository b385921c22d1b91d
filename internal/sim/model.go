package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/apsidal/burnbar/internal/shared"
	"github.com/apsidal/burnbar/internal/vessel"
)

// tickInterval is the demo's frame period.
const tickInterval = 100 * time.Millisecond

// readoutBuildDelay is how many ticks the host waits before constructing
// its burn display, exercising the overlay's retry path.
const readoutBuildDelay = 12

// countdownWindow is the time-to-ignition below which the countdown dots
// appear, in seconds.
const countdownWindow = 10.0

// heartbeatEveryTicks is how many frames pass between telemetry heartbeat
// log lines (5 s at the demo's tick rate). The heartbeat runs on the
// update loop: the tracker and overlay behind the facade are
// single-threaded by contract.
const heartbeatEveryTicks = 50

// TickMsg advances the simulation by one frame.
type TickMsg time.Time

// keyMap defines the demo's key bindings.
type keyMap struct {
	ToggleHost   key.Binding
	SwitchVessel key.Binding
	Quit         key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleHost, k.SwitchVessel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.ToggleHost, k.SwitchVessel, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleHost: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle host display mode"),
		),
		SwitchVessel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "switch vessel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// printer formats numbers with thousand separators. The demo is the
// "unrelated reporting code" of the facade contract, so all string
// formatting lives here on the caller side.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Model is the Bubble Tea model for the demo host HUD.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	scene   *Scene
	tracker *vessel.Tracker
	flight  *flightState
	keys    keyMap
	help    help.Model
	log     zerolog.Logger

	ticks     int
	hostShows bool
	width     int
	quitting  bool
}

// NewModel creates the demo host. The scene it returns via Scene() must be
// wired into the overlay's locator before the program starts.
func NewModel(logger zerolog.Logger, tracker *vessel.Tracker, seed int64) Model {
	rng := rand.New(rand.NewSource(seed))
	flight := newFlightState(rng)
	tracker.OnVesselChanged(flight.vessel())

	return Model{
		scene:     NewScene(),
		tracker:   tracker,
		flight:    flight,
		keys:      defaultKeyMap(),
		help:      help.New(),
		log:       logger.With().Str("component", "sim").Logger(),
		hostShows: true,
	}
}

// Scene exposes the host scene for locator wiring.
func (m Model) Scene() *Scene { return m.scene }

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHost):
			m.hostShows = !m.hostShows
			m.scene.SetReadoutEnabled(m.hostShows)
			return m, nil
		case key.Matches(msg, m.keys.SwitchVessel):
			m.flight = newFlightState(m.flight.rng)
			m.tracker.OnVesselChanged(m.flight.vessel())
			m.log.Info().Str("vessel", m.flight.vesselName).Msg("switched vessel")
			return m, nil
		}
		return m, nil

	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

// step advances one frame: late host construction, flight dynamics, and
// the facade pushes a real reporting layer would make.
func (m *Model) step() {
	m.ticks++
	if m.ticks == readoutBuildDelay {
		m.scene.BuildReadout()
		m.scene.SetReadoutEnabled(m.hostShows)
		m.log.Debug().Msg("host constructed burn readout")
	}

	m.flight.advance(tickInterval.Seconds())

	shared.SetTimeUntil(formatTimeUntil(m.flight.timeUntil))
	shared.SetDuration(formatBurn(m.flight.burnDuration))
	shared.SetCountdown(countdownDots(m.flight.timeUntil))

	// Hand-off: show the clone pair exactly while the host hides its own.
	shared.SetAlternateDisplayEnabled(shared.IsInitialized() && !shared.OriginalDisplayEnabled())

	if m.ticks%heartbeatEveryTicks == 0 {
		m.logHeartbeat()
	}
}

// logHeartbeat samples the facade for the periodic telemetry log line.
func (m *Model) logHeartbeat() {
	dv := shared.DvRemaining()
	ev := m.log.Debug().Bool("initialized", shared.IsInitialized())
	if !math.IsNaN(dv) {
		ev = ev.Float64("dv_remaining", dv)
	}
	ev.Msg("telemetry heartbeat")
}

// formatTimeUntil renders seconds-to-ignition as a T-minus clock.
func formatTimeUntil(seconds float64) string {
	if seconds <= 0 {
		return "Burning"
	}
	s := int(math.Ceil(seconds))
	return fmt.Sprintf("T-%02d:%02d", s/60, s%60)
}

// formatBurn renders the estimated burn duration.
func formatBurn(seconds float64) string {
	return fmt.Sprintf("Est. Burn: %ds", int(math.Ceil(seconds)))
}

// countdownDots renders one dot per second inside the countdown window,
// empty outside it. Empty hides the countdown element.
func countdownDots(seconds float64) string {
	if seconds <= 0 || seconds > countdownWindow {
		return ""
	}
	return strings.Repeat("• ", int(math.Ceil(seconds)))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Render("burnbar demo host")

	scene := m.scene.Render()
	if scene == "" {
		scene = lipgloss.NewStyle().Faint(true).Render("  (host still constructing its HUD)")
	}

	status := m.statusLine()
	return strings.Join([]string{title, "", scene, "", status, m.help.View(m.keys)}, "\n")
}

// statusLine reports the facade's view of the world.
func (m Model) statusLine() string {
	dv := shared.DvRemaining()
	dvText := "n/a"
	if !math.IsNaN(dv) {
		dvText = printer.Sprintf("%.0f m/s", dv)
	}

	return fmt.Sprintf(
		"vessel: %s (%s)  dv remaining: %s  initialized: %t  host display: %t  overlay display: %t",
		m.flight.vesselName,
		m.flight.vesselID,
		dvText,
		shared.IsInitialized(),
		shared.OriginalDisplayEnabled(),
		shared.AlternateDisplayEnabled(),
	)
}
