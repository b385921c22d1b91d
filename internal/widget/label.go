package widget

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/apsidal/burnbar/internal/geom"
)

// Label is a concrete Widget backed by a lipgloss style. The demo host
// builds its burn display out of Labels; tests use them as realistic
// stand-ins for engine text elements.
type Label struct {
	style     lipgloss.Style
	text      string
	enabled   bool
	pos       geom.Vec3
	destroyed bool
}

// NewLabel creates an enabled, empty label at the origin.
func NewLabel(style lipgloss.Style) *Label {
	return &Label{style: style, enabled: true}
}

// Valid reports whether the label has not been destroyed.
func (l *Label) Valid() bool {
	return l != nil && !l.destroyed
}

// Text returns the label's current text.
func (l *Label) Text() string { return l.text }

// SetText replaces the label's text.
func (l *Label) SetText(text string) { l.text = text }

// Enabled reports whether the label is visible.
func (l *Label) Enabled() bool { return l.enabled }

// SetEnabled toggles the label's visibility.
func (l *Label) SetEnabled(enabled bool) { l.enabled = enabled }

// Position returns the label's scene position.
func (l *Label) Position() geom.Vec3 { return l.pos }

// SetPosition moves the label.
func (l *Label) SetPosition(pos geom.Vec3) { l.pos = pos }

// Clone duplicates the label with identical styling. The duplicate keeps
// the source's text and position; callers set enabled state and position
// themselves.
func (l *Label) Clone() (Widget, error) {
	if !l.Valid() {
		return nil, ErrCloneUnsupported
	}
	return &Label{
		style:   l.style,
		text:    l.text,
		enabled: l.enabled,
		pos:     l.pos,
	}, nil
}

// Destroy marks the label dead. Idempotent.
func (l *Label) Destroy() {
	if l == nil {
		return
	}
	l.destroyed = true
}

// Render draws the label's text through its style. Destroyed or disabled
// labels render as the empty string.
func (l *Label) Render() string {
	if !l.Valid() || !l.enabled {
		return ""
	}
	return l.style.Render(l.text)
}
