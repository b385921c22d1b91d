package widget

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apsidal/burnbar/internal/geom"
)

func TestBorrowedNeverDestroys(t *testing.T) {
	host := NewLabel(lipgloss.NewStyle())
	host.SetText("T-00:42")

	b := Borrow(host)
	require.True(t, b.Valid())

	b.SetText("T-00:41")
	assert.Equal(t, "T-00:41", host.Text())

	b.SetEnabled(false)
	assert.False(t, host.Enabled())

	// There is deliberately no destroy path on a Borrowed handle; the host
	// element must outlive the handle.
	assert.True(t, host.Valid())
}

func TestBorrowedTracksHostValidity(t *testing.T) {
	host := NewLabel(lipgloss.NewStyle())
	b := Borrow(host)

	host.Destroy()

	assert.False(t, b.Valid())
	assert.Empty(t, b.Text())
	assert.False(t, b.Enabled())

	// Writes after the host element dies are silently dropped.
	b.SetText("stale")
	b.SetEnabled(true)
	assert.False(t, b.Enabled())
}

func TestOwnedReleaseIsIdempotent(t *testing.T) {
	label := NewLabel(lipgloss.NewStyle())
	o := Own(label)
	require.True(t, o.Valid())

	o.Release()
	assert.False(t, o.Valid())
	assert.False(t, label.Valid())

	// Second release must not panic or double-destroy.
	o.Release()
	assert.False(t, o.Valid())
}

func TestOwnedNeutralAfterRelease(t *testing.T) {
	label := NewLabel(lipgloss.NewStyle())
	label.SetText("0:07")
	o := Own(label)
	o.Release()

	assert.Empty(t, o.Text())
	o.SetText("0:06")
	o.SetEnabled(true)
	o.SetPosition(geom.Vec3{X: 1})
	assert.False(t, o.Enabled())
	assert.Equal(t, geom.Vec3{}, o.Position())
}

func TestLabelCloneCopiesStylingNotIdentity(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	src := NewLabel(style)
	src.SetText("Burn: 12s")
	src.SetPosition(geom.Vec3{X: 4, Y: 2})

	dup, err := src.Clone()
	require.NoError(t, err)

	assert.Equal(t, "Burn: 12s", dup.Text())
	assert.Equal(t, geom.Vec3{X: 4, Y: 2}, dup.Position())

	dup.SetText("changed")
	assert.Equal(t, "Burn: 12s", src.Text())

	dup.Destroy()
	assert.True(t, src.Valid())
}

func TestLabelCloneFailsWhenDestroyed(t *testing.T) {
	src := NewLabel(lipgloss.NewStyle())
	src.Destroy()

	_, err := src.Clone()
	assert.ErrorIs(t, err, ErrCloneUnsupported)
}

func TestLabelRender(t *testing.T) {
	l := NewLabel(lipgloss.NewStyle())
	l.SetText("Est. Burn: 14s")
	assert.Contains(t, l.Render(), "Est. Burn: 14s")

	l.SetEnabled(false)
	assert.Empty(t, l.Render())
}
