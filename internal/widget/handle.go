package widget

import "github.com/apsidal/burnbar/internal/geom"

// Borrowed is a non-owning handle to a host-owned widget. The module may
// read and write its text and enabled state but never destroys the
// underlying element; teardown of a Borrowed handle is a no-op.
type Borrowed struct {
	w Widget
}

// Borrow wraps a host-owned widget in a non-owning handle.
func Borrow(w Widget) *Borrowed {
	return &Borrowed{w: w}
}

// Valid reports whether the underlying host element still exists.
func (b *Borrowed) Valid() bool {
	return b != nil && b.w != nil && b.w.Valid()
}

// Text returns the element's current text, or "" when invalid.
func (b *Borrowed) Text() string {
	if !b.Valid() {
		return ""
	}
	return b.w.Text()
}

// SetText writes text into the host element. No-op when invalid.
func (b *Borrowed) SetText(text string) {
	if !b.Valid() {
		return
	}
	b.w.SetText(text)
}

// Enabled reports the host element's enabled state, false when invalid.
func (b *Borrowed) Enabled() bool {
	return b.Valid() && b.w.Enabled()
}

// SetEnabled toggles the host element. No-op when invalid.
func (b *Borrowed) SetEnabled(enabled bool) {
	if !b.Valid() {
		return
	}
	b.w.SetEnabled(enabled)
}

// Position returns the host element's position.
func (b *Borrowed) Position() geom.Vec3 {
	if !b.Valid() {
		return geom.Vec3{}
	}
	return b.w.Position()
}

// Owned is an owning handle to a module-created clone. Release destroys the
// underlying element exactly once; repeated calls are tolerated.
type Owned struct {
	w        Widget
	released bool
}

// Own wraps a freshly created clone in an owning handle.
func Own(w Widget) *Owned {
	return &Owned{w: w}
}

// Valid reports whether the clone is alive.
func (o *Owned) Valid() bool {
	return o != nil && !o.released && o.w != nil && o.w.Valid()
}

// Text returns the clone's current text, or "" when released.
func (o *Owned) Text() string {
	if !o.Valid() {
		return ""
	}
	return o.w.Text()
}

// SetText writes text into the clone. No-op when released.
func (o *Owned) SetText(text string) {
	if !o.Valid() {
		return
	}
	o.w.SetText(text)
}

// Enabled reports the clone's enabled state, false when released.
func (o *Owned) Enabled() bool {
	return o.Valid() && o.w.Enabled()
}

// SetEnabled toggles the clone. No-op when released.
func (o *Owned) SetEnabled(enabled bool) {
	if !o.Valid() {
		return
	}
	o.w.SetEnabled(enabled)
}

// Position returns the clone's position.
func (o *Owned) Position() geom.Vec3 {
	if !o.Valid() {
		return geom.Vec3{}
	}
	return o.w.Position()
}

// SetPosition moves the clone. No-op when released.
func (o *Owned) SetPosition(pos geom.Vec3) {
	if !o.Valid() {
		return
	}
	o.w.SetPosition(pos)
}

// Release destroys the underlying clone. Idempotent.
func (o *Owned) Release() {
	if o == nil || o.released {
		return
	}
	o.released = true
	if o.w != nil {
		o.w.Destroy()
	}
}
