package gameloop

import "errors"

// ErrResourceSet is returned when a Resource is assigned a second time.
var ErrResourceSet = errors.New("gameloop: resource already set")

// Resource is an optional value that may be assigned exactly once, typically
// by a host's init callback on first activation (a window, a screen, a
// surface). Reads before assignment report ok == false.
type Resource[R any] struct {
	value R
	set   bool
}

// Set assigns the value. A second call returns ErrResourceSet and leaves the
// first value in place.
func (r *Resource[R]) Set(v R) error {
	if r.set {
		return ErrResourceSet
	}
	r.value = v
	r.set = true
	return nil
}

// Get returns the value and whether it has been assigned.
func (r *Resource[R]) Get() (R, bool) {
	return r.value, r.set
}

// IsSet reports whether the value has been assigned.
func (r *Resource[R]) IsSet() bool {
	return r.set
}
