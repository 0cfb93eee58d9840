/*
Package lazy implements a value which is computed on demand and cached
until invalidated.

A lazy value is a two-state machine:

    State
        = Stale
        | Fresh value

Get on a Stale value runs the compute function and makes the value Fresh.
Reset returns a value to Stale. IsFresh inspects the state without
triggering a computation.

Values are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lazy

// Value is a lazily computed value of type T.
type Value[T any] struct {
	value   T
	fresh   bool
	compute func() T
}

// New creates a stale lazy value, computed by f on first access.
func New[T any](f func() T) *Value[T] {
	if f == nil {
		panic("lazy value needs a compute function")
	}
	return &Value[T]{compute: f}
}

// Get returns the value, computing it if it is stale.
func (v *Value[T]) Get() T {
	if !v.fresh {
		v.value = v.compute()
		v.fresh = true
	}
	return v.value
}

// Reset makes the value stale. The next Get will re-compute it.
func (v *Value[T]) Reset() {
	var zero T
	v.value = zero
	v.fresh = false
}

// IsFresh is true if Get would not trigger a computation.
func (v *Value[T]) IsFresh() bool {
	return v.fresh
}
