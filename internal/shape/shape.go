// Package shape reports vector length mismatches between layers, losses and data.
package shape

import "fmt"

// Error describes a vector whose length does not match what an operation expects.
type Error struct {
	Op   string
	Want int
	Got  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: expected length %d, got %d", e.Op, e.Want, e.Got)
}

// Check panics with *Error when got != want.
func Check(op string, want, got int) {
	if want != got {
		panic(&Error{Op: op, Want: want, Got: got})
	}
}

// Recover converts a *Error panic into *err. Any other panic is re-raised.
// It must be called directly by a deferred statement.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if se, ok := r.(*Error); ok {
		*err = se
		return
	}
	panic(r)
}
