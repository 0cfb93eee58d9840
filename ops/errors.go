package ops

import (
	"errors"
	"fmt"
)

// Errors returned by the operation layer.
var (
	ErrAssertion     = errors.New("assertion failed")
	ErrUnknownOpType = errors.New("unknown operation type")
	ErrInvalidSpec   = errors.New("invalid operation spec")
	ErrNoDocument    = errors.New("not an ODF text document")
)

// AssertionError is the panic value of a violated invariant.
type AssertionError struct {
	OpType string
	Msg    string
}

func (e *AssertionError) Error() string {
	if e.OpType == "" {
		return fmt.Sprintf("%s: %s", ErrAssertion, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.OpType, ErrAssertion, e.Msg)
}

// Unwrap makes errors.Is(err, ErrAssertion) work for assertion errors.
func (e *AssertionError) Unwrap() error {
	return ErrAssertion
}

// Assert panics with an *AssertionError if cond does not hold.
func Assert(cond bool, optype string, format string, args ...interface{}) {
	if !cond {
		err := &AssertionError{OpType: optype, Msg: fmt.Sprintf(format, args...)}
		tracer().Errorf("%v", err)
		panic(err)
	}
}

// RecoverAssertion is to be deferred. It converts a panic with an
// *AssertionError into an error, and re-panics for all other values.
func RecoverAssertion(err *error) {
	if r := recover(); r != nil {
		if aerr, ok := r.(*AssertionError); ok {
			*err = aerr
			return
		}
		panic(r)
	}
}
