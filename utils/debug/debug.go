// Package debug turns panics raised while parsing into errors.
package debug

import (
	"fmt"
)

var (
	ErrPanic = fmt.Errorf("panic")
)

type PanicErrorMessage struct {
	Msg        interface{}
	Inner      string
	Stacktrace []byte
}

func (e *PanicErrorMessage) Error() string {
	return fmt.Sprintf("panic while handling %q: %s", e.Msg, e.Inner)
}

func (e *PanicErrorMessage) Unwrap() []error {
	return []error{ErrPanic}
}
