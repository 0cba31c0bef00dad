package stream

import (
	"errors"
	"fmt"
)

// ErrSinkFinalized is returned by every Sink variant when Consume is
// called after Finalize. Match it with errors.Is.
var ErrSinkFinalized = errors.New("sink has already been finalized")

// UnsupportedTypeError is returned by NewSource and NewSink when the
// supplied origin or destination is not one of the recognized shapes.
type UnsupportedTypeError struct {
	Value interface{}
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported type %T passed as value", e.Value)
}
