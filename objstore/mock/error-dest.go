package mock

import (
	"fmt"
	"io"

	"github.com/ibmjstart/streamlygo/objstore"
)

// ErrorDestination implements the Destination interface but always
// returns the error values of its methods.
type ErrorDestination struct{}

// Ensure that ErrorDestination implements the Destination interface at compile-time
var _ objstore.Destination = ErrorDestination{}

func NewErrorDestination() ErrorDestination {
	return ErrorDestination{}
}

// CreateFile always returns an io.WriteCloser that does nothing and an error.
func (e ErrorDestination) CreateFile(container, objectName string, checkHash bool, hash string) (io.WriteCloser, error) {
	return nullWriteCloser(0), fmt.Errorf("Always fail to create files")
}

// OpenFile always returns an error.
func (e ErrorDestination) OpenFile(container, objectName string) (io.ReadCloser, int64, error) {
	return nil, 0, fmt.Errorf("Always fail to open objects")
}

// FileNames returns an empty string slice and an error.
func (e ErrorDestination) FileNames(container string) ([]string, error) {
	return []string{}, fmt.Errorf("Always fail to list objects")
}

// AuthUrl returns the empty string.
func (e ErrorDestination) AuthUrl() string {
	return ""
}

// AuthToken returns the empty string.
func (e ErrorDestination) AuthToken() string {
	return ""
}
