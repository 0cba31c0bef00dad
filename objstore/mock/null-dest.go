package mock

import (
	"bytes"
	"io"

	"github.com/ibmjstart/streamlygo/objstore"
)

// NullDestination implements the Destination interface but always
// returns the zero values of its methods.
type NullDestination uint8

var _ objstore.Destination = NullDestination(0)

func NewNullDestination() NullDestination {
	return NullDestination(0)
}

type nullWriteCloser uint8

func (n nullWriteCloser) Close() error {
	return nil
}

func (n nullWriteCloser) Write(p []byte) (int, error) {
	return len(p), nil
}

// CreateFile returns a writer that discards everything written to it.
func (n NullDestination) CreateFile(container, objectName string, checkHash bool, hash string) (io.WriteCloser, error) {
	return nullWriteCloser(0), nil
}

// OpenFile returns a reader over zero bytes.
func (n NullDestination) OpenFile(container, objectName string) (io.ReadCloser, int64, error) {
	return io.NopCloser(bytes.NewReader(nil)), 0, nil
}

// FileNames returns an empty string slice and nil.
func (n NullDestination) FileNames(container string) ([]string, error) {
	return []string{}, nil
}

// AuthUrl returns the empty string.
func (n NullDestination) AuthUrl() string {
	return ""
}

// AuthToken returns the empty string.
func (n NullDestination) AuthToken() string {
	return ""
}
