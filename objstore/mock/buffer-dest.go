package mock

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/ibmjstart/streamlygo/objstore"
)

// closableBuffer wraps the bytes.Buffer with the close method so that
// it can be used as an io.WriteCloser
type closableBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closableBuffer) Close() error {
	c.closed = true
	return nil
}

// BufferDestination implements the Destination interface and keeps
// the uploaded objects in memory for later retrieval and testing.
type BufferDestination struct {
	containers map[string]map[string]*closableBuffer
}

var _ objstore.Destination = (*BufferDestination)(nil)

// NewBufferDestination creates a new instance of BufferDestination
func NewBufferDestination() *BufferDestination {
	return &BufferDestination{
		containers: make(map[string]map[string]*closableBuffer),
	}
}

// CreateFile returns a buffer held by this BufferDestination that can
// be written into, though it may not be safe for concurrent
// operations.
func (b *BufferDestination) CreateFile(container, objectName string, checkHash bool, hash string) (io.WriteCloser, error) {
	objects, containerExists := b.containers[container]
	if !containerExists {
		objects = make(map[string]*closableBuffer)
		b.containers[container] = objects
	}
	buffer := &closableBuffer{}
	objects[objectName] = buffer
	return buffer, nil
}

// OpenFile returns a reader over the bytes previously written to the
// named object, or an error when the object does not exist.
func (b *BufferDestination) OpenFile(container, objectName string) (io.ReadCloser, int64, error) {
	buffer, err := b.object(container, objectName)
	if err != nil {
		return nil, 0, err
	}
	contents := buffer.Bytes()
	return io.NopCloser(bytes.NewReader(contents)), int64(len(contents)), nil
}

// FileNames returns the names of the objects in the given container,
// sorted for deterministic tests.
func (b *BufferDestination) FileNames(container string) ([]string, error) {
	names := make([]string, 0, len(b.containers[container]))
	for name := range b.containers[container] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Contents returns the bytes stored for the named object, for
// asserting on uploads.
func (b *BufferDestination) Contents(container, objectName string) ([]byte, error) {
	buffer, err := b.object(container, objectName)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Closed reports whether the named object's upload was closed.
func (b *BufferDestination) Closed(container, objectName string) (bool, error) {
	buffer, err := b.object(container, objectName)
	if err != nil {
		return false, err
	}
	return buffer.closed, nil
}

func (b *BufferDestination) object(container, objectName string) (*closableBuffer, error) {
	buffer, exists := b.containers[container][objectName]
	if !exists {
		return nil, fmt.Errorf("No object %s in container %s", objectName, container)
	}
	return buffer, nil
}

// AuthUrl returns the empty string.
func (b *BufferDestination) AuthUrl() string {
	return ""
}

// AuthToken returns the empty string.
func (b *BufferDestination) AuthToken() string {
	return ""
}
