package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/ibmjstart/streamlygo/stream"
)

// ObjectSink writes the consumed chunks into a new object in object
// storage. The object upload is started lazily on the first Consume
// call and committed when Finalize closes it. A sink that never
// received a chunk finalizes without creating an object.
type ObjectSink struct {
	dest       Destination
	container  string
	objectName string
	object     io.WriteCloser
	finalized  bool
}

var _ stream.Sink = (*ObjectSink)(nil)

// NewObjectSink creates a Sink that uploads to container/objectName
// on dest.
func NewObjectSink(dest Destination, container, objectName string) *ObjectSink {
	return &ObjectSink{
		dest:       dest,
		container:  container,
		objectName: objectName,
	}
}

// Consume uploads one chunk, starting the object upload if this is
// the initial chunk.
func (s *ObjectSink) Consume(ctx context.Context, chunk []byte) error {
	if s.finalized {
		return stream.ErrSinkFinalized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.object == nil {
		object, err := s.dest.CreateFile(s.container, s.objectName, false, "")
		if err != nil {
			return fmt.Errorf("Failed to create object %s/%s: %w", s.container, s.objectName, err)
		}
		s.object = object
	}
	written, err := s.object.Write(chunk)
	if err != nil {
		return fmt.Errorf("Failed to upload chunk to %s/%s: %w", s.container, s.objectName, err)
	}
	if written != len(chunk) {
		return fmt.Errorf("Failed to upload chunk to %s/%s: wrote %d bytes of %d", s.container, s.objectName, written, len(chunk))
	}
	return nil
}

// Finalize commits the object by closing the upload, if one was
// started.
func (s *ObjectSink) Finalize(ctx context.Context) error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	if s.object == nil {
		return nil
	}
	if err := s.object.Close(); err != nil {
		return fmt.Errorf("Failed to close upload of %s/%s: %w", s.container, s.objectName, err)
	}
	return nil
}
