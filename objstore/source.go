package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/ibmjstart/streamlygo/stream"
)

// ObjectSource reads an object out of object storage in fixed-size
// chunks. The object is opened at construction time, so a missing
// object fails before any chunk is requested, and the handle is
// closed automatically when the read completes or fails.
type ObjectSource struct {
	object        io.ReadCloser
	name          string
	chunkSize     int
	contentLength int64
	done          bool
}

var _ stream.Source = (*ObjectSource)(nil)

// NewObjectSource opens container/objectName on dest for chunked
// reading. Chunk sizes below one fall back to stream.DefaultChunkSize.
func NewObjectSource(dest Destination, container, objectName string, chunkSize int) (*ObjectSource, error) {
	if chunkSize < 1 {
		chunkSize = stream.DefaultChunkSize
	}
	object, length, err := dest.OpenFile(container, objectName)
	if err != nil {
		return nil, fmt.Errorf("Unable to open source object %s/%s: %w", container, objectName, err)
	}
	return &ObjectSource{
		object:        object,
		name:          objectName,
		chunkSize:     chunkSize,
		contentLength: length,
	}, nil
}

// Next reads the next chunk from the object. The handle is closed as
// soon as the read reaches the end of the object or fails.
func (s *ObjectSource) Next(ctx context.Context) ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		s.close()
		return nil, err
	}
	buffer := make([]byte, s.chunkSize)
	bytesRead, err := s.object.Read(buffer)
	if err == io.EOF {
		s.close()
		if bytesRead > 0 {
			return buffer[:bytesRead], nil
		}
		return nil, io.EOF
	}
	if err != nil {
		s.close()
		return nil, fmt.Errorf("Unable to read source object %s: %w", s.name, err)
	}
	return buffer[:bytesRead], nil
}

func (s *ObjectSource) close() {
	if !s.done {
		s.object.Close()
		s.done = true
	}
}

// ContentLength returns the object's length as reported when it was
// opened, or stream.LengthUnknown.
func (s *ObjectSource) ContentLength() int64 { return s.contentLength }

// Name returns the name of the object within its container.
func (s *ObjectSource) Name() string { return s.name }

// ContentType returns the empty string; object storage does not
// report a content type through the Destination interface.
func (s *ObjectSource) ContentType() string { return "" }
