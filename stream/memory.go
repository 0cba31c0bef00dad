package stream

import (
	"bytes"
	"context"
	"io"
)

// BytesSource slices an in-memory byte buffer into fixed-size chunks.
// It owns no external resource and never blocks.
type BytesSource struct {
	data   []byte
	offset int
	config sourceConfig
}

var _ Source = (*BytesSource)(nil)

// NewBytesSource creates a Source over data. The buffer is not
// copied; the caller must not mutate it while the Source is in use.
func NewBytesSource(data []byte, opts ...SourceOption) *BytesSource {
	config := newSourceConfig(opts)
	config.contentLength = int64(len(data))
	return &BytesSource{data: data, config: config}
}

// Next returns the next slice of up to chunkSize bytes. Every chunk
// except possibly the last has exactly chunkSize bytes.
func (s *BytesSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.offset >= len(s.data) {
		return nil, io.EOF
	}
	end := s.offset + s.config.chunkSize
	if end > len(s.data) {
		end = len(s.data)
	}
	chunk := s.data[s.offset:end]
	s.offset = end
	return chunk, nil
}

// ContentLength returns the length of the wrapped buffer.
func (s *BytesSource) ContentLength() int64 { return s.config.contentLength }

// Name returns the name supplied at construction, if any.
func (s *BytesSource) Name() string { return s.config.name }

// ContentType returns the content type supplied at construction, if any.
func (s *BytesSource) ContentType() string { return s.config.contentType }

// BufferSink accumulates the consumed chunks into a growable
// in-memory buffer. After Finalize the buffer is frozen and further
// Consume calls fail with ErrSinkFinalized.
type BufferSink struct {
	contents  bytes.Buffer
	finalized bool
}

var _ Sink = (*BufferSink)(nil)

// NewBufferSink creates an empty in-memory Sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Consume appends one chunk to the buffer.
func (s *BufferSink) Consume(ctx context.Context, chunk []byte) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	s.contents.Write(chunk)
	return nil
}

// Finalize marks the buffer closed for writing. The accumulated bytes
// remain readable through Bytes.
func (s *BufferSink) Finalize(ctx context.Context) error {
	s.finalized = true
	return nil
}

// Bytes returns the accumulated contents of the sink.
func (s *BufferSink) Bytes() []byte {
	return s.contents.Bytes()
}

// Len returns the number of bytes accumulated so far.
func (s *BufferSink) Len() int {
	return s.contents.Len()
}
