package stream

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipSink wraps another Sink so that the chunk stream is
// gzip-compressed on its way in. Finalize flushes the gzip trailer
// into the inner Sink and then finalizes it.
type GzipSink struct {
	inner     Sink
	buffer    bytes.Buffer
	writer    *gzip.Writer
	finalized bool
}

var _ Sink = (*GzipSink)(nil)

// NewGzipSink creates a compressing wrapper around inner.
func NewGzipSink(inner Sink) *GzipSink {
	sink := &GzipSink{inner: inner}
	sink.writer = gzip.NewWriter(&sink.buffer)
	return sink
}

// Consume compresses one chunk and forwards whatever compressed bytes
// the encoder emitted. Small chunks may produce no output until the
// encoder's window fills or Finalize flushes it.
func (s *GzipSink) Consume(ctx context.Context, chunk []byte) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	if _, err := s.writer.Write(chunk); err != nil {
		return fmt.Errorf("Failed to compress chunk: %w", err)
	}
	return s.forward(ctx)
}

// Finalize closes the encoder, forwards the remaining compressed
// bytes, and finalizes the inner Sink. The inner Sink is finalized
// even when the encoder fails to close cleanly.
func (s *GzipSink) Finalize(ctx context.Context) error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	err := s.writer.Close()
	if err != nil {
		err = fmt.Errorf("Failed to close gzip encoder: %w", err)
	}
	if forwardErr := s.forward(ctx); err == nil {
		err = forwardErr
	}
	if finalizeErr := s.inner.Finalize(ctx); err == nil {
		err = finalizeErr
	}
	return err
}

func (s *GzipSink) forward(ctx context.Context) error {
	if s.buffer.Len() == 0 {
		return nil
	}
	if err := s.inner.Consume(ctx, s.buffer.Bytes()); err != nil {
		return err
	}
	s.buffer.Reset()
	return nil
}

// GunzipSource wraps another Source whose chunks carry a gzip stream
// and produces the decompressed bytes. The decompressed length is
// unknown ahead of time, so ContentLength reports LengthUnknown.
type GunzipSource struct {
	inner   Source
	adapter *sourceReader
	reader  *gzip.Reader
	config  sourceConfig
	done    bool
}

var _ Source = (*GunzipSource)(nil)

// NewGunzipSource creates a decompressing wrapper around inner.
func NewGunzipSource(inner Source, opts ...SourceOption) *GunzipSource {
	return &GunzipSource{
		inner:   inner,
		adapter: &sourceReader{source: inner},
		config:  newSourceConfig(opts),
	}
}

// Next returns the next chunk of decompressed data. The gzip header
// is read lazily on the first call, so a malformed stream surfaces
// here rather than at construction.
func (s *GunzipSource) Next(ctx context.Context) ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	s.adapter.ctx = ctx
	if s.reader == nil {
		reader, err := gzip.NewReader(s.adapter)
		if err != nil {
			s.done = true
			return nil, fmt.Errorf("Unable to read gzip header: %w", err)
		}
		s.reader = reader
	}
	buffer := make([]byte, s.config.chunkSize)
	bytesRead, err := io.ReadFull(s.reader, buffer)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.done = true
		if bytesRead > 0 {
			return buffer[:bytesRead], nil
		}
		return nil, io.EOF
	}
	if err != nil {
		s.done = true
		return nil, fmt.Errorf("Unable to decompress chunk: %w", err)
	}
	return buffer[:bytesRead], nil
}

// ContentLength always reports LengthUnknown.
func (s *GunzipSource) ContentLength() int64 { return LengthUnknown }

// Name reports the inner Source's name unless overridden.
func (s *GunzipSource) Name() string {
	if s.config.name != "" {
		return s.config.name
	}
	return s.inner.Name()
}

// ContentType returns the content type supplied at construction, if any.
func (s *GunzipSource) ContentType() string { return s.config.contentType }
