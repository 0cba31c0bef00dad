package stream

import (
	"context"
	"fmt"
	"io"
)

// ReaderSource forwards chunks read from a caller-supplied io.Reader.
// The Source does not own the reader; closing it (when it is also an
// io.Closer) remains the caller's responsibility. Empty reads are
// filtered out rather than delivered as zero-length chunks.
type ReaderSource struct {
	reader io.Reader
	config sourceConfig
	done   bool
}

var _ Source = (*ReaderSource)(nil)

// NewReaderSource creates a Source over reader. The content length is
// unknown unless supplied with WithContentLength.
func NewReaderSource(reader io.Reader, opts ...SourceOption) (*ReaderSource, error) {
	if reader == nil {
		return nil, fmt.Errorf("Unable to create a source from a nil reader")
	}
	return &ReaderSource{reader: reader, config: newSourceConfig(opts)}, nil
}

// Next reads up to one chunk from the wrapped reader.
func (s *ReaderSource) Next(ctx context.Context) ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	for {
		if err := ctx.Err(); err != nil {
			s.done = true
			return nil, err
		}
		buffer := make([]byte, s.config.chunkSize)
		bytesRead, err := s.reader.Read(buffer)
		if err == io.EOF {
			s.done = true
			if bytesRead > 0 {
				return buffer[:bytesRead], nil
			}
			return nil, io.EOF
		}
		if err != nil {
			s.done = true
			return nil, fmt.Errorf("Unable to read from wrapped reader: %w", err)
		}
		if bytesRead == 0 {
			continue
		}
		return buffer[:bytesRead], nil
	}
}

// ContentLength returns the length supplied at construction, or
// LengthUnknown.
func (s *ReaderSource) ContentLength() int64 { return s.config.contentLength }

// Name returns the name supplied at construction, if any.
func (s *ReaderSource) Name() string { return s.config.name }

// ContentType returns the content type supplied at construction, if any.
func (s *ReaderSource) ContentType() string { return s.config.contentType }

// ChannelSource forwards chunks received from a caller-supplied
// channel of byte slices, the shape produced by pipeline stages. The
// channel must be closed by its producer to terminate the sequence.
// Empty chunks are filtered out. The Source does not own whatever
// resource feeds the channel.
type ChannelSource struct {
	chunks <-chan []byte
	config sourceConfig
}

var _ Source = (*ChannelSource)(nil)

// NewChannelSource creates a Source over chunks. The content length
// is unknown unless supplied with WithContentLength.
func NewChannelSource(chunks <-chan []byte, opts ...SourceOption) *ChannelSource {
	return &ChannelSource{chunks: chunks, config: newSourceConfig(opts)}
}

// Next receives the next non-empty chunk, blocking until one arrives,
// the channel closes, or ctx is cancelled.
func (s *ChannelSource) Next(ctx context.Context) ([]byte, error) {
	for {
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				return nil, io.EOF
			}
			if len(chunk) == 0 {
				continue
			}
			return chunk, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ContentLength returns the length supplied at construction, or
// LengthUnknown.
func (s *ChannelSource) ContentLength() int64 { return s.config.contentLength }

// Name returns the name supplied at construction, if any.
func (s *ChannelSource) Name() string { return s.config.name }

// ContentType returns the content type supplied at construction, if any.
func (s *ChannelSource) ContentType() string { return s.config.contentType }

// WriterSink forwards each consumed chunk to a caller-supplied
// io.Writer. By default the writer's lifecycle stays with the caller;
// pass WithCloseOnFinalize(true) to have Finalize close writers that
// implement io.Closer.
type WriterSink struct {
	writer    io.Writer
	config    sinkConfig
	finalized bool
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink creates a Sink that writes into writer. It fails at
// construction when writer is nil.
func NewWriterSink(writer io.Writer, opts ...SinkOption) (*WriterSink, error) {
	if writer == nil {
		return nil, fmt.Errorf("Unable to create a sink from a nil writer")
	}
	return &WriterSink{writer: writer, config: newSinkConfig(opts)}, nil
}

// Consume writes one chunk to the wrapped writer.
func (s *WriterSink) Consume(ctx context.Context, chunk []byte) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	written, err := s.writer.Write(chunk)
	if err != nil {
		return fmt.Errorf("Failed to write chunk to wrapped writer: %w", err)
	}
	if written != len(chunk) {
		return fmt.Errorf("Failed to write chunk: wrote %d bytes of %d", written, len(chunk))
	}
	return nil
}

// Finalize optionally closes the wrapped writer.
func (s *WriterSink) Finalize(ctx context.Context) error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	closer, ok := s.writer.(io.Closer)
	if !s.config.closeOnFinalize || !ok {
		return nil
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("Failed to close wrapped writer: %w", err)
	}
	return nil
}
