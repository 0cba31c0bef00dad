package stream

import (
	"context"
	"io"
)

// NewReader returns an io.Reader view of source, so that a Source can
// feed APIs built around io.Copy. The context is captured for the
// lifetime of the reader. Not safe for concurrent use.
func NewReader(ctx context.Context, source Source) io.Reader {
	return &sourceReader{ctx: ctx, source: source}
}

type sourceReader struct {
	ctx    context.Context
	source Source
	rest   []byte
	err    error
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if len(r.rest) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, err := r.source.Next(r.ctx)
		if err != nil {
			r.err = err
			return 0, err
		}
		r.rest = chunk
	}
	copied := copy(p, r.rest)
	r.rest = r.rest[copied:]
	return copied, nil
}

// NewWriter returns an io.Writer view of sink. Writes fail with
// ErrSinkFinalized once the sink has been finalized. The context is
// captured for the lifetime of the writer. Not safe for concurrent
// use.
func NewWriter(ctx context.Context, sink Sink) io.Writer {
	return &sinkWriter{ctx: ctx, sink: sink}
}

type sinkWriter struct {
	ctx  context.Context
	sink Sink
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	if err := w.sink.Consume(w.ctx, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
