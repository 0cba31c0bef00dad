package stream

import "context"

// DefaultChunkSize is the chunk size used by Sources that are not
// given an explicit size via WithChunkSize.
const DefaultChunkSize = 8 * 1024

// LengthUnknown is returned by ContentLength when a Source cannot
// know the total number of bytes it will produce.
const LengthUnknown int64 = -1

// Source produces a finite, ordered sequence of byte chunks from some
// origin. A Source is forward-only: once Next has returned io.EOF the
// underlying resource is exhausted and the Source cannot be rewound.
type Source interface {
	// Next returns the next chunk of data, or io.EOF after the final
	// chunk has been returned. A chunk is never retained by the
	// Source after Next returns it.
	Next(ctx context.Context) ([]byte, error)
	// ContentLength returns the total number of bytes this Source
	// will produce, or LengthUnknown.
	ContentLength() int64
	// Name returns the descriptive name of the data, or the empty
	// string when none was supplied.
	Name() string
	// ContentType returns the MIME type of the data, or the empty
	// string when none was supplied.
	ContentType() string
}

// Sink consumes an ordered sequence of byte chunks and performs a
// side effect with them. Finalize must be invoked exactly once, after
// the last chunk, on every exit path; Pump enforces this. A Sink
// rejects Consume calls made after Finalize with ErrSinkFinalized.
type Sink interface {
	// Consume applies the Sink's side effect for one chunk.
	Consume(ctx context.Context, chunk []byte) error
	// Finalize releases the Sink's underlying resource. A finalized
	// Sink accepts no further chunks.
	Finalize(ctx context.Context) error
}
