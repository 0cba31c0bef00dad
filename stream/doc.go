/*
Package stream implements a chunked binary transfer pipeline.

The two fixtures of the package are the Source and Sink interfaces.
A Source produces a finite, ordered sequence of byte chunks from some
origin (a file, an in-memory buffer, an io.Reader, or a channel of
byte slices). A Sink consumes chunks in order and performs a side
effect (writing a file, accumulating bytes in memory, or forwarding to
an io.Writer), then releases its resources when Finalize is called.

Pump drives a full transfer from a Source into a Sink one chunk at a
time and guarantees that the Sink is finalized on every exit path,
including cancellation and mid-stream errors. Use the NewSource and
NewSink factory functions to build a Source or Sink out of the common
origin and destination shapes, or construct a concrete variant
directly when the static type is known.

Each Source and Sink instance owns its underlying resource exclusively
for the duration of one pump cycle and is not reusable afterward. Run
concurrent transfers with independent Source/Sink pairs.
*/
package stream
