package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Pump drains source into sink one chunk at a time and returns the
// number of bytes delivered. The next chunk is not requested from the
// Source until the Sink has consumed the previous one, so at most one
// chunk is in flight at any moment and chunks arrive at the Sink in
// exactly the order the Source produced them.
//
// sink.Finalize runs exactly once on every exit path, including
// cancellation, so a failed pump cycle never leaks an open resource.
// An error from the transfer itself takes priority over an error from
// Finalize; a Finalize error is reported only when the transfer
// succeeded. Pump never retries: a failed cycle must be restarted by
// the caller with fresh Source and Sink instances.
func Pump(ctx context.Context, source Source, sink Sink) (written int64, err error) {
	defer func() {
		// Finalize must run even when ctx is already cancelled, so
		// it gets a context detached from the caller's deadline.
		finalizeErr := sink.Finalize(context.WithoutCancel(ctx))
		if finalizeErr != nil && err == nil {
			err = fmt.Errorf("Failed to finalize sink: %w", finalizeErr)
		}
	}()
	for {
		// Cancellation is not checked here; it propagates through
		// Next so that sources holding an open handle observe the
		// cancelled ctx at their suspension point and release it.
		chunk, nextErr := source.Next(ctx)
		if nextErr == io.EOF {
			return written, nil
		}
		if nextErr != nil {
			if errors.Is(nextErr, context.Canceled) || errors.Is(nextErr, context.DeadlineExceeded) {
				return written, nextErr
			}
			return written, fmt.Errorf("Failed to read from source: %w", nextErr)
		}
		if len(chunk) == 0 {
			continue
		}
		if consumeErr := sink.Consume(ctx, chunk); consumeErr != nil {
			return written, fmt.Errorf("Failed to write to sink: %w", consumeErr)
		}
		written += int64(len(chunk))
	}
}
