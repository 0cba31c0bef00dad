package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/ibmjstart/streamlygo/stream"
)

// FromSource lifts a stream.Source into a channel of numbered Chunks.
// Read errors are reported on the errors channel and terminate the
// stream, as does cancellation of ctx. The returned channel is closed
// once the source is exhausted.
func FromSource(ctx context.Context, source stream.Source, errors chan<- error) <-chan Chunk {
	chunks := make(chan Chunk)
	go func() {
		defer close(chunks)
		var number uint
		for {
			data, err := source.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				report(ctx, errors, fmt.Errorf("Unable to read chunk %d from source: %w", number, err))
				return
			}
			if len(data) == 0 {
				continue
			}
			if !emit(ctx, chunks, Chunk{Number: number, Data: data, Size: uint(len(data))}) {
				return
			}
			number++
		}
	}()
	return chunks
}

// ToSink terminates a pipeline by consuming every incoming chunk into
// a stream.Sink. Chunks that were consumed successfully pass through
// to the returned channel. The sink is finalized exactly once when
// the input channel closes or ctx is cancelled, whichever comes
// first; consume and finalize errors are reported on the errors
// channel.
func ToSink(ctx context.Context, chunks <-chan Chunk, errors chan<- error, sink stream.Sink) <-chan Chunk {
	dataChunks := make(chan Chunk)
	go func() {
		defer close(dataChunks)
		defer func() {
			if err := sink.Finalize(context.WithoutCancel(ctx)); err != nil {
				errors <- fmt.Errorf("Failed to finalize sink: %w", err)
			}
		}()
		for chunk := range chunks {
			if err := sink.Consume(ctx, chunk.Data); err != nil {
				if !report(ctx, errors, fmt.Errorf("Failed to write chunk %d to sink: %w", chunk.Number, err)) {
					return
				}
				continue
			}
			if !emit(ctx, dataChunks, chunk) {
				return
			}
		}
	}()
	return dataChunks
}

// HashData attaches the md5 hash of a Chunk's data. Do not give it
// Chunks without Data attached. It returns errors if you do.
func HashData(ctx context.Context, chunks <-chan Chunk, errors chan<- error) <-chan Chunk {
	return Map(ctx, chunks, errors, func(chunk Chunk) (Chunk, error) {
		if len(chunk.Data) < 1 {
			return chunk, fmt.Errorf("Chunks should have data before being hashed, chunk %d lacks data", chunk.Number)
		}
		sum := md5.Sum(chunk.Data)
		chunk.Hash = hex.EncodeToString(sum[:])
		return chunk, nil
	})
}

// Counter tallies the data that passes through it, emitting an
// updated Count after every chunk. Be careful to read the outbound
// Count channel to prevent blocking the flow of data through it.
func Counter(ctx context.Context, chunks <-chan Chunk) (<-chan Chunk, <-chan Count) {
	outChunks := make(chan Chunk)
	outCount := make(chan Count, 1)
	started := time.Now()
	var current Count
	go func() {
		defer close(outChunks)
		defer close(outCount)
		for chunk := range chunks {
			current.Bytes += int64(chunk.Size)
			current.Chunks++
			current.Elapsed = time.Since(started)
			if !emit(ctx, outChunks, chunk) {
				return
			}
			select {
			case outCount <- current:
			case <-ctx.Done():
				return
			}
		}
	}()
	return outChunks, outCount
}
