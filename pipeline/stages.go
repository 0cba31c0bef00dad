package pipeline

import (
	"context"
	"sync"
)

// emit sends chunk on out unless ctx is cancelled first. It reports
// whether the send happened; a false return means the stage should
// shut down.
func emit(ctx context.Context, out chan<- Chunk, chunk Chunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// report sends err on errors unless ctx is cancelled first.
func report(ctx context.Context, errors chan<- error, err error) bool {
	select {
	case errors <- err:
		return true
	case <-ctx.Done():
		return false
	}
}

// Map applies operation to each chunk that passes through it. A chunk
// whose operation fails is diverted to the errors channel instead of
// being sent on. The returned channel closes when the input closes or
// ctx is cancelled.
func Map(ctx context.Context, chunks <-chan Chunk, errors chan<- error, operation func(Chunk) (Chunk, error)) <-chan Chunk {
	dataChunks := make(chan Chunk)
	go func() {
		defer close(dataChunks)
		for chunk := range chunks {
			newChunk, err := operation(chunk)
			if err != nil {
				if !report(ctx, errors, err) {
					return
				}
				continue
			}
			if !emit(ctx, dataChunks, newChunk) {
				return
			}
		}
	}()
	return dataChunks
}

// Filter passes on only the chunks satisfying the predicate. A chunk
// whose predicate fails is diverted to the errors channel.
func Filter(ctx context.Context, chunks <-chan Chunk, errors chan<- error, predicate func(Chunk) (bool, error)) <-chan Chunk {
	dataChunks := make(chan Chunk)
	go func() {
		defer close(dataChunks)
		for chunk := range chunks {
			keep, err := predicate(chunk)
			if err != nil {
				if !report(ctx, errors, err) {
					return
				}
				continue
			}
			if keep && !emit(ctx, dataChunks, chunk) {
				return
			}
		}
	}()
	return dataChunks
}

// Separate routes each chunk to the first output channel when the
// condition holds and to the second otherwise. A chunk whose condition
// fails is diverted to the errors channel.
func Separate(ctx context.Context, chunks <-chan Chunk, errors chan<- error, condition func(Chunk) (bool, error)) (<-chan Chunk, <-chan Chunk) {
	a := make(chan Chunk)
	b := make(chan Chunk)
	go func() {
		defer close(a)
		defer close(b)
		for chunk := range chunks {
			ok, err := condition(chunk)
			if err != nil {
				if !report(ctx, errors, err) {
					return
				}
				continue
			}
			target := b
			if ok {
				target = a
			}
			if !emit(ctx, target, chunk) {
				return
			}
		}
	}()
	return a, b
}

// Fork copies every chunk to both output channels, allowing a
// pipeline to diverge. Both outputs must be drained or the stage
// stalls until ctx is cancelled.
func Fork(ctx context.Context, chunks <-chan Chunk) (<-chan Chunk, <-chan Chunk) {
	a := make(chan Chunk)
	b := make(chan Chunk)
	go func() {
		defer close(a)
		defer close(b)
		for chunk := range chunks {
			if !emit(ctx, a, chunk) || !emit(ctx, b, chunk) {
				return
			}
		}
	}()
	return a, b
}

// Divide distributes the input round-robin across divisor new
// channels, which are returned in a slice.
func Divide(ctx context.Context, chunks <-chan Chunk, divisor uint) []chan Chunk {
	chans := make([]chan Chunk, divisor)
	for i := range chans {
		chans[i] = make(chan Chunk)
	}
	go func() {
		defer func() {
			for _, channel := range chans {
				close(channel)
			}
		}()
		var count uint
		for chunk := range chunks {
			if !emit(ctx, chans[count%divisor], chunk) {
				return
			}
			count++
		}
	}()
	return chans
}

// Join performs a fan-in, merging the input channels onto one output
// channel. The output closes once every input has closed or ctx is
// cancelled.
func Join(ctx context.Context, chans ...<-chan Chunk) <-chan Chunk {
	var wg sync.WaitGroup
	chunks := make(chan Chunk)
	for _, channel := range chans {
		wg.Add(1)
		go func(c <-chan Chunk) {
			defer wg.Done()
			for chunk := range c {
				if !emit(ctx, chunks, chunk) {
					return
				}
			}
		}(channel)
	}
	go func() {
		wg.Wait()
		close(chunks)
	}()
	return chunks
}

// Consume drains the channel until it closes or ctx is cancelled,
// consigning its contents to the void.
func Consume(ctx context.Context, chunks <-chan Chunk) {
	go func() {
		for {
			select {
			case _, ok := <-chunks:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
