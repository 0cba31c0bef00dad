package stream_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ibmjstart/streamlygo/stream"
)

// faultySource produces a fixed number of chunks and then fails
// instead of ending the sequence.
type faultySource struct {
	remaining int
}

func (s *faultySource) Next(ctx context.Context) ([]byte, error) {
	if s.remaining == 0 {
		return nil, fmt.Errorf("source gave out")
	}
	s.remaining--
	return []byte("chunk"), nil
}

func (s *faultySource) ContentLength() int64 { return stream.LengthUnknown }
func (s *faultySource) Name() string         { return "faulty" }
func (s *faultySource) ContentType() string  { return "" }

// gappySource interleaves empty chunks with real ones.
type gappySource struct {
	chunks [][]byte
}

func (s *gappySource) Next(ctx context.Context) ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

func (s *gappySource) ContentLength() int64 { return stream.LengthUnknown }
func (s *gappySource) Name() string         { return "gappy" }
func (s *gappySource) ContentType() string  { return "" }

// cancellingSink cancels a context as a side effect of consuming its
// first chunk, then keeps accepting chunks normally.
type cancellingSink struct {
	cancel   context.CancelFunc
	consumed int
}

func (s *cancellingSink) Consume(ctx context.Context, chunk []byte) error {
	s.consumed++
	s.cancel()
	return nil
}

func (s *cancellingSink) Finalize(ctx context.Context) error { return nil }

// observingSink records every chunk length and counts finalizations.
type observingSink struct {
	chunkSizes  []int
	consumed    []byte
	finalized   int
	consumeErr  error
	finalizeErr error
}

func (s *observingSink) Consume(ctx context.Context, chunk []byte) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}
	s.chunkSizes = append(s.chunkSizes, len(chunk))
	s.consumed = append(s.consumed, chunk...)
	return nil
}

func (s *observingSink) Finalize(ctx context.Context) error {
	s.finalized++
	return s.finalizeErr
}

var _ = Describe("Pump", func() {
	Context("Moving memory to memory", func() {
		It("Round-trips the bytes exactly", func() {
			payload := []byte("The quick brown fox jumps over the lazy dog")
			sink := stream.NewBufferSink()
			written, err := stream.Pump(context.Background(),
				stream.NewBytesSource(payload, stream.WithChunkSize(7)), sink)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(written).Should(Equal(int64(len(payload))))
			Expect(sink.Bytes()).Should(Equal(payload))
		})
		It("Round-trips the empty payload", func() {
			sink := stream.NewBufferSink()
			written, err := stream.Pump(context.Background(),
				stream.NewBytesSource(nil), sink)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(written).Should(BeZero())
			Expect(sink.Bytes()).Should(BeEmpty())
		})
		It("Delivers chunks in order with the expected sizes", func() {
			sink := &observingSink{}
			_, err := stream.Pump(context.Background(),
				stream.NewBytesSource([]byte("ABCDEFGHIJ"), stream.WithChunkSize(4)), sink)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sink.chunkSizes).Should(Equal([]int{4, 4, 2}))
			Expect(sink.consumed).Should(Equal([]byte("ABCDEFGHIJ")))
			Expect(sink.finalized).Should(Equal(1))
		})
	})
	Context("When the source fails partway through", func() {
		It("Propagates the error and still finalizes the sink exactly once", func() {
			sink := &observingSink{}
			_, err := stream.Pump(context.Background(), &faultySource{remaining: 3}, sink)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("source gave out"))
			Expect(sink.chunkSizes).Should(HaveLen(3))
			Expect(sink.finalized).Should(Equal(1))
		})
	})
	Context("When the sink fails to consume", func() {
		It("Propagates the error and still finalizes the sink exactly once", func() {
			sink := &observingSink{consumeErr: fmt.Errorf("sink full")}
			_, err := stream.Pump(context.Background(),
				stream.NewBytesSource([]byte("data")), sink)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("sink full"))
			Expect(sink.finalized).Should(Equal(1))
		})
	})
	Context("When the context is cancelled", func() {
		It("Stops pumping but still finalizes the sink", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			sink := &observingSink{}
			_, err := stream.Pump(ctx, stream.NewBytesSource([]byte("data")), sink)
			Expect(err).Should(MatchError(context.Canceled))
			Expect(sink.finalized).Should(Equal(1))
		})
		It("Releases a file-backed source cancelled between chunks", func() {
			path := filepath.Join(GinkgoT().TempDir(), "big.dat")
			payload := make([]byte, 64*1024)
			Expect(os.WriteFile(path, payload, 0o644)).Should(Succeed())
			source, err := stream.NewFileSource(path, stream.WithChunkSize(4096))
			Expect(err).ShouldNot(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sink := &cancellingSink{cancel: cancel}
			written, err := stream.Pump(ctx, source, sink)
			Expect(err).Should(MatchError(context.Canceled))
			Expect(sink.consumed).Should(Equal(1))
			Expect(written).Should(Equal(int64(4096)))

			// The cancelled read must have closed the file handle,
			// which a FileSource reports by ending the sequence.
			_, nextErr := source.Next(context.Background())
			Expect(nextErr).Should(Equal(io.EOF))
		})
	})
	Context("When only Finalize fails", func() {
		It("Surfaces the finalize error", func() {
			sink := &observingSink{finalizeErr: fmt.Errorf("would not close")}
			_, err := stream.Pump(context.Background(),
				stream.NewBytesSource([]byte("data")), sink)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("would not close"))
		})
	})
	Context("When both the transfer and Finalize fail", func() {
		It("Reports the transfer error", func() {
			sink := &observingSink{
				consumeErr:  fmt.Errorf("sink full"),
				finalizeErr: fmt.Errorf("would not close"),
			}
			_, err := stream.Pump(context.Background(),
				stream.NewBytesSource([]byte("data")), sink)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("sink full"))
		})
	})
	Context("With a source that yields empty chunks", func() {
		It("Skips them instead of delivering them", func() {
			source := &gappySource{chunks: [][]byte{[]byte("a"), {}, []byte("b"), {}}}
			sink := &observingSink{}
			written, err := stream.Pump(context.Background(), source, sink)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(written).Should(Equal(int64(2)))
			Expect(sink.chunkSizes).Should(Equal([]int{1, 1}))
		})
	})
	Context("Draining an empty file", func() {
		It("Completes with zero consume calls and one finalize call", func() {
			path := filepath.Join(GinkgoT().TempDir(), "empty.dat")
			Expect(os.WriteFile(path, nil, 0o644)).Should(Succeed())
			source, err := stream.NewFileSource(path)
			Expect(err).ShouldNot(HaveOccurred())
			sink := &observingSink{}
			written, err := stream.Pump(context.Background(), source, sink)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(written).Should(BeZero())
			Expect(sink.chunkSizes).Should(BeEmpty())
			Expect(sink.finalized).Should(Equal(1))
		})
	})
	Context("Moving a file to a file", func() {
		It("Copies the contents faithfully", func() {
			tempDir := GinkgoT().TempDir()
			sourcePath := filepath.Join(tempDir, "in.dat")
			destPath := filepath.Join(tempDir, "out.dat")
			payload := []byte("some file contents that span multiple chunks")
			Expect(os.WriteFile(sourcePath, payload, 0o644)).Should(Succeed())
			source, err := stream.NewFileSource(sourcePath, stream.WithChunkSize(8))
			Expect(err).ShouldNot(HaveOccurred())
			written, err := stream.Pump(context.Background(), source, stream.NewFileSink(destPath))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(written).Should(Equal(int64(len(payload))))
			copied, err := os.ReadFile(destPath)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(copied).Should(Equal(payload))
		})
	})
})
