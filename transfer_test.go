package streamlygo_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ibmjstart/streamlygo"
	"github.com/ibmjstart/streamlygo/stream"
)

// refusingSink fails every consume call but records finalization.
type refusingSink struct {
	finalized int
}

func (s *refusingSink) Consume(ctx context.Context, chunk []byte) error {
	return fmt.Errorf("refusing chunk")
}

func (s *refusingSink) Finalize(ctx context.Context) error {
	s.finalized++
	return nil
}

var _ = Describe("Transfer", func() {
	var (
		payload []byte
		out     chan string
	)

	BeforeEach(func() {
		payload = make([]byte, 1024)
		for i := range payload {
			payload[i] = byte(rand.Int())
		}
		out = make(chan string, 10)
	})

	Describe("Creating a Transfer", func() {
		Context("With valid input", func() {
			It("Should not return an error", func() {
				_, err := streamlygo.NewTransfer(
					stream.NewBytesSource(payload), stream.NewBufferSink(), out)
				Expect(err).ShouldNot(HaveOccurred())
			})
			It("Assigns a unique ID", func() {
				first, err := streamlygo.NewTransfer(
					stream.NewBytesSource(payload), stream.NewBufferSink(), out)
				Expect(err).ShouldNot(HaveOccurred())
				second, err := streamlygo.NewTransfer(
					stream.NewBytesSource(payload), stream.NewBufferSink(), out)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(first.ID).ShouldNot(Equal(second.ID))
			})
		})
		Context("With nil as the source", func() {
			It("Should return an error", func() {
				_, err := streamlygo.NewTransfer(nil, stream.NewBufferSink(), out)
				Expect(err).Should(HaveOccurred())
			})
		})
		Context("With nil as the sink", func() {
			It("Should return an error", func() {
				_, err := streamlygo.NewTransfer(stream.NewBytesSource(payload), nil, out)
				Expect(err).Should(HaveOccurred())
			})
		})
	})

	Describe("Running a Transfer", func() {
		It("Moves all of the data and reports full progress", func() {
			sink := stream.NewBufferSink()
			transfer, err := streamlygo.NewTransfer(
				stream.NewBytesSource(payload, stream.WithChunkSize(100)), sink, out)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(transfer.Run(context.Background())).Should(Succeed())
			Expect(sink.Bytes()).Should(Equal(payload))
			Expect(transfer.Status.BytesMoved()).Should(Equal(int64(len(payload))))
			Expect(transfer.Status.ChunksMoved()).Should(Equal(uint(11)))
			Expect(transfer.Status.PercentComplete()).Should(BeNumerically("~", 100.0))
			Expect(transfer.Status.String()).Should(ContainSubstring("finished"))
		})
		It("Copies a file end to end", func() {
			tempDir := GinkgoT().TempDir()
			sourcePath := filepath.Join(tempDir, "in.dat")
			destPath := filepath.Join(tempDir, "out.dat")
			Expect(os.WriteFile(sourcePath, payload, 0o644)).Should(Succeed())
			source, err := stream.NewFileSource(sourcePath, stream.WithChunkSize(128))
			Expect(err).ShouldNot(HaveOccurred())
			transfer, err := streamlygo.NewTransfer(source, stream.NewFileSink(destPath), out)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(transfer.Run(context.Background())).Should(Succeed())
			copied, err := os.ReadFile(destPath)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(copied).Should(Equal(payload))
		})
		Context("When the sink refuses data", func() {
			It("Fails but still finalizes the sink and records no progress", func() {
				sink := &refusingSink{}
				transfer, err := streamlygo.NewTransfer(
					stream.NewBytesSource(payload), sink, out)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(transfer.Run(context.Background())).Should(HaveOccurred())
				Expect(sink.finalized).Should(Equal(1))
				Expect(transfer.Status.BytesMoved()).Should(BeZero())
			})
		})
		Context("When the context is already cancelled", func() {
			It("Fails without moving data", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				sink := stream.NewBufferSink()
				transfer, err := streamlygo.NewTransfer(
					stream.NewBytesSource(payload), sink, out)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(transfer.Run(ctx)).Should(HaveOccurred())
				Expect(sink.Bytes()).Should(BeEmpty())
			})
		})
	})
})
