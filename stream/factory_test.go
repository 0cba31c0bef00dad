package stream_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ibmjstart/streamlygo/stream"
)

var _ = Describe("NewSource", func() {
	Context("Given an existing Source", func() {
		It("Returns the same instance unchanged", func() {
			original := stream.NewBytesSource([]byte("data"))
			source, err := stream.NewSource(original)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source).Should(BeIdenticalTo(original))
		})
	})
	Context("Given a byte slice", func() {
		It("Builds a memory-backed source", func() {
			source, err := stream.NewSource([]byte("data"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source).Should(BeAssignableToTypeOf(&stream.BytesSource{}))
		})
	})
	Context("Given a string", func() {
		It("Treats it as a path and fails fast when the file is missing", func() {
			_, err := stream.NewSource("/nonexistent/path/to/nothing")
			Expect(err).Should(HaveOccurred())
		})
	})
	Context("Given a channel of byte slices", func() {
		It("Builds a channel-backed source", func() {
			source, err := stream.NewSource(make(chan []byte))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source).Should(BeAssignableToTypeOf(&stream.ChannelSource{}))
		})
	})
	Context("Given an io.Reader", func() {
		It("Builds a reader-backed source", func() {
			source, err := stream.NewSource(bytes.NewReader([]byte("data")))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source).Should(BeAssignableToTypeOf(&stream.ReaderSource{}))
		})
	})
	Context("Given anything else", func() {
		It("Fails with an error naming the unsupported type", func() {
			_, err := stream.NewSource(42)
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(BeAssignableToTypeOf(stream.UnsupportedTypeError{}))
			Expect(err.Error()).Should(ContainSubstring("int"))
		})
	})
})

var _ = Describe("NewSink", func() {
	Context("Given an existing Sink", func() {
		It("Returns the same instance unchanged", func() {
			original := stream.NewBufferSink()
			sink, err := stream.NewSink(original)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sink).Should(BeIdenticalTo(original))
		})
	})
	Context("Given a string", func() {
		It("Builds a path-backed sink without touching the filesystem", func() {
			sink, err := stream.NewSink("/nonexistent/dir/out.dat")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sink).Should(BeAssignableToTypeOf(&stream.FileSink{}))
		})
	})
	Context("Given an io.Writer", func() {
		It("Builds a writer-backed sink", func() {
			sink, err := stream.NewSink(&bytes.Buffer{})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sink).Should(BeAssignableToTypeOf(&stream.WriterSink{}))
		})
	})
	Context("Given anything else", func() {
		It("Fails with an error naming the unsupported type", func() {
			_, err := stream.NewSink(3.14)
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(BeAssignableToTypeOf(stream.UnsupportedTypeError{}))
			Expect(err.Error()).Should(ContainSubstring("float64"))
		})
	})
})
