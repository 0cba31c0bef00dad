package stream

import "io"

// NewSource builds a Source from one of the recognized origin shapes:
//
//   - a Source, returned unchanged (options are ignored)
//   - a string, treated as a filesystem path (FileSource)
//   - a []byte buffer (BytesSource)
//   - a chan []byte or <-chan []byte (ChannelSource)
//   - an io.Reader (ReaderSource)
//
// Anything else fails with an UnsupportedTypeError naming the type.
func NewSource(origin interface{}, opts ...SourceOption) (Source, error) {
	switch value := origin.(type) {
	case Source:
		return value, nil
	case string:
		return NewFileSource(value, opts...)
	case []byte:
		return NewBytesSource(value, opts...), nil
	case <-chan []byte:
		return NewChannelSource(value, opts...), nil
	case chan []byte:
		return NewChannelSource(value, opts...), nil
	case io.Reader:
		return NewReaderSource(value, opts...)
	default:
		return nil, UnsupportedTypeError{Value: origin}
	}
}

// NewSink builds a Sink from one of the recognized destination shapes:
//
//   - a Sink, returned unchanged (options are ignored)
//   - a string, treated as a filesystem path (FileSink)
//   - an io.Writer (WriterSink)
//
// Anything else fails with an UnsupportedTypeError naming the type.
func NewSink(destination interface{}, opts ...SinkOption) (Sink, error) {
	switch value := destination.(type) {
	case Sink:
		return value, nil
	case string:
		return NewFileSink(value, opts...), nil
	case io.Writer:
		return NewWriterSink(value, opts...)
	default:
		return nil, UnsupportedTypeError{Value: destination}
	}
}
