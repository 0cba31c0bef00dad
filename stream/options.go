package stream

// sourceConfig collects the tunables shared by the Source variants.
type sourceConfig struct {
	chunkSize     int
	name          string
	contentType   string
	contentLength int64
}

func newSourceConfig(opts []SourceOption) sourceConfig {
	config := sourceConfig{
		chunkSize:     DefaultChunkSize,
		contentLength: LengthUnknown,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.chunkSize < 1 {
		config.chunkSize = DefaultChunkSize
	}
	return config
}

// SourceOption configures a Source at construction time.
type SourceOption func(*sourceConfig)

// WithChunkSize sets the maximum number of bytes per chunk. Sizes
// below one are ignored in favor of DefaultChunkSize. Chunk size is a
// read-side tuning knob; a Sink consumes whatever sizes it is given.
func WithChunkSize(size int) SourceOption {
	return func(c *sourceConfig) {
		c.chunkSize = size
	}
}

// WithName sets the descriptive name reported by the Source.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// WithContentType sets the MIME type reported by the Source.
func WithContentType(contentType string) SourceOption {
	return func(c *sourceConfig) {
		c.contentType = contentType
	}
}

// WithContentLength declares the total number of bytes the Source
// will produce. Only useful for Sources that cannot discover their
// own length, such as ReaderSource and ChannelSource.
func WithContentLength(length int64) SourceOption {
	return func(c *sourceConfig) {
		c.contentLength = length
	}
}

// sinkConfig collects the tunables shared by the Sink variants.
type sinkConfig struct {
	createDirs      bool
	closeOnFinalize bool
}

func newSinkConfig(opts []SinkOption) sinkConfig {
	config := sinkConfig{createDirs: true}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

// SinkOption configures a Sink at construction time.
type SinkOption func(*sinkConfig)

// WithCreateDirs controls whether a FileSink creates missing parent
// directories before its first write. Enabled by default.
func WithCreateDirs(create bool) SinkOption {
	return func(c *sinkConfig) {
		c.createDirs = create
	}
}

// WithCloseOnFinalize controls whether a WriterSink closes its
// wrapped writer during Finalize, when the writer is an io.Closer.
// Disabled by default because the Sink does not own a caller-supplied
// writer's lifecycle.
func WithCloseOnFinalize(close bool) SinkOption {
	return func(c *sinkConfig) {
		c.closeOnFinalize = close
	}
}
