package stream

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// FileSource reads a file from the local filesystem in fixed-size
// chunks. The file handle is opened at construction time, owned
// exclusively by the Source, and closed automatically when the read
// completes or fails.
type FileSource struct {
	file   *os.File
	config sourceConfig
	done   bool
}

var _ Source = (*FileSource)(nil)

// NewFileSource opens the file at path for chunked reading. It fails
// immediately when the file cannot be opened, before any chunk is
// requested. The Source's name defaults to the file's base name and
// its content type is guessed from the file extension; both can be
// overridden with options.
func NewFileSource(path string, opts ...SourceOption) (*FileSource, error) {
	config := newSourceConfig(opts)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open source file %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("Unable to stat source file %s: %w", path, err)
	}
	config.contentLength = info.Size()
	if config.name == "" {
		config.name = filepath.Base(path)
	}
	if config.contentType == "" {
		config.contentType = mime.TypeByExtension(filepath.Ext(path))
	}
	return &FileSource{file: file, config: config}, nil
}

// Next reads the next chunk from the file. The file handle is closed
// as soon as the read reaches the end of the file or fails, so a
// FileSource never needs explicit cleanup by the caller.
func (s *FileSource) Next(ctx context.Context) ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		s.close()
		return nil, err
	}
	buffer := make([]byte, s.config.chunkSize)
	bytesRead, err := s.file.Read(buffer)
	if err == io.EOF {
		s.close()
		if bytesRead > 0 {
			return buffer[:bytesRead], nil
		}
		return nil, io.EOF
	}
	if err != nil {
		s.close()
		return nil, fmt.Errorf("Unable to read source file %s: %w", s.config.name, err)
	}
	return buffer[:bytesRead], nil
}

func (s *FileSource) close() {
	if !s.done {
		s.file.Close()
		s.done = true
	}
}

// ContentLength returns the size of the file as observed at
// construction time.
func (s *FileSource) ContentLength() int64 { return s.config.contentLength }

// Name returns the base name of the file unless overridden.
func (s *FileSource) Name() string { return s.config.name }

// ContentType returns the MIME type guessed from the file extension
// unless overridden.
func (s *FileSource) ContentType() string { return s.config.contentType }

// FileSink writes the consumed chunks to a file on the local
// filesystem. The file handle is opened lazily on the first Consume
// call, creating missing parent directories first unless that was
// disabled with WithCreateDirs(false).
type FileSink struct {
	path      string
	config    sinkConfig
	file      *os.File
	finalized bool
}

var _ Sink = (*FileSink)(nil)

// NewFileSink creates a Sink that writes to the file at path. The
// file itself is not touched until the first chunk arrives.
func NewFileSink(path string, opts ...SinkOption) *FileSink {
	return &FileSink{path: path, config: newSinkConfig(opts)}
}

// Consume appends one chunk to the file, opening it first if this is
// the initial chunk.
func (s *FileSink) Consume(ctx context.Context, chunk []byte) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.file == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if _, err := s.file.Write(chunk); err != nil {
		return fmt.Errorf("Failed to write chunk to %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSink) open() error {
	if s.config.createDirs {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("Failed to create parent directories for %s: %w", s.path, err)
			}
		}
	}
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("Failed to create destination file %s: %w", s.path, err)
	}
	s.file = file
	return nil
}

// Finalize closes the file handle, if one was opened. A FileSink that
// never received a chunk finalizes without touching the filesystem.
func (s *FileSink) Finalize(ctx context.Context) error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("Failed to close destination file %s: %w", s.path, err)
	}
	return nil
}
