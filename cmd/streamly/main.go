// Command streamly copies chunked binary data between files, standard
// streams, and OpenStack object storage.
//
// Usage:
//
//	streamly [flags] SOURCE DEST
//
// SOURCE and DEST name a file path, "-" for stdin/stdout, or an
// object storage location of the form swift://container/object.
// Object storage credentials are read from the OS_USERNAME, OS_API_KEY,
// OS_AUTH_URL, OS_DOMAIN, and OS_TENANT environment variables, which
// can also be supplied through a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ibmjstart/streamlygo"
	"github.com/ibmjstart/streamlygo/objstore"
	"github.com/ibmjstart/streamlygo/stream"
)

const swiftScheme = "swift://"

func main() {
	var (
		chunkSize = pflag.Int("chunk-size", stream.DefaultChunkSize, "maximum number of bytes per chunk read from the source")
		compress  = pflag.Bool("gzip", false, "gzip-compress the data on its way into the destination")
		expand    = pflag.Bool("gunzip", false, "gzip-decompress the data on its way out of the source")
		quiet     = pflag.Bool("quiet", false, "suppress periodic progress output")
		envFile   = pflag.String("env-file", "", "path of a .env file holding object storage credentials")
	)
	pflag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if pflag.NArg() != 2 {
		logger.Fatal("Expected exactly two arguments: SOURCE and DEST",
			zap.Strings("args", pflag.Args()))
	}
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Fatal("Unable to load env file", zap.String("path", *envFile), zap.Error(err))
		}
	} else {
		// A .env in the working directory is optional.
		_ = godotenv.Load()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := buildSource(pflag.Arg(0), *chunkSize)
	if err != nil {
		logger.Fatal("Unable to open source", zap.String("source", pflag.Arg(0)), zap.Error(err))
	}
	if *expand {
		source = stream.NewGunzipSource(source, stream.WithChunkSize(*chunkSize))
	}
	sink, err := buildSink(pflag.Arg(1))
	if err != nil {
		logger.Fatal("Unable to open destination", zap.String("dest", pflag.Arg(1)), zap.Error(err))
	}
	if *compress {
		sink = stream.NewGzipSink(sink)
	}

	output := make(chan string, 10)
	transfer, err := streamlygo.NewTransfer(source, sink, output)
	if err != nil {
		logger.Fatal("Unable to set up transfer", zap.Error(err))
	}
	go func() {
		for message := range output {
			logger.Info(message, zap.String("transfer", transfer.ID.String()))
		}
	}()
	if !*quiet {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					transfer.Status.Print()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if err := transfer.Run(ctx); err != nil {
		logger.Fatal("Transfer failed",
			zap.String("transfer", transfer.ID.String()),
			zap.Int64("bytesMoved", transfer.Status.BytesMoved()),
			zap.Error(err))
	}
	logger.Info("Transfer complete",
		zap.String("transfer", transfer.ID.String()),
		zap.Int64("bytesMoved", transfer.Status.BytesMoved()),
		zap.String("status", transfer.Status.String()))
}

// buildSource maps a command line argument to a stream.Source.
func buildSource(arg string, chunkSize int) (stream.Source, error) {
	switch {
	case arg == "-":
		return stream.NewReaderSource(os.Stdin,
			stream.WithChunkSize(chunkSize), stream.WithName("stdin"))
	case strings.HasPrefix(arg, swiftScheme):
		dest, container, object, err := swiftEndpoint(arg)
		if err != nil {
			return nil, err
		}
		return objstore.NewObjectSource(dest, container, object, chunkSize)
	default:
		return stream.NewFileSource(arg, stream.WithChunkSize(chunkSize))
	}
}

// buildSink maps a command line argument to a stream.Sink.
func buildSink(arg string) (stream.Sink, error) {
	switch {
	case arg == "-":
		return stream.NewWriterSink(os.Stdout)
	case strings.HasPrefix(arg, swiftScheme):
		dest, container, object, err := swiftEndpoint(arg)
		if err != nil {
			return nil, err
		}
		return objstore.NewObjectSink(dest, container, object), nil
	default:
		return stream.NewFileSink(arg), nil
	}
}

// swiftEndpoint authenticates against object storage using the
// standard OpenStack environment variables and splits a
// swift://container/object argument into its parts.
func swiftEndpoint(arg string) (objstore.Destination, string, string, error) {
	location := strings.TrimPrefix(arg, swiftScheme)
	container, object, found := strings.Cut(location, "/")
	if !found || container == "" || object == "" {
		return nil, "", "", fmt.Errorf("Expected swift://container/object, got %s", arg)
	}
	dest, err := objstore.Authenticate(
		os.Getenv("OS_USERNAME"),
		os.Getenv("OS_API_KEY"),
		os.Getenv("OS_AUTH_URL"),
		os.Getenv("OS_DOMAIN"),
		os.Getenv("OS_TENANT"),
	)
	if err != nil {
		return nil, "", "", err
	}
	return dest, container, object, nil
}
