package streamlygo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ibmjstart/streamlygo/stream"
)

// Transfer binds a stream.Source to a stream.Sink and moves the data
// between them. A Transfer is single-use: sources are forward-only
// and sinks are finalized when Run returns, so retrying a failed
// transfer requires fresh Source and Sink instances.
type Transfer struct {
	// ID identifies this transfer in status output and logs.
	ID uuid.UUID
	// Status reports the live progress of the transfer.
	Status *Status
	source stream.Source
	sink   stream.Sink
}

// NewTransfer creates a Transfer that will drain source into sink.
// Strings produced by Status.Print are sent on output.
func NewTransfer(source stream.Source, sink stream.Sink, output chan string) (*Transfer, error) {
	if source == nil {
		return nil, fmt.Errorf("Unable to transfer from a nil source")
	}
	if sink == nil {
		return nil, fmt.Errorf("Unable to transfer into a nil sink")
	}
	return &Transfer{
		ID:     uuid.New(),
		Status: NewStatus(source.ContentLength(), output),
		source: source,
		sink:   sink,
	}, nil
}

// Run performs the transfer synchronously, recording per-chunk
// progress in Status. The sink is finalized on every exit path,
// including cancellation of ctx.
func (t *Transfer) Run(ctx context.Context) error {
	t.Status.Start()
	defer t.Status.Stop()
	observed := &observedSink{inner: t.sink, status: t.Status}
	if _, err := stream.Pump(ctx, t.source, observed); err != nil {
		return fmt.Errorf("Transfer %s failed: %w", t.ID, err)
	}
	return nil
}

// observedSink decorates a Sink so that every successfully consumed
// chunk is recorded in a Status.
type observedSink struct {
	inner  stream.Sink
	status *Status
}

func (o *observedSink) Consume(ctx context.Context, chunk []byte) error {
	if err := o.inner.Consume(ctx, chunk); err != nil {
		return err
	}
	o.status.chunkComplete(int64(len(chunk)))
	return nil
}

func (o *observedSink) Finalize(ctx context.Context) error {
	return o.inner.Finalize(ctx)
}
