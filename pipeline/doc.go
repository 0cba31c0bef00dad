/*
Package pipeline implements low-level channel-based chunk plumbing.

Most of the functions defined in this package are stages that
communicate with channels of type Chunk. A Chunk is one numbered
region of a byte payload moving between a stream.Source and a
stream.Sink.

To use the pipeline, start with the FromSource stage to lift a
stream.Source into a channel of Chunks, or make your own data source.
Pass channels of Chunks to each stage, and use the return value of one
stage as input to the next. Terminate with ToSink, or with Consume if
the data's side effects have already happened in earlier stages.

The API expects an errors channel to be passed to most stages that
will allow it to report nonfatal errors. It is generally sufficient to
create a single errors channel and pass it to all stages. Ensure that
you drain the errors channel though, or your pipeline will block on
the first error that it encounters.

Every stage takes a context.Context and shuts down when it is
cancelled, even when parked on a send to an undrained channel, so a
cancelled pipeline never strands its goroutines. Cancelling the
context shared by all stages tears the whole pipeline down.
*/
package pipeline
