package pipeline

import (
	"fmt"
	"time"
)

// Count is a running tally of the data that has flowed through a
// Counter stage: total bytes, number of chunks, and the time elapsed
// since the stage started. Placing Counters in different regions of a
// pipeline shows where its throughput is spent.
type Count struct {
	Bytes   int64
	Chunks  uint
	Elapsed time.Duration
}

// Rate returns the observed flow in bytes per second, or zero before
// any time has elapsed.
func (c Count) Rate() float64 {
	if c.Elapsed <= 0 {
		return 0
	}
	return float64(c.Bytes) / c.Elapsed.Seconds()
}

// RateMBPS returns the observed flow in megabytes per second.
func (c Count) RateMBPS() float64 {
	return c.Rate() / 1e6
}

// String summarizes the tally for progress output.
func (c Count) String() string {
	return fmt.Sprintf("%d chunks (%d bytes) in %s at %.2f MB/sec",
		c.Chunks, c.Bytes, c.Elapsed, c.RateMBPS())
}
