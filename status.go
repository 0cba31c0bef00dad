package streamlygo

import (
	"fmt"
	"time"
)

// currentStatus monitors the current status of a transfer.
type currentStatus struct {
	totalBytes       int64
	bytesMoved       int64
	chunksMoved      uint
	transferStarted  time.Time
	transferDuration time.Duration
}

// percentComplete computes the percentage of the data that has finished moving.
// It returns zero when the total size of the transfer is unknown.
func (s *currentStatus) percentComplete() float64 {
	if s.totalBytes <= 0 {
		return 0.0
	}
	return float64(s.bytesMoved) / float64(s.totalBytes) * 100
}

// timeRemaining computes the amount of transfer time that remains based upon
// the observed transfer rate and the amount of data remaining to be moved.
func (s *currentStatus) timeRemaining() time.Duration {
	rate := s.rate()
	if s.totalBytes <= 0 || rate <= 0 {
		return time.Duration(0)
	}
	finishedIn := int(float64(s.totalBytes-s.bytesMoved) / rate)
	return time.Duration(finishedIn) * time.Second
}

// rate computes the rate of the observed transfer in bytes per second.
func (s *currentStatus) rate() float64 {
	if s.transferStarted == (time.Time{}) {
		return 0.0
	} else if s.transferDuration != (time.Duration(0)) {
		return float64(s.bytesMoved) / s.transferDuration.Seconds()
	}
	elapsed := time.Since(s.transferStarted)
	return float64(s.bytesMoved) / elapsed.Seconds()
}

// String generates a status message out of the currentStatus struct
func (s *currentStatus) String() string {
	if s.transferStarted == (time.Time{}) {
		return "Transfer not started yet"
	} else if s.transferDuration != time.Duration(0) {
		return fmt.Sprintf(
			"Transfer finished in %s at approximately %2.2f MB/sec",
			s.transferDuration,
			s.rate()/(1000*1000))
	}
	return fmt.Sprintf(
		"[%s] %3.2f%% Transferred\tAverage Speed %03.2f MB/sec\t%s Remaining",
		time.Now(),
		s.percentComplete(),
		s.rate()/(1000*1000),
		s.timeRemaining())
}

// Status tracks the progress of a Transfer. All of its methods are
// safe to call while the transfer is running; reads and updates are
// serialized by a single goroutine that owns the underlying state.
type Status struct {
	current        currentStatus
	outputChannel  chan string
	chunkCompleted chan int64
	requestStatus  chan chan *currentStatus
	signalStart    chan struct{}
	signalStop     chan struct{}
}

// NewStatus creates a new Status for a transfer of totalBytes bytes.
// Pass a negative totalBytes when the total size is unknown; percent
// and time-remaining figures will report zero in that case. Strings
// produced by Print are sent on output.
func NewStatus(totalBytes int64, output chan string) *Status {
	completed := make(chan int64)
	requestStatus := make(chan chan *currentStatus)
	signalStart, signalStop := make(chan struct{}), make(chan struct{})
	stat := &Status{
		chunkCompleted: completed,
		requestStatus:  requestStatus,
		outputChannel:  output,
		signalStart:    signalStart,
		signalStop:     signalStop,
		current: currentStatus{
			totalBytes: totalBytes,
		},
	}
	go func(s *Status) {
		for {
			select {
			case <-s.signalStart:
				s.current.transferStarted = time.Now()
				s.signalStart = nil
			case <-s.signalStop:
				s.current.transferDuration = time.Since(s.current.transferStarted)
				s.signalStop = nil
			case bytes := <-s.chunkCompleted:
				s.current.bytesMoved += bytes
				s.current.chunksMoved++
			case sendBack := <-s.requestStatus:
				sendBack <- &currentStatus{
					totalBytes:       s.current.totalBytes,
					bytesMoved:       s.current.bytesMoved,
					chunksMoved:      s.current.chunksMoved,
					transferStarted:  s.current.transferStarted,
					transferDuration: s.current.transferDuration,
				}
			}
		}
	}(stat)
	return stat
}

// Start begins timing the transfer.
func (s *Status) Start() {
	s.signalStart <- struct{}{}
}

// Stop finalizes the duration of the transfer.
func (s *Status) Stop() {
	s.signalStop <- struct{}{}
}

// chunkComplete marks that one chunk of the given size has moved.
// Call this each time a chunk is consumed successfully.
func (s *Status) chunkComplete(bytes int64) {
	s.chunkCompleted <- bytes
}

// getCurrent retrieves a pointer to a copy of the current transfer status.
func (s *Status) getCurrent() *currentStatus {
	stat := make(chan *currentStatus)
	defer close(stat)
	s.requestStatus <- stat
	return <-stat
}

// BytesMoved returns how many bytes have been delivered to the sink.
func (s *Status) BytesMoved() int64 {
	return s.getCurrent().bytesMoved
}

// ChunksMoved returns how many chunks have been delivered to the sink.
func (s *Status) ChunksMoved() uint {
	return s.getCurrent().chunksMoved
}

// TotalBytes returns the total size of the transfer, or a negative
// number when the source could not report one.
func (s *Status) TotalBytes() int64 {
	return s.getCurrent().totalBytes
}

// Rate computes the observed rate of transfer in bytes / second.
func (s *Status) Rate() float64 {
	return s.getCurrent().rate()
}

// RateMBPS computes the observed rate of transfer in megabytes / second.
func (s *Status) RateMBPS() float64 {
	return s.Rate() / 1e6
}

// TimeRemaining estimates the amount of time remaining in the transfer.
func (s *Status) TimeRemaining() time.Duration {
	return s.getCurrent().timeRemaining()
}

// PercentComplete returns how much of the transfer is complete.
func (s *Status) PercentComplete() float64 {
	return s.getCurrent().percentComplete()
}

// String creates a status message from the current state of the status.
func (s *Status) String() string {
	return s.getCurrent().String()
}

// Print sends the current status of the transfer to the output channel.
func (s *Status) Print() {
	s.outputChannel <- s.String()
}
