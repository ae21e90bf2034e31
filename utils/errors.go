package utils

import (
	"fmt"
)

// ConfigError represents bad or missing command line arguments or configuration values.
type ConfigError struct {
	Msg string
}

// Error returns the error message for ConfigError.
func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}

// ResourceError represents a failure to acquire a file or a buffer.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the error message for ResourceError.
func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// FatalIOError represents a read failure that leaves the scan state unusable.
type FatalIOError struct {
	Err error
}

// Error returns the error message for FatalIOError.
func (e *FatalIOError) Error() string {
	return "fatal read error: " + e.Err.Error()
}

func (e *FatalIOError) Unwrap() error {
	return e.Err
}

// NoStartCodeError is returned when a whole scan region was inspected without finding a start code.
type NoStartCodeError struct {
	Scanned int64
}

// Error returns the error message for NoStartCodeError.
func (e *NoStartCodeError) Error() string {
	return fmt.Sprintf("no start code found in %d bytes", e.Scanned)
}

// CapacityExceededError is returned when an open unit no longer fits the scan region.
type CapacityExceededError struct {
	Segment  int
	Capacity int
}

// Error returns the error message for CapacityExceededError.
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("unit of %d bytes exceeded scan region capacity %d without a start code", e.Segment, e.Capacity)
}

// DestinationOverflowError is returned when the destination region cannot hold an access unit.
type DestinationOverflowError struct {
	Need int
	Free int
}

// Error returns the error message for DestinationOverflowError.
func (e *DestinationOverflowError) Error() string {
	return fmt.Sprintf("destination region overflow: need %d bytes, %d free", e.Need, e.Free)
}

// BatchOverflowError is returned when an access unit holds more units than a batch allows.
type BatchOverflowError struct {
	Max int
}

// Error returns the error message for BatchOverflowError.
func (e *BatchOverflowError) Error() string {
	return fmt.Sprintf("access unit has more than %d units", e.Max)
}

// EmptySourceError represents a looping source that yields no data even after a rewind.
type EmptySourceError struct {
}

// Error returns the error message for EmptySourceError.
func (EmptySourceError) Error() string {
	return "source is empty"
}

// StoppedError is returned by a stream reader whose producer has been closed.
type StoppedError struct {
}

// Error returns the error message for StoppedError.
func (StoppedError) Error() string {
	return "stream reader stopped"
}
