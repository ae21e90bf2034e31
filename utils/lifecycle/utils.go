package lifecycle

import (
	"errors"
	"fmt"
)

type Instance interface {
	Close_()
	String() string
}

// AsyncInstance is driven by an AsyncManager: Step runs once per cycle until it returns an error.
// The stop channel is closed by Close; instances check it between cycles only.
type AsyncInstance interface {
	Instance
	Step(stopChan <-chan struct{}) error
}

type Manager[T Instance] interface {
	Start(func(T) error) error
	Close()
}

type AsyncManager[T AsyncInstance] interface {
	Manager[T]
	Done() <-chan struct{}
	// Err returns the error that ended the main loop, nil after a normal stop.
	// It is only meaningful once Done is closed.
	Err() error
}

type BreakError struct{}

func (*BreakError) Error() string {
	return "break"
}

type StartedAlreadyError struct{}

func (*StartedAlreadyError) Error() string {
	return "started already"
}

type StartedAfterCloseError struct{}

func (*StartedAfterCloseError) Error() string {
	return "start after close"
}

// PanicError wraps a value recovered from a panicking Step.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func isBreak(err error) bool {
	var brk *BreakError
	return errors.As(err, &brk)
}
