package emulator

import (
	"errors"

	"github.com/ezrec/baby/cpu"
	"github.com/ezrec/baby/translate"
)

var f = translate.From

var (
	// Error kinds, for errors.Is()
	ErrLimit = errors.New(f("limit exceeded"))
)

// ErrMemorySize is an unsupported store size.
type ErrMemorySize int

func (err ErrMemorySize) Error() string {
	return f("store size %d not one of %d or %d", int(err), cpu.MEMORY_SMALL, cpu.MEMORY_LARGE)
}

func (err ErrMemorySize) Is(target error) bool {
	return target == cpu.ErrResource
}

// ErrTickLimit is raised when a run exceeds its cycle guard.
type ErrTickLimit int

func (err ErrTickLimit) Error() string {
	return f("halted after %d ticks", int(err))
}

func (err ErrTickLimit) Is(target error) bool {
	return target == ErrLimit
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address int
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %d: %v", err.Address, err.Err)
	}
	return f("address %d (line %d): %v", err.Address, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
