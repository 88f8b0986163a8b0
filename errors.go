package protomsg

import (
	"errors"
	"fmt"
)

var (
	// ErrUnaligned indicates the buffer does not start on a 4-byte boundary.
	// The format requires aligned buffers; realignment is the caller's job.
	ErrUnaligned = errors.New("protomsg: buffer is not 4-byte aligned")

	// ErrTruncatedHeader indicates the buffer is shorter than the fixed
	// 24-byte header.
	ErrTruncatedHeader = errors.New("protomsg: buffer truncates the header")

	// ErrTooManyParams indicates the declared parameter count exceeds
	// MaxParams.
	ErrTooManyParams = errors.New("protomsg: parameter count exceeds maximum")

	// ErrTruncatedSizeArray indicates the buffer ends inside the parameter
	// size array.
	ErrTruncatedSizeArray = errors.New("protomsg: buffer truncates the parameter size array")

	// ErrParamOutOfBounds indicates a declared parameter payload extends
	// past the end of the buffer. The concrete error is a *ParamBoundsError
	// carrying the offending index; this sentinel exists for errors.Is.
	ErrParamOutOfBounds = errors.New("protomsg: parameter data out of bounds")

	// ErrNoHandler indicates a Dispatcher received a message whose action
	// code has no registered handler.
	ErrNoHandler = errors.New("protomsg: no handler registered for action")
)

// ParamBoundsError reports a parameter whose declared size runs past the end
// of the buffer, found during offset precomputation. It matches
// ErrParamOutOfBounds under errors.Is.
type ParamBoundsError struct {
	Index  int    // index of the offending parameter
	End    uint64 // byte offset the parameter's payload would end at
	BufLen int    // actual buffer length
}

func (e *ParamBoundsError) Error() string {
	return fmt.Sprintf("protomsg: parameter %d data out of bounds: ends at %d, buffer is %d bytes",
		e.Index, e.End, e.BufLen)
}

func (e *ParamBoundsError) Is(target error) bool {
	return target == ErrParamOutOfBounds
}
