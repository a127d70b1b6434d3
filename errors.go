package mimewrap

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSidecar is returned by FindSidecar when there is no sidecar next to
	// the input.
	ErrNoSidecar = errors.New("no sidecar found")

	// ErrOutputIsInput is returned by Run when the output path names the
	// input file.
	ErrOutputIsInput = errors.New("output would overwrite the input")
)

// InputReadError is returned by Run when the input file cannot be read.
type InputReadError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (err *InputReadError) Error() string {
	return fmt.Sprintf("unable to read input %q: %v", err.Path, err.Err)
}

// Unwrap returns the underlying error.
func (err *InputReadError) Unwrap() error {
	return err.Err
}

// OutputWriteError is returned by Run when the document cannot be written.
// When it is returned, nothing has been left at the output path.
type OutputWriteError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (err *OutputWriteError) Error() string {
	return fmt.Sprintf("unable to write output %q: %v", err.Path, err.Err)
}

// Unwrap returns the underlying error.
func (err *OutputWriteError) Unwrap() error {
	return err.Err
}
