package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadName is returned when a field name is empty or contains a
	// character outside of printable US-ASCII, or a colon.
	ErrBadName = errors.New("header field name is not valid")

	// ErrBadBody is returned when a field body contains a line break. Bodies
	// are folded during output, they must never carry their own line breaks.
	ErrBadBody = errors.New("header field body must not contain line breaks")
)

// BadFieldError describes a field that fails the checks made by Check or that
// cannot be encoded or folded for output.
type BadFieldError struct {
	Name string // the name as given
	Err  error  // the reason, such as ErrBadName or ErrLineTooLong
}

// Error returns the error message.
func (err *BadFieldError) Error() string {
	return fmt.Sprintf("header field %q: %v", err.Name, err.Err)
}

// Unwrap returns the reason.
func (err *BadFieldError) Unwrap() error {
	return err.Err
}

// Field is a single header field. The name and body are stored unfolded and
// unencoded. Encoding and folding only happen when the field is rendered.
type Field struct {
	name string
	body string
}

// New constructs a new field with the given name and body. No checking is
// performed. Use Check first when the values come from outside.
func New(name, body string) *Field {
	return &Field{name, body}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// SetName replaces the field name.
func (f *Field) SetName(name string) {
	f.name = name
}

// Body returns the field body.
func (f *Field) Body() string {
	return f.body
}

// SetBody replaces the field body.
func (f *Field) SetBody(body string) {
	f.body = body
}

// String returns the unfolded and unencoded field as "Name: body".
func (f *Field) String() string {
	return f.name + ": " + f.body
}

// Bytes returns the same value as String as a slice of bytes.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// Clone returns a copy of the field.
func (f *Field) Clone() *Field {
	return &Field{f.name, f.body}
}

// isFtext reports whether c may appear in a field name. RFC 5322 allows any
// printable US-ASCII character except the colon.
func isFtext(c rune) bool {
	return c >= 33 && c <= 126 && c != ':'
}

// Check verifies that the name and body can be written as a header field. It
// returns a *BadFieldError when they cannot.
func Check(name, body string) error {
	if name == "" || strings.IndexFunc(name, func(c rune) bool { return !isFtext(c) }) >= 0 {
		return &BadFieldError{name, ErrBadName}
	}

	if strings.ContainsAny(body, "\r\n") {
		return &BadFieldError{name, ErrBadBody}
	}

	return nil
}
