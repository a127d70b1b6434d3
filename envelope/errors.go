package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMediaType is returned when the media type of the attachment is
	// not of the form type/subtype.
	ErrBadMediaType = errors.New("media type must have the form type/subtype")

	// ErrMultipartMediaType is returned when the attachment is labeled with a
	// multipart/* media type. The attachment is always a single opaque part.
	ErrMultipartMediaType = errors.New("attachment media type must not be multipart")

	// ErrTransferEncoding is returned when a Content-Transfer-Encoding entry
	// names an encoding that cannot carry arbitrary bytes.
	ErrTransferEncoding = errors.New("transfer encoding must be base64 or quoted-printable")

	// ErrRepeatedField is returned when a field that may only appear once on
	// the attachment is given more than once.
	ErrRepeatedField = errors.New("field may only be given once")
)

// BuildError is returned by Assemble when the document cannot be built. Name
// holds the header field at fault, when there is one.
type BuildError struct {
	Name string
	Err  error
}

// Error returns the error message.
func (err *BuildError) Error() string {
	if err.Name == "" {
		return fmt.Sprintf("unable to build document: %v", err.Err)
	}
	return fmt.Sprintf("unable to build document: header field %q: %v", err.Name, err.Err)
}

// Unwrap returns the underlying error.
func (err *BuildError) Unwrap() error {
	return err.Err
}
