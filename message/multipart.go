package message

import (
	"errors"
	"fmt"
	"io"

	"github.com/zostay/mimewrap/message/header"
)

// ErrNoParts is returned by Multipart.WriteTo when there are no parts to
// write. A multipart body must hold at least one part.
var ErrNoParts = errors.New("multipart message has no parts")

// Part is an interface define the parts of a Multipart. Each Part is
// either a branch or a leaf.
//
// A branch Part is one that has sub-parts. In this case, the IsMultipart()
// method will return true and GetParts() returns them.
//
// A leaf Part is one that contains content. In this case, the IsMultipart()
// method will return false and GetReader() returns a reader for the content.
type Part interface {
	io.WriterTo

	// IsMultipart will return true if this Part is a branch with nested
	// parts.
	IsMultipart() bool

	// GetHeader is available on all Part objects.
	GetHeader() *header.Header

	// GetReader provides the content of the message, but only if IsMultipart()
	// returns false. This must return nil if IsMultipart() returns true.
	GetReader() io.Reader

	// GetParts provides the sub-parts of a multipart message. This must
	// return nil if IsMultipart() is false.
	GetParts() []Part
}

// Multipart is a multipart MIME message. When building these methods the MIME
// type set in the Content-type header should always start with multipart/*.
type Multipart struct {
	// Header is the header for the message.
	header.Header

	// parts holds this layer's parts
	parts []Part
}

// WriteTo writes the Multipart header and parts to the destination io.Writer.
// Every part is introduced by a delimiter line and the body is closed by the
// close-delimiter, each ending with the header's line break:
//
//	--boundary
//	part
//
//	--boundary--
//
// This method will fail with an error if the given message does not have a
// Content-type boundary parameter set or has no parts. May return an error on
// an IO error as well.
//
// This may only be safely called one time because it will consume all the
// bytes from all the io.Reader objects associated with the parts within.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	boundary, err := mm.GetBoundary()
	if err != nil {
		return 0, err
	}

	if len(mm.parts) == 0 {
		return 0, ErrNoParts
	}

	br := mm.Break()

	n, err := mm.Header.WriteTo(w)
	if err != nil {
		return n, err
	}

	for i, part := range mm.parts {
		if i > 0 {
			bn, err := fmt.Fprint(w, br)
			n += int64(bn)
			if err != nil {
				return n, err
			}
		}

		bn, err := fmt.Fprintf(w, "--%s%s", boundary, br)
		n += int64(bn)
		if err != nil {
			return n, err
		}

		pn, err := part.WriteTo(w)
		n += pn
		if err != nil {
			return n, err
		}
	}

	bn, err := fmt.Fprintf(w, "%s--%s--%s", br, boundary, br)
	n += int64(bn)
	return n, err
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// GetHeader returns the header for the message.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts of this message or nil if there aren't any.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}

// AddPart appends parts to the message.
func (mm *Multipart) AddPart(parts ...Part) {
	mm.parts = append(mm.parts, parts...)
}

// MultipartMixed returns a Multipart with a Content-type header set to
// multipart/mixed with the given boundary and the given parts attached.
func MultipartMixed(boundary string, parts ...Part) (*Multipart, error) {
	m := &Multipart{
		parts: parts,
	}

	if err := m.SetMediaType("multipart/mixed"); err != nil {
		return nil, err
	}

	if err := m.SetBoundary(boundary); err != nil {
		return nil, err
	}

	return m, nil
}
