package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/mimewrap/message/header/field"
)

// ErrIndexOutOfRange when an attempt is made to access a header field index
// that is too large or to small.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base represents a basic email message header. It is a low-level interface
// to headers, but with the ability to apply word encoding and field folding
// during output.
type Base struct {
	lbr    Break
	vf     *field.FoldEncoding
	cs     string
	fields []*field.Field
}

// initBase initializes the Break and fields values lazily.
func (h *Base) initBase() {
	if h.lbr == Meh {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// Clone returns a deep copy of the header.
func (h *Base) Clone() *Base {
	fs := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		fs[i] = f.Clone()
	}

	return &Base{
		lbr:    h.lbr,
		vf:     h.vf,
		cs:     h.cs,
		fields: fs,
	}
}

// FoldEncoding returns the value folder used by this header during rendering.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		h.vf = field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the value folder used by this header during rendering.
func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// FieldCharset returns the charset used to write field bodies that are not
// plain ASCII as encoded words.
func (h *Base) FieldCharset() string {
	if h.cs == "" {
		return field.DefaultCharset
	}
	return h.cs
}

// SetFieldCharset changes the charset used for encoded words.
func (h *Base) SetFieldCharset(cs string) {
	h.cs = cs
}

// Break returns the line break used to separate header fields and terminate the
// header.
func (h *Base) Break() Break {
	if h.lbr == Meh {
		h.lbr = LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil if there is no such field.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetAllFieldsNamed returns all the fields with the given name, matched
// without regard to case, in header order.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	fs := make([]*field.Field, 0, 2)
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 2)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns all the fields in the header.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// InsertBeforeField will insert the given name and body values into the header
// at the given index. The index is clamped to the range of the header. It
// fails with a *field.BadFieldError if the field cannot be written.
func (h *Base) InsertBeforeField(n int, name, body string) error {
	if err := field.Check(name, body); err != nil {
		return err
	}

	h.initBase()

	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	h.fields = append(h.fields, nil)
	copy(h.fields[n+1:], h.fields[n:])
	h.fields[n] = field.New(name, body)

	return nil
}

// ClearFields removes all fields from the header.
func (h *Base) ClearFields() {
	h.initBase()
	h.fields = h.fields[:0]
}

// DeleteField removes the nth field from the header. Fails with an error if the
// given index is out of range.
func (h *Base) DeleteField(n int) error {
	h.initBase()

	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	copy(h.fields[n:], h.fields[n+1:])
	h.fields = h.fields[:len(h.fields)-1]

	return nil
}

// WriteTo writes every field, encoded and folded, each followed by the line
// break, and then the blank line that ends the header. Address fields only
// have their display names and comments encoded. A field that cannot be
// written fails with a *field.BadFieldError.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	lbr := field.Break(h.Break().Bytes())
	vf := h.FoldEncoding()
	cs := h.FieldCharset()

	total := int64(0)
	for _, f := range h.fields {
		encode := field.Encode
		if IsAddressField(f.Name()) {
			encode = EncodeAddressList
		}

		body, err := encode(cs, f.Body())
		if err != nil {
			return total, &field.BadFieldError{Name: f.Name(), Err: err}
		}

		n, err := vf.Fold(w, []byte(f.Name()+": "+body), lbr)
		total += n
		if err != nil {
			return total, &field.BadFieldError{Name: f.Name(), Err: err}
		}
	}

	n, err := w.Write(lbr)
	total += int64(n)
	return total, err
}

// Bytes returns the rendered header or nil if it cannot be rendered.
func (h *Base) Bytes() []byte {
	buf := &bytes.Buffer{}
	if _, err := h.WriteTo(buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// String returns the rendered header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}
