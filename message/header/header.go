package header

import (
	"errors"

	"github.com/zostay/mimewrap/message/header/field"
	"github.com/zostay/mimewrap/message/header/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")
)

// These are standard headers defined in RFC 5322 and RFC 2045.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-Disposition"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	MIMEVersion             = "MIME-Version"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Header wraps a Base, which does the actual storage and low-level field
// manipulation. This provides several methods to make reading and manipulating
// the header more convenient.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	return &Header{Base: *h.Base.Clone()}
}

// Add appends a new field to the end of the header, leaving any existing
// fields with the same name in place.
func (h *Header) Add(name, body string) error {
	return h.InsertBeforeField(h.Len(), name, body)
}

// Get retrieves the string value of the named field.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple headers for the given named field,
// it will return the first value found and return ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll fetches all the header field bodies for fields with the given
// name and returns them as a slice of strings.
//
// It returns nil with ErrNoSuchField if no field with the given name is set on
// the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// Set will replace all existing header fields with the given name with a single
// header field with the given name and body. If the field already exists on the
// header, then the first occurrence will be replaced with this value and any
// other values will be deleted. If the field does not exist, it will be
// appended to the end of the header.
func (h *Header) Set(name, body string) error {
	ixs := h.GetIndexesNamed(name)

	if len(ixs) == 0 {
		return h.Add(name, body)
	}

	if err := field.Check(name, body); err != nil {
		return err
	}

	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	f := h.GetField(ixs[0])
	f.SetName(name)
	f.SetBody(body)

	return nil
}

// GetParamValue will return a param.Value for the header field matching the
// given name.
//
// This will return an error if it is unable to parse a param.Value. This will
// ErrNoSuchField if no field with the given name is present. It will return
// ErrManyFields if more than one field with the given name is found.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	return param.Parse(body)
}

// SetParamValue will replace all existing header fields with the given name
// with a single param.Value header containing the given param.Value.
func (h *Header) SetParamValue(name string, pv *param.Value) error {
	body, err := pv.Format()
	if err != nil {
		return err
	}

	return h.Set(name, body)
}

// getParamValueParam gets a parameter value of the param.Value header or
// returns an error.
func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}

	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets a parameter value of the param.Value header. The
// header must already exist before calling this method.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}

	return h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
}

// setParamValueValue sets the primary value of the param.Value header,
// preserving any parameters already present.
func (h *Header) setParamValueValue(name, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		pv = param.New(v)
	} else {
		pv = param.Modify(pv, param.Change(v))
	}

	return h.SetParamValue(name, pv)
}

// GetContentType returns the Content-Type header as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetMediaType returns the MIME type set in the Content-Type header (other
// parameters will not be returned).
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// SetMediaType replaces the MIME type on the Content-Type header, creating it
// if it has not been set yet. Any parameters already set are preserved.
func (h *Header) SetMediaType(mt string) error {
	return h.setParamValueValue(ContentType, mt)
}

// GetBoundary gets the boundary from the Content-Type header field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header. This method returns an empty string with
// ErrNoSuchFieldParameter if the field is present, but the parameter is not set
// on the field.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary on the Content-Type header. This method fails
// with ErrNoSuchField if the field is not set on the header.
func (h *Header) SetBoundary(b string) error {
	return h.setParamValueParam(ContentType, param.Boundary, b)
}

// GetPresentation returns the primary value of the Content-Disposition
// header, describing what the function of this part of the message is.
func (h *Header) GetPresentation() (string, error) {
	pv, err := h.GetParamValue(ContentDisposition)
	if err != nil {
		return "", err
	}
	return pv.Disposition(), nil
}

// SetPresentation sets the primary value of the Content-Disposition header,
// usually "inline" or "attachment", creating the header when missing.
func (h *Header) SetPresentation(d string) error {
	return h.setParamValueValue(ContentDisposition, d)
}

// GetFilename gets the filename parameter of the Content-Disposition header.
func (h *Header) GetFilename() (string, error) {
	return h.getParamValueParam(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter of the Content-Disposition header.
// This method fails with ErrNoSuchField if the field is not set on the header.
func (h *Header) SetFilename(f string) error {
	return h.setParamValueParam(ContentDisposition, param.Filename, f)
}

// GetTransferEncoding returns the Content-Transfer-Encoding header.
//
// It will return ErrNoSuchField if the header is not set. it will return
// ErrManyFields if the field is set more than once.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding replaces the Content-Transfer-Encoding with the given
// value.
func (h *Header) SetTransferEncoding(b string) error {
	return h.Set(ContentTransferEncoding, b)
}
