package envelope

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/zostay/mimewrap/mediatype"
	"github.com/zostay/mimewrap/message"
	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/header/field"
	"github.com/zostay/mimewrap/message/header/param"
	"github.com/zostay/mimewrap/message/transfer"
	"github.com/zostay/mimewrap/sidecar"
)

const (
	// MIMEVersion is the value of the MIME-Version field added when the
	// sidecar does not supply one.
	MIMEVersion = "1.0"

	// DefaultTransferEncoding is used unless a Content-Transfer-Encoding
	// entry picks another.
	DefaultTransferEncoding = transfer.Base64

	contentPrefix = "content-"
)

// NormalizeFunc rewrites the value of a header field before it is added.
type NormalizeFunc func(value string) (string, error)

// Attachment is the file being wrapped.
type Attachment struct {
	// Filename is the name of the file. Only the base name is written to the
	// document.
	Filename string

	// MediaType is used when no Content-Type entry is given. When empty, the
	// media type is resolved from Filename and Content.
	MediaType string

	// Content is the complete content of the file.
	Content []byte
}

// Assembler builds documents. The zero value is not usable, use New.
type Assembler struct {
	lbr         header.Break
	vf          *field.FoldEncoding
	cs          string
	normalizers map[string]NormalizeFunc
	resolver    mediatype.Resolver
	logger      *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithBreak sets the line break used throughout the document. The default is
// CRLF.
func WithBreak(lbr header.Break) Option {
	return func(a *Assembler) {
		a.lbr = lbr
	}
}

// WithFoldEncoding sets the folding applied to header fields.
func WithFoldEncoding(vf *field.FoldEncoding) Option {
	return func(a *Assembler) {
		a.vf = vf
	}
}

// WithCharset sets the charset used to encode non-ASCII header values.
func WithCharset(cs string) Option {
	return func(a *Assembler) {
		a.cs = cs
	}
}

// WithNormalizer registers a function to rewrite the value of every entry with
// the given name. Names match without regard to case. A later registration for
// the same name replaces an earlier one.
func WithNormalizer(name string, fn NormalizeFunc) Option {
	return func(a *Assembler) {
		a.normalizers[strings.ToLower(name)] = fn
	}
}

// WithResolver sets the resolver used to pick a media type when neither a
// Content-Type entry nor Attachment.MediaType is given.
func WithResolver(r mediatype.Resolver) Option {
	return func(a *Assembler) {
		a.resolver = r
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = l
	}
}

// New returns an Assembler with the given options applied.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		lbr:         header.CRLF,
		vf:          field.DefaultFoldEncoding,
		cs:          field.DefaultCharset,
		normalizers: map[string]NormalizeFunc{},
		resolver:    mediatype.Default(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Assemble builds a document with the default settings.
func Assemble(headers sidecar.List, att Attachment) ([]byte, error) {
	return New().Assemble(headers, att)
}

// isContentField returns true for fields that describe the attachment.
func isContentField(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), contentPrefix)
}

// initHeader applies the rendering settings to h.
func (a *Assembler) initHeader(h *header.Header) {
	h.SetBreak(a.lbr)
	h.SetFoldEncoding(a.vf)
	h.SetFieldCharset(a.cs)
}

// Assemble builds the document wrapping att, with a header field for every
// entry in headers. It fails with a *BuildError.
func (a *Assembler) Assemble(headers sidecar.List, att Attachment) ([]byte, error) {
	doc := &message.Multipart{}
	a.initHeader(&doc.Header)

	part := &message.Opaque{Reader: bytes.NewReader(att.Content)}
	a.initHeader(&part.Header)

	for _, e := range headers {
		value := e.Value
		if fn, ok := a.normalizers[strings.ToLower(e.Name)]; ok {
			nv, err := fn(value)
			if err != nil {
				return nil, &BuildError{e.Name, err}
			}
			if nv != value {
				a.logger.Debug("normalized header value",
					"name", e.Name, "from", value, "to", nv)
			}
			value = nv
		}

		h := &doc.Header
		if isContentField(e.Name) {
			h = &part.Header
		}

		if err := h.Add(e.Name, value); err != nil {
			return nil, &BuildError{e.Name, err}
		}
	}

	mt, err := a.describeAttachment(&part.Header, att)
	if err != nil {
		return nil, err
	}

	if len(doc.GetIndexesNamed(header.MIMEVersion)) == 0 {
		if err := doc.Add(header.MIMEVersion, MIMEVersion); err != nil {
			return nil, &BuildError{header.MIMEVersion, err}
		}
	}

	boundary := a.boundary(headers, att, mt)
	if err := doc.SetMediaType("multipart/mixed"); err != nil {
		return nil, &BuildError{header.ContentType, err}
	}
	if err := doc.SetBoundary(boundary); err != nil {
		return nil, &BuildError{header.ContentType, err}
	}

	doc.AddPart(part)

	buf := &bytes.Buffer{}
	if _, err := doc.WriteTo(buf); err != nil {
		var bfe *field.BadFieldError
		if errors.As(err, &bfe) {
			return nil, &BuildError{bfe.Name, bfe.Err}
		}
		return nil, &BuildError{Err: err}
	}

	a.logger.Debug("assembled document",
		"fields", len(headers),
		"media_type", mt,
		"boundary", boundary,
		"size", buf.Len())

	return buf.Bytes(), nil
}

// describeAttachment completes the part header with the Content-Type,
// Content-Disposition, and Content-Transfer-Encoding fields that were not
// given as entries and checks the ones that were. It returns the media type of
// the attachment.
func (a *Assembler) describeAttachment(h *header.Header, att Attachment) (string, error) {
	var mt string
	switch n := len(h.GetIndexesNamed(header.ContentType)); {
	case n > 1:
		return "", &BuildError{header.ContentType, ErrRepeatedField}
	case n == 1:
		pv, err := h.GetContentType()
		if err != nil {
			return "", &BuildError{header.ContentType, err}
		}
		if err := checkMediaType(pv); err != nil {
			return "", &BuildError{header.ContentType, err}
		}
		mt = pv.MediaType()
	default:
		raw := att.MediaType
		if raw == "" {
			raw = mediatype.Detect(a.resolver, att.Filename, att.Content)
		}

		pv, err := param.Parse(raw)
		if err != nil {
			return "", &BuildError{header.ContentType, err}
		}
		if err := checkMediaType(pv); err != nil {
			return "", &BuildError{header.ContentType, err}
		}
		if err := h.SetParamValue(header.ContentType, pv); err != nil {
			return "", &BuildError{header.ContentType, err}
		}
		mt = pv.MediaType()
	}

	if len(h.GetIndexesNamed(header.ContentDisposition)) == 0 {
		if err := h.SetPresentation("attachment"); err != nil {
			return "", &BuildError{header.ContentDisposition, err}
		}

		if att.Filename != "" {
			if err := h.SetFilename(filepath.Base(att.Filename)); err != nil {
				return "", &BuildError{header.ContentDisposition, err}
			}
		}
	}

	switch n := len(h.GetIndexesNamed(header.ContentTransferEncoding)); {
	case n > 1:
		return "", &BuildError{header.ContentTransferEncoding, ErrRepeatedField}
	case n == 1:
		cte, _ := h.GetTransferEncoding()
		if !transfer.IsBinarySafe(cte) {
			return "", &BuildError{header.ContentTransferEncoding, ErrTransferEncoding}
		}
	default:
		if err := h.SetTransferEncoding(DefaultTransferEncoding); err != nil {
			return "", &BuildError{header.ContentTransferEncoding, err}
		}
	}

	return mt, nil
}

// checkMediaType makes sure the media type can label a single opaque part.
func checkMediaType(pv *param.Value) error {
	if pv.Type() == "" || pv.Subtype() == "" {
		return ErrBadMediaType
	}

	if pv.Type() == "multipart" {
		return ErrMultipartMediaType
	}

	return nil
}

// boundary derives the boundary from everything written to the document. A
// quoted-printable body leaves its content mostly readable, so the boundary
// is rederived in the unlikely event the content holds it.
func (a *Assembler) boundary(headers sidecar.List, att Attachment, mt string) string {
	d := sha256.New()
	writeString := func(s string) {
		_ = binary.Write(d, binary.BigEndian, uint64(len(s)))
		_, _ = io.WriteString(d, s)
	}

	for _, e := range headers {
		writeString(e.Name)
		writeString(e.Value)
	}
	writeString(filepath.Base(att.Filename))
	writeString(mt)
	writeString(string(a.lbr))
	_ = binary.Write(d, binary.BigEndian, uint64(len(att.Content)))
	_, _ = d.Write(att.Content)

	seed := d.Sum(nil)
	for {
		b := message.Boundary(seed)
		if !bytes.Contains(att.Content, []byte(b)) {
			return b
		}

		a.logger.Debug("attachment content contains boundary, deriving another", "boundary", b)
		next := sha256.Sum256(seed)
		seed = next[:]
	}
}
