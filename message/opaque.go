package message

import (
	"io"

	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/transfer"
)

// Opaque is the base-level email message interface. It is simply a header
// and a message body, very similar to the net/mail message implementation.
type Opaque struct {
	// Header will contain the header of the message. A top-level message must
	// have several headers to be correct. A message part should have one or
	// more headers as well.
	header.Header

	// Reader will contain the body content of the message, before any
	// Content-transfer-encoding has been applied. If the content is zero bytes
	// long, then Reader should be set to nil.
	io.Reader
}

// WriteTo writes the Opaque header and body to the destination io.Writer. The
// body is encoded according to the Content-transfer-encoding header as it is
// written. The count returned is the number of bytes actually written to w.
//
// This can only be safely called once as it will consume the io.Reader.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}

	if _, err := m.Header.WriteTo(cw); err != nil {
		return cw.n, err
	}

	if m.Reader == nil {
		return cw.n, nil
	}

	tw := transfer.ApplyTransferEncoding(&m.Header, cw)
	if _, err := io.Copy(tw, m.Reader); err != nil {
		_ = tw.Close()
		return cw.n, err
	}

	err := tw.Close()
	return cw.n, err
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the reader containing the body of the message.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}

// countWriter counts the bytes that pass through it.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
