package transfer

import (
	"bytes"
	"io"
	"mime/quotedprintable"

	"github.com/zostay/mimewrap/message/header"
)

// breakWriter replaces every CRLF written to it with another line break. A CR
// at the end of one write is held until the next write or Close.
type breakWriter struct {
	lbr     []byte
	pending bool
	w       io.Writer
}

var crlf = []byte("\r\n")

func (bw *breakWriter) Write(b []byte) (int, error) {
	n := len(b)

	buf := make([]byte, 0, len(b)+1)
	if bw.pending {
		buf = append(buf, '\r')
		bw.pending = false
	}
	buf = append(buf, b...)

	if len(buf) > 0 && buf[len(buf)-1] == '\r' {
		bw.pending = true
		buf = buf[:len(buf)-1]
	}

	buf = bytes.ReplaceAll(buf, crlf, bw.lbr)
	if _, err := bw.w.Write(buf); err != nil {
		return 0, err
	}

	return n, nil
}

// Close writes a held CR, if any. The underlying writer is left open.
func (bw *breakWriter) Close() error {
	if !bw.pending {
		return nil
	}

	bw.pending = false
	_, err := bw.w.Write([]byte{'\r'})
	return err
}

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. The input is treated as binary, so line breaks in the input are
// encoded too, and the soft line breaks end with the given line break.
func NewQuotedPrintableEncoder(w io.Writer, lbr header.Break) io.WriteCloser {
	if lbr == header.Meh || lbr == header.CRLF {
		qpw := quotedprintable.NewWriter(w)
		qpw.Binary = true
		return &writer{qpw, []io.Closer{qpw}}
	}

	bw := &breakWriter{lbr: lbr.Bytes(), w: w}
	qpw := quotedprintable.NewWriter(bw)
	qpw.Binary = true
	return &writer{qpw, []io.Closer{qpw, bw}}
}

// NewQuotedPrintableDecoder will read bytes from the given io.Reader and return
// them in the returned io.Reader after decoding them from quoted-printable
// format.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
