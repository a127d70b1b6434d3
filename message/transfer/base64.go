package transfer

import (
	"encoding/base64"
	"io"

	"github.com/zostay/mimewrap/message/header"
)

// Base64LineLength is the number of encoded characters written on each line.
const Base64LineLength = 76

// newlineWriter inserts a line break after every so many bytes. The break is
// written lazily, so a write that ends exactly at the end of a line leaves the
// break for the next write or for Close.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		if nw.acc == nw.every {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return n, err
			}
			nw.acc = 0
		}

		chunk := nw.every - nw.acc
		if chunk > len(b) {
			chunk = len(b)
		}

		ln, err := nw.w.Write(b[:chunk])
		n += ln
		nw.acc += ln
		if err != nil {
			return n, err
		}

		b = b[chunk:]
	}

	return n, nil
}

// Close terminates the final line, if any. The underlying writer is left open.
func (nw *newlineWriter) Close() error {
	if nw.acc == 0 {
		return nil
	}

	nw.acc = 0
	_, err := nw.w.Write(nw.lbr)
	return err
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding and write those to the given io.Writer
// in lines of Base64LineLength characters, each ending with the line break.
func NewBase64Encoder(w io.Writer, lbr header.Break) io.WriteCloser {
	if lbr == header.Meh {
		lbr = header.LF
	}

	nw := &newlineWriter{
		every: Base64LineLength,
		lbr:   lbr.Bytes(),
		w:     w,
	}
	enc := base64.NewEncoder(base64.StdEncoding, nw)

	return &writer{enc, []io.Closer{enc, nw}}
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader. Line breaks in
// the input are skipped.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
