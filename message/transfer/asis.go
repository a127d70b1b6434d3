package transfer

import (
	"io"

	"github.com/zostay/mimewrap/message/header"
)

// NewAsIsEncoder returns an io.WriteCloser that writes bytes as-is. The line
// break is ignored.
func NewAsIsEncoder(w io.Writer, _ header.Break) io.WriteCloser {
	return &writer{Writer: w}
}

// NewAsIsDecoder returns an io.Reader that reads bytes as-is.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}
