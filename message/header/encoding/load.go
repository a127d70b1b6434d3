// Package encoding provides a replacement for field.CharsetEncoder that loads
// all the encodings provided with:
//
// * golang.org/x/text/encoding/ianaindex
//
// This will make the size of your compiled binaries considerably larger. But it
// will also let header bodies be written as encoded words in pretty much any
// character set a reader might expect.
package encoding

import (
	"fmt"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/mimewrap/message/header/field"
)

func init() {
	field.CharsetEncoder = CharsetEncoder
}

// CharsetEncoder provides a replacement encoder for field.CharsetEncoder,
// which can encode a wide range of rare and unusual character sets.
func CharsetEncoder(charset, s string) ([]byte, error) {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("no encoding found for charset %q", charset)
	}

	es, err := e.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}
