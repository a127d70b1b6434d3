package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/mimewrap/message/header/field"
)

// ErrBadAddress is returned when an address field body holding non-ASCII text
// cannot be parsed as an address list once its phrases are encoded. Usually
// this means the non-ASCII text is inside an address.
var ErrBadAddress = errors.New("value cannot be parsed as an address list")

// AddressFields names the header fields that carry address lists.
var AddressFields = []string{
	From,
	Sender,
	ReplyTo,
	To,
	Cc,
	Bcc,
}

// IsAddressField returns true if name is one of AddressFields.
func IsAddressField(name string) bool {
	for _, af := range AddressFields {
		if strings.EqualFold(name, af) {
			return true
		}
	}
	return false
}

// EncodeAddressList prepares an address list body for output. Display names
// and comments holding non-ASCII text are turned into encoded words in the
// named charset while every addr-spec is kept as it is. The result must parse
// as an address list or ErrBadAddress is returned.
//
// Plain ASCII bodies are returned unchanged and are not parsed.
func EncodeAddressList(charset, body string) (string, error) {
	enc, err := field.EncodePhrases(charset, body)
	if err != nil {
		return "", err
	}

	if enc == body {
		return body, nil
	}

	al, err := addr.ParseEmailAddressList(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadAddress, body, err)
	}

	if len(al) == 0 {
		return "", fmt.Errorf("%w: %q", ErrBadAddress, body)
	}

	return enc, nil
}
