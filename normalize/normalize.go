// Package normalize holds optional rewrites for header values. Nothing here is
// applied unless asked for: a sidecar value is written exactly as given
// otherwise.
package normalize

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/header/field"
)

// UnixDateWithEarlyYear is the layout written by some tools that put the year
// before the zone.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

var (
	// ErrBadDate is returned by Date when the value cannot be read as a date.
	ErrBadDate = errors.New("value cannot be parsed as a date")

	// ErrBadAddress is returned by Addresses when the value cannot be read as
	// an address list.
	ErrBadAddress = header.ErrBadAddress
)

// AddressFields names the header fields that carry address lists.
var AddressFields = header.AddressFields

// ParseTime parses a date using the format specified by RFC 5322 first and
// falls back to parsing it in many other formats.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("%w: %q", ErrBadDate, body)
}

// Date rewrites a date in any format ParseTime understands into the RFC 5322
// form, keeping the original zone offset.
func Date(value string) (string, error) {
	t, err := ParseTime(value)
	if err != nil {
		return "", err
	}

	return t.Format(time.RFC1123Z), nil
}

// Addresses rewrites an address list into its canonical form: display names
// are only quoted when needed and addresses are separated by a comma and a
// space. A value with non-ASCII display names or comments is checked the same
// way but returned as given, since it is encoded when the header is written.
func Addresses(value string) (string, error) {
	enc, err := field.EncodePhrases(field.DefaultCharset, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadAddress, value, err)
	}

	al, err := addr.ParseEmailAddressList(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadAddress, value, err)
	}

	if len(al) == 0 {
		return "", fmt.Errorf("%w: %q", ErrBadAddress, value)
	}

	if enc != value {
		return strings.TrimSpace(value), nil
	}

	return al.String(), nil
}
