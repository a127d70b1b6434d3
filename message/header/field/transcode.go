package field

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"
)

// DefaultCharset is the charset used for encoded words when none is chosen.
const DefaultCharset = "utf-8"

// MaxEncodedWordLength is the longest an RFC 2047 encoded word may be.
const MaxEncodedWordLength = 75

// CharsetEncoder converts a UTF-8 string into the named charset. The default
// only knows about UTF-8 and US-ASCII. Importing the
// github.com/zostay/mimewrap/message/header/encoding package replaces it with
// one that knows every charset in the IANA index.
var CharsetEncoder = func(charset, s string) ([]byte, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return []byte(s), nil
	case "us-ascii", "ascii":
		for i := 0; i < len(s); i++ {
			if s[i] > 0x7e {
				return nil, fmt.Errorf("string cannot be represented in %s", charset)
			}
		}
		return []byte(s), nil
	}

	return nil, fmt.Errorf("unsupported charset %q", charset)
}

// Encode transforms a single header field body into RFC 2047 B encoded words
// when the body contains anything other than printable ASCII. Plain ASCII
// bodies are returned unchanged. The body is first converted to the named
// charset using CharsetEncoder. Long bodies become several encoded words
// separated by spaces, none longer than MaxEncodedWordLength, and each holding
// whole characters.
func Encode(charset, body string) (string, error) {
	if charset == "" {
		charset = DefaultCharset
	}

	if !needsEncoding(body) {
		return body, nil
	}

	// the word encoder only splits UTF-8 itself
	if strings.EqualFold(charset, "utf-8") {
		return mime.BEncoding.Encode(charset, body), nil
	}

	return encodeWords(charset, body)
}

// encodeWords converts s to charset a few characters at a time so that every
// chunk fits in one encoded word.
func encodeWords(charset, s string) (string, error) {
	prefix := "=?" + charset + "?b?"
	max := (MaxEncodedWordLength - len(prefix) - len("?=")) / 4 * 3
	if max < 1 {
		return "", fmt.Errorf("charset name %q is too long for an encoded word", charset)
	}

	var (
		words []string
		start int
		chunk []byte
	)

	word := func(b []byte) string {
		return prefix + base64.StdEncoding.EncodeToString(b) + "?="
	}

	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		end := i + size

		cb, err := CharsetEncoder(charset, s[start:end])
		if err != nil {
			return "", err
		}

		if len(cb) > max && start < i {
			words = append(words, word(chunk))
			start = i
			if cb, err = CharsetEncoder(charset, s[start:end]); err != nil {
				return "", err
			}
		}

		if len(cb) > max {
			return "", fmt.Errorf("character %q is too long for an encoded word in %s", s[i:end], charset)
		}

		chunk = cb
		i = end
	}

	words = append(words, word(chunk))
	return strings.Join(words, " "), nil
}

// needsEncoding mirrors the test mime.WordEncoder makes so that Encode only
// calls the CharsetEncoder when the result would actually be encoded.
func needsEncoding(s string) bool {
	for _, c := range s {
		if (c < ' ' || c > '~') && c != '\t' {
			return true
		}
	}
	return false
}

// phraseSpecials end a run of phrase text in an address list. The period is
// left out so that a display name like "J. Müller" is encoded as one unit.
const phraseSpecials = "()<>[]:;@\\,\""

// EncodePhrases encodes the non-ASCII text of an address list body. Encoded
// words may only stand in for a phrase word or comment text, so only those are
// encoded: a run of display name text becomes encoded words as a whole, a
// quoted string with non-ASCII text is replaced by encoded words holding its
// unquoted content, and comment text is encoded the same way as a run. The
// text between angle brackets and domain literals is copied as it is, so
// non-ASCII text in an addr-spec is left for the address parser to reject.
//
// Plain ASCII bodies are returned unchanged.
func EncodePhrases(charset, body string) (string, error) {
	if !needsEncoding(body) {
		return body, nil
	}

	var (
		out     strings.Builder
		comment int
	)

	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case comment == 0 && (c == '<' || c == '['):
			closer := byte('>')
			if c == '[' {
				closer = ']'
			}

			end := strings.IndexByte(body[i:], closer)
			if end < 0 {
				out.WriteString(body[i:])
				return out.String(), nil
			}

			out.WriteString(body[i : i+end+1])
			i += end + 1

		case comment == 0 && c == '"':
			content, end := unquote(body[i:])
			if !needsEncoding(content) {
				out.WriteString(body[i : i+end])
			} else {
				enc, err := Encode(charset, content)
				if err != nil {
					return "", err
				}
				out.WriteString(enc)
			}
			i += end

		case c == '(':
			comment++
			out.WriteByte(c)
			i++

		case c == ')' && comment > 0:
			comment--
			out.WriteByte(c)
			i++

		case c == '\\':
			end := i + 2
			if end > len(body) {
				end = len(body)
			}
			out.WriteString(body[i:end])
			i = end

		case strings.IndexByte(phraseSpecials, c) >= 0:
			out.WriteByte(c)
			i++

		default:
			end := strings.IndexAny(body[i:], phraseSpecials)
			if end < 0 {
				end = len(body)
			} else {
				end += i
			}

			if err := encodeRun(&out, charset, body[i:end]); err != nil {
				return "", err
			}
			i = end
		}
	}

	return out.String(), nil
}

// encodeRun writes run, encoding the text between its leading and trailing
// whitespace when that text is not plain ASCII.
func encodeRun(out *strings.Builder, charset, run string) error {
	text := strings.TrimLeft(run, " \t")
	lead := run[:len(run)-len(text)]
	text = strings.TrimRight(text, " \t")
	trail := run[len(lead)+len(text):]

	if needsEncoding(text) {
		enc, err := Encode(charset, text)
		if err != nil {
			return err
		}
		text = enc
	}

	out.WriteString(lead)
	out.WriteString(text)
	out.WriteString(trail)
	return nil
}

// unquote reads the quoted string at the start of s. It returns the content
// with quoted pairs resolved and the length of the quoted string, including
// both quotes. An unterminated quoted string runs to the end of s.
func unquote(s string) (string, int) {
	var content strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				content.WriteByte(s[i])
			}
		case '"':
			return content.String(), i + 1
		default:
			content.WriteByte(s[i])
		}
	}
	return content.String(), len(s)
}
