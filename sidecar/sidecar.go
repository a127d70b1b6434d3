// Package sidecar reads the header sidecar file that travels alongside a
// wrapped file. A sidecar is a line-oriented text file holding one header
// field per line:
//
//	# comment, only when # is the first character
//	Subject: Quarterly report
//	X-Source:	scanner-3
//
// The name and value are separated by the first colon that is followed by a
// space or a tab. Lines without such a separator, blank lines, and comments
// are dropped without complaint.
package sidecar

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/zostay/mimewrap/internal/scanner"
)

var (
	bom        = []byte("\xef\xbb\xbf")
	separators = [][]byte{[]byte(": "), []byte(":\t")}
)

// Entry is a single header field read from a sidecar. Name is never empty and
// never begins with '#'. Both Name and Value have surrounding whitespace
// trimmed.
type Entry struct {
	Name  string
	Value string
}

// String returns the entry as it would appear in a sidecar.
func (e Entry) String() string {
	return e.Name + ": " + e.Value
}

// List holds entries in the order they appeared in the sidecar. Duplicate
// names are kept.
type List []Entry

// Names returns the name of every entry, in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}

// ReadError is returned by Parse when the sidecar cannot be read.
type ReadError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (err *ReadError) Error() string {
	return fmt.Sprintf("unable to read sidecar %q: %v", err.Path, err.Err)
}

// Unwrap returns the underlying error.
func (err *ReadError) Unwrap() error {
	return err.Err
}

// Parse reads the sidecar at the given path and returns the entries it holds.
// It fails with a *ReadError only when the file cannot be read. Nothing in the
// content of a readable file is an error.
func Parse(path string) (List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{path, err}
	}

	return ParseBytes(b), nil
}

// ParseBytes returns the entries held in the given sidecar content.
func ParseBytes(b []byte) List {
	b = bytes.TrimPrefix(b, bom)

	s := bufio.NewScanner(bytes.NewReader(b))
	s.Buffer(make([]byte, 0, 4096), len(b)+1)
	s.Split(scanner.ScanLinesKeeping(func(line []byte) bool {
		_, ok := parseLine(line)
		return ok
	}))

	l := List{}
	for s.Scan() {
		e, _ := parseLine(s.Bytes())
		l = append(l, e)
	}

	// the buffer holds the whole input, so the scan cannot fail
	return l
}

// parseLine turns a single line without its line ending into an Entry. It
// returns false when the line does not hold an entry.
func parseLine(line []byte) (Entry, bool) {
	if len(line) == 0 || line[0] == '#' {
		return Entry{}, false
	}

	sep := -1
	for _, s := range separators {
		if ix := bytes.Index(line, s); ix >= 0 && (sep < 0 || ix < sep) {
			sep = ix
		}
	}

	if sep < 0 {
		return Entry{}, false
	}

	name := string(bytes.TrimSpace(line[:sep]))
	if name == "" || name[0] == '#' {
		return Entry{}, false
	}

	value := string(bytes.TrimSpace(line[sep+2:]))

	return Entry{name, value}, true
}
