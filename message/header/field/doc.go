// Package field provides the low-level representation of a single header
// field: the name, the body, the checks that keep a field writable under
// RFC 5322, the RFC 2047 word encoding applied to bodies that are not plain
// ASCII, and the folding applied to long lines on output.
package field
