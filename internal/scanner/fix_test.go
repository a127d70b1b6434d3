package scanner_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mimewrap/internal/scanner"
)

func scanAll(t *testing.T, in string, split bufio.SplitFunc) []string {
	t.Helper()

	s := bufio.NewScanner(strings.NewReader(in))
	s.Split(split)

	var out []string
	for s.Scan() {
		out = append(out, s.Text())
	}
	require.NoError(t, s.Err())
	return out
}

func TestScanLinesKeeping(t *testing.T) {
	t.Parallel()

	notBlank := func(line []byte) bool { return len(bytes.TrimSpace(line)) > 0 }

	tests := []struct {
		name   string
		in     string
		expect []string
	}{
		{"empty", "", nil},
		{"only skipped", "\n\n  \n", nil},
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"no final break", "a\nb", []string{"a", "b"}},
		{"skipped at end", "a\n\n\n", []string{"a"}},
		{"skipped between", "a\n \n\t\nb", []string{"a", "b"}},
		{"bare cr kept", "a\rb\n", []string{"a\rb"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, scanAll(t, tt.in, scanner.ScanLinesKeeping(notBlank)))
		})
	}
}

func TestScanLinesKeeping_SmallReads(t *testing.T) {
	t.Parallel()

	// many skipped lines in a row must not end the scan early even when the
	// scanner has to refill its buffer between them
	in := strings.Repeat("#\n", 5000) + "last"

	s := bufio.NewScanner(strings.NewReader(in))
	s.Buffer(make([]byte, 0, 16), 64)
	s.Split(scanner.ScanLinesKeeping(func(line []byte) bool {
		return !bytes.HasPrefix(line, []byte{'#'})
	}))

	var out []string
	for s.Scan() {
		out = append(out, s.Text())
	}
	assert.NoError(t, s.Err())
	assert.Equal(t, []string{"last"}, out)
}

func TestMakeSplitFuncExitByAdvance(t *testing.T) {
	t.Parallel()

	// a split func returning every other word
	n := 0
	split := scanner.MakeSplitFuncExitByAdvance(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanWords(data, atEOF)
		if token != nil {
			n++
			if n%2 == 0 {
				return advance, nil, err
			}
		}
		return advance, token, err
	})

	assert.Equal(t, []string{"one", "three", "five"}, scanAll(t, "one two three four five six", split))
}
