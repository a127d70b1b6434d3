package scanner

import (
	"bufio"
	"bytes"
)

// The SplitFunc contract of bufio.Scanner makes a split func that wants to
// skip some input awkward. Returning a nil token is fine until atEOF, at which
// point a nil token ends the scan even when there is unread data left. So a
// split func that drops lines would need its own inner loop to keep looking
// for a line worth returning.
//
// MakeSplitFuncExitByAdvance provides that loop once. The wrapped split func
// may return a positive advance with a nil token to mean "consume this and
// keep going". The scan ends when the split func returns an error, asks for
// more data by returning a zero advance, or consumes everything it was given.

// MakeSplitFuncExitByAdvance wraps split so that it is called repeatedly until
// it returns a token, an error, a zero advance, or has consumed all of data.
// The advances of the skipped calls are accumulated into the one returned.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)

			// len(data)-advance <= 0 rather than == 0 so an over-advance is
			// passed up for bufio.Scanner to report
			if token != nil || advance == 0 || len(data)-advance <= 0 || err != nil {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}

// ScanLinesKeeping returns a split func that yields each line, stripped of its
// line ending, for which keep returns true. Lines end with LF or CRLF and the
// final line does not need a line ending. Lines keep rejects are consumed
// without being returned.
func ScanLinesKeeping(keep func(line []byte) bool) bufio.SplitFunc {
	return MakeSplitFuncExitByAdvance(func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		var (
			advance int
			line    []byte
		)
		if ix := bytes.IndexByte(data, '\n'); ix >= 0 {
			advance, line = ix+1, data[:ix]
		} else if atEOF {
			advance, line = len(data), data
		} else {
			return 0, nil, nil
		}

		line = bytes.TrimSuffix(line, []byte{'\r'})
		if !keep(line) {
			return advance, nil, nil
		}

		return advance, line, nil
	})
}
