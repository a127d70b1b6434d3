package field

import (
	"bytes"
	"errors"
	"io"
)

const (
	DefaultPreferredFoldLength = 78  // we prefer header lines shorter than this
	DefaultForcedFoldLength    = 998 // no header line may be longer than this

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding folds at whitespace to keep lines within 78 octets
	// and refuses to write a line longer than 998 octets.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding.
	DoNotFoldEncoding = &FoldEncoding{
		DoNotFold,
		DoNotFold,
	}
)

var (
	// ErrFoldLengthTooLong is returned by NewFoldEncoding when the
	// preferredFoldLength is longer than the forcedFoldLength.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the
	// forcedFoldLength is shorter than 3 bytes long.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned by NewFoldEncoding when the preferredFoldLength
	// or forcedFoldLength are set to DoNotFold (-1), but both are not set that
	// way.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")

	// ErrLineTooLong is returned by Fold when a run of text without any
	// whitespace is too long to fit inside the forced fold length.
	ErrLineTooLong = errors.New("header field line cannot be folded to fit the forced fold length")
)

// Break is basically identical to header.Break, but with a focus on bytes.
type Break []byte

// FoldEncoding provides the tooling for folding email message headers.
type FoldEncoding struct {
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding creates a new FoldEncoding with the given settings. The
// preferredFoldLength must be equal to or less than forcedFoldLength. Folding
// is only ever done by breaking before existing whitespace, so no indent
// setting is needed. If the inputs do not meet these requirements, an error
// will be returned.
func NewFoldEncoding(
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if (preferredFoldLength == DoNotFold && forcedFoldLength != DoNotFold) ||
		(forcedFoldLength == DoNotFold && preferredFoldLength != DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		if preferredFoldLength < 3 || forcedFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{preferredFoldLength, forcedFoldLength}, nil
}

// PreferredFoldLength returns the line length folding tries to stay within.
func (vf *FoldEncoding) PreferredFoldLength() int {
	return vf.preferredFoldLength
}

// ForcedFoldLength returns the line length that may never be exceeded.
func (vf *FoldEncoding) ForcedFoldLength() int {
	return vf.forcedFoldLength
}

// Unfold will take a folded header line from an email and unfold it for
// reading. This gives you the proper header body value.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

func isCRLF(c rune) bool  { return c == '\r' || c == '\n' }
func isSpace(c rune) bool { return c == ' ' || c == '\t' }

// firstBreak returns the lowest index at which the line may be broken. On the
// first line a break may only come after the colon. On continuation lines a
// break may only come after the first non-space so that no line is made of
// whitespace alone.
func firstBreak(line []byte, continuing bool) int {
	if !continuing {
		if colon := bytes.IndexByte(line, ':'); colon >= 0 {
			return colon + 1
		}
		return 1
	}

	ix := bytes.IndexFunc(line, func(c rune) bool { return !isSpace(c) })
	if ix < 0 {
		return len(line)
	}
	return ix + 1
}

// Fold writes a single unfolded header line to out followed by the line
// break. Lines longer than the preferred fold length are folded by inserting
// the line break before a space or tab, so unfolding gives back exactly the
// original line. The break point closest to the preferred length is used,
// falling back on the next one after it. If a segment cannot be made to fit
// the forced fold length, ErrLineTooLong is returned before anything is
// written.
//
// Returns the number of bytes written.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb Break) (int64, error) {
	segments := make([][]byte, 0, len(f)/vf.segmentGuess()+1)

	if vf.preferredFoldLength == DoNotFold || len(f) <= vf.preferredFoldLength {
		segments = append(segments, f)
	} else {
		continuing := false
		for len(f) > vf.preferredFoldLength {
			min := firstBreak(f, continuing)
			if min >= len(f) {
				break
			}

			cut := -1
			if min <= vf.preferredFoldLength {
				if ix := bytes.LastIndexAny(f[min:vf.preferredFoldLength+1], " \t"); ix >= 0 {
					cut = min + ix
				}
			}

			if cut < 0 {
				if ix := bytes.IndexAny(f[min:], " \t"); ix >= 0 {
					cut = min + ix
				}
			}

			if cut < 0 {
				break
			}

			segments = append(segments, f[:cut])
			f = f[cut:]
			continuing = true
		}
		segments = append(segments, f)
	}

	if vf.forcedFoldLength != DoNotFold {
		for _, seg := range segments {
			if len(seg) > vf.forcedFoldLength {
				return 0, ErrLineTooLong
			}
		}
	}

	total := int64(0)
	for _, seg := range segments {
		n, err := out.Write(seg)
		total += int64(n)
		if err != nil {
			return total, err
		}

		n, err = out.Write(lb)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (vf *FoldEncoding) segmentGuess() int {
	if vf.preferredFoldLength > 0 {
		return vf.preferredFoldLength
	}
	return 1
}
