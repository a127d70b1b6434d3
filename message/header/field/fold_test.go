package field_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mimewrap/message/header/field"
)

var crlf = field.Break("\r\n")

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(20, 40)
	assert.NoError(t, err)
	assert.Equal(t, 20, vf.PreferredFoldLength())
	assert.Equal(t, 40, vf.ForcedFoldLength())

	_, err = field.NewFoldEncoding(field.DoNotFold, field.DoNotFold)
	assert.NoError(t, err)

	_, err = field.NewFoldEncoding(field.DoNotFold, 40)
	assert.ErrorIs(t, err, field.ErrDoNotFold)

	_, err = field.NewFoldEncoding(50, 40)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooLong)

	_, err = field.NewFoldEncoding(2, 40)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooShort)
}

func TestFoldEncoding_Fold_Short(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	n, err := field.DefaultFoldEncoding.Fold(buf, []byte("Subject: hi"), crlf)
	assert.NoError(t, err)
	assert.Equal(t, int64(13), n)
	assert.Equal(t, "Subject: hi\r\n", buf.String())
}

func TestFoldEncoding_Fold_Small(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(20, 40)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	_, err = vf.Fold(buf, []byte("Subject: aaaa bbbb cccc dddd eeee"), crlf)
	assert.NoError(t, err)
	assert.Equal(t, "Subject: aaaa bbbb\r\n cccc dddd eeee\r\n", buf.String())
}

func TestFoldEncoding_Fold_Long(t *testing.T) {
	t.Parallel()

	line := "X-Note: " + strings.Repeat("lorem ipsum dolor sit amet\tconsectetur ", 12)
	line = strings.TrimSpace(line)

	buf := &bytes.Buffer{}
	_, err := field.DefaultFoldEncoding.Fold(buf, []byte(line), crlf)
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\r\n"))

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Greater(t, len(lines), 1)
	for i, l := range lines {
		assert.LessOrEqual(t, len(l), field.DefaultPreferredFoldLength, l)
		if i > 0 {
			assert.Contains(t, " \t", l[:1], "continuation lines start with whitespace")
			assert.NotEmpty(t, strings.TrimSpace(l))
		}
	}

	assert.Equal(t, line, string(field.DefaultFoldEncoding.Unfold([]byte(out))))
}

func TestFoldEncoding_Fold_AfterColon(t *testing.T) {
	t.Parallel()

	word := strings.Repeat("x", 90)

	buf := &bytes.Buffer{}
	_, err := field.DefaultFoldEncoding.Fold(buf, []byte("Subject: "+word), crlf)
	assert.NoError(t, err)
	assert.Equal(t, "Subject:\r\n "+word+"\r\n", buf.String())
}

func TestFoldEncoding_Fold_Unbreakable(t *testing.T) {
	t.Parallel()

	word := strings.Repeat("y", 200)

	buf := &bytes.Buffer{}
	_, err := field.DefaultFoldEncoding.Fold(buf, []byte("X-Url:"+word), crlf)
	assert.NoError(t, err)
	assert.Equal(t, "X-Url:"+word+"\r\n", buf.String())

	buf.Reset()
	huge := strings.Repeat("z", field.DefaultForcedFoldLength)
	_, err = field.DefaultFoldEncoding.Fold(buf, []byte("X-Url: "+huge), crlf)
	assert.ErrorIs(t, err, field.ErrLineTooLong)
	assert.Equal(t, 0, buf.Len())
}

func TestFoldEncoding_Fold_DoNotFold(t *testing.T) {
	t.Parallel()

	line := "X-Note: " + strings.Repeat("word ", 100)

	buf := &bytes.Buffer{}
	_, err := field.DoNotFoldEncoding.Fold(buf, []byte(line), field.Break("\n"))
	assert.NoError(t, err)
	assert.Equal(t, line+"\n", buf.String())
}
