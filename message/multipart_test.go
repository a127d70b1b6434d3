package message_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/mimewrap/message"
	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/transfer"
)

func TestMultipart(t *testing.T) {
	t.Parallel()

	att := makeSimple(t, transfer.Base64, "hello")
	require.NoError(t, att.DeleteField(0))
	att.SetBreak(header.CRLF)

	m, err := message.MultipartMixed("abc", att)
	require.NoError(t, err)
	m.SetBreak(header.CRLF)
	require.NoError(t, m.Header.InsertBeforeField(0, header.Subject, "wrapped"))

	assert.Equal(t, &m.Header, m.GetHeader())
	assert.Len(t, m.GetParts(), 1)
	assert.Nil(t, m.GetReader())
	assert.True(t, m.IsMultipart())

	const expect = "Subject: wrapped\r\n" +
		"Content-Type: multipart/mixed; boundary=abc\r\n" +
		"\r\n" +
		"--abc\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"aGVsbG8=\r\n" +
		"\r\n" +
		"--abc--\r\n"

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, expect, out.String())
	assert.Equal(t, int64(len(expect)), n)
}

func TestMultipart_ManyParts(t *testing.T) {
	t.Parallel()

	m, err := message.MultipartMixed("xyz")
	require.NoError(t, err)
	m.AddPart(
		&message.Opaque{Reader: strings.NewReader("one")},
		&message.Opaque{Reader: strings.NewReader("two")},
	)

	out := &bytes.Buffer{}
	_, err = m.WriteTo(out)
	require.NoError(t, err)

	assert.Equal(t,
		"Content-Type: multipart/mixed; boundary=xyz\n\n"+
			"--xyz\n\none\n"+
			"--xyz\n\ntwo\n"+
			"--xyz--\n",
		out.String())
}

func TestMultipart_Errors(t *testing.T) {
	t.Parallel()

	m := &message.Multipart{}
	m.AddPart(&message.Opaque{})
	_, err := m.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	m, err = message.MultipartMixed("abc")
	require.NoError(t, err)
	_, err = m.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, message.ErrNoParts)
}
