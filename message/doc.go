// Package message provides the objects used to generate a MIME message. An
// Opaque is a header and a body, written with its Content-transfer-encoding
// applied. A Multipart is a header and a list of parts, written with the
// boundary from its Content-type header between them.
//
//	att := &message.Opaque{Reader: bytes.NewReader(content)}
//	_ = att.SetMediaType("application/pdf")
//	_ = att.SetTransferEncoding(transfer.Base64)
//
//	msg, err := message.MultipartMixed(message.Boundary(seed), att)
//	if err != nil {
//	  panic(err)
//	}
//
//	_, err = msg.WriteTo(out)
//
// This package only writes messages. It never parses them.
package message
