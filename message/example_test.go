package message_test

import (
	"os"
	"strings"

	"github.com/zostay/mimewrap/message"
	"github.com/zostay/mimewrap/message/transfer"
)

func ExampleMultipartMixed() {
	att := &message.Opaque{Reader: strings.NewReader("Hello World")}
	_ = att.SetMediaType("text/plain")
	_ = att.SetPresentation("attachment")
	_ = att.SetFilename("hello.txt")
	_ = att.SetTransferEncoding(transfer.Base64)

	msg, err := message.MultipartMixed(message.Boundary([]byte("seed")), att)
	if err != nil {
		panic(err)
	}
	_ = msg.Header.InsertBeforeField(0, "Subject", "A message to nowhere")

	_, _ = msg.WriteTo(os.Stdout)
	// Output:
	// Subject: A message to nowhere
	// Content-Type: multipart/mixed;
	//  boundary=mimewrap-46eddc78-a257-5ce5-ab20-11c6eee28464
	//
	// --mimewrap-46eddc78-a257-5ce5-ab20-11c6eee28464
	// Content-Type: text/plain
	// Content-Disposition: attachment; filename=hello.txt
	// Content-Transfer-Encoding: base64
	//
	// SGVsbG8gV29ybGQ=
	//
	// --mimewrap-46eddc78-a257-5ce5-ab20-11c6eee28464--
}
