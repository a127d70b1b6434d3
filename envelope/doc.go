// Package envelope assembles the document that wraps a file. The sidecar
// entries become header fields, in order and with duplicates kept, and the
// file becomes the single attachment of a multipart/mixed message:
//
//	Subject: Quarterly report
//	MIME-Version: 1.0
//	Content-Type: multipart/mixed; boundary=mimewrap-...
//
//	--mimewrap-...
//	Content-Type: application/pdf
//	Content-Disposition: attachment; filename=report.pdf
//	Content-Transfer-Encoding: base64
//
//	JVBERi0xLjcK...
//
//	--mimewrap-...--
//
// Entries named Content-* describe the attachment and are written to the part
// header. Every other entry goes to the top-level header. The boundary is
// derived from the content of the document, so wrapping the same input twice
// gives the same bytes.
//
// The assembler does no file I/O.
package envelope
