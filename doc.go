// Package mimewrap wraps an arbitrary file into a self-contained MIME message.
// The header fields come from a sidecar file that sits next to the input:
//
//	report.pdf
//	report.headers
//
// where report.headers holds lines like
//
//	# scanned 2023-08-01
//	Subject: Quarterly report
//	From: Finance <finance@example.com>
//	Date: Tue, 01 Aug 2023 10:00:00 +0000
//
// Running the wrapper writes report.eml, a multipart/mixed message with those
// fields, in that order, and the PDF as its only attachment. The file can be
// opened with any mail reader or archived alongside other mail.
//
// The work is split up like so:
//
//   - sidecar reads the sidecar file into an ordered list of entries.
//   - mediatype guesses the media type of the input.
//   - envelope turns the entries and the input into the bytes of the message.
//   - message and its sub-packages hold the header and MIME machinery the
//     envelope is built from.
//   - normalize has optional rewrites for dates and address lists.
//
// This package ties those together: a Wrapper runs one Job, reading the files,
// assembling the message, and writing it out atomically.
package mimewrap
