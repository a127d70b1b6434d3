// Package mediatype guesses the media type of a wrapped file. Resolvers look
// at the file name, the content, or both and return "" when they cannot
// decide, so they can be chained.
package mediatype

import (
	"net/http"
	"path/filepath"
	"strings"
)

// Fallback is the media type of content nobody could identify.
const Fallback = "application/octet-stream"

// Resolver picks a media type for a file.
type Resolver interface {
	// Resolve returns the media type of the file with the given name and
	// content or "" if it cannot tell.
	Resolve(filename string, content []byte) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(filename string, content []byte) string

// Resolve calls f.
func (f ResolverFunc) Resolve(filename string, content []byte) string {
	return f(filename, content)
}

// Table resolves media types by file extension. Keys are lowercase extensions
// including the leading dot.
type Table map[string]string

// DefaultTable covers the file types most often wrapped. It does not depend on
// the mime.types files installed on the host, so the answer is the same
// everywhere.
var DefaultTable = Table{
	".7z":   "application/x-7z-compressed",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".eml":  "message/rfc822",
	".epub": "application/epub+zip",
	".flac": "audio/flac",
	".gif":  "image/gif",
	".gz":   "application/gzip",
	".heic": "image/heic",
	".htm":  "text/html",
	".html": "text/html",
	".ics":  "text/calendar",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".json": "application/json",
	".m4a":  "audio/mp4",
	".md":   "text/markdown",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".ogg":  "audio/ogg",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rtf":  "application/rtf",
	".svg":  "image/svg+xml",
	".tar":  "application/x-tar",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".txt":  "text/plain",
	".vcf":  "text/vcard",
	".wav":  "audio/wav",
	".webm": "video/webm",
	".webp": "image/webp",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xml":  "application/xml",
	".zip":  "application/zip",
}

// Resolve looks up the extension of filename without regard to case.
func (t Table) Resolve(filename string, _ []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	return t[ext]
}

// Sniffer resolves media types by looking at the first 512 bytes of content
// using the algorithm described at https://mimesniff.spec.whatwg.org/.
type Sniffer struct{}

// Resolve returns the sniffed media type or "" when the content does not
// match any known signature.
func (Sniffer) Resolve(_ string, content []byte) string {
	if len(content) == 0 {
		return ""
	}

	mt := http.DetectContentType(content)
	if mt == Fallback {
		return ""
	}
	return mt
}

// Chain asks each Resolver in turn and returns the first answer.
type Chain []Resolver

// Resolve returns the first non-empty media type from the chain.
func (c Chain) Resolve(filename string, content []byte) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if mt := r.Resolve(filename, content); mt != "" {
			return mt
		}
	}
	return ""
}

// Default returns the Resolver used when none is configured: DefaultTable
// first and then Sniffer.
func Default() Resolver {
	return Chain{DefaultTable, Sniffer{}}
}

// Detect resolves the media type using r and returns Fallback if r is nil or
// cannot decide.
func Detect(r Resolver, filename string, content []byte) string {
	if r != nil {
		if mt := r.Resolve(filename, content); mt != "" {
			return mt
		}
	}
	return Fallback
}
