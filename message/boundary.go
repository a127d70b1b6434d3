package message

import (
	"github.com/google/uuid"
)

// BoundaryPrefix starts every boundary returned by Boundary.
const BoundaryPrefix = "mimewrap-"

// boundaryNamespace scopes the name-based UUIDs used for boundaries.
var boundaryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/zostay/mimewrap/boundary"))

// Boundary returns a multipart boundary derived from the given seed. The same
// seed always gives the same boundary, so a document built twice from the
// same input is byte-for-byte identical. Callers should seed it with a digest
// of everything the document will contain.
//
// The result is made only of letters, digits, and hyphens and is well under
// the 70 character limit of RFC 2046.
func Boundary(seed []byte) string {
	return BoundaryPrefix + uuid.NewSHA1(boundaryNamespace, seed).String()
}
