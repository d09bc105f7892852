// SPDX-License-Identifier: EPL-2.0

package markers

// Kind is the closed set of marker types.
type Kind int

const (
	KindVerse Kind = iota
	KindChunk
	KindChapterTitle
	KindBookTitle
	KindLicense
	KindUnknown
)

// Kinds lists every kind in output order.
var Kinds = []Kind{KindVerse, KindChunk, KindChapterTitle, KindBookTitle, KindLicense, KindUnknown}

func (k Kind) String() string {
	switch k {
	case KindVerse:
		return "verse"
	case KindChunk:
		return "chunk"
	case KindChapterTitle:
		return "chapter_title"
	case KindBookTitle:
		return "book_title"
	case KindLicense:
		return "license"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}
