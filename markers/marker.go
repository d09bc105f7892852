// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"fmt"
	"strconv"

	"github.com/ik5/wavcue/formats/wav/cue"
)

// Label prefixes of the strict namespaces.
const (
	VersePrefix   = "orature-vm-"
	ChunkPrefix   = "orature-chunk-"
	ChapterPrefix = "orature-chapter-"
	BookPrefix    = "orature-book-"
	LicenseLabel  = "orature-license"
)

// Marker is one typed interpretation of a cue.
//
// Start and End hold the verse range (equal for a single verse). Number is
// the chunk or chapter number. Name is the book slug.
type Marker struct {
	Kind     Kind
	Location int

	Start  int
	End    int
	Number int
	Name   string

	// Source is the cue the marker was read from. Markers built with the
	// New functions carry their canonical cue.
	Source cue.Cue
}

func withSource(m Marker) Marker {
	m.Source = m.ToCue()
	return m
}

// NewVerse returns a verse marker covering start..end.
func NewVerse(location, start, end int) Marker {
	return withSource(Marker{Kind: KindVerse, Location: location, Start: start, End: end})
}

func NewChunk(location, number int) Marker {
	return withSource(Marker{Kind: KindChunk, Location: location, Number: number})
}

func NewChapterTitle(location, number int) Marker {
	return withSource(Marker{Kind: KindChapterTitle, Location: location, Number: number})
}

func NewBookTitle(location int, name string) Marker {
	return withSource(Marker{Kind: KindBookTitle, Location: location, Name: name})
}

func NewLicense(location int) Marker {
	return withSource(Marker{Kind: KindLicense, Location: location})
}

// NewUnknown wraps a cue that no matcher accepted.
func NewUnknown(c cue.Cue) Marker {
	return Marker{Kind: KindUnknown, Location: c.Location, Source: c}
}

// Label returns the canonical label of the marker. Unknown markers keep the
// label of their source cue.
func (m Marker) Label() string {
	switch m.Kind {
	case KindVerse:
		if m.End != m.Start {
			return fmt.Sprintf("%s%d-%d", VersePrefix, m.Start, m.End)
		}
		return VersePrefix + strconv.Itoa(m.Start)
	case KindChunk:
		return ChunkPrefix + strconv.Itoa(m.Number)
	case KindChapterTitle:
		return ChapterPrefix + strconv.Itoa(m.Number)
	case KindBookTitle:
		return BookPrefix + m.Name
	case KindLicense:
		return LicenseLabel
	default:
		return m.Source.Label
	}
}

// ToCue returns the canonical cue of the marker.
func (m Marker) ToCue() cue.Cue {
	return cue.Cue{Location: m.Location, Label: m.Label()}
}

// Cues returns the cues to persist for the marker: the canonical cue, then
// the source cue when its label differs, so no original label is lost.
func (m Marker) Cues() []cue.Cue {
	canonical := m.ToCue()
	if m.Kind == KindUnknown || m.Source.Label == canonical.Label {
		return []cue.Cue{canonical}
	}
	return []cue.Cue{canonical, m.Source}
}

// persist returns the cues of ms in order. Every source cue is kept. A
// canonical cue is left out when another marker of the set already carries
// it as its own cue, which keeps a rewrite from growing the cue list.
func persist(ms []Marker) []cue.Cue {
	owned := make(map[cue.Cue]bool, len(ms))
	for _, m := range ms {
		cs := m.Cues()
		owned[cs[len(cs)-1]] = true
	}

	var out []cue.Cue
	for _, m := range ms {
		cs := m.Cues()
		if len(cs) == 2 && owned[cs[0]] {
			cs = cs[1:]
		}
		out = append(out, cs...)
	}
	return out
}

func (m Marker) String() string {
	return fmt.Sprintf("%s@%d(%s)", m.Kind, m.Location, m.Label())
}
