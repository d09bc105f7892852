// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/wavcue/formats/wav/cue"
)

func TestMarker_Labels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker Marker
		want   string
	}{
		{NewVerse(0, 3, 3), "orature-vm-3"},
		{NewVerse(0, 3, 5), "orature-vm-3-5"},
		{NewVerse(0, 5, 3), "orature-vm-5-3"},
		{NewChunk(0, 2), "orature-chunk-2"},
		{NewChapterTitle(0, 12), "orature-chapter-12"},
		{NewBookTitle(0, "mrk"), "orature-book-mrk"},
		{NewLicense(0), "orature-license"},
		{NewUnknown(cue.Cue{Location: 4, Label: "take two"}), "take two"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.marker.Label(), "%v", tt.marker.Kind)
		assert.Equal(t, []cue.Cue{tt.marker.ToCue()}, tt.marker.Cues(), "%v", tt.marker.Kind)
	}
}

func TestMarker_CuesKeepStrictSource(t *testing.T) {
	t.Parallel()

	// A zero padded strict label is written in canonical form next to the original.
	m := Marker{Kind: KindVerse, Location: 7, Start: 1, End: 1, Source: cue.Cue{Location: 7, Label: "orature-vm-01"}}
	assert.Equal(t, []cue.Cue{
		{Location: 7, Label: "orature-vm-1"},
		{Location: 7, Label: "orature-vm-01"},
	}, m.Cues())
}

func TestMarker_MovedKeepsLocation(t *testing.T) {
	t.Parallel()

	m := NewChunk(10, 1)
	m.Location = 20
	assert.Equal(t, []cue.Cue{{Location: 20, Label: "orature-chunk-1"}}, m.Cues())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	want := []string{"verse", "chunk", "chapter_title", "book_title", "license", "unknown"}
	for i, k := range Kinds {
		assert.Equal(t, want[i], k.String())
	}
	assert.Equal(t, "invalid", Kind(42).String())
}
