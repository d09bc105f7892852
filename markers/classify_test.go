// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavcue/formats/wav/cue"
)

func labels(ms []Marker) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Label())
	}
	return out
}

func TestClassify_StrictSuppressesFallbacks(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{{Location: 0, Label: "orature-vm-1"}, {Location: 2, Label: "Verse 2"}}
	groups, rejected := Classify(cues)

	require.Len(t, groups[KindVerse], 1)
	assert.Equal(t, 1, groups[KindVerse][0].Start)
	assert.Equal(t, 0, groups[KindVerse][0].Location)

	assert.Equal(t, []cue.Cue{{Location: 2, Label: "Verse 2"}}, rejected)
	require.Len(t, groups[KindUnknown], 1)
	assert.Equal(t, cues[1], groups[KindUnknown][0].Source)
}

func TestClassify_EmbeddedNumber(t *testing.T) {
	t.Parallel()

	groups, rejected := Classify([]cue.Cue{{Location: 10, Label: "verse 10"}})

	assert.Empty(t, rejected)
	require.Len(t, groups[KindVerse], 1)

	v := groups[KindVerse][0]
	assert.Equal(t, 10, v.Location)
	assert.Equal(t, 10, v.Start)
	assert.Equal(t, 10, v.End)

	assert.Equal(t, []cue.Cue{
		{Location: 10, Label: "orature-vm-10"},
		{Location: 10, Label: "verse 10"},
	}, v.Cues())
}

func TestClassify_LoneDigits(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: " 1 "},
		{Location: 5, Label: "2-3"},
		{Location: 9, Label: "4"},
	}
	groups, rejected := Classify(cues)

	assert.Empty(t, rejected)
	assert.Equal(t, []string{"orature-vm-1", "orature-vm-2-3", "orature-vm-4"}, labels(groups[KindVerse]))

	r := groups[KindVerse][1]
	assert.Equal(t, 2, r.Start)
	assert.Equal(t, 3, r.End)
}

func TestClassify_LoneDigitsNeedEveryCandidate(t *testing.T) {
	t.Parallel()

	// "v3" is not a bare number, so the whole set falls through to the
	// embedded strategy, which still reads all three.
	cues := []cue.Cue{{Location: 0, Label: "1"}, {Location: 1, Label: "2"}, {Location: 2, Label: "v3"}}
	groups, _ := Classify(cues)

	require.Len(t, groups[KindVerse], 3)
	assert.Equal(t, cues[2], groups[KindVerse][2].Source)
	assert.Len(t, groups[KindVerse][2].Cues(), 2)
	assert.Len(t, groups[KindVerse][0].Cues(), 2)
}

func TestClassify_FullWidthDigits(t *testing.T) {
	t.Parallel()

	groups, rejected := Classify([]cue.Cue{{Location: 3, Label: "１２"}})

	assert.Empty(t, rejected)
	require.Len(t, groups[KindVerse], 1)
	assert.Equal(t, 12, groups[KindVerse][0].Start)
}

func TestClassify_AllKinds(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "orature-book-gen"},
		{Location: 1, Label: "orature-chapter-1"},
		{Location: 2, Label: "orature-vm-1"},
		{Location: 3, Label: "orature-vm-2-4"},
		{Location: 4, Label: "orature-chunk-1"},
		{Location: 5, Label: "orature-chunk-2"},
		{Location: 6, Label: "noise"},
		{Location: 7, Label: "orature-license"},
	}
	groups, rejected := Classify(cues)

	assert.Equal(t, []string{"orature-vm-1", "orature-vm-2-4"}, labels(groups[KindVerse]))
	assert.Equal(t, []string{"orature-chunk-1", "orature-chunk-2"}, labels(groups[KindChunk]))
	assert.Equal(t, []string{"orature-chapter-1"}, labels(groups[KindChapterTitle]))
	require.Len(t, groups[KindBookTitle], 1)
	assert.Equal(t, "gen", groups[KindBookTitle][0].Name)

	assert.Equal(t, []cue.Cue{{Location: 6, Label: "noise"}, {Location: 7, Label: "orature-license"}}, rejected)
	assert.Len(t, groups[KindUnknown], 2)
	assert.Equal(t, len(cues), groups.Len())
}

func TestClassify_FallbacksSkipOtherNamespaces(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "verse 1"},
		{Location: 1, Label: "orature-chunk-7"},
		{Location: 2, Label: "orature-chapter-3"},
	}
	groups, rejected := Classify(cues)

	assert.Empty(t, rejected)
	assert.Equal(t, []string{"orature-vm-1"}, labels(groups[KindVerse]))
	assert.Equal(t, []string{"orature-chunk-7"}, labels(groups[KindChunk]))
	assert.Equal(t, []string{"orature-chapter-3"}, labels(groups[KindChapterTitle]))
}

func TestClassify_UnknownExactlyOnce(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "orature-vm-1"},
		{Location: 1, Label: "intro"},
		{Location: 1, Label: "intro"},
		{Location: 2, Label: ""},
		{Location: 3, Label: "orature-vm-x"},
	}
	groups, rejected := Classify(cues)

	assert.Equal(t, cues[1:], rejected)
	require.Len(t, groups[KindUnknown], 4)
	for i, m := range groups[KindUnknown] {
		assert.Equal(t, cues[i+1], m.Source)
		assert.Equal(t, []cue.Cue{cues[i+1]}, m.Cues())
	}
	assert.Equal(t, len(cues), groups.Len())
}

func TestClassify_EveryCueLandsOnce(t *testing.T) {
	t.Parallel()

	inputs := [][]cue.Cue{
		nil,
		{{Location: 0, Label: "a"}},
		{{Location: 0, Label: "1"}, {Location: 1, Label: "x"}},
		{{Location: 0, Label: "99999999999999999999999"}},
		{{Location: 0, Label: "orature-chunk-1"}, {Location: 1, Label: "chunk two"}},
	}

	for _, cues := range inputs {
		groups, rejected := Classify(cues)
		assert.Equal(t, len(cues), groups.Len(), "cues %v", cues)
		assert.Len(t, groups[KindUnknown], len(rejected), "cues %v", cues)
	}
}

func TestClassify_OverflowIsRejected(t *testing.T) {
	t.Parallel()

	_, rejected := Classify([]cue.Cue{{Location: 0, Label: "99999999999999999999999"}})
	assert.Len(t, rejected, 1)
}

func TestClassifySource(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "orature-vm-1"},
		{Location: 100, Label: "orature-vm-2"},
		{Location: 0, Label: "orature-chunk-1"},
		{Location: 50, Label: "take 3 retry"},
		{Location: 70, Label: "breath"},
	}
	src := ClassifySource(cues)

	assert.Equal(t, []string{"orature-vm-1", "orature-vm-2"}, labels(src.Verses))
	assert.Equal(t, []string{"orature-chunk-1"}, labels(src.Chunks))
	assert.Equal(t, []cue.Cue{{Location: 50, Label: "take 3 retry"}, {Location: 70, Label: "breath"}}, src.Extra)

	assert.ElementsMatch(t, cues, src.Cues())
}

func TestClassifySource_ChunkFallback(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "orature-vm-1"},
		{Location: 10, Label: "1"},
		{Location: 20, Label: "2"},
	}
	src := ClassifySource(cues)

	assert.Equal(t, []string{"orature-vm-1"}, labels(src.Verses))
	assert.Equal(t, []string{"orature-chunk-1", "orature-chunk-2"}, labels(src.Chunks))
	assert.Empty(t, src.Extra)

	assert.Equal(t, []cue.Cue{
		{Location: 0, Label: "orature-vm-1"},
		{Location: 10, Label: "orature-chunk-1"},
		{Location: 10, Label: "1"},
		{Location: 20, Label: "orature-chunk-2"},
		{Location: 20, Label: "2"},
	}, src.Cues())
}

func TestClassify_RewriteIsStable(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{{Location: 10, Label: "verse 10"}, {Location: 20, Label: "verse 11"}}

	first, _ := Classify(cues)
	persisted := first.Cues()

	second, _ := Classify(persisted)
	assert.ElementsMatch(t, persisted, second.Cues())
}

func TestClassify_PersistKeepsOriginals(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{{Location: 1, Label: "orature-vm-01"}, {Location: 2, Label: "orature-vm-5-3"}}

	groups, rejected := Classify(cues)
	require.Empty(t, rejected)

	persisted := groups.Cues()
	assert.Equal(t, []cue.Cue{
		{Location: 1, Label: "orature-vm-1"},
		{Location: 1, Label: "orature-vm-01"},
		{Location: 2, Label: "orature-vm-5-3"},
	}, persisted)

	for range 3 {
		again, _ := Classify(persisted)
		assert.ElementsMatch(t, persisted, again.Cues())
	}
}

func TestClassify_PersistKeepsDuplicates(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 4, Label: "orature-vm-02"},
		{Location: 4, Label: "orature-vm-02"},
		{Location: 9, Label: "orature-vm-3"},
		{Location: 9, Label: "orature-vm-3"},
	}

	groups, _ := Classify(cues)
	persisted := groups.Cues()
	for _, c := range cues {
		assert.Contains(t, persisted, c)
	}

	again, _ := Classify(persisted)
	assert.ElementsMatch(t, persisted, again.Cues())
}

func TestClassify_LoneDigitsIgnoreOtherNamespaces(t *testing.T) {
	t.Parallel()

	cues := []cue.Cue{
		{Location: 0, Label: "1"},
		{Location: 5, Label: "orature-chunk-4"},
		{Location: 9, Label: "2-3"},
	}
	groups, rejected := Classify(cues)

	assert.Empty(t, rejected)
	assert.Equal(t, []string{"orature-vm-1", "orature-vm-2-3"}, labels(groups[KindVerse]))
	assert.Equal(t, []string{"orature-chunk-4"}, labels(groups[KindChunk]))
}
