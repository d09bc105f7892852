// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"github.com/ik5/wavcue/formats/wav/cue"
)

// matcher accepts the cues of one kind and hands back the rest in order.
type matcher func(cues []cue.Cue) (matched []Marker, rest []cue.Cue)

// pipeline is the fixed matcher priority. A cue accepted by one stage is
// never seen by a later one.
var pipeline = []struct {
	kind  Kind
	match matcher
}{
	{KindVerse, verseCascade.match},
	{KindChunk, chunkMatcher},
	{KindChapterTitle, chapterMatcher},
	{KindBookTitle, bookMatcher},
}

// Groups holds markers by kind, each list in cue order.
type Groups map[Kind][]Marker

// Len returns the number of markers across all kinds.
func (g Groups) Len() int {
	n := 0
	for _, ms := range g {
		n += len(ms)
	}
	return n
}

// All returns every marker, kinds in Kinds order.
func (g Groups) All() []Marker {
	out := make([]Marker, 0, g.Len())
	for _, k := range Kinds {
		out = append(out, g[k]...)
	}
	return out
}

// Cues returns the cues to persist for every marker, kinds in Kinds order.
func (g Groups) Cues() []cue.Cue {
	return persist(g.All())
}

// Classify sorts cues into marker groups. Cues that no matcher accepts are
// returned as rejected and also appear once each under KindUnknown.
// Classification never fails.
func Classify(cues []cue.Cue) (Groups, []cue.Cue) {
	groups := make(Groups)

	rest := cues
	for _, stage := range pipeline {
		var matched []Marker
		matched, rest = stage.match(rest)
		if len(matched) > 0 {
			groups[stage.kind] = matched
		}
	}

	var rejected []cue.Cue
	for _, c := range rest {
		rejected = append(rejected, c)
		groups[KindUnknown] = append(groups[KindUnknown], NewUnknown(c))
	}

	return groups, rejected
}

// SourceMarkers is the split of a source recording into verses and chunks.
// Extra keeps every cue neither cascade accepted.
type SourceMarkers struct {
	Verses []Marker
	Chunks []Marker
	Extra  []cue.Cue
}

// ClassifySource runs the verse cascade, then the chunk cascade over what
// is left. Both cascades use the strict, bare number and embedded number
// strategies.
func ClassifySource(cues []cue.Cue) SourceMarkers {
	verses, rest := verseCascade.match(cues)
	chunks, extra := chunkCascade.match(rest)

	return SourceMarkers{
		Verses: verses,
		Chunks: chunks,
		Extra:  extra,
	}
}

// Cues returns the cues to persist: verses, chunks, then the extra cues
// unchanged.
func (s SourceMarkers) Cues() []cue.Cue {
	ms := make([]Marker, 0, len(s.Verses)+len(s.Chunks))
	ms = append(ms, s.Verses...)
	ms = append(ms, s.Chunks...)
	return append(persist(ms), s.Extra...)
}
