// SPDX-License-Identifier: EPL-2.0

// Package markers interprets cues as typed markers: verses, chunks, chapter
// and book titles, licenses and unknown cues.
//
// Classify runs an ordered cascade of matchers over a cue list. Each matcher
// only sees the cues every earlier matcher rejected, and cues no matcher
// accepts become Unknown markers, so nothing is dropped:
//
//	groups, rejected := markers.Classify(f.Cues())
//	for _, v := range groups[markers.KindVerse] {
//	    fmt.Println(v.Start, v.Location)
//	}
//
// Verse matching decides on a strategy for the whole cue set. When any label
// has the strict form "orature-vm-N" (or "orature-vm-N-M") only strict labels
// are verses. Otherwise, when every label is a bare number or range, each is
// a verse. Otherwise the first digit run of each label is its verse number.
//
// A Marker remembers the cue it came from. When the canonical label differs
// from the original, Cues returns both so a rewrite loses nothing.
package markers
