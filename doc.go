// SPDX-License-Identifier: EPL-2.0

// Package wavcue reads and writes the cue markers of WAV recordings used in
// a translation-recording workflow.
//
// The package ties together the container engine in formats/wav, the cue
// codec in formats/wav/cue and the classification pipeline in markers.
//
// # Quick Start
//
// Read the typed markers of a file:
//
//	groups, err := wavcue.ReadMarkers("chapter-01.wav")
//	for _, v := range groups[markers.KindVerse] {
//	    fmt.Printf("verse %d at frame %d\n", v.Start, v.Location)
//	}
//
// Replace them:
//
//	groups[markers.KindVerse] = append(groups[markers.KindVerse], markers.NewVerse(96000, 3, 3))
//	err = wavcue.WriteMarkers("chapter-01.wav", groups)
//
// # Many Files
//
// ReadMarkersMany reads a set of files in parallel, one session per file:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	byPath, err := wavcue.ReadMarkersMany(ctx, paths...)
//
// # Concatenation
//
// Concat joins takes of the same format into one file and moves each cue
// by the number of frames that precede its take:
//
//	err := wavcue.Concat(ctx, "chapter.wav", []string{"v1.wav", "v2.wav"})
//
// Cancelling ctx stops the copy between buffers. The output is a valid file
// holding everything copied so far; removing it is up to the caller.
//
// # Levels
//
// Levels decodes a file and reports the peak and RMS level of the audio
// following each marker.
package wavcue
