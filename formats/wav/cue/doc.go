// SPDX-License-Identifier: EPL-2.0

// Package cue encodes and decodes the cue metadata layer of a WAV file.
//
// A cue is a (location, label) pair. On disk a list of cues is stored as two
// RIFF chunks: a "cue " chunk holding one 24-byte cue point per cue, and a
// "LIST" chunk of type "adtl" holding one "labl" sub-chunk per cue that
// carries the label text.
//
// # Layout
//
//	"cue " size count
//	    id position "data" chunkStart=0 blockStart=0 sampleOffset   (x count)
//	"LIST" size "adtl"
//	    "labl" size id text NUL [pad]                               (x count)
//
// Every label sub-chunk is padded on its own to an even length, so the
// "LIST" chunk and the "cue " chunk are always even sized.
//
// # Encoding and Decoding
//
//	b, err := cue.Marshal([]cue.Cue{{Location: 0, Label: "orature-vm-1"}})
//	cues, err := cue.Unmarshal(b)
//
// Cue ids are assigned from FirstID in input order. Decoding returns cues in
// the order of the cue point records, which is the order they were encoded.
// Consumers that want location order call SortByLocation explicitly.
package cue
