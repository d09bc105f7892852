// SPDX-License-Identifier: EPL-2.0

package cue

import "errors"

var (
	// ErrShortChunk indicates a chunk payload is too short to hold its fixed fields.
	ErrShortChunk = errors.New("cue: chunk payload too short")

	// ErrNotLabelList indicates a LIST chunk whose type is not "adtl".
	ErrNotLabelList = errors.New("cue: LIST chunk is not an adtl list")

	// ErrLocationRange indicates a cue location that does not fit a 32-bit sample offset.
	ErrLocationRange = errors.New("cue: location out of range")

	// ErrAlignment indicates an encoded chunk or sub-chunk with an odd length.
	// It is never expected at runtime.
	ErrAlignment = errors.New("cue: chunk is not word aligned")
)
