// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedContainer is the root of every container layout error.
	ErrMalformedContainer = errors.New("malformed container")

	ErrNotWavFile     = fmt.Errorf("%w: not a RIFF/WAVE stream", ErrMalformedContainer)
	ErrMissingFormat  = fmt.Errorf("%w: no fmt chunk", ErrMalformedContainer)
	ErrMissingData    = fmt.Errorf("%w: no data chunk", ErrMalformedContainer)
	ErrTruncatedChunk = fmt.Errorf("%w: truncated chunk", ErrMalformedContainer)

	// ErrUnsupportedFormat is returned when a file cannot be a write target.
	ErrUnsupportedFormat = errors.New("unsupported format")

	ErrReaderReleased = errors.New("reader released")
	ErrWriterClosed   = errors.New("writer closed")
	ErrFileTooLarge   = errors.New("file exceeds the 4 GiB RIFF limit")
)

// ChunkError reports a problem with a specific chunk of the container.
type ChunkError struct {
	ID     string
	Offset int64
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %q at offset %d: %v", e.ID, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
