// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavcue/formats/wav/cue"
)

// Encode writes a complete file to w: a canonical 44 byte header, the pcm
// payload and, when cues is not empty, the cue layer after the payload.
func Encode(w io.Writer, format Format, pcm []byte, cues []cue.Cue) error {
	if err := format.Validate(); err != nil {
		return err
	}

	var meta []byte
	if len(cues) > 0 {
		b, err := cue.Marshal(cues)
		if err != nil {
			return fmt.Errorf("encode cues: %w", err)
		}
		meta = b
	}

	audioLength := int64(len(pcm))
	pad := audioLength % 2
	fileLength := CanonicalHeaderSize + audioLength + pad + int64(len(meta))

	header, err := encodeHeader(format, audioLength, fileLength)
	if err != nil {
		return err
	}

	// Write header in one operation
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("%w", err)
	}

	if pad == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if len(meta) > 0 {
		if _, err := w.Write(meta); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM file at sampleRate with optional cues.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16, cues ...cue.Cue) error {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:i*2+2], uint16(s))
	}

	format := Format{Channels: 1, SampleRate: sampleRate, BitsPerSample: 16}
	return Encode(w, format, pcm, cues)
}
