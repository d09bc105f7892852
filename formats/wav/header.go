// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// RIFFHeaderSize covers "RIFF", the RIFF size and "WAVE".
	RIFFHeaderSize = 12

	// ChunkHeaderSize covers a chunk id and its size field.
	ChunkHeaderSize = 8

	// CanonicalHeaderSize is the header size of a file holding only
	// "fmt " and "data" ahead of the payload.
	CanonicalHeaderSize = 44

	FormatPCM        = 0x0001
	FormatExtensible = 0xFFFE

	fmtChunkSize = 16
	maxRIFFSize  = math.MaxUint32
)

var validate = validator.New()

// Format is the PCM layout of a write target.
type Format struct {
	Channels      int `validate:"min=1,max=65535"`
	SampleRate    int `validate:"min=1,max=4294967295"`
	BitsPerSample int `validate:"oneof=8 16 24 32"`
}

// Validate reports ErrUnsupportedFormat when the format cannot be written.
func (f Format) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return nil
}

// FrameSize is the number of bytes one sample frame takes across all channels.
func (f Format) FrameSize() int {
	return f.Channels * f.BitsPerSample / 8
}

func (f Format) ByteRate() int {
	return f.SampleRate * f.FrameSize()
}

// Header is the size accounting of a scanned or written container.
type Header struct {
	Format

	// HeaderSize is the offset of the first payload byte of the data chunk.
	HeaderSize int64
	// AudioLength is the size of the data chunk payload.
	AudioLength int64
	// DataLength is the file length minus the RIFF chunk header.
	DataLength int64
}

// Frames returns the number of complete sample frames in the payload.
func (h Header) Frames() int64 {
	fs := h.FrameSize()
	if fs == 0 {
		return 0
	}
	return h.AudioLength / int64(fs)
}

// Duration returns the play time of the payload.
func (h Header) Duration() time.Duration {
	if h.SampleRate == 0 {
		return 0
	}
	return time.Duration(h.Frames()) * time.Second / time.Duration(h.SampleRate)
}

// encodeHeader builds a canonical 44 byte header. fileLength is the length of
// the whole file once every trailing chunk is written.
func encodeHeader(f Format, audioLength, fileLength int64) ([]byte, error) {
	if fileLength-ChunkHeaderSize > maxRIFFSize {
		return nil, ErrFileTooLarge
	}

	header := make([]byte, CanonicalHeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(fileLength-ChunkHeaderSize))
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(header[32:34], uint16(f.FrameSize()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(audioLength))

	return header, nil
}

// decodeFmt reads the fields of a "fmt " payload that the engine uses.
func decodeFmt(payload []byte) (tag uint16, f Format, ok bool) {
	if len(payload) < fmtChunkSize {
		return 0, Format{}, false
	}

	tag = binary.LittleEndian.Uint16(payload[0:2])
	f = Format{
		Channels:      int(binary.LittleEndian.Uint16(payload[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(payload[4:8])),
		BitsPerSample: int(binary.LittleEndian.Uint16(payload[14:16])),
	}
	return tag, f, true
}
