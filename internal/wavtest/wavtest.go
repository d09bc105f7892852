// SPDX-License-Identifier: EPL-2.0

// Package wavtest builds RIFF/WAVE containers with arbitrary chunk layouts
// for tests.
package wavtest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Chunk is a raw chunk to place in a container.
type Chunk struct {
	ID   string
	Data []byte
	// Size overrides the declared size when non-zero.
	Size uint32
	// Raw, when set, is copied as is in place of a header and payload.
	Raw []byte
}

// Build assembles a RIFF/WAVE container. Odd payloads get a pad byte and the
// RIFF size covers everything written.
func Build(chunks ...Chunk) []byte {
	b := []byte("RIFF\x00\x00\x00\x00WAVE")
	for _, c := range chunks {
		b = Append(b, c)
	}
	binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)-8))
	return b
}

// Append adds one chunk to b, padding odd payloads.
func Append(b []byte, c Chunk) []byte {
	if c.Raw != nil {
		return append(b, c.Raw...)
	}

	size := c.Size
	if size == 0 {
		size = uint32(len(c.Data))
	}
	b = append(b, c.ID...)
	b = binary.LittleEndian.AppendUint32(b, size)
	b = append(b, c.Data...)
	if len(c.Data)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

// Fmt returns a 16 byte PCM "fmt " chunk.
func Fmt(channels, sampleRate, bitsPerSample int) Chunk {
	blockAlign := channels * bitsPerSample / 8

	d := make([]byte, 16)
	binary.LittleEndian.PutUint16(d[0:2], 1)
	binary.LittleEndian.PutUint16(d[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(d[4:8], uint32(sampleRate))
	binary.LittleEndian.PutUint32(d[8:12], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(d[12:14], uint16(blockAlign))
	binary.LittleEndian.PutUint16(d[14:16], uint16(bitsPerSample))
	return Chunk{ID: "fmt ", Data: d}
}

// Data returns a "data" chunk holding pcm.
func Data(pcm []byte) Chunk {
	return Chunk{ID: "data", Data: pcm}
}

// Raw wraps already encoded chunks, such as a marshalled cue layer.
func Raw(b []byte) Chunk {
	return Chunk{Raw: b}
}

// Junk returns a chunk with an arbitrary id and n filler bytes.
func Junk(id string, n int) Chunk {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte('a' + i%26)
	}
	return Chunk{ID: id, Data: d}
}

// PCM16 encodes samples as little-endian 16-bit PCM.
func PCM16(samples ...int16) []byte {
	b := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}

// WriteFile writes b to name inside a fresh temporary directory.
func WriteFile(tb testing.TB, name string, b []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}
