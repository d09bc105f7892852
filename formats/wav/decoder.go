// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavcue/audio"
)

// pcmReader is the part of the go-audio decoder the source needs.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source exposes the payload of a scanned file as float32 samples.
type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	remaining  int64 // samples left in the data chunk
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.remaining <= 0 {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	want := int(min(int64(len(dst)), s.remaining))
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		s.remaining = 0
		return 0, io.EOF
	}
	s.remaining -= int64(n)

	// go-audio hands 8-bit samples back unsigned
	var offset float32
	var scale float32
	switch s.bitDepth {
	case 8:
		offset, scale = 128.0, 128.0
	case 24:
		scale = 8388608.0
	case 32:
		scale = 2147483648.0
	default:
		scale = 32768.0
	}

	for i := range n {
		dst[i] = (float32(s.intBuf.Data[i]) - offset) / scale
	}

	if s.remaining <= 0 {
		return n, io.EOF
	}
	return n, nil
}

// Decoder builds an audio.Source over the payload of a PCM file. The chunk
// layout is located with Scan, so unknown and metadata chunks may sit
// anywhere in the container.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	layout, err := Scan(rs, size)
	if err != nil {
		return nil, err
	}

	if layout.FormatTag != FormatPCM && layout.FormatTag != FormatExtensible {
		return nil, fmt.Errorf("%w: format tag 0x%04x", ErrUnsupportedFormat, layout.FormatTag)
	}
	if err := layout.Header.Format.Validate(); err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	h := layout.Header
	return &source{
		dec:        dec,
		sampleRate: h.SampleRate,
		channels:   h.Channels,
		bitDepth:   h.BitsPerSample,
		remaining:  h.AudioLength / int64(h.BitsPerSample/8),
	}, nil
}
