// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-audio/riff"

	"github.com/ik5/wavcue/formats/wav/cue"
)

const (
	fmtChunkID  = "fmt "
	dataChunkID = "data"
	junkChunkID = "JUNK"
)

// Chunk is one chunk of a RIFF container.
type Chunk struct {
	ID string
	// Offset is the position of the chunk header in the file.
	Offset int64
	// Size is the declared payload size, pad byte excluded.
	Size uint32
	// Data holds the payload of chunks the scanner retains: "fmt ",
	// metadata chunks and everything after the data payload.
	Data []byte
}

// End returns the offset just past the payload and its pad byte.
func (c Chunk) End() int64 {
	return c.Offset + ChunkHeaderSize + int64(c.Size) + int64(c.Size%2)
}

// IsMetadata reports whether the chunk belongs to the cue layer.
func (c Chunk) IsMetadata() bool {
	return c.ID == cue.ChunkID || (c.ID == cue.ListChunkID && cue.IsLabelList(c.Data))
}

// Layout is the result of scanning a container.
type Layout struct {
	Header    Header
	FormatTag uint16
	// Chunks lists every chunk in file order, the data chunk included.
	Chunks []Chunk
	// Cues holds the decoded cue layer in cue point order.
	Cues []cue.Cue
}

func (l *Layout) payloadEnd() int64 {
	return l.Header.HeaderSize + l.Header.AudioLength
}

// PreDataMetadata returns the cue layer chunks stored ahead of the payload.
func (l *Layout) PreDataMetadata() []Chunk {
	var out []Chunk
	for _, c := range l.Chunks {
		if c.Offset < l.Header.HeaderSize && c.IsMetadata() {
			out = append(out, c)
		}
	}
	return out
}

// Trailing returns the chunks after the payload that are not part of the cue
// layer. They are carried through rewrites byte for byte.
func (l *Layout) Trailing() []Chunk {
	var out []Chunk
	for _, c := range l.Chunks {
		if c.Offset >= l.payloadEnd() && !c.IsMetadata() {
			out = append(out, c)
		}
	}
	return out
}

// Scan walks the chunks of the RIFF/WAVE container in r, which is size bytes
// long. Unknown chunks may appear anywhere. The data payload itself is never
// interpreted as chunks.
func Scan(r io.ReadSeeker, size int64, opts ...Option) (*Layout, error) {
	o := applyOptions(opts)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return nil, ErrNotWavFile
	}

	s := &scanner{
		r:      r,
		p:      p,
		size:   size,
		off:    RIFFHeaderSize,
		log:    o.logger,
		labels: make(map[uint32]string),
	}
	return s.scan()
}

type scanner struct {
	r    io.ReadSeeker
	p    *riff.Parser
	size int64
	off  int64
	log  *slog.Logger

	layout    Layout
	points    []cue.Point
	labels    map[uint32]string
	fmtFound  bool
	dataFound bool
}

func (s *scanner) scan() (*Layout, error) {
	for !s.dataFound {
		id, size, err := s.p.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) && id == [4]byte{} {
				if !s.fmtFound {
					return nil, ErrMissingFormat
				}
				return nil, ErrMissingData
			}
			return nil, &ChunkError{
				ID:     string(id[:]),
				Offset: s.off,
				Err:    fmt.Errorf("%w: %w", ErrTruncatedChunk, err),
			}
		}

		ch := Chunk{ID: string(id[:]), Offset: s.off, Size: size}
		if err := s.visit(&ch, false); err != nil {
			return nil, err
		}
	}

	s.scanTrailing()

	if !s.fmtFound {
		return nil, ErrMissingFormat
	}

	s.layout.Cues = cue.Join(s.points, s.labels)
	s.layout.Header.DataLength = s.size - ChunkHeaderSize

	s.log.Debug("scanned container",
		slog.Int("chunks", len(s.layout.Chunks)),
		slog.Int64("header_size", s.layout.Header.HeaderSize),
		slog.Int64("audio_length", s.layout.Header.AudioLength),
		slog.Int("cues", len(s.layout.Cues)))

	return &s.layout, nil
}

// scanTrailing walks the chunks after the data payload. Damage in this
// region never fails the scan; the walk stops at the first bad chunk.
func (s *scanner) scanTrailing() {
	if s.off >= s.size {
		return
	}
	if _, err := s.r.Seek(s.off, io.SeekStart); err != nil {
		s.log.Warn("cannot seek past data payload", slog.Int64("offset", s.off), slog.Any("error", err))
		return
	}

	for s.off+ChunkHeaderSize <= s.size {
		id, size, err := s.p.IDnSize()
		if err != nil {
			s.log.Warn("unreadable chunk header after data", slog.Int64("offset", s.off), slog.Any("error", err))
			return
		}

		ch := Chunk{ID: string(id[:]), Offset: s.off, Size: size}
		if err := s.visit(&ch, true); err != nil {
			s.log.Warn("ignoring chunks after data", slog.Int64("offset", ch.Offset), slog.Any("error", err))
			return
		}
	}

	if s.off < s.size {
		s.log.Debug("ignoring stray bytes at end of file", slog.Int64("offset", s.off), slog.Int64("size", s.size))
	}
}

func (s *scanner) visit(ch *Chunk, trailing bool) error {
	payloadOff := ch.Offset + ChunkHeaderSize
	// riff.Parser.IDnSize does not report a short size field.
	if payloadOff > s.size {
		return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: ErrTruncatedChunk}
	}
	avail := max(s.size-payloadOff, 0)

	if ch.ID == dataChunkID && !s.dataFound {
		audio := int64(ch.Size)
		if audio > avail {
			s.log.Warn("data chunk size exceeds file, clamping",
				slog.Int64("declared", audio), slog.Int64("available", avail))
			audio = avail
		}

		s.dataFound = true
		s.layout.Header.HeaderSize = payloadOff
		s.layout.Header.AudioLength = audio
		s.layout.Chunks = append(s.layout.Chunks, *ch)
		s.off = payloadOff + audio + audio%2
		return nil
	}

	if int64(ch.Size) > avail {
		return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: ErrTruncatedChunk}
	}

	if trailing || ch.ID == fmtChunkID || ch.ID == cue.ChunkID || ch.ID == cue.ListChunkID {
		ch.Data = make([]byte, ch.Size)
		if _, err := io.ReadFull(s.r, ch.Data); err != nil {
			return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: fmt.Errorf("%w: %w", ErrTruncatedChunk, err)}
		}
		if err := s.interpret(ch); err != nil {
			return err
		}
	}

	s.layout.Chunks = append(s.layout.Chunks, *ch)
	s.off = ch.End()

	if _, err := s.r.Seek(s.off, io.SeekStart); err != nil {
		return fmt.Errorf("seek to offset %d: %w", s.off, err)
	}
	return nil
}

func (s *scanner) interpret(ch *Chunk) error {
	switch ch.ID {
	case fmtChunkID:
		if s.fmtFound {
			s.log.Debug("ignoring duplicate fmt chunk", slog.Int64("offset", ch.Offset))
			return nil
		}
		tag, f, ok := decodeFmt(ch.Data)
		if !ok {
			return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: ErrTruncatedChunk}
		}
		s.fmtFound = true
		s.layout.FormatTag = tag
		s.layout.Header.Format = f

	case cue.ChunkID:
		points, err := cue.DecodeCuePoints(ch.Data)
		if err != nil {
			return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: fmt.Errorf("%w: %w", ErrMalformedContainer, err)}
		}
		s.points = append(s.points, points...)

	case cue.ListChunkID:
		if !cue.IsLabelList(ch.Data) {
			return nil
		}
		labels, err := cue.DecodeLabels(ch.Data)
		if err != nil {
			return &ChunkError{ID: ch.ID, Offset: ch.Offset, Err: fmt.Errorf("%w: %w", ErrMalformedContainer, err)}
		}
		for id, text := range labels {
			s.labels[id] = text
		}
	}
	return nil
}
