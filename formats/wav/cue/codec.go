// SPDX-License-Identifier: EPL-2.0

package cue

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Chunk and sub-chunk identifiers.
const (
	ChunkID     = "cue "
	ListChunkID = "LIST"
	LabelListID = "adtl"
	LabelID     = "labl"
	DataChunkID = "data"
)

const (
	// FirstID is the id given to the first cue of an encoded list.
	FirstID = 1

	chunkHeaderSize = 8
	countSize       = 4
	pointSize       = 24
	idSize          = 4
)

// Point is a decoded cue point record.
type Point struct {
	ID           uint32
	Position     uint32
	SampleOffset uint32
}

// Location returns the sample frame the point refers to. The sample offset
// is authoritative; writers that leave it zero are read from Position.
func (p Point) Location() int {
	if p.SampleOffset == 0 {
		return int(p.Position)
	}
	return int(p.SampleOffset)
}

// Marshal encodes cues as a "cue " chunk followed by a "LIST"/"adtl" chunk.
func Marshal(cues []Cue) ([]byte, error) {
	points, err := EncodeCuePoints(cues)
	if err != nil {
		return nil, err
	}

	labels, err := EncodeLabels(cues)
	if err != nil {
		return nil, err
	}

	return append(points, labels...), nil
}

// Unmarshal decodes every "cue " and "LIST"/"adtl" chunk found in b.
// Other chunks are skipped.
func Unmarshal(b []byte) ([]Cue, error) {
	var (
		points []Point
		labels = make(map[uint32]string)
	)

	err := walk(b, func(id string, payload []byte) error {
		switch id {
		case ChunkID:
			p, err := DecodeCuePoints(payload)
			if err != nil {
				return err
			}
			points = append(points, p...)
		case ListChunkID:
			if !IsLabelList(payload) {
				return nil
			}
			l, err := DecodeLabels(payload)
			if err != nil {
				return err
			}
			for k, v := range l {
				labels[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Join(points, labels), nil
}

// EncodeCuePoints builds the "cue " chunk, header included.
func EncodeCuePoints(cues []Cue) ([]byte, error) {
	payload := countSize + pointSize*len(cues)
	buf := make([]byte, chunkHeaderSize+payload)

	copy(buf[0:4], ChunkID)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(payload))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(cues)))

	off := chunkHeaderSize + countSize
	for i, c := range cues {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrLocationRange, c.Location)
		}

		rec := buf[off : off+pointSize]
		binary.LittleEndian.PutUint32(rec[0:4], uint32(FirstID+i))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(c.Location))
		copy(rec[8:12], DataChunkID)
		// chunk start and block start stay zero
		binary.LittleEndian.PutUint32(rec[20:24], uint32(c.Location))
		off += pointSize
	}

	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrAlignment, ChunkID, len(buf))
	}

	return buf, nil
}

// EncodeLabels builds the "LIST"/"adtl" chunk, header included.
func EncodeLabels(cues []Cue) ([]byte, error) {
	body := new(bytes.Buffer)
	body.WriteString(LabelListID)

	var hdr [chunkHeaderSize + idSize]byte
	for i, c := range cues {
		size := idSize + len(c.Label) + 1

		copy(hdr[0:4], LabelID)
		binary.LittleEndian.PutUint32(hdr[4:8], uint32(size))
		binary.LittleEndian.PutUint32(hdr[8:12], uint32(FirstID+i))

		body.Write(hdr[:])
		body.WriteString(c.Label)
		body.WriteByte(0)
		if size%2 == 1 {
			body.WriteByte(0)
		}

		if body.Len()%2 != 0 {
			return nil, fmt.Errorf("%w: label sub-chunk for cue %d", ErrAlignment, FirstID+i)
		}
	}

	buf := make([]byte, chunkHeaderSize, chunkHeaderSize+body.Len())
	copy(buf[0:4], ListChunkID)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(body.Len()))

	return append(buf, body.Bytes()...), nil
}

// DecodeCuePoints parses a "cue " chunk payload (without the chunk header).
// A count larger than the payload can hold yields the complete records only.
func DecodeCuePoints(payload []byte) ([]Point, error) {
	if len(payload) < countSize {
		return nil, fmt.Errorf("%w: %q has %d bytes", ErrShortChunk, ChunkID, len(payload))
	}

	count := int(binary.LittleEndian.Uint32(payload[0:4]))
	count = min(count, (len(payload)-countSize)/pointSize)

	points := make([]Point, 0, count)
	for i := range count {
		rec := payload[countSize+i*pointSize:]
		points = append(points, Point{
			ID:           binary.LittleEndian.Uint32(rec[0:4]),
			Position:     binary.LittleEndian.Uint32(rec[4:8]),
			SampleOffset: binary.LittleEndian.Uint32(rec[20:24]),
		})
	}

	return points, nil
}

// IsLabelList reports whether a "LIST" payload is an "adtl" list.
func IsLabelList(payload []byte) bool {
	return len(payload) >= 4 && string(payload[0:4]) == LabelListID
}

// DecodeLabels parses a "LIST"/"adtl" payload (type included, chunk header
// excluded) into label text keyed by cue id. Sub-chunks other than "labl"
// are skipped. The text is the declared sub-chunk body less one NUL
// terminator; a body without one is kept whole. A sub-chunk that runs past
// the payload is read up to the end.
func DecodeLabels(payload []byte) (map[uint32]string, error) {
	if !IsLabelList(payload) {
		return nil, ErrNotLabelList
	}

	labels := make(map[uint32]string)
	err := walk(payload[4:], func(id string, body []byte) error {
		if id != LabelID || len(body) < idSize {
			return nil
		}
		text := body[idSize:]
		if n := len(text); n > 0 && text[n-1] == 0 {
			text = text[:n-1]
		}
		labels[binary.LittleEndian.Uint32(body[0:4])] = string(text)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return labels, nil
}

// Join pairs cue points with their labels, keeping point order.
func Join(points []Point, labels map[uint32]string) []Cue {
	cues := make([]Cue, 0, len(points))
	for _, p := range points {
		cues = append(cues, Cue{Location: p.Location(), Label: labels[p.ID]})
	}
	return cues
}

// walk visits each chunk of b. Trailing bytes too short for a chunk header
// are ignored.
func walk(b []byte, fn func(id string, payload []byte) error) error {
	off := 0
	for off+chunkHeaderSize <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		start := off + chunkHeaderSize
		end := min(start+size, len(b))

		if err := fn(id, b[start:end]); err != nil {
			return err
		}

		off = start + size + size%2
	}
	return nil
}
