// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/ik5/wavcue/formats/wav/cue"
)

// File is a session on one WAV file: its header accounting and its cue layer.
//
// Cues are loaded by Open, start empty after Create, and are changed in
// memory with AddCue, ImportCues and ClearCues. Nothing reaches the disk
// until Update (or the Close of a Writer) rewrites the file.
//
// The cue list is guarded by a mutex so several producers may add cues to
// one session. Two sessions on the same path are not coordinated.
type File struct {
	path string
	log  *slog.Logger

	mu        sync.Mutex
	header    Header
	formatTag uint16
	cues      []cue.Cue
	// stale holds offsets of cue layer chunks found ahead of the payload.
	// Update renames them to JUNK since the cue layer is rewritten after it.
	stale    []int64
	trailing []Chunk
}

// Open scans the file at path and loads its cues. No file handle is kept.
func Open(path string, opts ...Option) (*File, error) {
	o := applyOptions(opts)

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer fh.Close()

	stat, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	layout, err := Scan(fh, stat.Size(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f := &File{
		path:      path,
		log:       o.logger.With(slog.String("path", path)),
		header:    layout.Header,
		formatTag: layout.FormatTag,
		cues:      layout.Cues,
		trailing:  layout.Trailing(),
	}
	for _, c := range layout.PreDataMetadata() {
		f.stale = append(f.stale, c.Offset)
	}

	return f, nil
}

// Create writes an empty PCM file at path, replacing any existing file.
func Create(path string, format Format, opts ...Option) (*File, error) {
	o := applyOptions(opts)

	if err := format.Validate(); err != nil {
		return nil, err
	}

	header, err := encodeHeader(format, 0, CanonicalHeaderSize)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, header, 0o644); err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	return &File{
		path: path,
		log:  o.logger.With(slog.String("path", path)),
		header: Header{
			Format:     format,
			HeaderSize: CanonicalHeaderSize,
			DataLength: CanonicalHeaderSize - ChunkHeaderSize,
		},
		formatTag: FormatPCM,
	}, nil
}

// Path returns the location of the file on disk.
func (f *File) Path() string {
	return f.path
}

// Header returns the current size accounting.
func (f *File) Header() Header {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.header
}

// AddCue appends a cue to the in-memory cue list.
func (f *File) AddCue(location int, label string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cues = append(f.cues, cue.Cue{Location: location, Label: label})
}

// ImportCues appends cues to the in-memory cue list, keeping their order.
func (f *File) ImportCues(cues []cue.Cue) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cues = append(f.cues, cues...)
}

// Cues returns a copy of the cue list in its stored order.
func (f *File) Cues() []cue.Cue {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.cues)
}

// ClearCues drops every cue from the in-memory cue list.
func (f *File) ClearCues() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cues = nil
}

// Update writes the cue layer after the data payload and rewrites the RIFF
// and data size fields. It is the only operation that changes sizes on disk.
func (f *File) Update() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update()
}

func (f *File) update() (err error) {
	for _, c := range f.cues {
		if !c.Valid() {
			return fmt.Errorf("%w: %d", cue.ErrLocationRange, c.Location)
		}
	}

	fh, err := os.OpenFile(f.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open for update: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close after update: %w", cerr)
		}
	}()

	for _, off := range f.stale {
		if _, err := fh.WriteAt([]byte(junkChunkID), off); err != nil {
			return fmt.Errorf("retire chunk at %d: %w", off, err)
		}
	}
	f.stale = nil

	payloadEnd := f.header.HeaderSize + f.header.AudioLength
	if err := fh.Truncate(payloadEnd); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	tail, err := f.encodeTail()
	if err != nil {
		return err
	}

	if _, err := fh.WriteAt(tail, payloadEnd); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	length := payloadEnd + int64(len(tail))
	if length-ChunkHeaderSize > maxRIFFSize {
		return ErrFileTooLarge
	}

	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(length-ChunkHeaderSize))
	if _, err := fh.WriteAt(size[:], 4); err != nil {
		return fmt.Errorf("write RIFF size: %w", err)
	}

	binary.LittleEndian.PutUint32(size[:], uint32(f.header.AudioLength))
	if _, err := fh.WriteAt(size[:], f.header.HeaderSize-4); err != nil {
		return fmt.Errorf("write data size: %w", err)
	}

	if err := fh.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	f.header.DataLength = length - ChunkHeaderSize

	f.log.Debug("updated file",
		slog.Int64("audio_length", f.header.AudioLength),
		slog.Int64("file_length", length),
		slog.Int("cues", len(f.cues)))

	return nil
}

// encodeTail builds everything that follows the payload: its pad byte, the
// retained trailing chunks and the cue layer.
func (f *File) encodeTail() ([]byte, error) {
	tail := new(bytes.Buffer)
	if f.header.AudioLength%2 == 1 {
		tail.WriteByte(0)
	}

	var hdr [ChunkHeaderSize]byte
	for _, c := range f.trailing {
		copy(hdr[0:4], c.ID)
		binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(c.Data)))
		tail.Write(hdr[:])
		tail.Write(c.Data)
		if len(c.Data)%2 == 1 {
			tail.WriteByte(0)
		}
	}

	if len(f.cues) > 0 {
		b, err := cue.Marshal(f.cues)
		if err != nil {
			return nil, fmt.Errorf("encode cues: %w", err)
		}
		tail.Write(b)
	}

	return tail.Bytes(), nil
}

// setAudioLength records a new payload length. Callers hold f.mu.
func (f *File) setAudioLength(n int64) {
	f.header.AudioLength = n
}
