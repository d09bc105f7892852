// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// Reader gives bounded access to the data payload through a memory mapping.
//
// Release unmaps the file; once it returns the file can be deleted. A
// released Reader can be opened again with Open.
type Reader struct {
	path      string
	start     int64
	length    int64
	frameSize int

	ra  *mmap.ReaderAt
	pos int64
}

// NewReader returns an opened Reader over the payload.
func (f *File) NewReader() (*Reader, error) {
	f.mu.Lock()
	r := &Reader{
		path:      f.path,
		start:     f.header.HeaderSize,
		length:    f.header.AudioLength,
		frameSize: f.header.FrameSize(),
	}
	f.mu.Unlock()

	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadPCM runs fn with an opened Reader and releases it on every return path.
func (f *File) ReadPCM(fn func(r *Reader) error) (err error) {
	r, err := f.NewReader()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := r.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	return fn(r)
}

// Open maps the file and rewinds to the first frame. Opening an open Reader
// is a no-op.
func (r *Reader) Open() error {
	if r.ra != nil {
		return nil
	}

	ra, err := mmap.Open(r.path)
	if err != nil {
		return fmt.Errorf("map file: %w", err)
	}

	r.ra = ra
	r.pos = 0
	r.length = max(min(r.length, int64(ra.Len())-r.start), 0)
	return nil
}

// Seek moves to frame, clamped to the payload.
func (r *Reader) Seek(frame int64) {
	r.pos = min(max(frame*int64(r.frameSize), 0), r.length)
}

// Position returns the current frame.
func (r *Reader) Position() int64 {
	if r.frameSize == 0 {
		return 0
	}
	return r.pos / int64(r.frameSize)
}

// TotalFrames returns the number of frames in the payload.
func (r *Reader) TotalFrames() int64 {
	if r.frameSize == 0 {
		return 0
	}
	return r.length / int64(r.frameSize)
}

// HasRemaining reports whether payload bytes are left to read.
func (r *Reader) HasRemaining() bool {
	return r.ra != nil && r.pos < r.length
}

// PCMBuffer copies at most len(buf) payload bytes from the current position
// into buf and advances. It returns the number of bytes copied.
func (r *Reader) PCMBuffer(buf []byte) (int, error) {
	if r.ra == nil {
		return 0, ErrReaderReleased
	}

	n := int(min(int64(len(buf)), r.length-r.pos))
	if n <= 0 {
		return 0, nil
	}

	read, err := r.ra.ReadAt(buf[:n], r.start+r.pos)
	r.pos += int64(read)
	if err != nil && err != io.EOF {
		return read, fmt.Errorf("read payload: %w", err)
	}
	return read, nil
}

// Read implements io.Reader over the rest of the payload.
func (r *Reader) Read(p []byte) (int, error) {
	if r.ra == nil {
		return 0, ErrReaderReleased
	}
	if !r.HasRemaining() {
		return 0, io.EOF
	}
	return r.PCMBuffer(p)
}

// Release unmaps the file. Releasing twice is a no-op.
func (r *Reader) Release() error {
	if r.ra == nil {
		return nil
	}

	err := r.ra.Close()
	r.ra = nil
	if err != nil {
		return fmt.Errorf("unmap file: %w", err)
	}
	return nil
}
