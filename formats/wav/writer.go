// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Writer appends PCM bytes to the data payload of a File.
//
// Writes only touch payload bytes. Close flushes, records the new payload
// length and calls Update, which rewrites the size fields and the cue layer.
// Buffered and unbuffered writers given the same writes produce identical
// files.
type Writer struct {
	file   *File
	fh     *os.File
	w      io.Writer
	bw     *bufio.Writer
	length int64
	closed bool
}

// NewWriter opens the file for writing. The cue layer and every chunk after
// the payload are removed from disk until Close writes them back.
func (f *File) NewWriter(opts ...WriterOption) (*Writer, error) {
	o := &writerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.formatTag != FormatPCM && f.formatTag != FormatExtensible {
		return nil, fmt.Errorf("%w: format tag 0x%04x", ErrUnsupportedFormat, f.formatTag)
	}
	if err := f.header.Format.Validate(); err != nil {
		return nil, err
	}

	fh, err := os.OpenFile(f.path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open for write: %w", err)
	}

	var length int64
	if o.append {
		length = f.header.AudioLength
	}

	start := f.header.HeaderSize + length
	if err := fh.Truncate(start); err != nil {
		fh.Close()
		return nil, fmt.Errorf("truncate: %w", err)
	}
	if _, err := fh.Seek(start, io.SeekStart); err != nil {
		fh.Close()
		return nil, fmt.Errorf("seek: %w", err)
	}

	f.setAudioLength(length)

	w := &Writer{
		file:   f,
		fh:     fh,
		w:      fh,
		length: length,
	}
	if o.bufferSize > 0 {
		w.bw = bufio.NewWriterSize(fh, o.bufferSize)
		w.w = w.bw
	}

	f.log.Debug("opened writer",
		slog.Bool("append", o.append),
		slog.Int("buffer", o.bufferSize),
		slog.Int64("offset", start))

	return w, nil
}

// Write appends p to the payload.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}

	n, err := w.w.Write(p)
	w.length += int64(n)
	if err != nil {
		return n, fmt.Errorf("write payload: %w", err)
	}
	return n, nil
}

// Len returns the payload length written so far, earlier audio included
// when appending.
func (w *Writer) Len() int64 {
	return w.length
}

// Close flushes pending bytes and updates the file. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.bw != nil {
		if err := w.bw.Flush(); err != nil {
			w.fh.Close()
			return fmt.Errorf("flush: %w", err)
		}
	}

	if err := w.fh.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	w.file.mu.Lock()
	defer w.file.mu.Unlock()

	w.file.setAudioLength(w.length)
	return w.file.update()
}
