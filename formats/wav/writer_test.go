// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/ik5/wavcue/formats/wav/cue"
	"github.com/ik5/wavcue/internal/wavtest"
)

func writeAll(t *testing.T, f *File, chunks [][]byte, opts ...WriterOption) {
	t.Helper()

	w, err := f.NewWriter(opts...)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestWriter_WritesPayload(t *testing.T) {
	t.Parallel()

	f := createFile(t, mono16)
	pcm := wavtest.PCM16(1, -1, 2, -2, 3)
	writeAll(t, f, [][]byte{pcm[:4], pcm[4:]})

	h := f.Header()
	if h.AudioLength != int64(len(pcm)) {
		t.Errorf("AudioLength = %d, want %d", h.AudioLength, len(pcm))
	}
	if h.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", h.Frames())
	}

	b, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(b[CanonicalHeaderSize:], pcm) {
		t.Errorf("payload = %v, want %v", b[CanonicalHeaderSize:], pcm)
	}
	if got := reopen(t, f.Path()).Header(); got != h {
		t.Errorf("reopened Header() = %+v, want %+v", got, h)
	}
}

func TestWriter_BufferedMatchesUnbuffered(t *testing.T) {
	t.Parallel()

	chunks := [][]byte{wavtest.PCM16(1, 2, 3), wavtest.PCM16(4), wavtest.PCM16(5, 6, 7, 8, 9, 10)}

	plain := createFile(t, mono16)
	plain.AddCue(2, "orature-vm-2")
	writeAll(t, plain, chunks)

	buffered := createFile(t, mono16)
	buffered.AddCue(2, "orature-vm-2")
	writeAll(t, buffered, chunks, WithBuffer(5))

	a, err := os.ReadFile(plain.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	b, err := os.ReadFile(buffered.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("buffered and unbuffered files differ")
	}
}

func TestWriter_Append(t *testing.T) {
	t.Parallel()

	f := createFile(t, mono16)
	f.AddCue(0, "orature-vm-1")
	writeAll(t, f, [][]byte{wavtest.PCM16(1, 2)})

	f.AddCue(2, "orature-vm-2")
	writeAll(t, f, [][]byte{wavtest.PCM16(3, 4)}, WithAppend())

	got := reopen(t, f.Path())
	if got.Header().AudioLength != 8 {
		t.Errorf("AudioLength = %d, want 8", got.Header().AudioLength)
	}

	b, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if want := wavtest.PCM16(1, 2, 3, 4); !bytes.Equal(b[CanonicalHeaderSize:CanonicalHeaderSize+8], want) {
		t.Errorf("payload = %v, want %v", b[CanonicalHeaderSize:CanonicalHeaderSize+8], want)
	}

	cues := got.Cues()
	if len(cues) != 2 || cues[1] != (cue.Cue{Location: 2, Label: "orature-vm-2"}) {
		t.Errorf("Cues() = %v, want both cues", cues)
	}
}

func TestWriter_ReplacesPayload(t *testing.T) {
	t.Parallel()

	f := createFile(t, mono16)
	writeAll(t, f, [][]byte{wavtest.PCM16(1, 2, 3, 4)})
	writeAll(t, f, [][]byte{wavtest.PCM16(9)})

	if got := reopen(t, f.Path()).Header().AudioLength; got != 2 {
		t.Errorf("AudioLength = %d, want 2", got)
	}
	if got := fileSize(t, f.Path()); got != CanonicalHeaderSize+2 {
		t.Errorf("file size = %d, want %d", got, CanonicalHeaderSize+2)
	}
}

func TestWriter_KeepsCustomHeader(t *testing.T) {
	t.Parallel()

	path := wavtest.WriteFile(t, "custom.wav", wavtest.Build(
		wavtest.Junk("JUNK", 30), wavtest.Fmt(2, 44100, 16), wavtest.Junk("bext", 11), wavtest.Data(nil),
	))
	f := reopen(t, path)
	headerSize := f.Header().HeaderSize

	writeAll(t, f, [][]byte{wavtest.PCM16(1, 2, 3, 4)})

	got := reopen(t, path).Header()
	if got.HeaderSize != headerSize {
		t.Errorf("HeaderSize = %d, want %d", got.HeaderSize, headerSize)
	}
	if got.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", got.Frames())
	}
}

func TestWriter_OddPayloadIsPadded(t *testing.T) {
	t.Parallel()

	f := createFile(t, Format{Channels: 1, SampleRate: 8000, BitsPerSample: 8})
	f.AddCue(1, "odd")
	writeAll(t, f, [][]byte{{1, 2, 3}})

	got := reopen(t, f.Path())
	if got.Header().AudioLength != 3 {
		t.Errorf("AudioLength = %d, want 3", got.Header().AudioLength)
	}
	if cues := got.Cues(); len(cues) != 1 || cues[0].Label != "odd" {
		t.Errorf("Cues() = %v, want the odd cue", cues)
	}
}

func TestWriter_Closed(t *testing.T) {
	t.Parallel()

	f := createFile(t, mono16)
	w, err := f.NewWriter()
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := w.Write([]byte{0, 0}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write() error = %v, want ErrWriterClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestWriter_UnsupportedFormatTag(t *testing.T) {
	t.Parallel()

	float := wavtest.Fmt(1, 8000, 32)
	float.Data[0] = 3

	path := wavtest.WriteFile(t, "float.wav", wavtest.Build(float, wavtest.Data(make([]byte, 8))))
	f := reopen(t, path)

	if _, err := f.NewWriter(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("NewWriter() error = %v, want ErrUnsupportedFormat", err)
	}

	f.AddCue(1, "still works")
	if err := f.Update(); err != nil {
		t.Errorf("Update() error = %v, want nil", err)
	}
}
