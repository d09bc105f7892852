// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/wavcue/formats/wav/cue"
	"github.com/ik5/wavcue/internal/wavtest"
)

func TestDecoder_Canonical(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 16000, []int16{0, 16384, -16384}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	defer src.Close()

	if src.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	samples := make([]float32, 8)
	n, err := src.ReadSamples(samples)
	if n != 3 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() = %d, %v, want 3, io.EOF", n, err)
	}

	want := []float32{0, 0.5, -0.5}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestDecoder_StopsAtPayloadEnd(t *testing.T) {
	t.Parallel()

	marshalled, err := cue.Marshal([]cue.Cue{{Location: 0, Label: "orature-vm-1"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	b := wavtest.Build(
		wavtest.Fmt(2, 44100, 16),
		wavtest.Junk("JUNK", 10),
		wavtest.Data(wavtest.PCM16(1, 2, 3, 4)),
		wavtest.Raw(marshalled),
	)

	src, err := Decoder{}.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Errorf("Decode() = %d ch %d Hz, want 2 ch 44100 Hz", src.Channels(), src.SampleRate())
	}

	total := 0
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 4 {
		t.Errorf("read %d samples, want 4", total)
	}

	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestDecoder_EmptyBuffer(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, []int16{1, 2}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want > 0", src.BufSize())
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	float := wavtest.Fmt(1, 8000, 32)
	float.Data[0] = 3

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not wav", []byte("This is not a WAV file"), ErrNotWavFile},
		{"truncated", []byte("RIFF\x00"), ErrNotWavFile},
		{"no data", wavtest.Build(wavtest.Fmt(1, 8000, 16)), ErrMissingData},
		{"float", wavtest.Build(float, wavtest.Data(make([]byte, 8))), ErrUnsupportedFormat},
		{"bad depth", wavtest.Build(wavtest.Fmt(1, 8000, 12), wavtest.Data(make([]byte, 8))), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkDecoder_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100)
	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 44100, samples); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	out := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(out); err != nil {
				break
			}
		}
	}
}
