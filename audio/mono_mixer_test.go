// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"testing"

	"github.com/ik5/wavcue/internal/audiotest"
)

func TestMonoMixer_AveragesChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 4, func(_ int, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.25
	})
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 || mixer.SampleRate() != 8000 {
		t.Errorf("mixer = %d ch %d Hz, want 1 ch 8000 Hz", mixer.Channels(), mixer.SampleRate())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if n != 4 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v, want 4, io.EOF", n, err)
	}
	for i := range n {
		if buf[i] != 0.125 {
			t.Errorf("buf[%d] = %v, want 0.125", i, buf[i])
		}
	}
}

func TestMonoMixer_PassThroughMono(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 1, 3, 0.75))

	buf := make([]float32, 3)
	n, _ := mixer.ReadSamples(buf)
	if n != 3 || buf[2] != 0.75 {
		t.Errorf("ReadSamples() = %d %v, want 3 samples of 0.75", n, buf)
	}
}

func TestMonoMixer_GrowsBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 6, 10000, 0.5))

	buf := make([]float32, 5000)
	n, err := mixer.ReadSamples(buf)
	if err != nil || n != 5000 {
		t.Fatalf("ReadSamples() = %d, %v, want 5000, nil", n, err)
	}
	if buf[4999] != 0.5 {
		t.Errorf("buf[4999] = %v, want 0.5", buf[4999])
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
