// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/wavcue/audio"
	"github.com/ik5/wavcue/internal/audiotest"
)

// Example_monoMixer demonstrates converting stereo to mono.
func Example_monoMixer() {
	stereo := audiotest.NewConstantSource(16000, 2, 1600, 0.5)
	mono := audio.NewMonoMixer(stereo)

	buf := make([]float32, 4096)
	n, err := mono.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Println(err)
		return
	}

	fmt.Printf("Channels: %d -> %d\n", stereo.Channels(), mono.Channels())
	fmt.Printf("Frames: %d\n", n)
	// Output:
	// Channels: 2 -> 1
	// Frames: 1600
}

type sineDecoder struct{}

func (sineDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSineSource(16000, 1, 1000, 440.0), nil
}

// Example_registry demonstrates the format registry.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", sineDecoder{})

	decoder, err := registry.ForPath("chapter-01.WAV")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Retrieved decoder: %T\n", decoder)

	_, err = registry.ForPath("chapter-01.mp3")
	fmt.Println(err)
	// Output:
	// Retrieved decoder: audio_test.sineDecoder
	// no decoder registered for format: "mp3"
}

// Example_measure reports levels between marker positions.
func Example_measure() {
	src := audiotest.NewStepSource(8000, 1, 8000, 0.5, 1, 0)

	levels, err := audio.Measure(src, []int64{0, 8000, 16000}, 1024)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, l := range levels {
		fmt.Printf("frame %5d: peak %.2f (%.1f dBFS)\n", l.Start, l.Peak, l.DBFS())
	}
	// Output:
	// frame     0: peak 0.50 (-6.0 dBFS)
	// frame  8000: peak 1.00 (0.0 dBFS)
	// frame 16000: peak 0.00 (-Inf dBFS)
}
