// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Level summarises the amplitude of a run of mono frames.
type Level struct {
	// Start is the first frame of the run.
	Start  int64
	Frames int64
	Peak   float64
	RMS    float64
}

// DBFS returns the peak in decibels relative to full scale. Silence is
// reported as negative infinity.
func (l Level) DBFS() float64 {
	if l.Peak == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(l.Peak)
}

// Measure mixes src down to mono and reports one Level per segment. Segment
// i runs from starts[i] up to starts[i+1], the last one to the end of the
// stream. starts must be ascending; frames before starts[0] are skipped.
// With no starts the whole stream is one segment.
func Measure(src Source, starts []int64, bufSize int) ([]Level, error) {
	if bufSize <= 0 {
		return nil, ErrInvalidBuffer
	}
	if len(starts) == 0 {
		starts = []int64{0}
	}

	levels := make([]Level, len(starts))
	sums := make([]float64, len(starts))
	for i, s := range starts {
		levels[i].Start = s
	}

	mono := NewMonoMixer(src)
	buf := make([]float32, bufSize)

	seg := -1
	var frame int64
	for {
		n, err := mono.ReadSamples(buf)
		for _, s := range buf[:n] {
			for seg+1 < len(starts) && frame >= starts[seg+1] {
				seg++
			}
			if seg >= 0 {
				v := math.Abs(float64(s))
				lv := &levels[seg]
				lv.Frames++
				lv.Peak = max(lv.Peak, v)
				sums[seg] += v * v
			}
			frame++
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	for i := range levels {
		if levels[i].Frames > 0 {
			levels[i].RMS = math.Sqrt(sums[i] / float64(levels[i].Frames))
		}
	}
	return levels, nil
}

// Peak returns the largest absolute sample of src after mixing to mono.
func Peak(src Source, bufSize int) (float64, error) {
	levels, err := Measure(src, nil, bufSize)
	if err != nil {
		return 0, err
	}
	return levels[0].Peak, nil
}
