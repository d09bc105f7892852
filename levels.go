// SPDX-License-Identifier: EPL-2.0

package wavcue

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/ik5/wavcue/audio"
	"github.com/ik5/wavcue/formats/wav"
	"github.com/ik5/wavcue/markers"
)

var decoders = func() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	return r
}()

// Decoders returns the registry used to decode files by extension.
func Decoders() *audio.Registry {
	return decoders
}

// MarkerLevel is the level of the audio from one marker to the next.
type MarkerLevel struct {
	Marker markers.Marker
	Level  audio.Level
}

// Levels classifies the cues of path and measures the audio following each
// marker, in location order. A file without markers yields nothing.
func Levels(path string, opts ...Option) ([]MarkerLevel, error) {
	o := applyOptions(opts)

	f, err := wav.Open(path, o.wavOptions()...)
	if err != nil {
		return nil, err
	}

	groups, _ := markers.Classify(f.Cues())
	all := groups.All()
	if len(all) == 0 {
		return nil, nil
	}
	slices.SortStableFunc(all, func(a, b markers.Marker) int {
		return cmp.Compare(a.Location, b.Location)
	})

	starts := make([]int64, len(all))
	for i, m := range all {
		starts[i] = int64(m.Location)
	}

	dec, err := decoders.ForPath(path)
	if err != nil {
		return nil, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer fh.Close()

	src, err := dec.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer src.Close()

	levels, err := audio.Measure(src, starts, src.BufSize())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]MarkerLevel, len(all))
	for i := range all {
		out[i] = MarkerLevel{Marker: all[i], Level: levels[i]}
	}
	return out, nil
}
