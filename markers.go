// SPDX-License-Identifier: EPL-2.0

package wavcue

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/wavcue/formats/wav"
	"github.com/ik5/wavcue/formats/wav/cue"
	"github.com/ik5/wavcue/markers"
)

// ReadMarkers opens path and classifies its cues.
func ReadMarkers(path string, opts ...Option) (markers.Groups, error) {
	o := applyOptions(opts)

	f, err := wav.Open(path, o.wavOptions()...)
	if err != nil {
		return nil, err
	}

	groups, _ := markers.Classify(f.Cues())
	return groups, nil
}

// ReadSourceMarkers opens a source recording and splits its cues into
// verses, chunks and pass-through extras.
func ReadSourceMarkers(path string, opts ...Option) (markers.SourceMarkers, error) {
	o := applyOptions(opts)

	f, err := wav.Open(path, o.wavOptions()...)
	if err != nil {
		return markers.SourceMarkers{}, err
	}

	return markers.ClassifySource(f.Cues()), nil
}

// WriteMarkers replaces the cue layer of path with the cues of groups.
func WriteMarkers(path string, groups markers.Groups, opts ...Option) error {
	return writeCues(path, groups.Cues(), opts)
}

// WriteSourceMarkers replaces the cue layer of a source recording. Extra
// cues are written back unchanged.
func WriteSourceMarkers(path string, src markers.SourceMarkers, opts ...Option) error {
	return writeCues(path, src.Cues(), opts)
}

func writeCues(path string, cues []cue.Cue, opts []Option) error {
	o := applyOptions(opts)

	f, err := wav.Open(path, o.wavOptions()...)
	if err != nil {
		return err
	}

	f.ClearCues()
	f.ImportCues(cues)
	if err := f.Update(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadMarkersMany reads the markers of every path in parallel. The first
// failure cancels the remaining reads.
func ReadMarkersMany(ctx context.Context, paths []string, opts ...Option) (map[string]markers.Groups, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	o := applyOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	results := make([]markers.Groups, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			groups, err := ReadMarkers(path, opts...)
			if err != nil {
				return err
			}
			results[i] = groups
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[string]markers.Groups, len(paths))
	for i, path := range paths {
		byPath[path] = results[i]
	}
	return byPath, nil
}
