// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ik5/wavcue"
	"github.com/ik5/wavcue/formats/wav"
	"github.com/ik5/wavcue/formats/wav/cue"
	"github.com/ik5/wavcue/markers"
)

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parse parses args and checks that at least n positional arguments remain.
func parse(fs *flag.FlagSet, args []string, n int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() < n {
		return nil, errUsage
	}
	return fs.Args(), nil
}

func runInfo(_ context.Context, e *env, args []string) error {
	files, err := parse(newFlagSet(e, "info"), args, 1)
	if err != nil {
		return err
	}

	for i, path := range files {
		if i > 0 {
			fmt.Fprintln(e.stdout)
		}
		if err := printInfo(e, path); err != nil {
			return err
		}
	}
	return nil
}

func printInfo(e *env, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer fh.Close()

	stat, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	layout, err := wav.Scan(fh, stat.Size(), wav.WithLogger(e.log.WithFile(path).Logger))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	h := layout.Header
	w := e.stdout
	fmt.Fprintf(w, "%s (%s)\n", path, humanize.IBytes(uint64(stat.Size())))
	fmt.Fprintf(w, "  format:  tag %d, %d ch, %s Hz, %d bit\n",
		layout.FormatTag, h.Channels, humanize.Comma(int64(h.SampleRate)), h.BitsPerSample)
	fmt.Fprintf(w, "  audio:   %s frames, %s, %s\n",
		humanize.Comma(h.Frames()), h.Duration(), humanize.IBytes(uint64(h.AudioLength)))
	fmt.Fprintf(w, "  header:  %d bytes\n", h.HeaderSize)

	fmt.Fprintln(w, "  chunks:")
	for _, c := range layout.Chunks {
		fmt.Fprintf(w, "    %-4s  @%-10d %s\n", c.ID, c.Offset, humanize.IBytes(uint64(c.Size)))
	}

	fmt.Fprintf(w, "  cues:    %d\n", len(layout.Cues))
	for i, c := range layout.Cues {
		fmt.Fprintf(w, "    %3d  %10d  %q\n", cue.FirstID+i, c.Location, c.Label)
	}

	groups, _ := markers.Classify(layout.Cues)
	fmt.Fprintf(w, "  markers: %d\n", groups.Len())
	printGroups(w, groups)
	return nil
}

func printGroups(w io.Writer, groups markers.Groups) {
	for _, k := range markers.Kinds {
		ms := groups[k]
		if len(ms) == 0 {
			continue
		}
		labels := make([]string, len(ms))
		for i, m := range ms {
			labels[i] = m.String()
		}
		fmt.Fprintf(w, "    %-13s %s\n", k.String()+":", strings.Join(labels, " "))
	}
}

func runMarkers(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "markers")
	source := fs.Bool("source", false, "classify as a source recording (verses, chunks, extras)")
	files, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	if *source {
		for _, path := range files {
			src, err := wavcue.ReadSourceMarkers(path, e.options()...)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "%s: %d verses, %d chunks, %d extra\n", path, len(src.Verses), len(src.Chunks), len(src.Extra))
			for _, m := range slices.Concat(src.Verses, src.Chunks) {
				fmt.Fprintf(e.stdout, "  %s\n", m)
			}
			for _, c := range src.Extra {
				fmt.Fprintf(e.stdout, "  extra %s\n", c)
			}
		}
		return nil
	}

	all, err := wavcue.ReadMarkersMany(ctx, files, e.options()...)
	if err != nil {
		return err
	}
	for _, path := range files {
		groups := all[path]
		fmt.Fprintf(e.stdout, "%s: %d markers\n", path, groups.Len())
		printGroups(e.stdout, groups)
	}
	return nil
}

func runAddCue(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "add-cue")
	at := fs.Int("at", -1, "cue location in sample frames")
	label := fs.String("label", "", "cue label")
	files, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if *at < 0 || len(files) != 1 {
		return errUsage
	}

	path := files[0]
	f, err := wav.Open(path, wav.WithLogger(e.log.Logger))
	if err != nil {
		return err
	}

	f.AddCue(*at, *label)
	if err := f.Update(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	e.log.WithFile(path).Info("cue added", "location", *at, "label", *label, "cues", len(f.Cues()))
	return nil
}

func runClear(_ context.Context, e *env, args []string) error {
	files, err := parse(newFlagSet(e, "clear"), args, 1)
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := wav.Open(path, wav.WithLogger(e.log.Logger))
		if err != nil {
			return err
		}
		n := len(f.Cues())
		f.ClearCues()
		if err := f.Update(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		e.log.WithFile(path).Info("cues cleared", "removed", n)
	}
	return nil
}

func runConcat(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "concat")
	out := fs.String("o", "", "output file")
	files, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if *out == "" {
		return errUsage
	}

	if err := wavcue.Concat(ctx, *out, files, e.options()...); err != nil {
		return err
	}

	f, err := wav.Open(*out, wav.WithLogger(e.log.Logger))
	if err != nil {
		return err
	}
	h := f.Header()
	fmt.Fprintf(e.stdout, "%s: %d inputs, %s frames, %s, %d cues\n",
		*out, len(files), humanize.Comma(h.Frames()), h.Duration(), len(f.Cues()))
	return nil
}

func runExport(_ context.Context, e *env, args []string) error {
	files, err := parse(newFlagSet(e, "export"), args, 1)
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := wav.Open(path, wav.WithLogger(e.log.Logger))
		if err != nil {
			return err
		}
		if err := markers.WriteSidecar(path, f.Cues()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(e.stdout, markers.SidecarPath(path))
	}
	return nil
}

func runImport(_ context.Context, e *env, args []string) error {
	files, err := parse(newFlagSet(e, "import"), args, 1)
	if err != nil {
		return err
	}

	for _, path := range files {
		cues, err := markers.ReadSidecar(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		f, err := wav.Open(path, wav.WithLogger(e.log.Logger))
		if err != nil {
			return err
		}
		f.ClearCues()
		f.ImportCues(cues)
		if err := f.Update(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		e.log.WithFile(path).Info("cues imported", "cues", len(cues))
	}
	return nil
}

func runLevels(_ context.Context, e *env, args []string) error {
	files, err := parse(newFlagSet(e, "levels"), args, 1)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return errUsage
	}

	levels, err := wavcue.Levels(files[0], e.options()...)
	if err != nil {
		return err
	}
	for _, l := range levels {
		fmt.Fprintf(e.stdout, "%-32s %10s frames  peak %s  rms %.4f\n",
			l.Marker.String(), humanize.Comma(l.Level.Frames), formatDBFS(l.Level.DBFS()), l.Level.RMS)
	}
	return nil
}

func formatDBFS(db float64) string {
	if math.IsInf(db, -1) {
		return "  -inf dBFS"
	}
	return fmt.Sprintf("%6.1f dBFS", db)
}
