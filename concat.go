// SPDX-License-Identifier: EPL-2.0

package wavcue

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/wavcue/formats/wav"
	"github.com/ik5/wavcue/formats/wav/cue"
)

// Concat writes the audio of srcs one after another into a new file at dst.
// Each input's cues are carried over, moved by the frames that precede it.
//
// ctx is checked between buffers. On cancellation the output is finalised
// with the audio copied so far and ctx.Err() is returned.
func Concat(ctx context.Context, dst string, srcs []string, opts ...Option) (err error) {
	if len(srcs) == 0 {
		return ErrNoInputs
	}

	o := applyOptions(opts)

	inputs := make([]*wav.File, 0, len(srcs))
	for _, path := range srcs {
		in, err := wav.Open(path, o.wavOptions()...)
		if err != nil {
			return err
		}
		if len(inputs) > 0 && in.Header().Format != inputs[0].Header().Format {
			return fmt.Errorf("%w: %s is %+v, want %+v", ErrFormatMismatch, path, in.Header().Format, inputs[0].Header().Format)
		}
		inputs = append(inputs, in)
	}

	format := inputs[0].Header().Format
	out, err := wav.Create(dst, format, o.wavOptions()...)
	if err != nil {
		return err
	}

	w, err := out.NewWriter(wav.WithBuffer(o.bufferSize))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	frameSize := format.FrameSize()
	buf := make([]byte, max(o.bufferSize/frameSize, 1)*frameSize)

	for _, in := range inputs {
		offset := w.Len() / int64(frameSize)

		err := in.ReadPCM(func(r *wav.Reader) error {
			return copyPCM(ctx, w, r, buf)
		})
		if err != nil {
			o.logger.Debug("concat stopped",
				slog.String("input", in.Path()),
				slog.Int64("frames_written", w.Len()/int64(frameSize)),
				slog.Any("error", err))
			return err
		}

		out.ImportCues(cue.Offset(in.Cues(), int(offset)))

		o.logger.Debug("concatenated input",
			slog.String("input", in.Path()),
			slog.Int64("offset", offset),
			slog.Int("cues", len(in.Cues())))
	}

	return nil
}

func copyPCM(ctx context.Context, w io.Writer, r *wav.Reader, buf []byte) error {
	for r.HasRemaining() {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.PCMBuffer(buf)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}
