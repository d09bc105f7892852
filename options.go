// SPDX-License-Identifier: EPL-2.0

package wavcue

import (
	"log/slog"
	"runtime"

	"github.com/ik5/wavcue/formats/wav"
)

// DefaultBufferSize is the copy and decode buffer size in bytes.
const DefaultBufferSize = 64 << 10

// Option configures the package-level operations.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	bufferSize  int
	concurrency int
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger:      slog.New(slog.DiscardHandler),
		bufferSize:  DefaultBufferSize,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) wavOptions() []wav.Option {
	return []wav.Option{wav.WithLogger(o.logger)}
}

// WithLogger sets the logger passed down to every file session.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBufferSize sets the buffer size used by Concat and Levels.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithConcurrency limits how many files ReadMarkersMany opens at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
