// SPDX-License-Identifier: EPL-2.0

package wav

import "log/slog"

// Option configures how a file session is opened or created.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for debug traces and recoverable layout
// warnings. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WriterOption configures a Writer.
type WriterOption func(*writerOptions)

type writerOptions struct {
	append     bool
	bufferSize int
}

// WithAppend keeps the existing audio and appends after it. Without it the
// writer starts from an empty payload.
func WithAppend() WriterOption {
	return func(o *writerOptions) {
		o.append = true
	}
}

// WithBuffer buffers payload writes in memory, size bytes at a time.
// A size of zero or less leaves the writer unbuffered.
func WithBuffer(size int) WriterOption {
	return func(o *writerOptions) {
		o.bufferSize = size
	}
}
