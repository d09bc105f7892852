// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks used around the
// WAV engine: the Source interface, a decoder Registry, channel mixing and
// level measurement.
//
// # Source Interface
//
// A Source yields interleaved float32 samples in [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF when the stream is finished, possibly together
// with the last samples.
//
// # Format Registry
//
// The registry maps format keys to decoders. Keys are case insensitive and
// ForPath looks a decoder up by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("chapter.wav")
//
// # Channel Mixing
//
// MonoMixer averages all channels into one.
//
// # Levels
//
// Measure reports peak and RMS level per segment, where segments start at
// given frame offsets such as marker locations:
//
//	levels, err := audio.Measure(src, []int64{0, 48000}, 4096)
package audio
