// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE containers and keeps their cue
// layer (a "cue " chunk plus a LIST/adtl chunk of labels) in sync with the
// audio payload.
//
// # Scanning
//
// Scan walks every chunk of a container and reports where the data payload
// starts, how long it is and which cues the file carries. Unknown chunks may
// appear before "fmt ", between "fmt " and "data", or after the payload:
//
//	layout, err := wav.Scan(fh, size)
//	if errors.Is(err, wav.ErrMalformedContainer) {
//	    // not a usable WAV file
//	}
//
// The header size is never assumed to be 44 bytes. It is the offset of the
// first payload byte as found by the scan.
//
// # Sessions
//
// A File is a session on one file on disk:
//
//	f, err := wav.Open("chapter.wav")
//	f.AddCue(48000, "orature-vm-2")
//	err = f.Update()
//
// Update writes the cue layer after the payload and rewrites the RIFF and
// data size fields. Cue layer chunks found ahead of the payload are renamed
// to JUNK so readers see a single cue layer. Other chunks after the payload
// are kept byte for byte.
//
// # Writing Audio
//
// NewWriter returns a Writer that appends payload bytes:
//
//	w, err := f.NewWriter(wav.WithBuffer(64 << 10))
//	w.Write(pcm)
//	err = w.Close() // flushes and calls Update
//
// Without WithAppend the existing payload is replaced.
//
// # Reading Audio
//
// A Reader maps the file into memory and serves payload bytes by frame:
//
//	err := f.ReadPCM(func(r *wav.Reader) error {
//	    r.Seek(1000)
//	    _, err := r.PCMBuffer(buf)
//	    return err
//	})
//
// Release unmaps the file so it can be deleted on every platform.
//
// # Decoding
//
// Decoder turns a PCM file into an audio.Source of float32 samples using
// github.com/go-audio/wav.
//
// # Encoding
//
// Encode and WriteWAV16 write a complete file with a canonical 44 byte
// header followed by the payload and, optionally, a cue layer.
package wav
