// SPDX-License-Identifier: EPL-2.0

package markers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/wavcue/formats/wav/cue"
)

// SidecarVersion is the version of the sidecar document layout.
const SidecarVersion = 1

// SidecarSuffix is appended to the audio path to name its sidecar.
const SidecarSuffix = ".cues.json"

var ErrSidecarVersion = errors.New("unsupported sidecar version")

type sidecarCue struct {
	Location int    `json:"location"`
	Label    string `json:"label"`
}

type sidecar struct {
	Version int          `json:"version"`
	Audio   string       `json:"audio,omitempty"`
	Cues    []sidecarCue `json:"cues"`
}

// SidecarPath returns the sidecar path for an audio file.
func SidecarPath(audioPath string) string {
	return audioPath + SidecarSuffix
}

// WriteSidecar saves cues next to audioPath for reference-audio tooling.
// The file is replaced atomically.
func WriteSidecar(audioPath string, cues []cue.Cue) error {
	doc := sidecar{
		Version: SidecarVersion,
		Audio:   filepath.Base(audioPath),
		Cues:    make([]sidecarCue, 0, len(cues)),
	}
	for _, c := range cues {
		doc.Cues = append(doc.Cues, sidecarCue{Location: c.Location, Label: c.Label})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}

	outputPath := SidecarPath(audioPath)
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".wavcue-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tempFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}

	success = true
	return nil
}

// ReadSidecar loads the cues saved next to audioPath.
func ReadSidecar(audioPath string) ([]cue.Cue, error) {
	data, err := os.ReadFile(SidecarPath(audioPath))
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}

	var doc sidecar
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sidecar: %w", err)
	}
	if doc.Version != SidecarVersion {
		return nil, fmt.Errorf("%w: %d", ErrSidecarVersion, doc.Version)
	}

	cues := make([]cue.Cue, 0, len(doc.Cues))
	for _, c := range doc.Cues {
		cues = append(cues, cue.Cue{Location: c.Location, Label: c.Label})
	}
	return cues, nil
}
