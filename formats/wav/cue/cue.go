// SPDX-License-Identifier: EPL-2.0

package cue

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// MaxLocation is the largest sample offset a cue point can hold.
const MaxLocation = math.MaxUint32

// Cue is a labeled position inside the audio payload, measured in sample frames.
type Cue struct {
	Location int
	Label    string
}

// New returns a Cue at location with label.
func New(location int, label string) Cue {
	return Cue{Location: location, Label: label}
}

func (c Cue) String() string {
	return fmt.Sprintf("%d:%q", c.Location, c.Label)
}

// Valid reports whether the location fits a cue point record.
func (c Cue) Valid() bool {
	return c.Location >= 0 && uint64(c.Location) <= MaxLocation
}

// SortByLocation orders cues by location. Cues sharing a location keep
// their relative order.
func SortByLocation(cues []Cue) {
	slices.SortStableFunc(cues, func(a, b Cue) int {
		return cmp.Compare(a.Location, b.Location)
	})
}

// Offset returns a copy of cues with every location shifted by delta frames.
func Offset(cues []Cue, delta int) []Cue {
	out := make([]Cue, len(cues))
	for i, c := range cues {
		out[i] = Cue{Location: c.Location + delta, Label: c.Label}
	}
	return out
}
