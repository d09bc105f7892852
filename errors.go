// SPDX-License-Identifier: EPL-2.0

package wavcue

import "errors"

var (
	// ErrFormatMismatch is returned by Concat when inputs differ in
	// channels, sample rate or bit depth.
	ErrFormatMismatch = errors.New("input formats differ")

	ErrNoInputs = errors.New("no input files")
)
