// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile reports input that is not a FORM/AIFF stream.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrOnlyPCM16bitSupported reports a bit depth other than 16.
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit PCM AIFF is supported")

	// ErrUnsupportedAiffLayout reports a missing or malformed COMM chunk.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrUnsupportedAiffChunks reports chunk structure the decoder
	// cannot walk.
	ErrUnsupportedAiffChunks = errors.New("unsupported or malformed AIFF chunks")
)
