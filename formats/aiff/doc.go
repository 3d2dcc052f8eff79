// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) audio.
//
// Decoding is backed by github.com/go-audio/aiff and accepts 16-bit
// PCM files at any sample rate and channel count. Other bit depths and
// AIFF-C compression are rejected with ErrOnlyPCM16bitSupported.
// Writing AIFF is out of scope; use the wav package for output.
//
// # Decoding
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Decode returns an audio.Source yielding float32 samples normalized
// to [-1.0, 1.0], interleaved for multi-channel files. AIFF stores PCM
// big-endian with an 80-bit float sample rate; the decoder hides both.
//
// # Errors
//
// Failures map to sentinel errors suitable for errors.Is:
//   - ErrNotAiffFile when the input is not a FORM/AIFF stream
//   - ErrOnlyPCM16bitSupported for any bit depth other than 16
//   - ErrUnsupportedAiffLayout when the COMM chunk is missing or malformed
//
// # Feeding a mixer
//
// Decoded sources drop straight into the conversion pipeline:
//
//	file, _ := os.Open("input.aif")
//	source, _ := aiff.Decoder{}.Decode(file)
//	samples, _ := audio.Convert(source, 8000, 1, 4096)
package aiff
