// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE audio.
//
// Decoding is backed by github.com/go-audio/wav and accepts 16-bit PCM
// files, mono or stereo, at any sample rate. Other encodings and bit
// depths are rejected with ErrOnlyPCM16bitSupported.
//
// # Decoding
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Decode returns an audio.Source yielding float32 samples in the
// range [-1.0, 1.0], interleaved when the file is stereo.
//
// # Encoding
//
// WriteWAV16 writes a complete 16-bit PCM file, headers included:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, samples)
//
// # Errors
//
// Failures map to sentinel errors suitable for errors.Is:
//   - ErrNotWavFile when the input is not a RIFF/WAVE stream
//   - ErrOnlyPCM16bitSupported for non-PCM or non-16-bit data
//   - ErrUnsupportedWavLayout when the format chunk is missing or malformed
package wav
