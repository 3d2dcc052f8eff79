// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Audio Layer 3 streams.
//
// Decoding is backed by github.com/hajimehoshi/go-mp3, which handles
// all common bitrates and always emits stereo output, upmixing mono
// files itself. Encoding is out of scope.
//
// # Decoding
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Decode returns an audio.Source yielding interleaved stereo float32
// samples normalized to [-1.0, 1.0], at the file's own sample rate.
//
// # Changing layout
//
// Mixers usually want a specific rate and channel count; the audio
// package does the conversion:
//
//	source, _ := mp3.Decoder{}.Decode(file)
//	samples, _ := audio.Convert(source, 8000, 1, 4096)
//
// or, streaming instead of buffering the whole file:
//
//	resampled := audio.NewResampler(source, 8000)
//	mono, _ := audio.NewRemixer(resampled, 1)
package mp3
