// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio streams.
//
// Decoding is backed by github.com/jfreymuth/oggvorbis and handles any
// bitrate, sample rate, and channel layout the container declares.
// Encoding is out of scope.
//
// # Decoding
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Decode returns an audio.Source yielding float32 samples already
// normalized to [-1.0, 1.0]; Vorbis is a float codec, so no PCM
// scaling happens here. Multi-channel files arrive interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// ReadSamples only fills whole frames, so size buffers as a multiple
// of the channel count.
//
// # Changing layout
//
// Use the audio package to match a mixer's rate and channel count:
//
//	source, _ := vorbis.Decoder{}.Decode(file)
//	samples, _ := audio.Convert(source, 16000, 1, 4096)
package vorbis
