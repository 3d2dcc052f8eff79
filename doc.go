// SPDX-License-Identifier: EPL-2.0

// Package chanmix provides a real-time channel mixing engine for Go
// applications.
//
// The engine combines one music stream and many independently-controlled
// sample playbacks ("chunks" on "channels") into a single periodic output
// buffer delivered to an audio device. Each channel carries its own volume,
// fade envelope, expiration deadline, loop counter, group tag and effect
// chain.
//
// # Packages
//
//   - mix       — the core: Mixer context object, channel table, fades,
//     groups, effect chains and the per-tick render
//   - device    — audio device drivers implementing mix.Driver (Oto for real
//     output, Manual for offline/test rendering)
//   - audio     — decoding interfaces plus sample-rate and channel-count
//     conversion
//   - formats/* — WAV, MP3, Ogg Vorbis and AIFF decoders
//
// # Quick Start
//
//	mixer := mix.New(device.NewOto())
//	err := mixer.Open(mix.Spec{
//	    Frequency: 44100,
//	    Format:    mix.FormatS16,
//	    Channels:  2,
//	    Frames:    1024,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	defer mixer.Close()
//
//	chunk, err := chanmix.LoadChunkFile(mixer, "effect.wav")
//	if err != nil {
//	    // Handle error
//	}
//
//	// Play on the first free channel, once
//	ch, _ := mixer.PlayChannel(mix.AnyChannel, chunk, 0)
//
//	// Fade it out over half a second
//	mixer.FadeOutChannel(ch, 500*time.Millisecond)
//
// # Loading Chunks
//
// LoadChunk and LoadChunkFile decode any registered format and convert the
// result to the open device format in one call. The default registry wires in
// all four format packages; enumerate it with NumDecoders and DecoderName:
//
//	for i := 0; i < chanmix.NumDecoders(); i++ {
//	    fmt.Println(chanmix.DecoderName(i))
//	}
//
// # Offline Rendering
//
// The device.Manual driver renders only when asked, which suits tests and
// non-realtime pipelines:
//
//	drv := device.NewManual()
//	mixer := mix.New(drv)
//	mixer.Open(spec)
//
//	pcm := drv.Tick() // one buffer of mixed output
//
// See the mix package for the full channel, group, fade and effect API.
package chanmix
