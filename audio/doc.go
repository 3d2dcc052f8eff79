// SPDX-License-Identifier: EPL-2.0

// Package audio provides the format-conversion primitives that feed the
// mixer: decoded streams are resampled and remixed here until they match the
// device format, then packed into chunks.
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All decoders in formats/ return a Source, and every processor in this
// package both consumes and implements it, so stages chain freely.
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation, with a
// simple low-pass filter applied when downsampling:
//
//	resampler := audio.NewResampler(source, 44100)
//
// # Channel Remixing
//
// The Remixer changes the channel count. Downmixing averages, upmixing
// duplicates:
//
//	stereo, err := audio.NewRemixer(source, 2)
//
// # Whole-stream Conversion
//
// Convert drains a source through both stages at once:
//
//	samples, err := audio.Convert(src, 44100, 2, 4096)
//
// # Decoder Registry
//
// The Registry maps format names to decoders and remembers registration
// order, so the set of available decoders can be listed at runtime:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	for i := range registry.Len() {
//	    fmt.Println(registry.Format(i))
//	}
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel. The normalized
// form keeps intermediate processing free of bit-depth concerns; conversion
// to device PCM happens once, at chunk-packing time.
//
// # Error Handling
//
// Sources return io.EOF when drained. Destination-size misuse is reported
// with ErrInvalidDstSize:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process n samples from buf
//	}
package audio
