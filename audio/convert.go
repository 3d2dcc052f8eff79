// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Convert pulls the whole of src through a resample+remix pipeline and
// returns interleaved samples at the requested rate and channel count.
//
// The pipeline is:
//  1. Resample src to rate using cubic interpolation (skipped when the rate
//     already matches)
//  2. Remix to the requested channel count (skipped when it already matches)
//  3. Drain the pipeline into one slice
//
// bufSize controls the read granularity (4096 is a good default).
//
// This is the conversion step that turns a decoded stream into material the
// mixer can consume directly; mix.Chunk data is packed from its output.
func Convert(src Source, rate, channels, bufSize int) ([]float32, error) {
	out := src

	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}

	if out.Channels() != channels {
		remix, err := NewRemixer(out, channels)
		if err != nil {
			return nil, err
		}
		out = remix
	}

	// Rough capacity guess: one second at the target format
	samples := make([]float32, 0, rate*channels)
	buf := make([]float32, bufSize-bufSize%channels)

	for {
		n, err := out.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return samples, nil
}
