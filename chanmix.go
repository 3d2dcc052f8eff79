// SPDX-License-Identifier: EPL-2.0

package chanmix

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/chanmix/audio"
	"github.com/ik5/chanmix/formats/aiff"
	"github.com/ik5/chanmix/formats/mp3"
	"github.com/ik5/chanmix/formats/vorbis"
	"github.com/ik5/chanmix/formats/wav"
	"github.com/ik5/chanmix/mix"
	"github.com/ik5/chanmix/utils"
)

var (
	registryOnce sync.Once
	registry     *audio.Registry
)

// DefaultRegistry returns the process-wide decoder registry with every format
// package wired in. Applications can Register additional decoders on it.
func DefaultRegistry() *audio.Registry {
	registryOnce.Do(func() {
		registry = audio.NewRegistry()
		registry.Register("wav", wav.Decoder{})
		registry.Register("mp3", mp3.Decoder{})
		registry.Register("ogg vorbis", vorbis.Decoder{})
		registry.Register("aiff", aiff.Decoder{})
	})

	return registry
}

// NumDecoders reports how many chunk decoders are available.
func NumDecoders() int {
	return DefaultRegistry().Len()
}

// DecoderName returns the name of the i-th available decoder, or "" when i is
// out of range. The order is stable across a process run.
func DecoderName(i int) string {
	return DefaultRegistry().Format(i)
}

// LoadChunk decodes r as the named format, converts the audio to the mixer's
// open device format and wraps the result in a ready-to-mix Chunk.
//
// The conversion pipeline is decode, resample to the device rate, remix to the
// device channel count, then pack into the device sample encoding. The mixer
// must already be open so the target format is known.
func LoadChunk(m *mix.Mixer, r io.Reader, format string) (*mix.Chunk, error) {
	dec, ok := DefaultRegistry().Get(format)
	if !ok {
		return nil, ErrUnknownFormat
	}

	spec, opened := m.QuerySpec()
	if opened == 0 {
		return nil, mix.ErrClosed
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	samples, err := audio.Convert(src, spec.Frequency, spec.Channels, 4096)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	data := packSamples(samples, spec.Format)

	return m.NewChunk(data)
}

// LoadChunkFile loads a chunk from path, picking the decoder by the file
// extension (".wav", ".mp3", ".ogg", ".aiff"/".aif").
func LoadChunkFile(m *mix.Mixer, path string) (*mix.Chunk, error) {
	format, ok := formatByExt(filepath.Ext(path))
	if !ok {
		return nil, ErrUnknownFormat
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return LoadChunk(m, f, format)
}

func formatByExt(ext string) (string, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav":
		return "wav", true
	case "mp3":
		return "mp3", true
	case "ogg":
		return "ogg vorbis", true
	case "aiff", "aif":
		return "aiff", true
	}
	return "", false
}

// packSamples encodes float32 samples into the device byte layout.
func packSamples(samples []float32, format mix.SampleFormat) []byte {
	data := make([]byte, len(samples)*format.BytesPerSample())

	switch format {
	case mix.FormatF32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(s))
		}
	default:
		utils.Float32ToPCM16(data, samples)
	}

	return data
}
