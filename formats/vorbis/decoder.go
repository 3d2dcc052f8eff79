// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/chanmix/audio"
	"github.com/jfreymuth/oggvorbis"
)

// readBufSize is the read granularity suggested to callers.
const readBufSize = 4096

// oggReader abstracts oggvorbis.Reader so tests can substitute a fake.
// Read fills the slice with interleaved samples and reports how many
// values it stored; the slice length must be a multiple of Channels.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return readBufSize }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// Trim to whole frames; oggvorbis rejects partial ones.
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	if n == 0 && err == nil {
		return 0, io.EOF
	}

	return n, err
}

type Decoder struct{}

// Decode reads an Ogg Vorbis stream and returns a float32 sample
// source. Samples arrive already normalized, so no scaling is applied.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
