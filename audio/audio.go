// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry holds decoders by format key (e.g., "wav", "mp3", "ogg vorbis").
// Registration order is preserved so callers can enumerate the available
// formats by index.
type Registry struct {
	codecs map[string]Decoder
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the decoder for format. A replaced format keeps
// its original position in the enumeration order.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Len reports how many formats are registered.
func (r *Registry) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return len(r.order)
}

// Format returns the name of the i-th registered format, or "" when i is out
// of range.
func (r *Registry) Format(i int) string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if i < 0 || i >= len(r.order) {
		return ""
	}
	return r.order[i]
}
