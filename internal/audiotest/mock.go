// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides fake sample sources for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates deterministic audio through a waveform
// callback. It satisfies audio.Source without importing the package.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // frames to produce in total
	produced   int // frames produced so far
	waveform   func(frame, channel int) float32
}

// NewMockSource returns a source producing totalSamples frames per
// channel, with each value supplied by waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     totalSamples,
		waveform:   waveform,
	}
}

// NewSilentSource returns a source of all-zero samples.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0
	})
}

// NewSineSource returns a source producing a sine wave at the given
// frequency, identical on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource returns a source holding every sample at value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again.
func (m *MockSource) Reset() { m.produced = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.produced >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.produced)
	for frame := range n {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.produced+frame, ch)
		}
	}
	m.produced += n

	if m.produced >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
