// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/chanmix/audio"
	"github.com/ik5/chanmix/utils"
)

// MusicFunc renders music into the destination buffer at the start of a tick,
// before any channel is mixed. It runs inside the render tick: it must not
// block and must not call back into the Mixer.
type MusicFunc func(data any, stream []byte)

// musicState is the default music player fed by an audio.Source.
type musicState struct {
	src audio.Source
}

// HookMusic replaces the default music player with a custom render function.
// Passing a nil fn restores the default player. The opaque data is handed to
// every invocation and can be retrieved with MusicHookData.
func (m *Mixer) HookMusic(fn MusicFunc, data any) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if fn != nil {
		m.musicHook = fn
		m.musicData = data
	} else {
		m.musicHook = nil
		m.musicData = nil
	}
}

// MusicHookData returns the opaque data registered with HookMusic.
func (m *Mixer) MusicHookData() any {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.musicData
}

// SetMusic hands a decoded stream to the default music player. The source
// must already match the device rate and channel count; run it through
// audio.NewResampler and audio.NewRemixer first when it does not. The stream
// plays until drained or HaltMusic.
func (m *Mixer) SetMusic(src audio.Source) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.opened == 0 {
		return ErrClosed
	}
	if src.SampleRate() != m.spec.Frequency || src.Channels() != m.spec.Channels {
		return ErrSpecMismatch
	}

	m.music = &musicState{src: src}
	return nil
}

// HaltMusic stops the default music player. The source is not closed; it
// still belongs to the caller.
func (m *Mixer) HaltMusic() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.music = nil
}

// PlayingMusic reports whether the default music player has an active stream.
func (m *Mixer) PlayingMusic() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.music != nil
}

// VolumeMusic sets the music volume, clamped to [0, MaxVolume], and returns
// the previous value. A negative volume only queries.
func (m *Mixer) VolumeMusic(volume int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	prev := m.musicVol
	if volume >= 0 {
		m.musicVol = clampVolume(volume)
	}

	return prev
}

// renderMusic mixes the default music stream into the tick buffer. Caller
// holds the mixer lock.
func (m *Mixer) renderMusic(stream []byte) {
	if m.music == nil || m.musicVol <= 0 {
		return
	}

	samples := len(stream) / m.spec.Format.BytesPerSample()
	if cap(m.musicBuf) < samples {
		m.musicBuf = make([]float32, samples)
	}
	buf := m.musicBuf[:samples]

	n, err := m.music.src.ReadSamples(buf)
	vol := float32(m.musicVol) / MaxVolume

	switch m.spec.Format {
	case FormatS16:
		for i := range n {
			s := int(utils.Float32ToInt16(buf[i] * vol))
			d := int(int16(binary.LittleEndian.Uint16(stream[2*i:])))

			sum := d + s
			if sum > math.MaxInt16 {
				sum = math.MaxInt16
			} else if sum < math.MinInt16 {
				sum = math.MinInt16
			}

			binary.LittleEndian.PutUint16(stream[2*i:], uint16(int16(sum)))
		}
	case FormatF32:
		for i := range n {
			d := math.Float32frombits(binary.LittleEndian.Uint32(stream[4*i:]))
			binary.LittleEndian.PutUint32(stream[4*i:], math.Float32bits(d+buf[i]*vol))
		}
	}

	if err == io.EOF {
		m.music = nil
	}
}
