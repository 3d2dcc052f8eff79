// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"encoding/binary"
	"math"
)

// renderTick composes one destination buffer: silence, then music, then every
// active channel in index order, then the post-mix chain. The whole tick is a
// single critical section, so a control call can never observe a channel with
// only some of its fields updated. The only per-tick buffer it touches is the
// pooled effect scratch; nothing on this path allocates once the pools are
// warm.
func (m *Mixer) renderTick(stream []byte) {
	m.mtx.Lock()

	for i := range stream {
		stream[i] = 0
	}

	if m.opened == 0 {
		m.mtx.Unlock()
		return
	}

	// Music first: channel volume scaling and effects never touch it.
	if m.musicHook != nil {
		hook, data := m.musicHook, m.musicData
		hook(data, stream)
	} else {
		m.renderMusic(stream)
	}

	now := m.now()
	for i := range m.channels {
		m.renderChannel(i, stream, now)
	}

	m.applyPostEffects(stream)

	m.mtx.Unlock()
	m.flush()
}

func (m *Mixer) renderChannel(i int, stream []byte, now int64) {
	ch := &m.channels[i]
	if ch.paused != 0 {
		return
	}

	if ch.expire > 0 && ch.expire < now {
		// Deadline reached: forced stop
		ch.remaining = 0
		ch.looping = 0
		ch.fading = NoFading
		ch.expire = 0
		m.finishLocked(i)
	} else if ch.fading != NoFading {
		elapsed := now - ch.fadeStart
		if elapsed > ch.fadeLength {
			ch.volume = clampVolume(ch.fadeVolumeReset)
			if ch.fading == FadingOut {
				ch.remaining = 0
				ch.looping = 0
				ch.expire = 0
				m.finishLocked(i)
			}
			ch.fading = NoFading
		} else if ch.fadeLength > 0 {
			if ch.fading == FadingOut {
				ch.volume = clampVolume(ch.fadeVolume * int(ch.fadeLength-elapsed) / int(ch.fadeLength))
			} else {
				ch.volume = clampVolume(ch.fadeVolume * int(elapsed) / int(ch.fadeLength))
			}
		}
	}

	if ch.remaining <= 0 {
		return
	}

	volume := ch.volume * ch.chunk.Volume / MaxVolume
	index := 0

	for ch.remaining > 0 && index < len(stream) {
		mixable := min(ch.remaining, len(stream)-index)

		src := m.applyEffects(i, ch.chunk.Data[ch.pos:ch.pos+mixable])
		m.mixAudio(stream[index:index+mixable], src, volume)

		ch.pos += mixable
		ch.remaining -= mixable
		index += mixable

		if ch.remaining == 0 && ch.looping == 0 {
			m.finishLocked(i)
		}
	}

	// If looping and the sample ran out mid-buffer, wrap to the chunk start
	// so the destination is always fully populated, even when the sample is
	// shorter than one tick.
	for ch.looping != 0 && index < len(stream) {
		if ch.looping > 0 {
			ch.looping--
		}

		n := min(ch.length, len(stream)-index)
		src := m.applyEffects(i, ch.chunk.Data[:n])
		m.mixAudio(stream[index:index+n], src, volume)

		ch.pos = n
		ch.remaining = ch.length - n
		index += n

		if ch.remaining == 0 && ch.looping == 0 {
			m.finishLocked(i)
		}
	}

	// Sample ended exactly at the buffer edge with repeats left: rewind now
	// so the next tick starts clean.
	if ch.remaining == 0 && ch.looping != 0 {
		if ch.looping > 0 {
			ch.looping--
		}
		ch.pos = 0
		ch.remaining = ch.length
	}
}

// mixAudio sums src into dst at the given volume with saturating arithmetic
// for the integer format. Slices must be equal length and frame-aligned.
func (m *Mixer) mixAudio(dst, src []byte, volume int) {
	if volume <= 0 {
		return
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}

	switch m.spec.Format {
	case FormatS16:
		mixS16(dst, src, volume)
	case FormatF32:
		mixF32(dst, src, volume)
	}
}

func mixS16(dst, src []byte, volume int) {
	for i := 0; i+1 < len(src); i += 2 {
		s := int(int16(binary.LittleEndian.Uint16(src[i:]))) * volume / MaxVolume
		d := int(int16(binary.LittleEndian.Uint16(dst[i:])))

		sum := d + s
		if sum > math.MaxInt16 {
			sum = math.MaxInt16
		} else if sum < math.MinInt16 {
			sum = math.MinInt16
		}

		binary.LittleEndian.PutUint16(dst[i:], uint16(int16(sum)))
	}
}

func mixF32(dst, src []byte, volume int) {
	vol := float32(volume) / MaxVolume
	for i := 0; i+3 < len(src); i += 4 {
		s := math.Float32frombits(binary.LittleEndian.Uint32(src[i:])) * vol
		d := math.Float32frombits(binary.LittleEndian.Uint32(dst[i:]))

		binary.LittleEndian.PutUint32(dst[i:], math.Float32bits(d+s))
	}
}
