// SPDX-License-Identifier: EPL-2.0

package mix

import "time"

// Fading is the fade state of a channel.
type Fading int

const (
	NoFading Fading = iota
	FadingOut
	FadingIn
)

func (f Fading) String() string {
	switch f {
	case FadingOut:
		return "fading out"
	case FadingIn:
		return "fading in"
	}
	return "not fading"
}

// channel is one playback slot. All fields are guarded by the Mixer mutex;
// they are mutated both by control calls and by the render tick itself
// (expiry, fade completion, loop wrap-around, natural end of sample).
type channel struct {
	chunk  *Chunk
	pos    int // byte offset of the next unplayed byte
	length int // frame-aligned chunk length recorded at play time

	remaining int // unplayed bytes in the current pass
	looping   int // -1 = infinite, 0 = no further repeats, n = n repeats left
	volume    int
	tag       int // group tag, -1 = ungrouped

	paused int64 // ms timestamp, 0 = not paused
	expire int64 // ms deadline, 0 = never
	start  int64 // ms timestamp of the play call

	fading          Fading
	fadeVolume      int // volume when the fade started, the ramp reference
	fadeVolumeReset int // restored when the fade ends or the channel halts
	fadeLength      int64
	fadeStart       int64

	effects []effect
}

func (ch *channel) reset() {
	*ch = channel{
		volume:          MaxVolume,
		fadeVolume:      MaxVolume,
		fadeVolumeReset: MaxVolume,
		tag:             -1,
	}
}

// playing reports whether the channel still produces audio: bytes left in the
// current pass or loop repeats remaining.
func (ch *channel) playing() bool {
	return ch.remaining > 0 || ch.looping != 0
}

// PlayChannel plays chunk on the given channel, or on the first free
// unreserved channel when which is AnyChannel. loops is the number of extra
// repeats after the first pass; -1 loops forever. Returns the channel used.
func (m *Mixer) PlayChannel(which int, chunk *Chunk, loops int) (int, error) {
	return m.PlayChannelTimed(which, chunk, loops, 0)
}

// PlayChannelTimed is PlayChannel with a playback deadline: after timeout the
// channel is halted no matter how much sample data remains. A timeout <= 0
// means no deadline.
func (m *Mixer) PlayChannelTimed(which int, chunk *Chunk, loops int, timeout time.Duration) (int, error) {
	m.mtx.Lock()

	which, err := m.startLocked(which, chunk, loops, timeout)

	m.mtx.Unlock()
	m.flush()
	return which, err
}

// FadeInChannel is PlayChannel with the volume ramping linearly from zero
// back up to the channel's volume over fade.
func (m *Mixer) FadeInChannel(which int, chunk *Chunk, loops int, fade time.Duration) (int, error) {
	return m.FadeInChannelTimed(which, chunk, loops, fade, 0)
}

// FadeInChannelTimed combines FadeInChannel and PlayChannelTimed.
func (m *Mixer) FadeInChannelTimed(which int, chunk *Chunk, loops int, fade, timeout time.Duration) (int, error) {
	m.mtx.Lock()

	which, err := m.startLocked(which, chunk, loops, timeout)
	if err == nil && fade > 0 {
		ch := &m.channels[which]
		ch.fading = FadingIn
		ch.fadeVolume = ch.volume
		ch.fadeVolumeReset = ch.volume
		ch.fadeLength = int64(fade / time.Millisecond)
		ch.fadeStart = m.now()
		ch.volume = 0
	}

	m.mtx.Unlock()
	m.flush()
	return which, err
}

// startLocked queues chunk on a channel. Caller holds the mixer lock.
func (m *Mixer) startLocked(which int, chunk *Chunk, loops int, timeout time.Duration) (int, error) {
	if m.opened == 0 {
		return -1, ErrClosed
	}
	if chunk == nil || len(chunk.Data) == 0 {
		return -1, ErrNilChunk
	}

	aligned := chunk.alignedLen(m.spec.FrameWidth())
	if aligned == 0 {
		return -1, ErrNilChunk
	}

	if which == AnyChannel {
		for i := m.reserved; i < len(m.channels); i++ {
			if m.channels[i].remaining <= 0 {
				which = i
				break
			}
		}
		if which == AnyChannel {
			return -1, ErrNoFreeChannel
		}
	}

	if which < 0 || which >= len(m.channels) {
		return -1, ErrNoSuchChannel
	}

	ch := &m.channels[which]
	if ch.playing() {
		// The interrupted playback still gets its finished notification
		// before the new sample takes the slot.
		m.finishLocked(which)
	}

	now := m.now()
	ch.chunk = chunk
	ch.pos = 0
	ch.length = aligned
	ch.remaining = aligned
	ch.looping = loops
	ch.paused = 0
	ch.fading = NoFading
	ch.start = now
	if timeout > 0 {
		ch.expire = now + int64(timeout/time.Millisecond)
	} else {
		ch.expire = 0
	}

	return which, nil
}

// ExpireChannel sets (or clears, with timeout <= 0) the halt deadline of a
// channel, or of every channel with AllChannels. Returns the number of
// channels touched.
func (m *Mixer) ExpireChannel(which int, timeout time.Duration) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	now := m.now()
	status := 0
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		if timeout > 0 {
			m.channels[i].expire = now + int64(timeout/time.Millisecond)
		} else {
			m.channels[i].expire = 0
		}
		status++
	}

	return status
}

// Volume sets the channel volume, clamped to [0, MaxVolume], and returns the
// previous value. A negative volume only queries. With AllChannels the value
// is applied to every channel and the returned value is the average of the
// previous volumes.
func (m *Mixer) Volume(which, volume int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if which == AllChannels {
		if len(m.channels) == 0 {
			return 0
		}
		prev := 0
		for i := range m.channels {
			prev += m.volumeLocked(i, volume)
		}
		return prev / len(m.channels)
	}

	if which < 0 || which >= len(m.channels) {
		return 0
	}
	return m.volumeLocked(which, volume)
}

func (m *Mixer) volumeLocked(i, volume int) int {
	prev := m.channels[i].volume
	if volume >= 0 {
		m.channels[i].volume = clampVolume(volume)
	}
	return prev
}

// HaltChannel stops a channel (or all of them) immediately. A playing
// channel fires the finished notification; a fading one gets its pre-fade
// volume back. Halting an idle channel is a no-op.
func (m *Mixer) HaltChannel(which int) {
	m.mtx.Lock()

	if which == AllChannels {
		for i := range m.channels {
			m.haltLocked(i)
		}
	} else if which >= 0 && which < len(m.channels) {
		m.haltLocked(which)
	}

	m.mtx.Unlock()
	m.flush()
}

func (m *Mixer) haltLocked(i int) {
	ch := &m.channels[i]
	if ch.playing() {
		m.finishLocked(i)
		ch.remaining = 0
		ch.looping = 0
	}
	ch.expire = 0
	if ch.fading != NoFading {
		ch.volume = ch.fadeVolumeReset
	}
	ch.fading = NoFading
}

// FadeOutChannel starts fading a channel (or all) to silence over d; the
// channel halts when the ramp completes and its volume is restored to the
// value held before the fade. Returns the number of channels now fading.
func (m *Mixer) FadeOutChannel(which int, d time.Duration) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	now := m.now()
	status := 0
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		if m.fadeOutLocked(i, now, d) {
			status++
		}
	}

	return status
}

func (m *Mixer) fadeOutLocked(i int, now int64, d time.Duration) bool {
	ch := &m.channels[i]
	if !ch.playing() || ch.volume <= 0 || ch.fading == FadingOut {
		return false
	}

	ch.fading = FadingOut
	ch.fadeVolume = ch.volume
	ch.fadeVolumeReset = ch.volume
	ch.fadeLength = int64(d / time.Millisecond)
	ch.fadeStart = now

	return true
}

// FadingChannel reports the fade state of a channel; out-of-range indexes
// report NoFading.
func (m *Mixer) FadingChannel(which int) Fading {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if which < 0 || which >= len(m.channels) {
		return NoFading
	}
	return m.channels[which].fading
}

// Pause pauses a channel, or every channel with AllChannels. Only channels
// with data left to play record the pause; a paused channel is skipped
// entirely by the render tick.
func (m *Mixer) Pause(which int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	now := m.now()
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		if m.channels[i].remaining > 0 {
			m.channels[i].paused = now
		}
	}
}

// Resume unpauses a channel, or every channel with AllChannels. The expire
// deadline is shifted forward by the paused duration, so the remaining
// time-to-expiry is exactly what it was when Pause was called.
func (m *Mixer) Resume(which int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	now := m.now()
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		ch := &m.channels[i]
		if ch.remaining > 0 && ch.paused != 0 {
			if ch.expire > 0 {
				ch.expire += now - ch.paused
			}
			ch.paused = 0
		}
	}
}

// Paused counts paused channels: 0 or 1 for a single channel, the total for
// AllChannels.
func (m *Mixer) Paused(which int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	status := 0
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		if m.channels[i].paused != 0 {
			status++
		}
	}

	return status
}

// Playing counts playing channels: 0 or 1 for a single channel, the total
// for AllChannels. A paused channel still counts as playing.
func (m *Mixer) Playing(which int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	status := 0
	for i := range m.channels {
		if which != AllChannels && which != i {
			continue
		}
		if m.channels[i].playing() {
			status++
		}
	}

	return status
}

// ChunkOn returns the chunk most recently played on the channel, or nil.
func (m *Mixer) ChunkOn(which int) *Chunk {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if which < 0 || which >= len(m.channels) {
		return nil
	}
	return m.channels[which].chunk
}

// finishLocked queues the finished notification for channel i and unwinds
// its effect chain, queueing the completion callbacks. Caller holds the
// mixer lock; the callbacks run once it is released.
func (m *Mixer) finishLocked(i int) {
	if fn := m.finished; fn != nil {
		m.pending = append(m.pending, func() { fn(i) })
	}

	effects := m.channels[i].effects
	m.channels[i].effects = nil
	for _, e := range effects {
		if done := e.done; done != nil {
			data := e.data
			m.pending = append(m.pending, func() { done(i, data) })
		}
	}
}
