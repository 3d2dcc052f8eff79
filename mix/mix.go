// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"sync"
	"time"
)

const (
	// MaxVolume is the top of the volume scale for channels, chunks and music.
	MaxVolume = 128

	// AnyChannel asks PlayChannel to pick the first free unreserved channel.
	AnyChannel = -1

	// AllChannels selects every channel in aggregate operations such as
	// HaltChannel and Volume.
	AllChannels = -1

	// ChannelPost targets the post-mix effect chain in effect registration.
	ChannelPost = -2

	// DefaultChannels is the channel table size right after Open.
	DefaultChannels = 8
)

// SampleFormat is the PCM encoding of the device stream. All samples are
// little-endian and interleaved by channel.
type SampleFormat int

const (
	FormatS16 SampleFormat = iota // 16-bit signed integer
	FormatF32                     // 32-bit float
)

// BytesPerSample reports the width of one sample of a single channel.
func (f SampleFormat) BytesPerSample() int {
	if f == FormatF32 {
		return 4
	}
	return 2
}

func (f SampleFormat) String() string {
	switch f {
	case FormatS16:
		return "s16le"
	case FormatF32:
		return "f32le"
	}
	return "unknown"
}

// Spec describes the device format the mixer renders in.
type Spec struct {
	Frequency int          // sample rate in Hz
	Format    SampleFormat // sample encoding
	Channels  int          // output channels (1=mono, 2=stereo)
	Frames    int          // frames per render tick
}

// FrameWidth is the byte width of one frame: bytes per sample times channels.
func (s Spec) FrameWidth() int {
	return s.Format.BytesPerSample() * s.Channels
}

// BufferBytes is the byte length of one render tick's destination buffer.
func (s Spec) BufferBytes() int {
	return s.Frames * s.FrameWidth()
}

func (s Spec) valid() bool {
	return s.Frequency > 0 && s.Channels > 0 && s.Frames > 0
}

func (s Spec) matches(o Spec) bool {
	return s.Frequency == o.Frequency && s.Format == o.Format && s.Channels == o.Channels
}

// Driver is the audio device collaborator. Start opens the device and begins
// invoking render on a fixed cadence with a destination buffer to fill; the
// driver guarantees render invocations never overlap. Close stops the device
// and the render callbacks.
type Driver interface {
	Start(spec Spec, render func(stream []byte)) error
	Close() error
}

// Mixer combines one music stream and many independently-controlled chunk
// playbacks into the periodic output buffer of a Driver. It is the explicit
// context object owning the channel table; all control calls are methods on
// it and are safe to use concurrently with the render tick.
type Mixer struct {
	mtx sync.Mutex

	drv    Driver
	spec   Spec
	opened int // re-entrant open count; 0 = closed

	channels []channel
	reserved int

	posteffects []effect
	effectToken int

	finished func(channel int)

	musicHook MusicFunc
	musicData any
	music     *musicState
	musicVol  int

	// Pooled buffers for the render hot path; sized on first use.
	scratch  []byte
	musicBuf []float32

	// Deferred callbacks accumulated under mtx, run after release.
	pending []func()

	epoch time.Time
	now   func() int64 // monotonic milliseconds; replaced in tests
}

// New creates a closed Mixer bound to drv. The device is not touched until
// Open. A nil driver is allowed; the application then renders by calling
// whatever drives its own callback (useful for offline rendering and tests).
func New(drv Driver) *Mixer {
	m := &Mixer{
		drv:      drv,
		musicVol: MaxVolume,
		epoch:    time.Now(),
	}
	m.now = func() int64 {
		return int64(time.Since(m.epoch) / time.Millisecond)
	}

	return m
}

// Open opens the device with the requested format and creates the channel
// table. Opening an already-open mixer with a matching format only increments
// a reference count; a mismatched format fails with ErrSpecMismatch. Each
// successful Open must be balanced by a Close.
func (m *Mixer) Open(spec Spec) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.opened > 0 {
		if !m.spec.matches(spec) {
			return ErrSpecMismatch
		}
		m.opened++
		return nil
	}

	if !spec.valid() {
		return ErrInvalidSpec
	}

	m.spec = spec
	m.channels = make([]channel, DefaultChannels)
	for i := range m.channels {
		m.channels[i].reset()
	}
	m.reserved = 0
	m.posteffects = nil
	m.music = nil
	m.musicVol = MaxVolume

	if m.drv != nil {
		if err := m.drv.Start(spec, m.renderTick); err != nil {
			m.channels = nil
			return fmt.Errorf("%w", err)
		}
	}

	m.opened = 1
	return nil
}

// Close decrements the open count. The final Close halts every channel and
// the music, stops the driver and discards the channel table.
func (m *Mixer) Close() {
	m.mtx.Lock()

	if m.opened == 0 {
		m.mtx.Unlock()
		return
	}

	m.opened--
	if m.opened > 0 {
		m.mtx.Unlock()
		return
	}

	for i := range m.channels {
		m.haltLocked(i)
	}
	m.music = nil
	m.channels = nil
	m.posteffects = nil
	drv := m.drv

	m.mtx.Unlock()
	m.flush()

	// Outside the lock: a driver may join its render goroutine here, and
	// that goroutine could be waiting on the mixer mutex.
	if drv != nil {
		_ = drv.Close()
	}
}

// QuerySpec returns the current device format and the open count. An open
// count of zero means the mixer is closed and the Spec is meaningless.
func (m *Mixer) QuerySpec() (Spec, int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.spec, m.opened
}

// AllocateChannels resizes the channel table and returns the new size.
// Growing initializes the new slots to defaults; shrinking halts the removed
// slots first. A negative n queries the current size without changing it.
func (m *Mixer) AllocateChannels(n int) int {
	m.mtx.Lock()

	if n < 0 || n == len(m.channels) || m.opened == 0 {
		n = len(m.channels)
		m.mtx.Unlock()
		return n
	}

	if n < len(m.channels) {
		for i := n; i < len(m.channels); i++ {
			m.haltLocked(i)
		}
		m.channels = m.channels[:n:n]
	} else {
		grown := make([]channel, n)
		copy(grown, m.channels)
		for i := len(m.channels); i < n; i++ {
			grown[i].reset()
		}
		m.channels = grown
	}

	if m.reserved > n {
		m.reserved = n
	}

	m.mtx.Unlock()
	m.flush()
	return n
}

// ReserveChannels excludes the first n channels from AnyChannel allocation.
// They stay directly addressable. Returns the number actually reserved,
// clamped to the table size.
func (m *Mixer) ReserveChannels(n int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(m.channels) {
		n = len(m.channels)
	}
	m.reserved = n

	return n
}

// ChannelFinished registers fn to be invoked with the channel index whenever
// a playback ends, naturally or forcibly. Pass nil to remove the hook.
func (m *Mixer) ChannelFinished(fn func(channel int)) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.finished = fn
}

// flush runs callbacks collected while the mixer lock was held. Must be
// called without the lock.
func (m *Mixer) flush() {
	m.mtx.Lock()
	fns := m.pending
	m.pending = nil
	m.mtx.Unlock()

	for _, fn := range fns {
		fn()
	}
}
