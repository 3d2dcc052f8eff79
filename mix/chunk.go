// SPDX-License-Identifier: EPL-2.0

package mix

// Chunk is a fully-decoded sample buffer in the device format, ready to mix.
// The mixer holds only a non-owning reference: Data must stay immutable and
// alive while any channel still plays the chunk. Release it through
// Mixer.ReleaseChunk, which force-stops every referencing channel first.
type Chunk struct {
	// Data is interleaved PCM matching the open device's Spec.
	Data []byte

	// Volume is the chunk's baseline volume in [0, MaxVolume]. Channel
	// volume is scaled by it at mix time.
	Volume int
}

// NewChunk wraps data in a Chunk at baseline MaxVolume, truncating the length
// down to the device's frame width. Returns ErrNilChunk when no full frame
// remains, ErrClosed when the device is not open.
func (m *Mixer) NewChunk(data []byte) (*Chunk, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.opened == 0 {
		return nil, ErrClosed
	}

	aligned := len(data) - len(data)%m.spec.FrameWidth()
	if aligned == 0 {
		return nil, ErrNilChunk
	}

	return &Chunk{
		Data:   data[:aligned],
		Volume: MaxVolume,
	}, nil
}

// ReleaseChunk guarantees no channel references c anymore: every channel
// still playing it is halted (firing the finished notification). Call it
// before freeing or reusing the chunk's backing buffer.
func (m *Mixer) ReleaseChunk(c *Chunk) {
	if c == nil {
		return
	}

	m.mtx.Lock()
	for i := range m.channels {
		if m.channels[i].chunk == c {
			m.haltLocked(i)
			m.channels[i].chunk = nil
		}
	}
	m.mtx.Unlock()
	m.flush()
}

// alignedLen truncates the chunk's byte length down to the frame width.
func (c *Chunk) alignedLen(frameWidth int) int {
	return len(c.Data) - len(c.Data)%frameWidth
}

// clampVolume keeps v inside [0, MaxVolume]; negative values pass through so
// callers can use them as "query only" markers.
func clampVolume(v int) int {
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
