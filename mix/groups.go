// SPDX-License-Identifier: EPL-2.0

package mix

import "time"

// Group queries accept a tag of -1 as a wildcard matching every channel.
// Queries that find nothing return the channel index -1.

// GroupChannel tags a single channel. Returns false when the index is out of
// the table bounds.
func (m *Mixer) GroupChannel(which, tag int) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if which < 0 || which >= len(m.channels) {
		return false
	}
	m.channels[which].tag = tag

	return true
}

// GroupChannels tags the contiguous channel range [from, to]. Returns how
// many channels were tagged; out-of-bounds indexes in the range are skipped.
func (m *Mixer) GroupChannels(from, to, tag int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	status := 0
	for i := from; i <= to; i++ {
		if i < 0 || i >= len(m.channels) {
			continue
		}
		m.channels[i].tag = tag
		status++
	}

	return status
}

// GroupAvailable returns the first free channel carrying tag, or -1.
func (m *Mixer) GroupAvailable(tag int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.channels {
		if (tag == -1 || tag == m.channels[i].tag) && m.channels[i].remaining <= 0 {
			return i
		}
	}

	return -1
}

// GroupCount returns the number of channels carrying tag.
func (m *Mixer) GroupCount(tag int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	status := 0
	for i := range m.channels {
		if tag == -1 || tag == m.channels[i].tag {
			status++
		}
	}

	return status
}

// GroupOldest returns the playing channel carrying tag with the earliest
// start timestamp, or -1 when none matches.
func (m *Mixer) GroupOldest(tag int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	oldest := -1
	minTime := m.now()
	for i := range m.channels {
		ch := &m.channels[i]
		if (tag == -1 || tag == ch.tag) && ch.remaining > 0 && ch.start <= minTime {
			minTime = ch.start
			oldest = i
		}
	}

	return oldest
}

// GroupNewest returns the playing channel carrying tag with the latest start
// timestamp, or -1 when none matches.
func (m *Mixer) GroupNewest(tag int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	newest := -1
	var maxTime int64
	for i := range m.channels {
		ch := &m.channels[i]
		if (tag == -1 || tag == ch.tag) && ch.remaining > 0 && ch.start >= maxTime {
			maxTime = ch.start
			newest = i
		}
	}

	return newest
}

// HaltGroup halts every channel carrying tag. The wildcard tag halts all.
func (m *Mixer) HaltGroup(tag int) {
	m.mtx.Lock()

	for i := range m.channels {
		if tag == -1 || tag == m.channels[i].tag {
			m.haltLocked(i)
		}
	}

	m.mtx.Unlock()
	m.flush()
}

// FadeOutGroup starts a fade-out on every channel carrying tag. Returns the
// number of channels now fading.
func (m *Mixer) FadeOutGroup(tag int, d time.Duration) int {
	m.mtx.Lock()

	now := m.now()
	status := 0
	for i := range m.channels {
		if tag != -1 && tag != m.channels[i].tag {
			continue
		}
		if m.fadeOutLocked(i, now, d) {
			status++
		}
	}

	m.mtx.Unlock()
	return status
}
