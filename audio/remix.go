// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Remixer converts the channel count of a stream. Downmixing averages the
// source channels that fall on each output channel, upmixing duplicates them.
type Remixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewRemixer(src Source, channels int) (*Remixer, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	return &Remixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

func (m *Remixer) SampleRate() int { return m.src.SampleRate() }
func (m *Remixer) Channels() int   { return m.channels }
func (m *Remixer) BufSize() int    { return m.src.BufSize() }

func (m *Remixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with interleaved samples remixed to the output
// channel count. dst length must be a multiple of the output channel count.
func (m *Remixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	srcCh := m.src.Channels()
	if srcCh == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	needed := frames * srcCh

	if cap(m.tmp) < needed {
		m.tmp = make([]float32, needed)
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / srcCh

	switch {
	case srcCh == 2 && m.channels == 1:
		for f := range got {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case srcCh == 1 && m.channels == 2:
		for f := range got {
			v := m.tmp[f]
			dst[f<<1] = v
			dst[f<<1+1] = v
		}
	case srcCh > m.channels:
		// Group source channels onto output channels and average each group.
		// The group sizes depend only on the channel counts, not the frame.
		counts := make([]float32, m.channels)
		for c := range srcCh {
			counts[c*m.channels/srcCh]++
		}
		for f := range got {
			base := f * srcCh
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = 0
			}
			for c := range srcCh {
				out[c*m.channels/srcCh] += m.tmp[base+c]
			}
			for c := range out {
				out[c] /= counts[c]
			}
		}
	default:
		// Upmix: each output channel mirrors its nearest source channel
		for f := range got {
			base := f * srcCh
			for c := range m.channels {
				dst[f*m.channels+c] = m.tmp[base+c*srcCh/m.channels]
			}
		}
	}

	return got * m.channels, err
}
