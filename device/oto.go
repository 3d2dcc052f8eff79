// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/chanmix/mix"
)

// Oto drives the mixer with the platform audio device through
// github.com/ebitengine/oto. The oto player pulls PCM from an io.Reader; Read
// forwards those pulls to the mixer's render callback in buffer-sized steps.
type Oto struct {
	ctx    *oto.Context
	player *oto.Player

	render func([]byte)
	step   int
}

func NewOto() *Oto {
	return &Oto{}
}

// Start opens the device and begins pulling audio. Implements mix.Driver.
func (d *Oto) Start(spec mix.Spec, render func(stream []byte)) error {
	format := oto.FormatSignedInt16LE
	if spec.Format == mix.FormatF32 {
		format = oto.FormatFloat32LE
	}

	op := &oto.NewContextOptions{
		SampleRate:   spec.Frequency,
		ChannelCount: spec.Channels,
		Format:       format,
		BufferSize:   time.Second * time.Duration(spec.Frames) / time.Duration(spec.Frequency),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	<-ready

	d.ctx = ctx
	d.render = render
	d.step = spec.BufferBytes()

	d.player = ctx.NewPlayer(d)
	d.player.Play()

	return nil
}

// Read fills p with mixed audio. oto requests arbitrary lengths, so the
// render callback is invoked in steps of at most one tick's worth of bytes.
func (d *Oto) Read(p []byte) (int, error) {
	if d.render == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	for off := 0; off < len(p); off += d.step {
		end := min(off+d.step, len(p))
		d.render(p[off:end])
	}

	return len(p), nil
}

// Close stops playback. The oto context itself has no close; it is suspended
// so the device stops pulling.
func (d *Oto) Close() error {
	if d.player != nil {
		if err := d.player.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
		d.player = nil
	}
	if d.ctx != nil {
		_ = d.ctx.Suspend()
		d.ctx = nil
	}
	d.render = nil

	return nil
}
