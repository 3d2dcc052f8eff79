// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sync"

	"github.com/ik5/chanmix/mix"
)

// Manual is a driver without a device: the application clocks the mixer
// itself by calling Tick, collecting the rendered PCM. Useful for offline
// rendering and tests, and on headless machines.
type Manual struct {
	mtx    sync.Mutex
	render func([]byte)
	buf    []byte
}

func NewManual() *Manual {
	return &Manual{}
}

// Start records the render callback. Implements mix.Driver.
func (d *Manual) Start(spec mix.Spec, render func(stream []byte)) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.render = render
	d.buf = make([]byte, spec.BufferBytes())

	return nil
}

// Tick renders one buffer and returns it. The slice is reused by the next
// Tick. Returns nil when the driver is not started.
func (d *Manual) Tick() []byte {
	d.mtx.Lock()
	render, buf := d.render, d.buf
	d.mtx.Unlock()

	if render == nil {
		return nil
	}
	render(buf)

	return buf
}

// TickInto renders one buffer into the caller's slice, which determines the
// tick length. Does nothing when the driver is not started.
func (d *Manual) TickInto(buf []byte) {
	d.mtx.Lock()
	render := d.render
	d.mtx.Unlock()

	if render != nil {
		render(buf)
	}
}

// Close drops the render callback. Implements mix.Driver.
func (d *Manual) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.render = nil
	d.buf = nil

	return nil
}
