// SPDX-License-Identifier: EPL-2.0

package mix

// EffectFunc transforms raw audio in place. For a per-channel effect buf is a
// private copy of the channel's current slice, so the chunk data itself is
// never mutated; for the post-mix chain (ChannelPost) buf is the destination
// buffer. Runs inside the render tick: it must not block and must not call
// back into the Mixer.
type EffectFunc func(channel int, buf []byte, data any)

// EffectDoneFunc is invoked when an effect entry leaves its chain, either by
// explicit unregistration or because the channel's playback finished.
type EffectDoneFunc func(channel int, data any)

// Effect is one entry of an effect chain.
type Effect struct {
	Transform EffectFunc
	Done      EffectDoneFunc
	Data      any
}

type effect struct {
	fn    EffectFunc
	done  EffectDoneFunc
	data  any
	token int
}

// RegisterEffect appends e to the effect chain of a channel, or to the global
// post-mix chain with ChannelPost. Chains run in registration order. The
// returned token identifies the entry for UnregisterEffect.
func (m *Mixer) RegisterEffect(which int, e Effect) (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if e.Transform == nil {
		return 0, ErrNoSuchEffect
	}

	chain, err := m.chainLocked(which)
	if err != nil {
		return 0, err
	}

	m.effectToken++
	*chain = append(*chain, effect{
		fn:    e.Transform,
		done:  e.Done,
		data:  e.Data,
		token: m.effectToken,
	})

	return m.effectToken, nil
}

// UnregisterEffect removes the entry identified by token from the channel's
// chain (or the post-mix chain with ChannelPost), firing its completion
// callback.
func (m *Mixer) UnregisterEffect(which, token int) error {
	m.mtx.Lock()

	chain, err := m.chainLocked(which)
	if err != nil {
		m.mtx.Unlock()
		return err
	}

	err = ErrNoSuchEffect
	for i, e := range *chain {
		if e.token != token {
			continue
		}
		*chain = append((*chain)[:i], (*chain)[i+1:]...)
		if e.done != nil {
			done, data := e.done, e.data
			m.pending = append(m.pending, func() { done(which, data) })
		}
		err = nil
		break
	}

	m.mtx.Unlock()
	m.flush()
	return err
}

// UnregisterAllEffects clears the channel's chain (or the post-mix chain with
// ChannelPost), firing every completion callback in chain order.
func (m *Mixer) UnregisterAllEffects(which int) error {
	m.mtx.Lock()

	chain, err := m.chainLocked(which)
	if err != nil {
		m.mtx.Unlock()
		return err
	}

	for _, e := range *chain {
		if e.done != nil {
			done, data := e.done, e.data
			m.pending = append(m.pending, func() { done(which, data) })
		}
	}
	*chain = nil

	m.mtx.Unlock()
	m.flush()
	return err
}

func (m *Mixer) chainLocked(which int) (*[]effect, error) {
	if which == ChannelPost {
		return &m.posteffects, nil
	}
	if which < 0 || which >= len(m.channels) {
		return nil, ErrNoSuchChannel
	}
	return &m.channels[which].effects, nil
}

// applyEffects runs a channel's effect chain over src. With no effects
// registered src is returned untouched; otherwise src is copied into the
// pooled scratch buffer first so the chunk data stays pristine.
func (m *Mixer) applyEffects(which int, src []byte) []byte {
	chain := m.channels[which].effects
	if len(chain) == 0 {
		return src
	}

	if cap(m.scratch) < len(src) {
		m.scratch = make([]byte, len(src))
	}
	buf := m.scratch[:len(src)]
	copy(buf, src)

	for _, e := range chain {
		e.fn(which, buf, e.data)
	}

	return buf
}

// applyPostEffects runs the post-mix chain in place over the composed
// destination buffer.
func (m *Mixer) applyPostEffects(stream []byte) {
	for _, e := range m.posteffects {
		e.fn(ChannelPost, stream, e.data)
	}
}
