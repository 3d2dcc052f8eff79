// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"encoding/binary"
	"testing"
)

// gainEffect halves every 16-bit sample in place.
func gainEffect(_ int, buf []byte, _ any) {
	for i := 0; i+1 < len(buf); i += 2 {
		s := int16(binary.LittleEndian.Uint16(buf[i:]))
		binary.LittleEndian.PutUint16(buf[i:], uint16(s/2))
	}
}

func TestRegisterEffect_Errors(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())

	if _, err := m.RegisterEffect(0, Effect{}); err != ErrNoSuchEffect {
		t.Errorf("nil transform error = %v, want ErrNoSuchEffect", err)
	}
	if _, err := m.RegisterEffect(99, Effect{Transform: gainEffect}); err != ErrNoSuchChannel {
		t.Errorf("out-of-range channel error = %v, want ErrNoSuchChannel", err)
	}
	if err := m.UnregisterEffect(99, 1); err != ErrNoSuchChannel {
		t.Errorf("unregister out-of-range error = %v, want ErrNoSuchChannel", err)
	}
	if err := m.UnregisterEffect(0, 12345); err != ErrNoSuchEffect {
		t.Errorf("unknown token error = %v, want ErrNoSuchEffect", err)
	}
}

func TestEffect_TransformsChannelAudio(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 256, 1000)

	ch, _ := m.PlayChannel(AnyChannel, chunk, 0)
	if _, err := m.RegisterEffect(ch, Effect{Transform: gainEffect}); err != nil {
		t.Fatalf("RegisterEffect() error = %v", err)
	}

	buf := tick(m)
	if got := sampleAt(buf, 0); got != 500 {
		t.Errorf("effected sample = %d, want 500", got)
	}

	// The chunk data itself stays untouched: effects run on a private copy.
	if got := int16(binary.LittleEndian.Uint16(chunk.Data)); got != 1000 {
		t.Errorf("chunk data mutated to %d, want 1000", got)
	}
}

func TestEffect_ChainOrder(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 256, 0)

	ch, _ := m.PlayChannel(AnyChannel, chunk, 0)

	// set writes a constant, add increments. Order matters: set-then-add
	// yields 11; the reverse would leave 10.
	set := func(_ int, buf []byte, _ any) {
		binary.LittleEndian.PutUint16(buf, uint16(int16(10)))
	}
	add := func(_ int, buf []byte, _ any) {
		s := int16(binary.LittleEndian.Uint16(buf))
		binary.LittleEndian.PutUint16(buf, uint16(s+1))
	}

	m.RegisterEffect(ch, Effect{Transform: set})
	m.RegisterEffect(ch, Effect{Transform: add})

	buf := tick(m)
	if got := sampleAt(buf, 0); got != 11 {
		t.Errorf("chained sample = %d, want 11", got)
	}
}

func TestUnregisterEffect(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 512, 1000)

	ch, _ := m.PlayChannel(AnyChannel, chunk, -1)

	var done []int
	token, err := m.RegisterEffect(ch, Effect{
		Transform: gainEffect,
		Done:      func(channel int, _ any) { done = append(done, channel) },
	})
	if err != nil {
		t.Fatalf("RegisterEffect() error = %v", err)
	}

	buf := tick(m)
	if got := sampleAt(buf, 0); got != 500 {
		t.Fatalf("effected sample = %d, want 500", got)
	}

	if err := m.UnregisterEffect(ch, token); err != nil {
		t.Fatalf("UnregisterEffect() error = %v", err)
	}
	if len(done) != 1 || done[0] != ch {
		t.Errorf("done = %v, want [%d]", done, ch)
	}

	buf = tick(m)
	if got := sampleAt(buf, 0); got != 1000 {
		t.Errorf("sample after unregister = %d, want 1000", got)
	}

	// The token is spent.
	if err := m.UnregisterEffect(ch, token); err != ErrNoSuchEffect {
		t.Errorf("reused token error = %v, want ErrNoSuchEffect", err)
	}
}

func TestUnregisterAllEffects(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())

	var done []int
	doneFn := func(channel int, _ any) { done = append(done, channel) }

	m.RegisterEffect(3, Effect{Transform: gainEffect, Done: doneFn})
	m.RegisterEffect(3, Effect{Transform: gainEffect, Done: doneFn})

	if err := m.UnregisterAllEffects(3); err != nil {
		t.Fatalf("UnregisterAllEffects() error = %v", err)
	}
	if len(done) != 2 {
		t.Errorf("done callbacks = %d, want 2", len(done))
	}

	// Clearing an empty chain is fine.
	if err := m.UnregisterAllEffects(3); err != nil {
		t.Errorf("UnregisterAllEffects() on empty chain error = %v", err)
	}
}

func TestEffect_DoneFiresWhenPlaybackEnds(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 128, 1000) // exactly one tick

	var done []int
	ch, _ := m.PlayChannel(AnyChannel, chunk, 0)
	m.RegisterEffect(ch, Effect{
		Transform: gainEffect,
		Done:      func(channel int, _ any) { done = append(done, channel) },
	})

	tick(m)

	if len(done) != 1 || done[0] != ch {
		t.Errorf("done = %v, want [%d]", done, ch)
	}

	// The chain is gone; a fresh playback on the slot runs clean.
	m.PlayChannel(ch, chunk, 0)
	buf := tick(m)
	if got := sampleAt(buf, 0); got != 1000 {
		t.Errorf("sample after chain unwound = %d, want 1000", got)
	}
}

func TestEffect_DataPassedThrough(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 128, 1000)

	type state struct{ calls int }
	st := &state{}

	ch, _ := m.PlayChannel(AnyChannel, chunk, 0)
	m.RegisterEffect(ch, Effect{
		Transform: func(_ int, _ []byte, data any) {
			data.(*state).calls++
		},
		Data: st,
	})

	tick(m)

	if st.calls == 0 {
		t.Error("effect data never reached the transform")
	}
}

func TestPostEffect_RunsOnComposedBuffer(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())
	chunk := chunkS16(t, m, 256, 1000)

	m.PlayChannel(0, chunk, 0)
	m.PlayChannel(1, chunk, 0)

	// Post chain sees the sum of both channels, then halves it.
	var seen int16
	m.RegisterEffect(ChannelPost, Effect{
		Transform: func(which int, buf []byte, _ any) {
			if which != ChannelPost {
				return
			}
			seen = int16(binary.LittleEndian.Uint16(buf))
			gainEffect(which, buf, nil)
		},
	})

	buf := tick(m)

	if seen != 2000 {
		t.Errorf("post effect saw %d, want the 2000 sum", seen)
	}
	if got := sampleAt(buf, 0); got != 1000 {
		t.Errorf("post-effected sample = %d, want 1000", got)
	}
}

func TestPostEffect_Unregister(t *testing.T) {
	t.Parallel()

	m, _ := testMixer(t, testSpec())

	var done bool
	token, err := m.RegisterEffect(ChannelPost, Effect{
		Transform: gainEffect,
		Done:      func(_ int, _ any) { done = true },
	})
	if err != nil {
		t.Fatalf("RegisterEffect(ChannelPost) error = %v", err)
	}

	if err := m.UnregisterEffect(ChannelPost, token); err != nil {
		t.Fatalf("UnregisterEffect(ChannelPost) error = %v", err)
	}
	if !done {
		t.Error("post effect done callback not fired")
	}
}
