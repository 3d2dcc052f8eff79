// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"
)

func TestRemixer_Passthrough(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 2, 100, 0.5)

	remix, err := NewRemixer(src, 2)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	buf := make([]float32, 20)

	n, err := remix.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 20 {
		t.Errorf("ReadSamples() n = %d, want 20", n)
	}

	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestRemixer_StereoToMono(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 2, 100, func(sample int, channel int) float32 {
		if channel == 0 {
			return 0.4
		}
		return 0.6
	})

	remix, err := NewRemixer(src, 1)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	if remix.Channels() != 1 {
		t.Errorf("Remixer.Channels() = %d, want 1", remix.Channels())
	}

	buf := make([]float32, 10)

	n, err := remix.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	// Average of the two channels: (0.4 + 0.6) / 2 = 0.5
	for i := range n {
		if math.Abs(float64(buf[i]-0.5)) > 0.001 {
			t.Errorf("buf[%d] = %v, want ≈0.5", i, buf[i])
		}
	}
}

func TestRemixer_MonoToStereo(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 1, 100, func(sample int, channel int) float32 {
		return float32(sample%4) * 0.1
	})

	remix, err := NewRemixer(src, 2)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	buf := make([]float32, 16)

	n, err := remix.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 16 {
		t.Fatalf("ReadSamples() n = %d, want 16", n)
	}

	// Both output channels of a frame must carry the mono sample
	for f := range n / 2 {
		left, right := buf[f*2], buf[f*2+1]
		want := float32(f%4) * 0.1

		if left != right {
			t.Errorf("frame %d: left %v != right %v", f, left, right)
		}

		if math.Abs(float64(left-want)) > 0.001 {
			t.Errorf("frame %d = %v, want ≈%v", f, left, want)
		}
	}
}

func TestRemixer_QuadToStereo(t *testing.T) {
	t.Parallel()

	// Channels carry 0.1, 0.2, 0.3, 0.4; pairs average to 0.15 and 0.35
	src := newMockSource(8000, 4, 100, func(sample int, channel int) float32 {
		return float32(channel+1) * 0.1
	})

	remix, err := NewRemixer(src, 2)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	buf := make([]float32, 10)

	n, err := remix.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	for f := range n / 2 {
		if math.Abs(float64(buf[f*2]-0.15)) > 0.001 {
			t.Errorf("frame %d left = %v, want ≈0.15", f, buf[f*2])
		}
		if math.Abs(float64(buf[f*2+1]-0.35)) > 0.001 {
			t.Errorf("frame %d right = %v, want ≈0.35", f, buf[f*2+1])
		}
	}
}

func TestRemixer_InvalidChannels(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 2, 100)

	if _, err := NewRemixer(src, 0); err != ErrInvalidChannels {
		t.Errorf("NewRemixer(0) error = %v, want ErrInvalidChannels", err)
	}

	if _, err := NewRemixer(src, -2); err != ErrInvalidChannels {
		t.Errorf("NewRemixer(-2) error = %v, want ErrInvalidChannels", err)
	}
}

func TestRemixer_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 1, 100)

	remix, err := NewRemixer(src, 2)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	buf := make([]float32, 3)

	if _, err := remix.ReadSamples(buf); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestRemixer_EOF(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 1, 5)

	remix, err := NewRemixer(src, 2)
	if err != nil {
		t.Fatalf("NewRemixer() error = %v", err)
	}

	buf := make([]float32, 20)

	n, err := remix.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}

	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
}

func BenchmarkRemixer_MonoToStereo(b *testing.B) {
	src := newSineSource(8000, 1, 1000000, 440.0)

	remix, err := NewRemixer(src, 2)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		_, _ = remix.ReadSamples(buf)
	}
}
