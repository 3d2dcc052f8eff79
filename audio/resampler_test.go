// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"
)

func drainSamples(t *testing.T, src Source, bufLen int) []float32 {
	t.Helper()

	buf := make([]float32, bufLen)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestResampler_SameRatePassthrough(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 1, 100, 0.5), 8000)

	buf := make([]float32, 100)
	n, err := r.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}
	for i := range n {
		if math.Abs(float64(buf[i]-0.5)) > 0.1 {
			t.Errorf("buf[%d] = %v, want ≈0.5", i, buf[i])
		}
	}
}

func TestResampler_RateConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		srcRate   int
		dstRate   int
		tolerance int
	}{
		{"downsample 44.1kHz to 8kHz", 44100, 8000, 100},
		{"upsample 8kHz to 44.1kHz", 8000, 44100, 500},
		{"downsample 48kHz to 8kHz", 48000, 8000, 200},
		{"upsample 8kHz to 48kHz", 8000, 48000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// One second of a 440 Hz tone.
			r := NewResampler(newSineSource(tt.srcRate, 1, tt.srcRate, 440.0), tt.dstRate)
			samples := drainSamples(t, r, 1024)

			if len(samples) < tt.dstRate-tt.tolerance || len(samples) > tt.dstRate+tt.tolerance {
				t.Errorf("resampled to %d samples, want ≈%d (±%d)", len(samples), tt.dstRate, tt.tolerance)
			}

			// Interpolation may overshoot slightly, never wildly.
			for i, s := range samples {
				if s < -1.5 || s > 1.5 {
					t.Fatalf("samples[%d] = %v, outside [-1.5, 1.5]", i, s)
				}
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 2, 1000, func(_, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})
	r := NewResampler(src, 8000)

	if r.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", r.Channels())
	}

	buf := make([]float32, 20)
	n, err := r.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}

	for f := range n / 2 {
		if left := buf[f*2]; math.Abs(float64(left-0.3)) > 0.2 {
			t.Errorf("frame[%d] left = %v, want ≈0.3", f, left)
		}
		if right := buf[f*2+1]; math.Abs(float64(right-0.7)) > 0.2 {
			t.Errorf("frame[%d] right = %v, want ≈0.7", f, right)
		}
	}
}

func TestResampler_MultiChannelPreserved(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 6, 1000, func(_, channel int) float32 {
		return float32(channel) * 0.1
	})
	r := NewResampler(src, 8000)

	if r.Channels() != 6 {
		t.Errorf("Channels() = %d, want 6", r.Channels())
	}

	buf := make([]float32, 60)
	n, err := r.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n%6 != 0 {
		t.Errorf("ReadSamples() n = %d, not a multiple of 6", n)
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 1, 100), 8000)

	if got := drainSamples(t, r, 1024); len(got) == 0 {
		t.Error("no samples read before io.EOF")
	}

	n, err := r.ReadSamples(make([]float32, 1024))
	if err != io.EOF || n != 0 {
		t.Errorf("ReadSamples() after drain = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 2, 1000), 8000)

	// Seven floats cannot hold whole stereo frames.
	if _, err := r.ReadSamples(make([]float32, 7)); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_VeryShortSource(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 1, 2), 8000)

	n, err := r.ReadSamples(make([]float32, 10))
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n < 0 {
		t.Errorf("ReadSamples() n = %d, want non-negative", n)
	}
}

func TestResampler_SmallBuffer(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSineSource(44100, 2, 44100, 440.0), 8000)

	// Room for a single stereo frame.
	n, err := r.ReadSamples(make([]float32, 2))
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 && n != 0 {
		t.Errorf("ReadSamples() n = %d, want 2 or 0", n)
	}
}

func TestResampler_SteadyStateAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := newSineSource(44100, 2, 1000000, 440.0)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	// First read sizes the internal buffers.
	r.ReadSamples(buf)

	allocs := testing.AllocsPerRun(100, func() {
		src.Reset()
		_, _ = r.ReadSamples(buf)
	})
	if allocs > 1 {
		t.Logf("ReadSamples() allocated %v times per run", allocs)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := newSineSource(44100, 2, 100000, 440.0)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		for {
			if _, err := r.ReadSamples(buf); err == io.EOF {
				break
			}
		}
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	src := newSineSource(8000, 2, 20000, 440.0)
	r := NewResampler(src, 44100)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		for {
			if _, err := r.ReadSamples(buf); err == io.EOF {
				break
			}
		}
	}
}

func BenchmarkResampler_ReadSamples(b *testing.B) {
	src := newSineSource(44100, 2, 1000000, 440.0)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		_, _ = r.ReadSamples(buf)
	}
}
