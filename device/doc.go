// SPDX-License-Identifier: EPL-2.0

// Package device provides mix.Driver implementations.
//
// Oto plays through the platform audio device using
// github.com/ebitengine/oto; Manual has no device at all and lets the
// application pull rendered buffers itself, for offline rendering, tests and
// headless machines:
//
//	drv := device.NewManual()
//	m := mix.New(drv)
//	_ = m.Open(mix.Spec{Frequency: 44100, Format: mix.FormatS16, Channels: 2, Frames: 1024})
//	pcm := drv.Tick() // one buffer of mixed audio
package device
