// SPDX-License-Identifier: EPL-2.0

// Package mix implements the channel mixing engine: a fixed table of playback
// channels, a music stream and two levels of effect chains, composed into the
// periodic output buffer of an audio device.
//
// # Model
//
// A Mixer owns a table of channels. Each channel plays one Chunk (a decoded,
// device-format sample buffer) with its own volume, loop count, group tag,
// expiry deadline and fade state. Once per device callback the render tick
// walks the table and sums every active channel, after the music and before
// the post-mix effect chain, into the destination buffer.
//
// The device itself is behind the Driver interface; see the device package
// for an oto-backed implementation and a manual one for offline rendering.
//
//	drv := device.NewManual()
//	m := mix.New(drv)
//	err := m.Open(mix.Spec{
//	    Frequency: 44100,
//	    Format:    mix.FormatS16,
//	    Channels:  2,
//	    Frames:    1024,
//	})
//
// # Playback
//
// Chunks are queued with PlayChannel and its variants. Passing AnyChannel
// picks the first free channel outside the reserved range:
//
//	ch, err := m.PlayChannel(mix.AnyChannel, chunk, 0)
//
// Playback is shaped per channel: Volume, Pause/Resume, HaltChannel,
// ExpireChannel deadlines, FadeInChannel/FadeOutChannel linear ramps, and
// loop counts (-1 loops forever). The finished notification registered with
// ChannelFinished fires exactly once per playback, whether it ended
// naturally, expired, faded out or was halted.
//
// # Groups
//
// Channels can carry an integer tag. Group queries (GroupAvailable,
// GroupOldest, GroupNewest, GroupCount) and group operations (HaltGroup,
// FadeOutGroup) work across all channels with a tag; -1 is a wildcard.
//
// # Effects
//
// RegisterEffect appends a transform to a channel's chain, or to the global
// post-mix chain with ChannelPost. Channel effects see a private copy of the
// sample slice; post-mix effects transform the composed buffer in place.
//
// # Concurrency
//
// Exactly two actors touch the channel table: the driver's render callback
// and the application's control calls. Both serialize on one mutex, and the
// render tick runs as a single critical section, so control calls never see
// a half-updated channel. Finished notifications and effect completion
// callbacks are fired after the lock is released and may therefore call back
// into the Mixer; EffectFunc and MusicFunc run inside the tick and may not.
//
// # Chunk ownership
//
// The mixer never owns chunk memory. A Chunk's Data must stay immutable and
// alive while any channel references it; call ReleaseChunk before freeing or
// reusing the buffer — it force-stops every channel still playing the chunk.
package mix
