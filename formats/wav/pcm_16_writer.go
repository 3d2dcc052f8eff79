// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeChunkSamples caps how many samples each Write call carries, so
// large files stream through a small reusable buffer.
const writeChunkSamples = 8192

// WriteWAV16 writes samples to w as a complete mono 16-bit PCM WAV file
// at sampleRate, header included.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	const (
		channels      = uint16(1)
		bitsPerSample = uint16(16)
		bytesPerFrame = uint16(2)
	)

	dataSize := uint32(len(samples)) * uint32(bytesPerFrame)

	// RIFF header, fmt chunk and data chunk header fit in 44 bytes.
	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*uint32(bytesPerFrame))
	binary.LittleEndian.PutUint16(header[32:34], bytesPerFrame)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), writeChunkSamples)*2)
	for start := 0; start < len(samples); start += writeChunkSamples {
		part := samples[start:min(start+writeChunkSamples, len(samples))]
		out := buf[:len(part)*2]
		for i, s := range part {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
