// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clamping to [-1, 1].
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts a 16-bit PCM sample to the normalized [-1, 1] range.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Float32ToPCM16 packs normalized samples into little-endian 16-bit PCM bytes.
// dst must hold at least len(src)*2 bytes. Returns the number of bytes written.
func Float32ToPCM16(dst []byte, src []float32) int {
	for i, x := range src {
		binary.LittleEndian.PutUint16(dst[2*i:2*i+2], uint16(Float32ToInt16(x)))
	}

	return len(src) * 2
}

// PCM16ToFloat32 unpacks little-endian 16-bit PCM bytes into normalized samples.
// Trailing bytes that do not form a full sample are ignored.
// Returns the number of samples written.
func PCM16ToFloat32(dst []float32, src []byte) int {
	samples := len(src) / 2
	if samples > len(dst) {
		samples = len(dst)
	}

	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(src[2*i : 2*i+2]))
		dst[i] = Int16ToFloat32(v)
	}

	return samples
}
