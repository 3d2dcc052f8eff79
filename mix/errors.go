// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	ErrInvalidSpec   = errors.New("invalid device spec")
	ErrSpecMismatch  = errors.New("format does not match the open device")
	ErrClosed        = errors.New("mixer is not open")
	ErrNilChunk      = errors.New("nil or empty chunk")
	ErrNoFreeChannel = errors.New("no free channel available")
	ErrNoSuchChannel = errors.New("channel index out of range")
	ErrNoSuchEffect  = errors.New("no effect registered with that token")
)
