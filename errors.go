// SPDX-License-Identifier: EPL-2.0

package chanmix

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown audio format")
)
