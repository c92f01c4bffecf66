// File: protocol/status.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "net/http"

// UnknownStatus is the reason phrase for codes missing from the registry.
const UnknownStatus = "Unknown Status"

// StatusText returns the reason phrase for code.
func StatusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return UnknownStatus
}
