// File: protocol/method.go
// Package protocol implements HTTP/1.1 request parsing, status reasons and
// response serialization for hioload-http.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

// Method is a request method from the closed set understood by the server.
type Method uint8

const (
	MethodUnrecognized Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch
	MethodHead
	MethodOptions
)

var methodNames = [...]string{
	MethodUnrecognized: "UNRECOGNIZED",
	MethodGet:          "GET",
	MethodPost:         "POST",
	MethodPut:          "PUT",
	MethodDelete:       "DELETE",
	MethodPatch:        "PATCH",
	MethodHead:         "HEAD",
	MethodOptions:      "OPTIONS",
}

// ParseMethod matches a wire token case-sensitively.
// Unknown tokens yield MethodUnrecognized, never an error.
func ParseMethod(token string) Method {
	switch token {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "DELETE":
		return MethodDelete
	case "PATCH":
		return MethodPatch
	case "HEAD":
		return MethodHead
	case "OPTIONS":
		return MethodOptions
	default:
		return MethodUnrecognized
	}
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return methodNames[MethodUnrecognized]
}

// Version is the protocol version token of a request line.
type Version uint8

const (
	VersionUnknown Version = iota
	VersionOne
	VersionOnePointOne
	VersionTwo
)

// ParseVersion maps a version token. Only HTTP/1, HTTP/1.1 and HTTP/2 are
// recognized; HTTP/1.0, HTTP/2.0 and anything else map to VersionUnknown.
func ParseVersion(token string) Version {
	switch token {
	case "HTTP/1":
		return VersionOne
	case "HTTP/1.1":
		return VersionOnePointOne
	case "HTTP/2":
		return VersionTwo
	default:
		return VersionUnknown
	}
}

func (v Version) String() string {
	switch v {
	case VersionOne:
		return "HTTP/1"
	case VersionOnePointOne:
		return "HTTP/1.1"
	case VersionTwo:
		return "HTTP/2"
	default:
		return "unknown"
	}
}
