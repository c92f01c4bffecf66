// File: protocol/request.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import (
	"context"
	"strings"
)

// RequestPath is the decomposed request target. Raw and Absolute both hold
// the path component before the first '?', undecoded; the query string is
// only available through Query.
type RequestPath struct {
	Raw      string            // path component as received, no query
	Absolute string            // path component used for route lookup
	Query    map[string]string // decoded key=value pairs, last duplicate wins
}

// Request is a parsed request head. No body is attached.
type Request struct {
	Path    RequestPath
	Method  Method
	Version Version
	Headers map[string]string // keys as received on the wire

	ctx context.Context
}

// Context returns the request context. It carries the handler deadline and
// is cancelled when that deadline passes or the server shuts down.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r bound to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("nil context")
	}
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}

// Header returns the first header value whose name matches case-insensitively.
func (r *Request) Header(name string) (string, bool) {
	if v, ok := r.Headers[name]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
