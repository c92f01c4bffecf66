// File: api/handler.go
// Package api defines the Handler contract and the error taxonomy.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "github.com/momentics/hioload-http/protocol"

// Handler produces the response for a matched request.
// res arrives prefilled with the default status and headers. Returning nil
// keeps res as the reply. Handlers may run on many connections at once, so
// any state they own must be synchronized.
type Handler interface {
	Handle(req *protocol.Request, res *protocol.Response) *protocol.Response
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func(req *protocol.Request, res *protocol.Response) *protocol.Response

// Handle calls f(req, res).
func (f HandlerFunc) Handle(req *protocol.Request, res *protocol.Response) *protocol.Response {
	return f(req, res)
}
