// File: server/handler_chain.go
// Package server implements middleware chain utilities.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"log/slog"
	"time"

	"github.com/momentics/hioload-http/api"
	"github.com/momentics/hioload-http/protocol"
)

// Middleware augments an api.Handler.
type Middleware func(api.Handler) api.Handler

// NewHandlerChain applies middleware in order: first in slice is outermost.
func NewHandlerChain(base api.Handler, mw ...Middleware) api.Handler {
	h := base
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// AccessLog logs one line per handled request at info level.
func AccessLog(logger *slog.Logger) Middleware {
	return func(next api.Handler) api.Handler {
		return api.HandlerFunc(func(req *protocol.Request, res *protocol.Response) *protocol.Response {
			start := time.Now()
			out := next.Handle(req, res)
			status := res.Status
			if out != nil {
				status = out.Status
			}
			logger.Info("request",
				"method", req.Method.String(),
				"path", req.Path.Absolute,
				"status", status,
				"duration", time.Since(start))
			return out
		})
	}
}
