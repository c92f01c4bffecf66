// File: server/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-connection pipeline: read head, parse, route, handle, write, close.
// Every failure is contained to its own connection.

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/momentics/hioload-http/api"
	"github.com/momentics/hioload-http/protocol"
	"github.com/momentics/hioload-http/router"
)

const (
	// lingerTimeout bounds draining unread client bytes before close.
	lingerTimeout = 500 * time.Millisecond
	lingerBytes   = 256 << 10
	rejectTimeout = time.Second
)

func (s *Server) serveConn(ctx context.Context, conn net.Conn, mw []Middleware) {
	s.metrics.ConnAccepted()
	log := s.logger.With("conn_id", uuid.NewString(), "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(ctx)
	// Cancellation forces pending reads and writes to return at once.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	var status int
	defer func() {
		stop()
		cancel()
		if status == http.StatusRequestHeaderFieldsTooLarge {
			// The head cap forbids any further reads.
			_ = conn.Close()
		} else {
			s.closeConn(conn)
		}
		s.metrics.ConnClosed()
	}()

	if ctx.Err() != nil {
		return
	}

	var err error
	status, err = s.handle(ctx, conn, mw, log)
	switch {
	case err == nil:
		log.Debug("served", "status", status)
	case ctx.Err() != nil:
		log.Debug("connection cancelled", "error", err)
	default:
		s.metrics.IOError()
		log.Debug("connection error", "status", status, "error", err)
	}
}

// handle runs the pipeline and returns the status written, if any.
func (s *Server) handle(ctx context.Context, conn net.Conn, mw []Middleware, log *slog.Logger) (int, error) {
	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	head, err := s.readHead(conn)
	if err != nil {
		if ctx.Err() != nil {
			return 0, err
		}
		if errors.Is(err, api.ErrHeaderTooLarge) || errors.Is(err, api.ErrRequestTimeout) {
			log.Debug("request head rejected", "error", err)
			return s.writeStatus(conn, api.StatusFor(err))
		}
		return 0, err
	}
	if head == nil {
		// Timed out before sending anything.
		return 0, nil
	}

	req, err := protocol.Parse(head)
	if err != nil {
		log.Debug("parse failed", "error", err)
		return s.writeStatus(conn, http.StatusBadRequest)
	}

	handler, result := s.routes.Resolve(req.Path.Absolute, req.Method)
	if result != router.Found {
		log.Debug("no route", "method", req.Method.String(), "path", req.Path.Absolute, "result", result.String())
		return s.writeStatus(conn, api.StatusFor(result.Err()))
	}

	hctx, cancel := context.WithTimeout(ctx, s.cfg.HandlerTimeout)
	defer cancel()
	res, err := s.invoke(NewHandlerChain(handler, mw...), req.WithContext(hctx))
	if err != nil {
		log.Error("handler failed", "method", req.Method.String(), "path", req.Path.Absolute, "error", err)
		return s.writeStatus(conn, http.StatusInternalServerError)
	}
	if ctx.Err() == nil && errors.Is(hctx.Err(), context.DeadlineExceeded) {
		log.Warn("handler timed out", "method", req.Method.String(), "path", req.Path.Absolute,
			"timeout", s.cfg.HandlerTimeout)
		return s.writeStatus(conn, api.StatusFor(api.ErrHandlerTimeout))
	}

	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if _, err := res.WriteTo(conn); err != nil {
		return res.Status, fmt.Errorf("write response: %w", err)
	}
	s.metrics.Status(res.Status)
	return res.Status, nil
}

// readHead accumulates reads until the header terminator, EOF or the size cap.
// It returns nil, nil when the read deadline passes before any byte arrives.
func (s *Server) readHead(conn net.Conn) ([]byte, error) {
	buf := s.buffers.Get(s.cfg.ReadBufferSize)
	defer s.buffers.Put(buf)

	var acc []byte
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			acc = append(acc, buf[:n]...)
			if end := protocol.HeadComplete(acc); end >= 0 {
				if end > s.cfg.MaxHeaderBytes {
					return nil, fmt.Errorf("%w: %d bytes", api.ErrHeaderTooLarge, end)
				}
				return acc[:end], nil
			}
			if len(acc) > s.cfg.MaxHeaderBytes {
				return nil, fmt.Errorf("%w: over %d bytes", api.ErrHeaderTooLarge, s.cfg.MaxHeaderBytes)
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(acc) == 0 {
				return []byte{}, nil
			}
			return acc, nil
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if len(acc) == 0 {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: after %d bytes", api.ErrRequestTimeout, len(acc))
		}
		return nil, fmt.Errorf("read request: %w", err)
	}
}

// invoke runs the handler with a fresh default response, converting a
// panic into an error.
func (s *Server) invoke(h api.Handler, req *protocol.Request) (res *protocol.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", api.ErrHandlerPanic, r)
		}
	}()
	def := protocol.DefaultResponse()
	if out := h.Handle(req, def); out != nil {
		return out, nil
	}
	return def, nil
}

// writeStatus writes a status-line-only response.
func (s *Server) writeStatus(conn net.Conn, code int) (int, error) {
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := protocol.WriteStatusLine(conn, code); err != nil {
		return code, fmt.Errorf("write status %d: %w", code, err)
	}
	s.metrics.Status(code)
	return code, nil
}

// reject answers a connection the executor could not take.
func (s *Server) reject(conn net.Conn, code int) {
	_ = conn.SetWriteDeadline(time.Now().Add(rejectTimeout))
	if err := protocol.WriteStatusLine(conn, code); err == nil {
		s.metrics.Status(code)
	}
	_ = conn.Close()
}

// closeConn half-closes the write side and drains unread input briefly so
// the peer receives the full response instead of a reset.
func (s *Server) closeConn(conn net.Conn) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err == nil {
			_ = conn.SetReadDeadline(time.Now().Add(lingerTimeout))
			_, _ = io.CopyN(io.Discard, conn, lingerBytes)
		}
	}
	_ = conn.Close()
}
