// File: cmd/hioload-http/demo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/momentics/hioload-http/protocol"
	"github.com/momentics/hioload-http/server"
)

// registerDemo installs the routes served by the serve command.
func registerDemo(srv *server.Server) error {
	routes := []struct {
		path string
		fn   func(*protocol.Request, *protocol.Response) *protocol.Response
	}{
		{"/", func(_ *protocol.Request, res *protocol.Response) *protocol.Response {
			return res.Send("This message is brought to you by the register callback!")
		}},
		{"/alternate-route", func(_ *protocol.Request, res *protocol.Response) *protocol.Response {
			return res.Send("Here's an alternative route!")
		}},
		{"/echo", echo},
		{"/debug", debugState(srv)},
	}
	for _, r := range routes {
		if err := srv.GET(r.path, r.fn); err != nil {
			return err
		}
	}
	return srv.POST("/create", func(_ *protocol.Request, res *protocol.Response) *protocol.Response {
		return res.SetStatus(201).Send("Created!")
	})
}

// echo reflects the parsed request back as plain text.
func echo(req *protocol.Request, res *protocol.Response) *protocol.Response {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", req.Method, req.Path.Absolute, req.Version)

	keys := make([]string, 0, len(req.Path.Query))
	for k := range req.Path.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "query %s=%s\n", k, req.Path.Query[k])
	}
	if ua, ok := req.Header("User-Agent"); ok {
		fmt.Fprintf(&b, "user-agent %s\n", ua)
	}
	return res.Send(b.String())
}

// debugState renders the server's probe dump, one probe per line.
func debugState(srv *server.Server) func(*protocol.Request, *protocol.Response) *protocol.Response {
	return func(_ *protocol.Request, res *protocol.Response) *protocol.Response {
		state := srv.Debug().DumpState()
		names := make([]string, 0, len(state))
		for k := range state {
			names = append(names, k)
		}
		sort.Strings(names)

		var b strings.Builder
		for _, k := range names {
			fmt.Fprintf(&b, "%s: %v\n", k, state[k])
		}
		return res.Send(b.String())
	}
}
