// File: router/table.go
// Package router holds the exact-match route table.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package router

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-http/api"
	"github.com/momentics/hioload-http/logging"
	"github.com/momentics/hioload-http/protocol"
)

// RouteKey identifies one registered handler.
type RouteKey struct {
	Path   string
	Method protocol.Method
}

func (k RouteKey) String() string {
	return k.Method.String() + " " + k.Path
}

// Result is the outcome of a lookup.
type Result uint8

const (
	Found Result = iota
	PathNotFound
	MethodNotAllowed
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case PathNotFound:
		return "path not found"
	case MethodNotAllowed:
		return "method not allowed"
	default:
		return "unknown"
	}
}

// Err returns the sentinel for a failed lookup, nil for Found.
func (r Result) Err() error {
	switch r {
	case PathNotFound:
		return api.ErrPathNotFound
	case MethodNotAllowed:
		return api.ErrMethodNotAllowed
	default:
		return nil
	}
}

// snapshot is never mutated after publication.
type snapshot map[string]map[protocol.Method]api.Handler

// Table maps (path, method) to handlers.
// Lookups read an immutable snapshot and never block; registrations copy it.
type Table struct {
	mu     sync.Mutex // serializes writers
	routes atomic.Pointer[snapshot]
	logger *slog.Logger
}

// NewTable returns an empty table. A nil logger discards warnings.
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = logging.Nop()
	}
	t := &Table{logger: logger}
	empty := make(snapshot)
	t.routes.Store(&empty)
	return t
}

// Register binds handler to (path, method). The first registration wins:
// a duplicate is logged and reported as ErrDuplicateRoute.
func (t *Table) Register(path string, method protocol.Method, handler api.Handler) error {
	if handler == nil {
		return fmt.Errorf("register %s %s: nil handler", method, path)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := *t.routes.Load()
	if _, exists := cur[path][method]; exists {
		t.logger.Warn("route registered twice, keeping the first handler",
			"method", method.String(), "path", path)
		return fmt.Errorf("%w: %s %s", api.ErrDuplicateRoute, method, path)
	}

	next := make(snapshot, len(cur)+1)
	for p, methods := range cur {
		next[p] = methods
	}
	methods := make(map[protocol.Method]api.Handler, len(cur[path])+1)
	for m, h := range cur[path] {
		methods[m] = h
	}
	methods[method] = handler
	next[path] = methods

	t.routes.Store(&next)
	return nil
}

// Resolve looks up an exact path and method.
func (t *Table) Resolve(path string, method protocol.Method) (api.Handler, Result) {
	methods, ok := (*t.routes.Load())[path]
	if !ok {
		return nil, PathNotFound
	}
	h, ok := methods[method]
	if !ok {
		return nil, MethodNotAllowed
	}
	return h, Found
}

// Routes lists registered keys sorted by path, then method.
func (t *Table) Routes() []RouteKey {
	cur := *t.routes.Load()
	keys := make([]RouteKey, 0, len(cur))
	for p, methods := range cur {
		for m := range methods {
			keys = append(keys, RouteKey{Path: p, Method: m})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		return keys[i].Method < keys[j].Method
	})
	return keys
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	n := 0
	for _, methods := range *t.routes.Load() {
		n += len(methods)
	}
	return n
}
