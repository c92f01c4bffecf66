// File: protocol/parser.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Request head parsing: request line, query string and header fields.
// Message bodies are never read.

package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrParse reports a missing or malformed request line.
var ErrParse = errors.New("malformed request")

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")
)

// HeadComplete returns the offset just past the header terminator in buf,
// or -1 if the head is still incomplete. LF-only terminators are accepted.
func HeadComplete(buf []byte) int {
	end := -1
	if i := bytes.Index(buf, crlfcrlf); i >= 0 {
		end = i + len(crlfcrlf)
	}
	if i := bytes.Index(buf, lflf); i >= 0 && (end < 0 || i+len(lflf) < end) {
		end = i + len(lflf)
	}
	return end
}

// Parse turns a raw request head into a Request.
// Bytes after the header terminator are ignored.
func Parse(raw []byte) (*Request, error) {
	if end := HeadComplete(raw); end >= 0 {
		raw = raw[:end]
	}
	lines := splitLines(string(raw))

	// A single empty line before the request line is tolerated.
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("%w: missing request line", ErrParse)
	}

	method, target, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	return &Request{
		Path:    parseTarget(target),
		Method:  ParseMethod(method),
		Version: ParseVersion(version),
		Headers: parseHeaders(lines[1:]),
	}, nil
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func parseRequestLine(line string) (method, target, version string, err error) {
	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return "", "", "", fmt.Errorf("%w: request line has %d tokens", ErrParse, len(fields))
	}
	for _, f := range fields {
		if f == "" {
			return "", "", "", fmt.Errorf("%w: empty token in request line", ErrParse)
		}
	}
	return fields[0], fields[1], fields[2], nil
}

func parseTarget(target string) RequestPath {
	abs, rawQuery, ok := strings.Cut(target, "?")
	p := RequestPath{
		Raw:      abs,
		Absolute: abs,
		Query:    make(map[string]string),
	}
	if !ok {
		return p
	}
	for _, seg := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(seg, "=")
		if !ok || key == "" {
			continue
		}
		p.Query[unescape(key)] = unescape(value)
	}
	return p
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// parseHeaders reads fields up to the first blank line.
// Lines without a name or a value are dropped.
func parseHeaders(lines []string) map[string]string {
	headers := make(map[string]string)
	for _, line := range lines {
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		headers[name] = value
	}
	return headers
}
