// File: protocol/response.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fully buffered response accumulation and HTTP/1.1 serialization.

package protocol

import (
	"bufio"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Default header values seeded into every dispatched response.
const (
	DefaultContentType = "text/plain; charset=utf-8"
	DefaultConnection  = "keep-alive"
	DefaultKeepAlive   = "timeout=5"
)

// Response accumulates the status, body and headers of one reply.
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
}

// NewResponse returns a 200 response with an empty body and no headers.
func NewResponse() *Response {
	return &Response{
		Status:  http.StatusOK,
		Headers: make(map[string]string),
	}
}

// DefaultResponse returns the response handed to matched handlers.
// The keep-alive headers are advisory; connections are closed after one reply.
func DefaultResponse() *Response {
	return NewResponse().
		SetHeader("Content-Type", DefaultContentType).
		SetHeader("Connection", DefaultConnection).
		SetHeader("Keep-Alive", DefaultKeepAlive)
}

// SetStatus sets the status code.
func (r *Response) SetStatus(code int) *Response {
	r.Status = code
	return r
}

// Send replaces the body.
func (r *Response) Send(body string) *Response {
	r.Body = body
	return r
}

// SetHeader stores value under the lower-cased key.
func (r *Response) SetHeader(key, value string) *Response {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[strings.ToLower(key)] = value
	return r
}

// WriteTo serializes the response: status line, headers sorted by key,
// blank line, then the body verbatim.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countWriter{w: bw}

	writeStatusLine(cw, r.Status)
	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cw.WriteString(k)
		cw.WriteString(": ")
		cw.WriteString(r.Headers[k])
		cw.WriteString("\r\n")
	}
	cw.WriteString("\r\n")
	cw.WriteString(r.Body)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

// WriteStatusLine writes a status-line-only response with no headers or body.
func WriteStatusLine(w io.Writer, code int) error {
	bw := bufio.NewWriter(w)
	cw := &countWriter{w: bw}
	writeStatusLine(cw, code)
	cw.WriteString("\r\n")
	if cw.err != nil {
		return cw.err
	}
	return bw.Flush()
}

func writeStatusLine(cw *countWriter, code int) {
	cw.WriteString("HTTP/1.1 ")
	cw.WriteString(strconv.Itoa(code))
	cw.WriteString(" ")
	cw.WriteString(StatusText(code))
	cw.WriteString("\r\n")
}

// countWriter latches the first error so serialization reads linearly.
type countWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countWriter) WriteString(s string) {
	if c.err != nil {
		return
	}
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	c.err = err
}
