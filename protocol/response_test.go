package protocol_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-http/protocol"
)

func TestResponse_Defaults(t *testing.T) {
	res := protocol.NewResponse()
	assert.Equal(t, 200, res.Status)
	assert.Empty(t, res.Body)
	assert.Empty(t, res.Headers)
}

func TestResponse_SetHeaderLowercasesKey(t *testing.T) {
	res := protocol.NewResponse().SetHeader("Content-Type", "application/json")
	assert.Equal(t, map[string]string{"content-type": "application/json"}, res.Headers)

	res.SetHeader("CONTENT-TYPE", "Text/HTML")
	assert.Equal(t, "Text/HTML", res.Headers["content-type"])
	assert.Len(t, res.Headers, 1)
}

func TestResponse_SendReplacesBody(t *testing.T) {
	res := protocol.NewResponse().Send("first").Send("second")
	assert.Equal(t, "second", res.Body)
}

func TestResponse_ZeroValueSetHeader(t *testing.T) {
	var res protocol.Response
	res.SetHeader("X-A", "1")
	assert.Equal(t, "1", res.Headers["x-a"])
}

func TestDefaultResponse(t *testing.T) {
	res := protocol.DefaultResponse()
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, map[string]string{
		"content-type": "text/plain; charset=utf-8",
		"connection":   "keep-alive",
		"keep-alive":   "timeout=5",
	}, res.Headers)
}

func TestResponse_WriteTo(t *testing.T) {
	res := protocol.DefaultResponse().SetStatus(201).Send("Created!")

	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)

	want := "HTTP/1.1 201 Created\r\n" +
		"connection: keep-alive\r\n" +
		"content-type: text/plain; charset=utf-8\r\n" +
		"keep-alive: timeout=5\r\n" +
		"\r\n" +
		"Created!"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestResponse_WriteToUnknownStatus(t *testing.T) {
	var buf bytes.Buffer
	_, err := protocol.NewResponse().SetStatus(599).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 599 Unknown Status\r\n\r\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestResponse_WriteToError(t *testing.T) {
	_, err := protocol.NewResponse().Send("x").WriteTo(failWriter{})
	assert.Error(t, err)
	assert.Error(t, protocol.WriteStatusLine(failWriter{}, 400))
}

func TestWriteStatusLine(t *testing.T) {
	for code, want := range map[int]string{
		400: "HTTP/1.1 400 Bad Request\r\n\r\n",
		404: "HTTP/1.1 404 Not Found\r\n\r\n",
		405: "HTTP/1.1 405 Method Not Allowed\r\n\r\n",
	} {
		var buf bytes.Buffer
		require.NoError(t, protocol.WriteStatusLine(&buf, code))
		assert.Equal(t, want, buf.String())
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", protocol.StatusText(200))
	assert.Equal(t, "Created", protocol.StatusText(201))
	assert.Equal(t, "I'm a teapot", protocol.StatusText(418))
	assert.Equal(t, "Request Header Fields Too Large", protocol.StatusText(431))
	assert.Equal(t, "Internal Server Error", protocol.StatusText(500))
	assert.Equal(t, protocol.UnknownStatus, protocol.StatusText(299))
	assert.Equal(t, protocol.UnknownStatus, protocol.StatusText(0))
}
