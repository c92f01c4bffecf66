package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-http/protocol"
)

func TestParse_RequestLine(t *testing.T) {
	tests := []struct {
		raw     string
		method  protocol.Method
		version protocol.Version
		path    string
	}{
		{"GET / HTTP/1.1\r\n\r\n", protocol.MethodGet, protocol.VersionOnePointOne, "/"},
		{"POST /create HTTP/1.1\r\n\r\n", protocol.MethodPost, protocol.VersionOnePointOne, "/create"},
		{"PUT /a/b HTTP/1\r\n\r\n", protocol.MethodPut, protocol.VersionOne, "/a/b"},
		{"DELETE /x HTTP/2\r\n\r\n", protocol.MethodDelete, protocol.VersionTwo, "/x"},
		{"PATCH /x HTTP/1.0\r\n\r\n", protocol.MethodPatch, protocol.VersionUnknown, "/x"},
		{"PATCH /x HTTP/2.0\r\n\r\n", protocol.MethodPatch, protocol.VersionUnknown, "/x"},
		{"HEAD /x HTTP/9\r\n\r\n", protocol.MethodHead, protocol.VersionUnknown, "/x"},
		{"OPTIONS * HTTP/1.1\r\n\r\n", protocol.MethodOptions, protocol.VersionOnePointOne, "*"},
		{"get / HTTP/1.1\r\n\r\n", protocol.MethodUnrecognized, protocol.VersionOnePointOne, "/"},
		{"BREW /pot HTTP/1.1\r\n\r\n", protocol.MethodUnrecognized, protocol.VersionOnePointOne, "/pot"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req, err := protocol.Parse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.version, req.Version)
			assert.Equal(t, tt.path, req.Path.Absolute)
		})
	}
}

func TestParse_Failures(t *testing.T) {
	for _, raw := range []string{
		"",
		"\r\n",
		"\r\n\r\n",
		"\r\n\r\nGET / HTTP/1.1\r\n\r\n",
		"GET\r\n\r\n",
		"GET /\r\n\r\n",
		"GET  HTTP/1.1\r\n\r\n",
		"GET / HTTP/1.1 extra\r\n\r\n",
	} {
		req, err := protocol.Parse([]byte(raw))
		assert.ErrorIs(t, err, protocol.ErrParse, "input %q", raw)
		assert.Nil(t, req)
	}
}

func TestParse_SkipsOneLeadingEmptyLine(t *testing.T) {
	req, err := protocol.Parse([]byte("\r\nGET /hello HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "/hello", req.Path.Absolute)
	assert.Equal(t, "x", req.Headers["Host"])
}

func TestParse_LFOnly(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /lf HTTP/1.1\nAccept: */*\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "/lf", req.Path.Absolute)
	assert.Equal(t, "*/*", req.Headers["Accept"])
}

func TestParse_Query(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /search?s=hello&bad HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "/search", req.Path.Absolute)
	assert.Equal(t, "/search", req.Path.Raw)
	assert.Equal(t, map[string]string{"s": "hello"}, req.Path.Query)
}

func TestParse_QueryConventions(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /q?a=1&a=2&empty=&=nokey&&sp=a+b%21&eq=x=y HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a":     "2",
		"empty": "",
		"sp":    "a b!",
		"eq":    "x=y",
	}, req.Path.Query)
}

func TestParse_NoQuery(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /plain HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "/plain", req.Path.Raw)
	assert.NotNil(t, req.Path.Query)
	assert.Empty(t, req.Path.Query)
}

func TestParse_Headers(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n" +
		"Host: localhost:8000\r\n" +
		"X-Empty:\r\n" +
		": novalue\r\n" +
		"garbage line\r\n" +
		"User-Agent:  curl/8.0 \r\n" +
		"\r\n" +
		"After: blank\r\n"
	req, err := protocol.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Host":       "localhost:8000",
		"User-Agent": "curl/8.0",
	}, req.Headers)

	ua, ok := req.Header("user-agent")
	assert.True(t, ok)
	assert.Equal(t, "curl/8.0", ua)
}

func TestParse_IgnoresBody(t *testing.T) {
	req, err := protocol.Parse([]byte("POST /p HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"))
	require.NoError(t, err)
	assert.Equal(t, protocol.MethodPost, req.Method)
	assert.Equal(t, "5", req.Headers["Content-Length"])
}

func TestParse_WithoutTerminator(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /partial HTTP/1.1\r\nHost: a"))
	require.NoError(t, err)
	assert.Equal(t, "/partial", req.Path.Absolute)
	assert.Equal(t, "a", req.Headers["Host"])
}

func TestHeadComplete(t *testing.T) {
	assert.Equal(t, -1, protocol.HeadComplete([]byte("GET / HTTP/1.1\r\n")))
	assert.Equal(t, 18, protocol.HeadComplete([]byte("GET / HTTP/1.1\r\n\r\nbody")))
	assert.Equal(t, 16, protocol.HeadComplete([]byte("GET / HTTP/1.1\n\n")))
}

func TestMethodAndVersionStrings(t *testing.T) {
	assert.Equal(t, "GET", protocol.MethodGet.String())
	assert.Equal(t, "UNRECOGNIZED", protocol.ParseMethod("TRACE").String())
	assert.Equal(t, "HTTP/1.1", protocol.ParseVersion("HTTP/1.1").String())
	assert.Equal(t, "unknown", protocol.ParseVersion("SPDY/3").String())
}
