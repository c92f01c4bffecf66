package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-http/protocol"
	"github.com/momentics/hioload-http/server"
)

func TestRoutesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRoutesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "METHOD  PATH\n"+
		"GET     /\n"+
		"GET     /alternate-route\n"+
		"POST    /create\n"+
		"GET     /debug\n"+
		"GET     /echo\n", out.String())
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: 127.0.0.1:7000\nread_timeout: 1s\nlog:\n  level: warn\n"), 0o600))

	cmd := newServeCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "--log-level", "debug"}))

	f := serveFlags{config: path, logLevel: "debug"}
	cfg, err := loadConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_RejectsEmptyAddr(t *testing.T) {
	cmd := newServeCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--addr", ""}))

	_, err := loadConfig(cmd, serveFlags{})
	assert.ErrorContains(t, err, "addr")
}

func TestEcho(t *testing.T) {
	req, err := protocol.Parse([]byte("GET /echo?b=2&a=1 HTTP/1.1\r\nUser-Agent: curl/8\r\n\r\n"))
	require.NoError(t, err)

	res := echo(req, protocol.DefaultResponse())
	assert.Equal(t, "GET /echo HTTP/1.1\nquery a=1\nquery b=2\nuser-agent curl/8\n", res.Body)
}

func TestRegisterDemo_Twice(t *testing.T) {
	srv := server.NewServer(nil)
	require.NoError(t, registerDemo(srv))
	assert.Error(t, registerDemo(srv))
	assert.Equal(t, 5, srv.Routes().Len())
}

func TestDebugState(t *testing.T) {
	srv := server.NewServer(nil)
	require.NoError(t, registerDemo(srv))

	res := debugState(srv)(&protocol.Request{}, protocol.DefaultResponse())
	assert.Contains(t, res.Body, "routes: 5\n")
	assert.Contains(t, res.Body, "platform.cpus: ")
	assert.Contains(t, res.Body, "metrics: map[")
}
